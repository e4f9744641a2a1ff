package routes

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/marcus-crane/showscout/tvmaze"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Query        string
	Searched     bool
	Shows        []showCard
	EpisodeTable *episodeTable
	Error        string
}

type showCard struct {
	tvmaze.Show
	// TVMaze summaries are HTML and are rendered as such
	SummaryHTML template.HTML
	EpisodesURL string
}

type episodeTable struct {
	ShowID   int
	ShowName string
	Seasons  []tvmaze.SeasonGroup
	BackURL  string
}

func newShowCards(shows []tvmaze.Show, query string) []showCard {
	cards := make([]showCard, 0, len(shows))
	for _, show := range shows {
		cards = append(cards, showCard{
			Show:        show,
			SummaryHTML: template.HTML(show.Summary),
			EpisodesURL: episodesURL(show, query),
		})
	}
	return cards
}

func episodesURL(show tvmaze.Show, query string) string {
	params := url.Values{"name": []string{show.Name}, "q": []string{query}}
	return fmt.Sprintf("/shows/%d/episodes?%s", show.ID, params.Encode())
}

func backURL(query string, searched bool) string {
	if !searched {
		return "/"
	}
	return "/?" + url.Values{"q": []string{query}}.Encode()
}

func renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page", data); err != nil {
		slog.Error("Failed to render page", slog.String("error", err.Error()))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func renderJSONMessage(w http.ResponseWriter, message string) {
	renderJSON(w, http.StatusOK, map[string]string{"message": message})
}

func renderJSONError(w http.ResponseWriter, status int, message string) {
	renderJSON(w, status, map[string]string{"error": message})
}
