package routes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/marcus-crane/showscout/history"
	"github.com/marcus-crane/showscout/tvmaze"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type ShowFinder interface {
	SearchShows(ctx context.Context, query string) ([]tvmaze.Show, error)
	GetEpisodes(ctx context.Context, showID int) (tvmaze.EpisodeList, error)
}

// Options wires the handlers to their collaborators. History and Events are
// optional and their routes are only registered when set.
type Options struct {
	Finder         ShowFinder
	History        history.Recorder
	Events         http.Handler
	AllowedOrigins []string
}

type handlers struct {
	finder  ShowFinder
	history history.Recorder
}

type episodesResponse struct {
	ShowID       int                  `json:"show_id"`
	TotalSeasons int                  `json:"total_seasons"`
	Seasons      []tvmaze.SeasonGroup `json:"seasons"`
}

func Register(router *mux.Router, opts Options) http.Handler {
	h := &handlers{finder: opts.Finder, history: opts.History}

	router.HandleFunc("/", h.searchPage).Methods(http.MethodGet)
	router.HandleFunc("/shows/{id:[0-9]+}/episodes", h.episodesPage).Methods(http.MethodGet)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		renderJSONMessage(w, "ok")
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/search", h.searchAPI).Methods(http.MethodGet)
	api.HandleFunc("/shows/{id:[0-9]+}/episodes", h.episodesAPI).Methods(http.MethodGet)

	if opts.History != nil {
		api.HandleFunc("/history", h.historyAPI).Methods(http.MethodGet)
	}

	if opts.Events != nil {
		router.Handle("/events", opts.Events).Methods(http.MethodGet)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})

	return c.Handler(router)
}

func (h *handlers) searchPage(w http.ResponseWriter, r *http.Request) {
	values, searched := r.URL.Query()["q"]
	data := pageData{Searched: searched}
	if !searched {
		renderPage(w, http.StatusOK, data)
		return
	}
	data.Query = values[0]

	shows, err := h.finder.SearchShows(r.Context(), data.Query)
	if err != nil {
		status := statusFor(err)
		logLookupError(err, slog.String("query", data.Query))
		data.Searched = false
		data.Error = userMessage(err)
		renderPage(w, status, data)
		return
	}

	h.record(r.Context(), history.Lookup{Kind: history.KindSearch, Query: data.Query, ResultCount: len(shows)})
	data.Shows = newShowCards(shows, data.Query)
	renderPage(w, http.StatusOK, data)
}

func (h *handlers) episodesPage(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	values, searched := params["q"]
	data := pageData{}
	if searched {
		data.Query = values[0]
	}

	showID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		data.Error = "That doesn't look like a valid show."
		renderPage(w, http.StatusBadRequest, data)
		return
	}

	showName := params.Get("name")
	if showName == "" {
		showName = fmt.Sprintf("Show %d", showID)
	}

	list, err := h.finder.GetEpisodes(r.Context(), showID)
	if err != nil {
		logLookupError(err, slog.Int("show_id", showID))
		data.Error = userMessage(err)
		renderPage(w, statusFor(err), data)
		return
	}

	h.record(r.Context(), history.Lookup{
		Kind:         history.KindEpisodes,
		ShowID:       showID,
		ShowName:     showName,
		ResultCount:  len(list.Episodes),
		TotalSeasons: list.TotalSeasons,
	})

	data.EpisodeTable = &episodeTable{
		ShowID:   showID,
		ShowName: showName,
		Seasons:  tvmaze.GroupBySeason(list.Episodes, list.TotalSeasons),
		BackURL:  backURL(data.Query, searched),
	}
	renderPage(w, http.StatusOK, data)
}

func (h *handlers) searchAPI(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	shows, err := h.finder.SearchShows(r.Context(), query)
	if err != nil {
		logLookupError(err, slog.String("query", query))
		renderJSONError(w, statusFor(err), err.Error())
		return
	}
	h.record(r.Context(), history.Lookup{Kind: history.KindSearch, Query: query, ResultCount: len(shows)})
	renderJSON(w, http.StatusOK, shows)
}

func (h *handlers) episodesAPI(w http.ResponseWriter, r *http.Request) {
	showID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		renderJSONError(w, http.StatusBadRequest, "invalid show id")
		return
	}
	list, err := h.finder.GetEpisodes(r.Context(), showID)
	if err != nil {
		logLookupError(err, slog.Int("show_id", showID))
		renderJSONError(w, statusFor(err), err.Error())
		return
	}
	h.record(r.Context(), history.Lookup{
		Kind:         history.KindEpisodes,
		ShowID:       showID,
		ShowName:     r.URL.Query().Get("name"),
		ResultCount:  len(list.Episodes),
		TotalSeasons: list.TotalSeasons,
	})
	renderJSON(w, http.StatusOK, episodesResponse{
		ShowID:       showID,
		TotalSeasons: list.TotalSeasons,
		Seasons:      tvmaze.GroupBySeason(list.Episodes, list.TotalSeasons),
	})
}

func (h *handlers) historyAPI(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			renderJSONError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}
	lookups, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to load lookup history", slog.String("error", err.Error()))
		renderJSONError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	renderJSON(w, http.StatusOK, lookups)
}

// History is a side record of what was looked up, so failing to write it
// never fails the request itself
func (h *handlers) record(ctx context.Context, lookup history.Lookup) {
	if h.history == nil {
		return
	}
	if _, err := h.history.Record(ctx, lookup); err != nil {
		slog.Error("Failed to record lookup",
			slog.String("error", err.Error()),
			slog.String("kind", string(lookup.Kind)))
	}
}

func statusFor(err error) int {
	var empty *tvmaze.EmptyShowError
	var network *tvmaze.NetworkError
	var invalid *tvmaze.InvalidResponseError
	switch {
	case errors.As(err, &empty):
		return http.StatusNotFound
	case errors.As(err, &network):
		if network.Timeout() {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case errors.As(err, &invalid):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func userMessage(err error) string {
	var empty *tvmaze.EmptyShowError
	var network *tvmaze.NetworkError
	var invalid *tvmaze.InvalidResponseError
	switch {
	case errors.As(err, &empty):
		return "This show doesn't have any episodes listed yet."
	case errors.As(err, &network):
		return "TVMaze couldn't be reached. Please try again in a moment."
	case errors.As(err, &invalid):
		return "TVMaze sent back something unexpected. Please try again later."
	default:
		return "Something went wrong."
	}
}

func logLookupError(err error, attrs ...any) {
	args := append([]any{slog.String("error", err.Error())}, attrs...)
	var empty *tvmaze.EmptyShowError
	if errors.As(err, &empty) {
		slog.Info("Show has no episodes", args...)
		return
	}
	slog.Error("TVMaze lookup failed", args...)
}
