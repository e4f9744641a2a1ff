package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/marcus-crane/showscout/tvmaze"
)

const summaryWidth = 60

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func styleCells(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	return cellStyle
}

func renderShowsTable(shows []tvmaze.Show) string {
	if len(shows) == 0 {
		return mutedStyle.Render("No shows matched your search.")
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(styleCells).
		Headers("ID", "Name", "Image", "Summary")
	for _, show := range shows {
		t.Row(strconv.Itoa(show.ID), show.Name, show.Image, truncate(plainText(show.Summary), summaryWidth))
	}
	return t.String()
}

func renderSeasonsTable(showName string, groups []tvmaze.SeasonGroup) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(styleCells).
		Headers("Season", "Episodes")
	for _, group := range groups {
		t.Row(fmt.Sprintf("Season %d", group.Season), episodeLine(group.Episodes))
	}
	return titleStyle.Render(showName) + "\n" + t.String()
}

func episodeLine(episodes []tvmaze.Episode) string {
	if len(episodes) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(episodes))
	for _, episode := range episodes {
		parts = append(parts, fmt.Sprintf("%d. %s", episode.Number, episode.Name))
	}
	return strings.Join(parts, ", ")
}

// plainText strips the markup TVMaze puts in summaries
func plainText(summary string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(summary))
	if err != nil {
		return summary
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
