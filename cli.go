package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus-crane/showscout/db"
	"github.com/marcus-crane/showscout/tvmaze"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search for shows by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := tvmaze.NewClient(cfg.TVMaze.APIURL, cfg.RequestTimeout())
		shows, err := client.SearchShows(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderShowsTable(shows))
		return nil
	},
}

var episodesCmd = &cobra.Command{
	Use:   "episodes <showID>",
	Short: "List a show's episodes grouped by season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showID, err := strconv.Atoi(args[0])
		if err != nil || showID <= 0 {
			return fmt.Errorf("invalid show id %q", args[0])
		}
		client := tvmaze.NewClient(cfg.TVMaze.APIURL, cfg.RequestTimeout())
		list, err := client.GetEpisodes(cmd.Context(), showID)
		if err != nil {
			return err
		}
		groups := tvmaze.GroupBySeason(list.Episodes, list.TotalSeasons)
		fmt.Fprintln(cmd.OutOrStdout(), renderSeasonsTable(fmt.Sprintf("Show %d", showID), groups))
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations for the lookup history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.OpenAndMigrate(cfg.History.DbPath)
		if err != nil {
			return err
		}
		defer database.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied to %s\n", cfg.History.DbPath)
		return nil
	},
}
