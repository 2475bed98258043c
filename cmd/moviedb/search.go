package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-movie-collection/internal/catalog"
	"github.com/tbourn/go-movie-collection/internal/services"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the remote catalog by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.catalogClient()
			if err != nil {
				return err
			}
			svc := services.NewSelectionService(nil, services.StoreRepo{}, client)
			results, err := svc.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printResults(cmd, results, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func printResults(cmd *cobra.Command, results []catalog.SearchResult, jsonOut bool) error {
	if jsonOut {
		if results == nil {
			results = []catalog.SearchResult{}
		}
		return writeJSON(cmd, results)
	}
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No matches")
		return nil
	}
	fmt.Fprintln(out, renderTable(resultColumns, results))
	return nil
}
