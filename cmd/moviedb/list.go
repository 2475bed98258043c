package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-movie-collection/internal/domain"
	"github.com/tbourn/go-movie-collection/internal/services"
)

// reviewPreviewLen caps the review column in table output.
const reviewPreviewLen = 40

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		query   string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the ranked collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(db *gorm.DB) error {
				svc := services.NewMovieService(db, services.StoreRepo{})
				var (
					movies []domain.Movie
					err    error
				)
				if strings.TrimSpace(query) != "" {
					movies, err = svc.Matching(cmd.Context(), query)
				} else {
					movies, err = svc.Ranked(cmd.Context())
				}
				if err != nil {
					return err
				}
				return printMovies(cmd, movies, jsonOut)
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show movies whose title or description matches")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func printMovies(cmd *cobra.Command, movies []domain.Movie, jsonOut bool) error {
	if jsonOut {
		if movies == nil {
			movies = []domain.Movie{}
		}
		return writeJSON(cmd, movies)
	}
	out := cmd.OutOrStdout()
	if len(movies) == 0 {
		fmt.Fprintln(out, "No movies in the collection")
		return nil
	}
	fmt.Fprintln(out, renderTable(movieColumns, movies))
	return nil
}

func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

func preview(s *string, n int) string {
	if s == nil {
		return ""
	}
	v := strings.Join(strings.Fields(*s), " ")
	if utf8.RuneCountInString(v) <= n {
		return v
	}
	return string([]rune(v)[:n-1]) + "…"
}
