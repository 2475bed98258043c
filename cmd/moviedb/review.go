package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-movie-collection/internal/services"
	"github.com/tbourn/go-movie-collection/internal/utils"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "review <id> <rating> <review>",
		Short: "Rate and review a movie in the collection",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseID(args[0])
			if err != nil {
				return fmt.Errorf("movie id %q: %w", args[0], err)
			}
			return ctx.withStore(func(db *gorm.DB) error {
				svc := services.NewMovieService(db, services.StoreRepo{})
				if err := svc.Review(cmd.Context(), id, args[1], args[2]); err != nil {
					return err
				}
				movies, err := svc.Ranked(cmd.Context())
				if err != nil {
					return err
				}
				return printMovies(cmd, movies, false)
			})
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a movie from the collection",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseID(args[0])
			if err != nil {
				return fmt.Errorf("movie id %q: %w", args[0], err)
			}
			return ctx.withStore(func(db *gorm.DB) error {
				svc := services.NewMovieService(db, services.StoreRepo{})
				if err := svc.Delete(cmd.Context(), id); err != nil {
					return err
				}
				movies, err := svc.Ranked(cmd.Context())
				if err != nil {
					return err
				}
				return printMovies(cmd, movies, false)
			})
		},
	}
}
