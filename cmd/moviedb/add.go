package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-movie-collection/internal/services"
	"github.com/tbourn/go-movie-collection/internal/utils"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var rating, review string
	cmd := &cobra.Command{
		Use:   "add <catalog-id>",
		Short: "Add a catalog title to the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remoteID, err := utils.ParseRemoteID(args[0])
			if err != nil {
				return fmt.Errorf("catalog id %q: %w", args[0], err)
			}
			// rating and review are stored together, so check both before adding
			if rating != "" || review != "" {
				if _, err := services.ParseRating(rating); err != nil {
					return err
				}
				if strings.TrimSpace(review) == "" {
					return services.ErrEmptyReview
				}
			}
			return ctx.withStore(func(db *gorm.DB) error {
				sel, err := ctx.selectionService(db)
				if err != nil {
					return err
				}
				m, err := sel.Resolve(cmd.Context(), remoteID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%d) as #%d\n", m.Title, m.Year, m.ID)

				if rating == "" && review == "" {
					return nil
				}
				svc := services.NewMovieService(db, services.StoreRepo{})
				if err := svc.Review(cmd.Context(), m.ID, rating, review); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rated #%d %s\n", m.ID, rating)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rating, "rating", "", "Rating from 0 to 10, one decimal")
	cmd.Flags().StringVar(&review, "review", "", "Review text")
	return cmd
}
