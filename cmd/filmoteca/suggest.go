package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func suggestCmd() *cobra.Command {
	var limit, pages int

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Fuzzy-match titles against movies the client has seen",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			// Warm the index from cached (or fetched) catalog pages.
			for page := 1; page <= pages; page++ {
				result, err := a.catalog.ListMovies(ctx, page, a.cfg.Preferences.PageSize)
				if err != nil {
					return err
				}
				a.suggester.Index(result.Items)
				if !result.HasNext {
					break
				}
			}

			matches := a.suggester.Suggest(query, limit)
			if len(matches) == 0 {
				fmt.Println(faintStyle.Render("no suggestions"))
				return nil
			}

			printMovieTable(matches)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum suggestions")
	cmd.Flags().IntVar(&pages, "pages", 3, "Catalog pages to index before matching")
	return cmd
}
