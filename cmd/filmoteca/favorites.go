package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage your personal favorites list",
	}

	cmd.AddCommand(
		favoritesListCmd(),
		favoritesAddCmd(),
		favoritesRmCmd(),
		favoritesToggleCmd(),
		favoritesCheckCmd(),
	)

	return cmd
}

func favoritesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your favorite movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			movies, err := a.favorites.Favorites(ctx)
			if err != nil {
				return err
			}

			printMovieTable(movies)
			return nil
		},
	}
}

func favoritesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <movie-id>",
		Short: "Add a movie to your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid movie id %q", args[0])
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			if err := a.favorites.Add(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Movie %d added to favorites\n", id)
			return nil
		},
	}
}

func favoritesRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <movie-id>",
		Short: "Remove a movie from your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid movie id %q", args[0])
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			if err := a.favorites.Remove(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Movie %d removed from favorites\n", id)
			return nil
		},
	}
}

func favoritesToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <movie-id>",
		Short: "Toggle a movie in or out of your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid movie id %q", args[0])
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			isFavorite, err := a.favorites.Toggle(ctx, id)
			if err != nil {
				return err
			}

			if isFavorite {
				fmt.Printf("Movie %d added to favorites\n", id)
			} else {
				fmt.Printf("Movie %d removed from favorites\n", id)
			}
			return nil
		},
	}
}

func favoritesCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <movie-id>",
		Short: "Check whether a movie is in your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid movie id %q", args[0])
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			status, err := a.favorites.Check(ctx, id)
			if err != nil {
				return err
			}

			if status.IsFavorite {
				fmt.Printf("Movie %d is in your favorites (since %s)\n", id, status.MarkedAt.Format("2006-01-02"))
			} else {
				fmt.Printf("Movie %d is not in your favorites\n", id)
			}
			return nil
		},
	}
}
