package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/svidal/filmoteca/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5A00D"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func moviesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Browse and manage the movie catalog",
	}

	cmd.AddCommand(
		moviesListCmd(),
		moviesGetCmd(),
		moviesSearchCmd(),
		moviesPopularCmd(),
		moviesRecentCmd(),
		moviesClassificationCmd(),
		moviesMineCmd(),
		moviesCreateCmd(),
		moviesUpdateCmd(),
		moviesDeleteCmd(),
		moviesImageCmd(),
	)

	return cmd
}

func moviesListCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog, one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if limit <= 0 {
				limit = a.cfg.Preferences.PageSize
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			result, err := a.catalog.ListMovies(ctx, page, limit)
			if err != nil {
				return err
			}

			printMovieTable(result.Items)
			fmt.Println(faintStyle.Render(fmt.Sprintf("page %d/%d  •  %d movies total", result.CurrentPage, result.TotalPages, result.TotalRecords)))
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Movies per page")
	return cmd
}

func moviesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one movie",
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

			movie, err := a.catalog.GetMovie(ctx, id)
			if err != nil {
				return err
			}

			printMovieDetail(*movie)
			return nil
		},
	}
}

func moviesSearchCmd() *cobra.Command {
	var filter domain.SearchFilter

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog by title, director, genre or year",
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.IsZero() {
				return fmt.Errorf("set at least one filter flag")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			movies, err := a.catalog.SearchMovies(ctx, filter)
			if err != nil {
				return err
			}

			printMovieTable(movies)
			fmt.Println(faintStyle.Render(fmt.Sprintf("%d results", len(movies))))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Title, "title", "", "Title contains")
	cmd.Flags().StringVar(&filter.Director, "director", "", "Director contains")
	cmd.Flags().StringVar(&filter.Genre, "genre", "", "Genre equals")
	cmd.Flags().IntVar(&filter.Year, "year", 0, "Exact release year")
	cmd.Flags().IntVar(&filter.YearMin, "year-min", 0, "Earliest release year")
	cmd.Flags().IntVar(&filter.YearMax, "year-max", 0, "Latest release year")
	return cmd
}

func moviesPopularCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "popular",
		Short: "Show the most popular movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			movies, err := a.catalog.PopularMovies(ctx, limit)
			if err != nil {
				return err
			}
			printMovieTable(movies)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of movies")
	return cmd
}

func moviesRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recently added movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			movies, err := a.catalog.RecentMovies(ctx, limit)
			if err != nil {
				return err
			}
			printMovieTable(movies)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of movies")
	return cmd
}

func moviesClassificationCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "classification <code>",
		Short: "List movies with a rating code (G, PG, PG-13, R, NC-17)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			movies, err := a.catalog.MoviesByClassification(ctx, args[0], limit)
			if err != nil {
				return err
			}
			printMovieTable(movies)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of movies")
	return cmd
}

func moviesMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List movies you added to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			user := a.auth.CurrentUser()
			if user == nil {
				return domain.ErrSignInRequired
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			movies, err := a.catalog.MoviesByUser(ctx, user.ID)
			if err != nil {
				return err
			}
			printMovieTable(movies)
			return nil
		},
	}
}

func moviesCreateCmd() *cobra.Command {
	var input domain.CreateMovieInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a movie to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			movie, err := a.catalog.CreateMovie(ctx, input)
			if err != nil {
				return err
			}

			fmt.Printf("Created movie %d: %s\n", movie.ID, movie.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Title, "title", "", "Title")
	cmd.Flags().StringVar(&input.Director, "director", "", "Director")
	cmd.Flags().StringVar(&input.Genre, "genre", "", "Genre")
	cmd.Flags().IntVar(&input.DurationMinutes, "duration", 0, "Runtime in minutes")
	cmd.Flags().IntVar(&input.Year, "year", 0, "Release year")
	cmd.Flags().StringVar(&input.Classification, "classification", "", "Rating code (G, PG, PG-13, R, NC-17)")
	cmd.Flags().StringVar(&input.Synopsis, "synopsis", "", "Plot synopsis")
	return cmd
}

func moviesUpdateCmd() *cobra.Command {
	var (
		title, director, genre, classification, synopsis string
		duration, year                                   int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid movie id %q", args[0])
			}

			// Only flags the user actually set become part of the update.
			var input domain.UpdateMovieInput
			if cmd.Flags().Changed("title") {
				input.Title = &title
			}
			if cmd.Flags().Changed("director") {
				input.Director = &director
			}
			if cmd.Flags().Changed("genre") {
				input.Genre = &genre
			}
			if cmd.Flags().Changed("duration") {
				input.DurationMinutes = &duration
			}
			if cmd.Flags().Changed("year") {
				input.Year = &year
			}
			if cmd.Flags().Changed("classification") {
				input.Classification = &classification
			}
			if cmd.Flags().Changed("synopsis") {
				input.Synopsis = &synopsis
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			movie, err := a.catalog.UpdateMovie(ctx, id, input)
			if err != nil {
				return err
			}

			fmt.Printf("Updated movie %d: %s\n", movie.ID, movie.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&director, "director", "", "Director")
	cmd.Flags().StringVar(&genre, "genre", "", "Genre")
	cmd.Flags().IntVar(&duration, "duration", 0, "Runtime in minutes")
	cmd.Flags().IntVar(&year, "year", 0, "Release year")
	cmd.Flags().StringVar(&classification, "classification", "", "Rating code")
	cmd.Flags().StringVar(&synopsis, "synopsis", "", "Plot synopsis")
	return cmd
}

func moviesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a movie from the catalog",
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

			if err := a.catalog.DeleteMovie(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Deleted movie %d\n", id)
			return nil
		},
	}
}

func moviesImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage movie poster images",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "upload <id> <file>",
			Short: "Upload a poster image for a movie",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid movie id %q", args[0])
				}

				data, err := os.ReadFile(args[1])
				if err != nil {
					return fmt.Errorf("failed to read image: %w", err)
				}

				a, err := newApp()
				if err != nil {
					return err
				}
				defer a.close()

				ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
				defer cancel()

				imageURL, err := a.catalog.UploadImage(ctx, id, filepath.Base(args[1]), data)
				if err != nil {
					return err
				}

				fmt.Printf("Uploaded: %s\n", imageURL)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Remove a movie's poster image",
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

				if err := a.catalog.DeleteImage(ctx, id); err != nil {
					return err
				}

				fmt.Printf("Image removed from movie %d\n", id)
				return nil
			},
		},
	)

	return cmd
}

func printMovieTable(movies []domain.Movie) {
	if len(movies) == 0 {
		fmt.Println(faintStyle.Render("no movies found"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-5s %-40s %-24s %-6s %-7s %s", "ID", "TITLE", "DIRECTOR", "YEAR", "RATING", "RUNTIME")))
	for _, m := range movies {
		fmt.Printf("%-5d %-40s %-24s %-6d %-7s %s\n", m.ID, clip(m.Title, 40), clip(m.Director, 24), m.Year, m.Classification, m.FormattedDuration())
	}
}

func printMovieDetail(m domain.Movie) {
	fmt.Println(headerStyle.Render(m.Title))
	fmt.Printf("%s  •  %d  •  %s  •  %s  •  %s\n", m.Director, m.Year, m.Genre, m.Classification, m.FormattedDuration())
	if m.Synopsis != "" {
		fmt.Printf("\n%s\n", m.Synopsis)
	}
	if m.ImageURL != "" {
		fmt.Println(faintStyle.Render("\nposter: " + m.ImageURL))
	}
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
