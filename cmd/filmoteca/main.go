// Package main provides the filmoteca binary entry point.
// Filmoteca is a terminal client for a movie-streaming-catalog server:
// it browses, searches and manages the catalog and a personal favorites
// list against the server's REST API.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/svidal/filmoteca/internal/api"
	"github.com/svidal/filmoteca/internal/config"
	"github.com/svidal/filmoteca/internal/query"
	"github.com/svidal/filmoteca/internal/search"
	"github.com/svidal/filmoteca/internal/service"
	"github.com/svidal/filmoteca/internal/session"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired services for command handlers
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	sessions  *session.Store
	tokens    *session.TokenStore
	client    *api.Client
	cache     *query.Cache
	auth      *service.AuthService
	catalog   *service.CatalogService
	favorites *service.FavoriteService
	suggester *search.Suggester
}

// newApp loads configuration and wires the full service stack.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := config.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = config.NullLogger()
	}
	slog.SetDefault(logger)

	tokens := session.NewTokenStore(config.TokensPath())
	sessions := session.NewStore(config.SessionPath(), logger)
	client := api.NewClient(cfg.Server.URL, tokens, logger)

	cache, err := query.NewCache(config.CachePath())
	if err != nil {
		logger.Warn("cache unavailable, running without persistence", "error", err)
		cache, _ = query.NewCache("")
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		sessions:  sessions,
		tokens:    tokens,
		client:    client,
		cache:     cache,
		auth:      service.NewAuthService(client, sessions, tokens, cache, logger),
		catalog:   service.NewCatalogService(client, cache, logger),
		favorites: service.NewFavoriteService(client, cache, sessions, logger),
		suggester: search.NewSuggester(logger),
	}, nil
}

func (a *app) close() {
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close cache", "error", err)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "filmoteca",
		Short:         "Terminal client for the movie catalog",
		Long:          "Filmoteca browses, searches and manages a shared movie catalog\nand your personal favorites list from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		loginCmd(),
		registerCmd(),
		logoutCmd(),
		whoamiCmd(),
		moviesCmd(),
		favoritesCmd(),
		suggestCmd(),
		browseCmd(),
		cacheCmd(),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("filmoteca %s\n", Version)
		},
	}
}

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local query cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached query data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearCache(); err != nil {
				return err
			}
			fmt.Println("Cache cleared.")
			return nil
		},
	})
	return cmd
}
