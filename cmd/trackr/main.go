package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	clientapi "github.com/trackr-app/trackr/internal/client/api"
	"github.com/trackr-app/trackr/internal/client/auth"
	"github.com/trackr-app/trackr/internal/client/cli"
	"github.com/trackr-app/trackr/internal/client/favorites"
	"github.com/trackr-app/trackr/internal/client/movies"
	"github.com/trackr-app/trackr/internal/client/playlists"
	"github.com/trackr-app/trackr/internal/client/progress"
	"github.com/trackr-app/trackr/internal/client/reviews"
	"github.com/trackr-app/trackr/internal/client/session"
	"github.com/trackr-app/trackr/internal/client/storage"
	"github.com/trackr-app/trackr/internal/client/storage/boltdb"
	"github.com/trackr-app/trackr/internal/client/storage/sqlite"
	"github.com/trackr-app/trackr/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "", "Server base URL (overrides config)")
	dbPath := flag.String("db", "", "Path to the local credential store (overrides config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	ctx := context.Background()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open credential store: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close credential store", "error", err)
		}
	}()

	sess := session.NewManager(store, logger)
	listeners := session.NewRegistry(logger)

	apiClient := clientapi.NewClient(cfg.Server.URL, sess)
	apiClient.SetTimeout(cfg.Server.Timeout)

	authService := auth.NewService(apiClient, sess, listeners, logger)
	apiClient.SetUnauthorizedHook(authService.HandleUnauthorized)

	playlistService := playlists.NewService(apiClient, logger)
	movieService := movies.NewService(apiClient, logger)
	reviewService := reviews.NewService(apiClient, logger)
	favoriteService := favorites.NewService(apiClient, logger)
	progressService := progress.NewService(apiClient, logger)

	commands := cli.New(authService, playlistService, movieService, reviewService, favoriteService, progressService)

	if err := run(ctx, commands, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, commands *cli.Cli, command string, args []string) error {
	switch command {
	case "register":
		return commands.RunRegister(ctx)
	case "login":
		return commands.RunLogin(ctx)
	case "logout":
		return commands.RunLogout(ctx)
	case "status":
		return commands.RunStatus(ctx)
	case "whoami":
		return commands.RunWhoami(ctx)
	case "search":
		return commands.RunSearch(ctx, args)
	case "playlists":
		return commands.RunPlaylists(ctx, args)
	case "review":
		return commands.RunReview(ctx, args)
	case "favorites":
		return commands.RunFavorites(ctx, args)
	case "progress":
		return commands.RunProgress(ctx, args)
	default:
		cli.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func openStorage(ctx context.Context, cfg config.Config) (storage.CredentialStorage, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return sqlite.New(ctx, cfg.Storage.Path)
	default:
		return boltdb.New(cfg.Storage.Path)
	}
}

func printVersion() {
	fmt.Printf("trackr client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
