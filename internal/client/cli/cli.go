package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/trackr-app/trackr/internal/client/auth"
	"github.com/trackr-app/trackr/internal/client/favorites"
	"github.com/trackr-app/trackr/internal/client/movies"
	"github.com/trackr-app/trackr/internal/client/playlists"
	"github.com/trackr-app/trackr/internal/client/progress"
	"github.com/trackr-app/trackr/internal/client/reviews"
)

// Cli bundles the services the commands operate on.
type Cli struct {
	auth      *auth.Service
	watcher   *auth.Watcher
	playlists *playlists.Service
	movies    *movies.Service
	reviews   *reviews.Service
	favorites *favorites.Service
	progress  *progress.Service
}

// New creates the command handler.
func New(
	authService *auth.Service,
	playlistService *playlists.Service,
	movieService *movies.Service,
	reviewService *reviews.Service,
	favoriteService *favorites.Service,
	progressService *progress.Service,
) *Cli {
	return &Cli{
		auth:      authService,
		watcher:   auth.NewWatcher(authService),
		playlists: playlistService,
		movies:    movieService,
		reviews:   reviewService,
		favorites: favoriteService,
		progress:  progressService,
	}
}

// PrintUsage prints command help.
func PrintUsage() {
	fmt.Println("trackr - movie & series tracking client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  trackr [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version         Show version information")
	fmt.Println("  --server URL      Server base URL (default from config/env)")
	fmt.Println("  --db PATH         Path to the local credential store")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                    Create a new account")
	fmt.Println("  login                       Sign in and store the session")
	fmt.Println("  logout                      Sign out and clear the session")
	fmt.Println("  status                      Show authentication status")
	fmt.Println("  whoami                      Print the signed-in user")
	fmt.Println("  search <query>              Search movies and series")
	fmt.Println("  playlists                   List your playlists")
	fmt.Println("  playlists create <title>    Create a playlist")
	fmt.Println("  playlists delete <id>       Delete a playlist")
	fmt.Println("  review <movie-id> <rating>  Review a movie (rating 1-10)")
	fmt.Println("  favorites [add|remove]      Manage favorites")
	fmt.Println("  progress [set]              Show or update episode progress")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  trackr login")
	fmt.Println("  trackr search \"the wire\"")
	fmt.Println("  trackr playlists create \"Sunday marathon\"")
	fmt.Println("  trackr review 42 9")
}

// readInput reads a trimmed line from stdin.
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// readPassword reads a password without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(passwordBytes), nil
}
