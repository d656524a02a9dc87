package playlists

import (
	"context"
	"log/slog"

	"github.com/trackr-app/trackr/pkg/api"
)

// Client is the slice of the API client this service uses.
type Client interface {
	ListPlaylists(ctx context.Context) ([]api.Playlist, error)
	GetPlaylist(ctx context.Context, id int64) (*api.Playlist, error)
	CreatePlaylist(ctx context.Context, req api.CreatePlaylistRequest) (*api.Playlist, error)
	UpdatePlaylist(ctx context.Context, id int64, req api.UpdatePlaylistRequest) (*api.Playlist, error)
	DeletePlaylist(ctx context.Context, id int64) error
	AddPlaylistItem(ctx context.Context, playlistID int64, req api.AddPlaylistItemRequest) (*api.PlaylistItem, error)
	RemovePlaylistItem(ctx context.Context, playlistID, itemID int64) error
}

// Service is a stateless wrapper over the playlist endpoints. Required
// arguments are checked locally before any request goes out; API errors
// pass through unchanged so their formatted message survives.
type Service struct {
	api    Client
	logger *slog.Logger
}

// NewService creates the playlist service.
func NewService(apiClient Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: apiClient, logger: logger}
}

// List returns the user's playlists.
func (s *Service) List(ctx context.Context) ([]api.Playlist, error) {
	return s.api.ListPlaylists(ctx)
}

// Get returns one playlist with its items.
func (s *Service) Get(ctx context.Context, id int64) (*api.Playlist, error) {
	if id <= 0 {
		return nil, api.NewValidationError("playlist id is required")
	}
	return s.api.GetPlaylist(ctx, id)
}

// Create creates a playlist. Title is required.
func (s *Service) Create(ctx context.Context, title, description string) (*api.Playlist, error) {
	if title == "" {
		return nil, api.NewValidationError("playlist title is required")
	}
	return s.api.CreatePlaylist(ctx, api.CreatePlaylistRequest{
		Title:       title,
		Description: description,
	})
}

// Update edits a playlist's title or description.
func (s *Service) Update(ctx context.Context, id int64, req api.UpdatePlaylistRequest) (*api.Playlist, error) {
	if id <= 0 {
		return nil, api.NewValidationError("playlist id is required")
	}
	return s.api.UpdatePlaylist(ctx, id, req)
}

// Delete removes a playlist.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return api.NewValidationError("playlist id is required")
	}
	return s.api.DeletePlaylist(ctx, id)
}

// AddItem adds a movie to a playlist.
func (s *Service) AddItem(ctx context.Context, playlistID, movieID int64) (*api.PlaylistItem, error) {
	if playlistID <= 0 {
		return nil, api.NewValidationError("playlist id is required")
	}
	if movieID <= 0 {
		return nil, api.NewValidationError("movie id is required")
	}
	return s.api.AddPlaylistItem(ctx, playlistID, api.AddPlaylistItemRequest{MovieID: movieID})
}

// RemoveItem removes an item from a playlist.
func (s *Service) RemoveItem(ctx context.Context, playlistID, itemID int64) error {
	if playlistID <= 0 {
		return api.NewValidationError("playlist id is required")
	}
	if itemID <= 0 {
		return api.NewValidationError("item id is required")
	}
	return s.api.RemovePlaylistItem(ctx, playlistID, itemID)
}
