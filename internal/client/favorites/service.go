package favorites

import (
	"context"
	"log/slog"

	"github.com/trackr-app/trackr/pkg/api"
)

// Client is the slice of the API client this service uses.
type Client interface {
	ListFavorites(ctx context.Context) ([]api.Favorite, error)
	AddFavorite(ctx context.Context, req api.AddFavoriteRequest) (*api.Favorite, error)
	RemoveFavorite(ctx context.Context, id int64) error
}

// Service wraps the favorites endpoints.
type Service struct {
	api    Client
	logger *slog.Logger
}

// NewService creates the favorites service.
func NewService(apiClient Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: apiClient, logger: logger}
}

// List returns the user's favorites.
func (s *Service) List(ctx context.Context) ([]api.Favorite, error) {
	return s.api.ListFavorites(ctx)
}

// Add marks a movie as favorite.
func (s *Service) Add(ctx context.Context, movieID int64) (*api.Favorite, error) {
	if movieID <= 0 {
		return nil, api.NewValidationError("movie id is required")
	}
	return s.api.AddFavorite(ctx, api.AddFavoriteRequest{MovieID: movieID})
}

// Remove unmarks a favorite.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return api.NewValidationError("favorite id is required")
	}
	return s.api.RemoveFavorite(ctx, id)
}
