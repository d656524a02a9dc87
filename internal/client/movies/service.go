package movies

import (
	"context"
	"log/slog"
	"strings"

	"github.com/trackr-app/trackr/pkg/api"
)

// Client is the slice of the API client this service uses.
type Client interface {
	GetOrCreateMovie(ctx context.Context, req api.GetOrCreateMovieRequest) (*api.Movie, error)
	GetMovie(ctx context.Context, id int64) (*api.Movie, error)
	SearchMovies(ctx context.Context, query string) ([]api.Movie, error)
}

// Service wraps the movie endpoints. The backend proxies the third-party
// metadata provider, so the client only ever talks to one host.
type Service struct {
	api    Client
	logger *slog.Logger
}

// NewService creates the movie service.
func NewService(apiClient Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: apiClient, logger: logger}
}

// GetOrCreate references a movie by metadata-provider id, creating the
// backend record on first use.
func (s *Service) GetOrCreate(ctx context.Context, req api.GetOrCreateMovieRequest) (*api.Movie, error) {
	if req.TmdbID <= 0 {
		return nil, api.NewValidationError("movie tmdb id is required")
	}
	if req.Title == "" {
		return nil, api.NewValidationError("movie title is required")
	}
	return s.api.GetOrCreateMovie(ctx, req)
}

// Get returns one movie record.
func (s *Service) Get(ctx context.Context, id int64) (*api.Movie, error) {
	if id <= 0 {
		return nil, api.NewValidationError("movie id is required")
	}
	return s.api.GetMovie(ctx, id)
}

// Search runs a metadata search.
func (s *Service) Search(ctx context.Context, query string) ([]api.Movie, error) {
	if strings.TrimSpace(query) == "" {
		return nil, api.NewValidationError("search query is required")
	}
	return s.api.SearchMovies(ctx, query)
}
