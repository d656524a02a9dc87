package progress

import (
	"context"
	"log/slog"

	"github.com/trackr-app/trackr/pkg/api"
)

// Client is the slice of the API client this service uses.
type Client interface {
	GetProgress(ctx context.Context, seriesID int64) (*api.EpisodeProgress, error)
	ListProgress(ctx context.Context) ([]api.EpisodeProgress, error)
	SaveProgress(ctx context.Context, req api.SaveProgressRequest) (*api.EpisodeProgress, error)
}

// Service wraps the episode-progress endpoints.
type Service struct {
	api    Client
	logger *slog.Logger
}

// NewService creates the progress service.
func NewService(apiClient Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: apiClient, logger: logger}
}

// Get returns the watch position for a series.
func (s *Service) Get(ctx context.Context, seriesID int64) (*api.EpisodeProgress, error) {
	if seriesID <= 0 {
		return nil, api.NewValidationError("series id is required")
	}
	return s.api.GetProgress(ctx, seriesID)
}

// List returns all tracked watch positions.
func (s *Service) List(ctx context.Context) ([]api.EpisodeProgress, error) {
	return s.api.ListProgress(ctx)
}

// Save upserts the watch position for a series.
func (s *Service) Save(ctx context.Context, seriesID int64, season, episode int, watched bool) (*api.EpisodeProgress, error) {
	if seriesID <= 0 {
		return nil, api.NewValidationError("series id is required")
	}
	if season < 0 || episode < 0 {
		return nil, api.NewValidationError("season and episode must not be negative")
	}
	return s.api.SaveProgress(ctx, api.SaveProgressRequest{
		SeriesID: seriesID,
		Season:   season,
		Episode:  episode,
		Watched:  watched,
	})
}
