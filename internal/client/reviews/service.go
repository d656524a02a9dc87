package reviews

import (
	"context"
	"log/slog"

	"github.com/trackr-app/trackr/internal/validation"
	"github.com/trackr-app/trackr/pkg/api"
)

// Client is the slice of the API client this service uses. The movie
// get-or-create call backs the composite Submit helper.
type Client interface {
	ListMovieReviews(ctx context.Context, movieID int64) ([]api.Review, error)
	SubmitReview(ctx context.Context, req api.SubmitReviewRequest) (*api.Review, error)
	UpdateReview(ctx context.Context, id int64, req api.UpdateReviewRequest) (*api.Review, error)
	DeleteReview(ctx context.Context, id int64) error
	GetOrCreateMovie(ctx context.Context, req api.GetOrCreateMovieRequest) (*api.Movie, error)
}

// Service wraps the review endpoints.
type Service struct {
	api    Client
	logger *slog.Logger
}

// NewService creates the review service.
func NewService(apiClient Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: apiClient, logger: logger}
}

// ListForMovie returns the reviews for a movie.
func (s *Service) ListForMovie(ctx context.Context, movieID int64) ([]api.Review, error) {
	if movieID <= 0 {
		return nil, api.NewValidationError("movie id is required")
	}
	return s.api.ListMovieReviews(ctx, movieID)
}

// Submit creates a review for an already-known movie.
func (s *Service) Submit(ctx context.Context, movieID int64, rating int, content string) (*api.Review, error) {
	if movieID <= 0 {
		return nil, api.NewValidationError("movie id is required")
	}
	if err := validation.ValidateRating(rating); err != nil {
		return nil, api.NewValidationError(err.Error())
	}
	return s.api.SubmitReview(ctx, api.SubmitReviewRequest{
		MovieID: movieID,
		Rating:  rating,
		Content: content,
	})
}

// SubmitForMetadata is the composite helper: get-or-create the movie
// from its metadata reference, then submit the review against the
// resulting backend id. Two sequential requests.
func (s *Service) SubmitForMetadata(ctx context.Context, movie api.GetOrCreateMovieRequest, rating int, content string) (*api.Review, error) {
	if movie.TmdbID <= 0 {
		return nil, api.NewValidationError("movie tmdb id is required")
	}
	if err := validation.ValidateRating(rating); err != nil {
		return nil, api.NewValidationError(err.Error())
	}

	created, err := s.api.GetOrCreateMovie(ctx, movie)
	if err != nil {
		return nil, err
	}

	return s.api.SubmitReview(ctx, api.SubmitReviewRequest{
		MovieID: created.ID,
		Rating:  rating,
		Content: content,
	})
}

// Update edits an existing review.
func (s *Service) Update(ctx context.Context, id int64, req api.UpdateReviewRequest) (*api.Review, error) {
	if id <= 0 {
		return nil, api.NewValidationError("review id is required")
	}
	if req.Rating != 0 {
		if err := validation.ValidateRating(req.Rating); err != nil {
			return nil, api.NewValidationError(err.Error())
		}
	}
	return s.api.UpdateReview(ctx, id, req)
}

// Delete removes a review.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return api.NewValidationError("review id is required")
	}
	return s.api.DeleteReview(ctx, id)
}
