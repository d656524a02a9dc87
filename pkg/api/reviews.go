package api

import "time"

// Review is a user's rating and comment for a movie.
type Review struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movie_id"`
	Author    string    `json:"author,omitempty"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// SubmitReviewRequest creates a review for a movie. Rating is 1-10.
type SubmitReviewRequest struct {
	MovieID int64  `json:"movie_id"`
	Rating  int    `json:"rating"`
	Content string `json:"content,omitempty"`
}

// UpdateReviewRequest edits an existing review.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating,omitempty"`
	Content string `json:"content,omitempty"`
}
