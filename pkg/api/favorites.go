package api

import "time"

// Favorite marks a movie as a favorite of the current user.
type Favorite struct {
	ID      int64     `json:"id"`
	MovieID int64     `json:"movie_id"`
	AddedAt time.Time `json:"added_at,omitzero"`
}

// AddFavoriteRequest adds a movie to the user's favorites.
type AddFavoriteRequest struct {
	MovieID int64 `json:"movie_id"`
}
