package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/trackr-app/trackr/pkg/api"
)

// ListPlaylists returns the user's playlists. Also used by the auth
// service as its token liveness probe.
func (c *Client) ListPlaylists(ctx context.Context) ([]api.Playlist, error) {
	var list api.PlaylistList
	if err := c.Do(ctx, http.MethodGet, "/playlists/", nil, &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// GetPlaylist returns one playlist with its items.
func (c *Client) GetPlaylist(ctx context.Context, id int64) (*api.Playlist, error) {
	var resp api.Playlist
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/playlists/%d/", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePlaylist creates a new playlist.
func (c *Client) CreatePlaylist(ctx context.Context, req api.CreatePlaylistRequest) (*api.Playlist, error) {
	var resp api.Playlist
	if err := c.Do(ctx, http.MethodPost, "/playlists/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdatePlaylist edits a playlist's title or description.
func (c *Client) UpdatePlaylist(ctx context.Context, id int64, req api.UpdatePlaylistRequest) (*api.Playlist, error) {
	var resp api.Playlist
	if err := c.Do(ctx, http.MethodPatch, fmt.Sprintf("/playlists/%d/", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeletePlaylist removes a playlist.
func (c *Client) DeletePlaylist(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/playlists/%d/", id), nil, nil)
}

// AddPlaylistItem adds a movie to a playlist.
func (c *Client) AddPlaylistItem(ctx context.Context, playlistID int64, req api.AddPlaylistItemRequest) (*api.PlaylistItem, error) {
	var resp api.PlaylistItem
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/playlists/%d/items/", playlistID), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemovePlaylistItem removes an item from a playlist.
func (c *Client) RemovePlaylistItem(ctx context.Context, playlistID, itemID int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/playlists/%d/items/%d/", playlistID, itemID), nil, nil)
}

// GetOrCreateMovie references a movie by metadata-provider id, creating
// the backend record on first use.
func (c *Client) GetOrCreateMovie(ctx context.Context, req api.GetOrCreateMovieRequest) (*api.Movie, error) {
	var resp api.Movie
	if err := c.Do(ctx, http.MethodPost, "/movies/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMovie returns one movie record.
func (c *Client) GetMovie(ctx context.Context, id int64) (*api.Movie, error) {
	var resp api.Movie
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/movies/%d/", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchMovies runs a metadata search proxied by the backend.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]api.Movie, error) {
	var resp api.MovieSearchResponse
	path := "/movies/search/?query=" + url.QueryEscape(query)
	if err := c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// ListMovieReviews returns the reviews for a movie.
func (c *Client) ListMovieReviews(ctx context.Context, movieID int64) ([]api.Review, error) {
	var resp []api.Review
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/movies/%d/reviews/", movieID), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SubmitReview creates a review.
func (c *Client) SubmitReview(ctx context.Context, req api.SubmitReviewRequest) (*api.Review, error) {
	var resp api.Review
	if err := c.Do(ctx, http.MethodPost, "/reviews/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateReview edits a review.
func (c *Client) UpdateReview(ctx context.Context, id int64, req api.UpdateReviewRequest) (*api.Review, error) {
	var resp api.Review
	if err := c.Do(ctx, http.MethodPatch, fmt.Sprintf("/reviews/%d/", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteReview removes a review.
func (c *Client) DeleteReview(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/reviews/%d/", id), nil, nil)
}

// ListFavorites returns the user's favorites.
func (c *Client) ListFavorites(ctx context.Context) ([]api.Favorite, error) {
	var resp []api.Favorite
	if err := c.Do(ctx, http.MethodGet, "/favorites/", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AddFavorite marks a movie as favorite.
func (c *Client) AddFavorite(ctx context.Context, req api.AddFavoriteRequest) (*api.Favorite, error) {
	var resp api.Favorite
	if err := c.Do(ctx, http.MethodPost, "/favorites/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveFavorite unmarks a favorite.
func (c *Client) RemoveFavorite(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/favorites/%d/", id), nil, nil)
}

// GetProgress returns the watch position for a series.
func (c *Client) GetProgress(ctx context.Context, seriesID int64) (*api.EpisodeProgress, error) {
	var resp api.EpisodeProgress
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/progress/%d/", seriesID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProgress returns all tracked watch positions.
func (c *Client) ListProgress(ctx context.Context) ([]api.EpisodeProgress, error) {
	var resp []api.EpisodeProgress
	if err := c.Do(ctx, http.MethodGet, "/progress/", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SaveProgress upserts the watch position for a series.
func (c *Client) SaveProgress(ctx context.Context, req api.SaveProgressRequest) (*api.EpisodeProgress, error) {
	var resp api.EpisodeProgress
	if err := c.Do(ctx, http.MethodPost, "/progress/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
