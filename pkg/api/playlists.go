package api

import (
	"encoding/json"
	"time"
)

// Playlist represents a user-curated list of movies and series.
type Playlist struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Owner       string         `json:"owner,omitempty"`
	ItemCount   int            `json:"item_count,omitempty"`
	Items       []PlaylistItem `json:"items,omitempty"`
	CreatedAt   time.Time      `json:"created_at,omitzero"`
	UpdatedAt   time.Time      `json:"updated_at,omitzero"`
}

// PlaylistItem is a single movie/series entry inside a playlist.
type PlaylistItem struct {
	ID      int64     `json:"id"`
	MovieID int64     `json:"movie_id"`
	AddedAt time.Time `json:"added_at,omitzero"`
}

// CreatePlaylistRequest creates a new playlist.
type CreatePlaylistRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// UpdatePlaylistRequest renames or re-describes an existing playlist.
type UpdatePlaylistRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// AddPlaylistItemRequest adds a movie to a playlist.
type AddPlaylistItemRequest struct {
	MovieID int64 `json:"movie_id"`
}

// PlaylistList decodes both shapes the backend serves for GET /playlists/:
// a bare JSON array or a paginated {"results": [...]} envelope.
type PlaylistList struct {
	Results []Playlist
}

func (l *PlaylistList) UnmarshalJSON(data []byte) error {
	var plain []Playlist
	if err := json.Unmarshal(data, &plain); err == nil {
		l.Results = plain
		return nil
	}

	var envelope struct {
		Results []Playlist `json:"results"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	l.Results = envelope.Results
	return nil
}
