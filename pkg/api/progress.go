package api

import "time"

// EpisodeProgress records how far the user has watched a series.
type EpisodeProgress struct {
	ID        int64     `json:"id"`
	SeriesID  int64     `json:"series_id"`
	Season    int       `json:"season"`
	Episode   int       `json:"episode"`
	Watched   bool      `json:"watched"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// SaveProgressRequest upserts the watch position for a series.
type SaveProgressRequest struct {
	SeriesID int64 `json:"series_id"`
	Season   int   `json:"season"`
	Episode  int   `json:"episode"`
	Watched  bool  `json:"watched"`
}
