package api

// Movie represents a movie or series known to the backend. TmdbID ties
// the record to the third-party metadata provider; the backend creates
// the row on first reference (get-or-create).
type Movie struct {
	ID          int64  `json:"id"`
	TmdbID      int64  `json:"tmdb_id"`
	Title       string `json:"title"`
	MediaType   string `json:"media_type,omitempty"` // "movie" or "tv"
	ReleaseDate string `json:"release_date,omitempty"`
	PosterPath  string `json:"poster_path,omitempty"`
	Overview    string `json:"overview,omitempty"`
}

// GetOrCreateMovieRequest references a movie by its metadata-provider id,
// creating the backend record if it does not exist yet.
type GetOrCreateMovieRequest struct {
	TmdbID      int64  `json:"tmdb_id"`
	Title       string `json:"title"`
	MediaType   string `json:"media_type,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	PosterPath  string `json:"poster_path,omitempty"`
}

// MovieSearchResponse is the backend's proxied metadata search result.
type MovieSearchResponse struct {
	Results []Movie `json:"results"`
}
