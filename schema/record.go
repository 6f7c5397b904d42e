package schema

// Source identifies the upstream index a record came from.
type Source string

const (
	SourceTPB   Source = "TPB"
	SourceYTS   Source = "YTS"
	SourceEZTV  Source = "EZTV"
	SourceLeetx Source = "1337x"
)

// RawRecord is one torrent exactly as reported by a single source, after the
// source client has flattened the upstream payload shape but before any
// normalization, deduplication or grouping.
type RawRecord struct {
	Source       Source `json:"source"`
	RawName      string `json:"raw_name"`
	MagnetOrHash string `json:"magnet_or_hash,omitempty"`
	Seeders      int    `json:"seeders"`
	Leechers     int    `json:"leechers"`
	SizeBytes    int64  `json:"size_bytes"`

	// Title and Year are structured metadata supplied by sources that expose
	// them (YTS does); left empty otherwise and derived from RawName.
	Title string `json:"title,omitempty"`
	Year  string `json:"year,omitempty"`

	// Enrichment fields, best-effort.
	ExternalID    string   `json:"external_id,omitempty"`
	PosterURL     string   `json:"poster_url,omitempty"`
	DisplayRating string   `json:"display_rating,omitempty"`
	Genres        []string `json:"genres,omitempty"`

	// Episode metadata for TV sources. Season 0 means not episodic,
	// Episode 0 with Season > 0 means a full season pack.
	Season  int `json:"season,omitempty"`
	Episode int `json:"episode,omitempty"`
}
