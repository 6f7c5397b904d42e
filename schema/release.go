package schema

// Torrent is one deduplicated torrent attached to a Release.
type Torrent struct {
	Source        Source `json:"source"`
	Name          string `json:"name"`
	CanonicalHash string `json:"canonical_hash"`
	MagnetURI     string `json:"magnet_uri"`
	Quality       string `json:"quality"`
	SourceType    string `json:"source_type,omitempty"`
	SizeLabel     string `json:"size"`
	SizeBytes     int64  `json:"size_bytes"`
	Seeders       int    `json:"seeders"`
	Leechers      int    `json:"leechers"`
	Season        int    `json:"season,omitempty"`
	Episode       int    `json:"episode,omitempty"`
}

// Release is the canonical output unit: one title+year with every
// deduplicated torrent from every source attached, best quality first.
type Release struct {
	DisplayTitle  string    `json:"display_title"`
	Year          string    `json:"year,omitempty"`
	Torrents      []Torrent `json:"torrents"`
	Sources       []Source  `json:"sources"`
	PosterURL     string    `json:"poster_url,omitempty"`
	ExternalID    string    `json:"external_id,omitempty"`
	DisplayRating string    `json:"display_rating,omitempty"`
	Genres        []string  `json:"genres,omitempty"`
}

// TotalSeeders sums seeders across all torrents of the release.
func (r Release) TotalSeeders() int {
	var total int
	for _, t := range r.Torrents {
		total += t.Seeders
	}
	return total
}
