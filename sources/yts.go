package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/felipemarinho97/torrent-catalog/schema"
)

// YTS talks to the yts.mx v2 JSON API. It is the only source that reports
// structured title, year and artwork, so its records carry the enrichment
// fields the grouper propagates to releases.
type YTS struct {
	fetcher
}

func NewYTS(deps Deps, domains []string) *YTS {
	return &YTS{fetcher: newFetcher(schema.SourceYTS, domains, deps)}
}

func (y *YTS) Name() schema.Source { return schema.SourceYTS }

type ytsResponse struct {
	Status string `json:"status"`
	Data   struct {
		MovieCount int        `json:"movie_count"`
		Movies     []ytsMovie `json:"movies"`
	} `json:"data"`
}

type ytsMovie struct {
	Title      string       `json:"title"`
	Year       int          `json:"year"`
	Rating     float64      `json:"rating"`
	Genres     []string     `json:"genres"`
	IMDBCode   string       `json:"imdb_code"`
	LargeCover string       `json:"large_cover_image"`
	SmallCover string       `json:"medium_cover_image"`
	Torrents   []ytsTorrent `json:"torrents"`
}

type ytsTorrent struct {
	Hash      string `json:"hash"`
	Quality   string `json:"quality"`
	Type      string `json:"type"`
	Seeds     int    `json:"seeds"`
	Peers     int    `json:"peers"`
	SizeBytes int64  `json:"size_bytes"`
}

func validateYTS(body []byte) error {
	var resp ytsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("not a yts payload: %w", err)
	}
	if resp.Status != "ok" {
		return fmt.Errorf("yts status %q", resp.Status)
	}
	return nil
}

func (y *YTS) Search(ctx context.Context, query string) ([]schema.RawRecord, error) {
	path := fmt.Sprintf("/api/v2/list_movies.json?query_term=%s&limit=50&sort_by=seeds", url.QueryEscape(query))
	body, err := y.fetch(ctx, "search", path, y.deps.ShortTTL, validateYTS)
	if err != nil {
		return nil, err
	}
	return parseYTS(body)
}

func (y *YTS) Top(ctx context.Context, category Category) ([]schema.RawRecord, error) {
	// YTS indexes movies only.
	if category == CategoryShows {
		return nil, nil
	}
	path := "/api/v2/list_movies.json?limit=50&sort_by=seeds"
	body, err := y.fetch(ctx, "top", path, y.deps.LongTTL, validateYTS)
	if err != nil {
		return nil, err
	}
	return parseYTS(body)
}

func parseYTS(body []byte) ([]schema.RawRecord, error) {
	var resp ytsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode yts payload: %w", err)
	}

	var records []schema.RawRecord
	for _, movie := range resp.Data.Movies {
		poster := movie.LargeCover
		if poster == "" {
			poster = movie.SmallCover
		}
		var rating string
		if movie.Rating > 0 {
			rating = strconv.FormatFloat(movie.Rating, 'f', 1, 64)
		}
		year := ""
		if movie.Year > 0 {
			year = strconv.Itoa(movie.Year)
		}

		// One record per torrent; the deduplicator collapses the rest.
		for _, t := range movie.Torrents {
			if t.Hash == "" {
				continue
			}
			records = append(records, schema.RawRecord{
				Source:        schema.SourceYTS,
				RawName:       fmt.Sprintf("%s (%d) [%s] [%s] [YTS]", movie.Title, movie.Year, t.Quality, t.Type),
				MagnetOrHash:  t.Hash,
				Seeders:       t.Seeds,
				Leechers:      t.Peers,
				SizeBytes:     t.SizeBytes,
				Title:         movie.Title,
				Year:          year,
				ExternalID:    movie.IMDBCode,
				PosterURL:     poster,
				DisplayRating: rating,
				Genres:        movie.Genres,
			})
		}
	}
	return records, nil
}
