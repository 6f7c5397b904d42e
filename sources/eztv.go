package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/felipemarinho97/torrent-catalog/schema"
	"github.com/felipemarinho97/torrent-catalog/utils"
)

// EZTV talks to the eztv get-torrents JSON API. The API has no free-text
// search endpoint, so Search pulls the recent-torrents listing and filters
// it by title tokens; the listing payload is shared with Top through the
// cache.
type EZTV struct {
	fetcher
}

func NewEZTV(deps Deps, domains []string) *EZTV {
	return &EZTV{fetcher: newFetcher(schema.SourceEZTV, domains, deps)}
}

func (e *EZTV) Name() schema.Source { return schema.SourceEZTV }

type eztvResponse struct {
	TorrentsCount int           `json:"torrents_count"`
	Torrents      []eztvTorrent `json:"torrents"`
}

type eztvTorrent struct {
	Title     string `json:"title"`
	Filename  string `json:"filename"`
	MagnetURL string `json:"magnet_url"`
	IMDBID    string `json:"imdb_id"`
	Season    string `json:"season"`
	Episode   string `json:"episode"`
	Seeds     int    `json:"seeds"`
	Peers     int    `json:"peers"`
	SizeBytes int64  `json:"size_bytes,string"`
}

func validateEZTV(body []byte) error {
	var resp eztvResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("not an eztv payload: %w", err)
	}
	return nil
}

const eztvListPath = "/api/get-torrents?limit=100&page=1"

func (e *EZTV) Search(ctx context.Context, query string) ([]schema.RawRecord, error) {
	records, err := e.list(ctx)
	if err != nil {
		return nil, err
	}
	return filterByTokens(records, query), nil
}

func (e *EZTV) Top(ctx context.Context, category Category) ([]schema.RawRecord, error) {
	// EZTV indexes shows only.
	if category == CategoryMovies {
		return nil, nil
	}
	return e.list(ctx)
}

func (e *EZTV) list(ctx context.Context) ([]schema.RawRecord, error) {
	body, err := e.fetch(ctx, "top", eztvListPath, e.deps.LongTTL, validateEZTV)
	if err != nil {
		return nil, err
	}

	var resp eztvResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode eztv payload: %w", err)
	}

	records := make([]schema.RawRecord, 0, len(resp.Torrents))
	for _, t := range resp.Torrents {
		name := t.Title
		if name == "" {
			name = t.Filename
		}
		if name == "" {
			continue
		}
		rec := schema.RawRecord{
			Source:       schema.SourceEZTV,
			RawName:      name,
			MagnetOrHash: t.MagnetURL,
			Seeders:      t.Seeds,
			Leechers:     t.Peers,
			SizeBytes:    t.SizeBytes,
		}
		if t.IMDBID != "" && t.IMDBID != "0" {
			rec.ExternalID = "tt" + t.IMDBID
		}
		rec.Season, _ = strconv.Atoi(t.Season)
		rec.Episode, _ = strconv.Atoi(t.Episode)
		if rec.Season == 0 {
			rec.Season, rec.Episode = ParseEpisode(name)
		}
		records = append(records, rec)
	}
	return records, nil
}

// filterByTokens keeps records whose name contains every query token,
// case-insensitively. An empty query keeps everything.
func filterByTokens(records []schema.RawRecord, query string) []schema.RawRecord {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return records
	}
	return utils.Filter(records, func(rec schema.RawRecord) bool {
		name := strings.ToLower(rec.RawName)
		for _, tok := range tokens {
			if !strings.Contains(name, tok) {
				return false
			}
		}
		return true
	})
}
