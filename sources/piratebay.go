package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/felipemarinho97/torrent-catalog/dedup"
	"github.com/felipemarinho97/torrent-catalog/schema"
)

// PirateBay talks to apibay-style JSON mirrors: q.php for searches and the
// precompiled top-100 snapshots for listings.
type PirateBay struct {
	fetcher
	categoryMovies int
	categoryShows  int
}

func NewPirateBay(deps Deps, domains []string, categoryMovies, categoryShows int) *PirateBay {
	return &PirateBay{
		fetcher:        newFetcher(schema.SourceTPB, domains, deps),
		categoryMovies: categoryMovies,
		categoryShows:  categoryShows,
	}
}

func (p *PirateBay) Name() schema.Source { return schema.SourceTPB }

// noResultsName is apibay's placeholder entry for an empty result set; it
// arrives with an all-zero info hash.
const noResultsName = "No results returned"

// tpbEntry tolerates both payload shapes apibay serves: q.php encodes every
// number as a string, the precompiled snapshots as bare numbers.
type tpbEntry struct {
	Name     string  `json:"name"`
	InfoHash string  `json:"info_hash"`
	Seeders  flexInt `json:"seeders"`
	Leechers flexInt `json:"leechers"`
	Size     flexInt `json:"size"`
	Category flexInt `json:"category"`
	IMDB     string  `json:"imdb"`
}

type flexInt int64

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*n = flexInt(v)
	return nil
}

func validateTPB(body []byte) error {
	var entries []tpbEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return fmt.Errorf("not a torrent list: %w", err)
	}
	return nil
}

func (p *PirateBay) Search(ctx context.Context, query string) ([]schema.RawRecord, error) {
	path := fmt.Sprintf("/q.php?q=%s&cat=0", url.QueryEscape(query))
	body, err := p.fetch(ctx, "search", path, p.deps.ShortTTL, validateTPB)
	if err != nil {
		return nil, err
	}
	return p.parse(body, false)
}

func (p *PirateBay) Top(ctx context.Context, category Category) ([]schema.RawRecord, error) {
	cat := p.categoryMovies
	if category == CategoryShows {
		cat = p.categoryShows
	}
	path := fmt.Sprintf("/precompiled/data_top100_%d.json", cat)
	body, err := p.fetch(ctx, "top", path, p.deps.LongTTL, validateTPB)
	if err != nil {
		return nil, err
	}
	// Movie listings are polluted with mislabelled TV packs; drop them.
	return p.parse(body, category == CategoryMovies)
}

// tvPatternRegex spots episodic names that leak into movie categories.
var tvPatternRegex = regexp.MustCompile(`(?i)\bS\d{1,2}[ ._]?E\d{1,2}\b|\bSeason[ ._]?\d+\b|\bComplete\s+Series\b`)

func (p *PirateBay) parse(body []byte, dropTV bool) ([]schema.RawRecord, error) {
	var entries []tpbEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode apibay payload: %w", err)
	}

	records := make([]schema.RawRecord, 0, len(entries))
	for _, e := range entries {
		if e.Name == noResultsName || strings.EqualFold(e.InfoHash, dedup.ZeroHash) {
			continue
		}
		if dropTV && tvPatternRegex.MatchString(e.Name) {
			continue
		}
		rec := schema.RawRecord{
			Source:       schema.SourceTPB,
			RawName:      e.Name,
			MagnetOrHash: strings.ToLower(e.InfoHash),
			Seeders:      int(e.Seeders),
			Leechers:     int(e.Leechers),
			SizeBytes:    int64(e.Size),
		}
		if e.IMDB != "" {
			rec.ExternalID = e.IMDB
		}
		rec.Season, rec.Episode = ParseEpisode(e.Name)
		records = append(records, rec)
	}
	return records, nil
}
