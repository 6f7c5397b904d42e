package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/felipemarinho97/torrent-catalog/logging"
	"github.com/felipemarinho97/torrent-catalog/schema"
	"github.com/felipemarinho97/torrent-catalog/utils"
)

// Leetx scrapes the 1337x HTML index. Result rows carry no magnet link, so
// each kept row costs one extra detail-page fetch; detail pages are static
// and cached long.
type Leetx struct {
	fetcher

	// maxDetails caps how many detail pages one Search or Top resolves.
	maxDetails int
}

func NewLeetx(deps Deps, domains []string) *Leetx {
	return &Leetx{fetcher: newFetcher(schema.SourceLeetx, domains, deps), maxDetails: 10}
}

func (l *Leetx) Name() schema.Source { return schema.SourceLeetx }

func validateLeetx(body []byte) error {
	if !bytes.Contains(body, []byte("table-list")) {
		return fmt.Errorf("no result table in page")
	}
	return nil
}

func (l *Leetx) Search(ctx context.Context, query string) ([]schema.RawRecord, error) {
	path := fmt.Sprintf("/search/%s/1/", url.PathEscape(query))
	body, err := l.fetch(ctx, "search", path, l.deps.ShortTTL, validateLeetx)
	if err != nil {
		return nil, err
	}
	return l.parseIndex(ctx, body)
}

func (l *Leetx) Top(ctx context.Context, category Category) ([]schema.RawRecord, error) {
	path := "/top-100-movies"
	if category == CategoryShows {
		path = "/top-100-television"
	}
	body, err := l.fetch(ctx, "top", path, l.deps.LongTTL, validateLeetx)
	if err != nil {
		return nil, err
	}
	return l.parseIndex(ctx, body)
}

type leetxRow struct {
	name     string
	href     string
	seeders  int
	leechers int
	size     int64
}

func (l *Leetx) parseIndex(ctx context.Context, body []byte) ([]schema.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse index page: %w", err)
	}

	var rows []leetxRow
	doc.Find("table.table-list tbody tr").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("td.coll-1 a").Last()
		name := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if name == "" || href == "" {
			return
		}

		seeders, _ := strconv.Atoi(strings.TrimSpace(s.Find("td.coll-2").Text()))
		leechers, _ := strconv.Atoi(strings.TrimSpace(s.Find("td.coll-3").Text()))
		// The size cell nests the seeder count in a span; take text nodes only.
		sizeText := strings.TrimSpace(s.Find("td.coll-4").Contents().Not("span").Text())
		size := utils.ParseSize(sizeText)

		rows = append(rows, leetxRow{name: name, href: href, seeders: seeders, leechers: leechers, size: size})
	})

	records := make([]schema.RawRecord, 0, len(rows))
	for i, row := range rows {
		rec := schema.RawRecord{
			Source:    schema.SourceLeetx,
			RawName:   row.name,
			Seeders:   row.seeders,
			Leechers:  row.leechers,
			SizeBytes: row.size,
		}
		rec.Season, rec.Episode = ParseEpisode(row.name)

		// Rows past the detail budget keep their synthetic identity; the
		// deduplicator derives it from name, size and source.
		if i < l.maxDetails {
			if magnetURI, err := l.resolveMagnet(ctx, row.href); err == nil {
				rec.MagnetOrHash = magnetURI
			} else {
				logging.Debug().Err(err).Str("href", row.href).Msg("Failed to resolve magnet link")
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// resolveMagnet fetches one torrent detail page and extracts its magnet link.
func (l *Leetx) resolveMagnet(ctx context.Context, href string) (string, error) {
	body, err := l.fetch(ctx, "magnet", href, l.deps.LongTTL, nil)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse detail page: %w", err)
	}

	magnetURI, ok := doc.Find(`a[href^="magnet:"]`).First().Attr("href")
	if !ok {
		return "", fmt.Errorf("no magnet link on %s", href)
	}
	return magnetURI, nil
}
