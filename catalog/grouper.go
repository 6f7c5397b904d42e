package catalog

import (
	"fmt"
	"strings"

	"github.com/felipemarinho97/torrent-catalog/dedup"
	"github.com/felipemarinho97/torrent-catalog/magnet"
	"github.com/felipemarinho97/torrent-catalog/schema"
	"github.com/felipemarinho97/torrent-catalog/title"
	"github.com/felipemarinho97/torrent-catalog/utils"
)

// entry is one admitted record with its derived grouping key and canonical
// identity.
type entry struct {
	rec  schema.RawRecord
	key  title.Key
	hash string
}

// buckets accumulates admitted entries per normalized title, preserving the
// order titles were first seen so output stays deterministic.
type buckets struct {
	order   []string
	entries map[string][]entry
}

func newBuckets() *buckets {
	return &buckets{entries: make(map[string][]entry)}
}

func (b *buckets) add(e entry) {
	key := e.key.NormalizedTitle
	if _, ok := b.entries[key]; !ok {
		b.order = append(b.order, key)
	}
	b.entries[key] = append(b.entries[key], e)
}

// releases converts every bucket into one or more releases, applying the
// year disambiguation rules.
func (b *buckets) releases() []schema.Release {
	var out []schema.Release
	for _, key := range b.order {
		out = append(out, groupBucket(b.entries[key])...)
	}
	return out
}

// groupBucket turns the entries of one normalized title into releases.
// Zero distinct years: one unresolved release. One distinct year: every
// entry absorbs it. Two or more: split per year, and year-less entries form
// their own unknown-year release rather than being guessed into one.
func groupBucket(entries []entry) []schema.Release {
	var years []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.key.Year == "" {
			continue
		}
		if _, ok := seen[e.key.Year]; !ok {
			seen[e.key.Year] = struct{}{}
			years = append(years, e.key.Year)
		}
	}

	if len(years) <= 1 {
		year := ""
		if len(years) == 1 {
			year = years[0]
		}
		return []schema.Release{buildRelease(year, entries)}
	}

	var out []schema.Release
	for _, year := range years {
		var part []entry
		for _, e := range entries {
			if e.key.Year == year {
				part = append(part, e)
			}
		}
		out = append(out, buildRelease(year, part))
	}

	var unknown []entry
	for _, e := range entries {
		if e.key.Year == "" {
			unknown = append(unknown, e)
		}
	}
	if len(unknown) > 0 {
		out = append(out, buildRelease("", unknown))
	}
	return out
}

func buildRelease(year string, entries []entry) schema.Release {
	rel := schema.Release{
		DisplayTitle: displayTitle(year, entries),
		Year:         year,
		Torrents:     make([]schema.Torrent, 0, len(entries)),
	}

	seenSources := make(map[schema.Source]struct{})
	for _, e := range entries {
		rel.Torrents = append(rel.Torrents, buildTorrent(e))
		if _, ok := seenSources[e.rec.Source]; !ok {
			seenSources[e.rec.Source] = struct{}{}
			rel.Sources = append(rel.Sources, e.rec.Source)
		}

		// Enrichment is first-wins: a later empty value never clobbers an
		// earlier real one.
		if rel.PosterURL == "" {
			rel.PosterURL = e.rec.PosterURL
		}
		if rel.ExternalID == "" {
			rel.ExternalID = e.rec.ExternalID
		}
		if rel.DisplayRating == "" {
			rel.DisplayRating = e.rec.DisplayRating
		}
		if len(rel.Genres) == 0 {
			rel.Genres = e.rec.Genres
		}
	}

	SortTorrents(rel.Torrents)
	return rel
}

func buildTorrent(e entry) schema.Torrent {
	var magnetURI string
	switch {
	case strings.HasPrefix(e.rec.MagnetOrHash, "magnet:"):
		magnetURI = e.rec.MagnetOrHash
	case e.hash != "" && !dedup.IsFallback(e.hash):
		magnetURI = magnet.Build(e.hash, e.rec.RawName)
	}

	return schema.Torrent{
		Source:        e.rec.Source,
		Name:          e.rec.RawName,
		CanonicalHash: e.hash,
		MagnetURI:     magnetURI,
		Quality:       schema.QualityFromName(e.rec.RawName),
		SourceType:    schema.SourceTypeFromName(e.rec.RawName),
		SizeLabel:     utils.FormatSize(e.rec.SizeBytes),
		SizeBytes:     e.rec.SizeBytes,
		Seeders:       e.rec.Seeders,
		Leechers:      e.rec.Leechers,
		Season:        e.rec.Season,
		Episode:       e.rec.Episode,
	}
}

// displayTitle picks the best human-readable name for the release:
// structured metadata when a source supplied it, otherwise the constituent
// whose raw name carries the resolved year.
func displayTitle(year string, entries []entry) string {
	for _, e := range entries {
		if e.rec.Title != "" {
			if year != "" {
				return fmt.Sprintf("%s (%s)", e.rec.Title, year)
			}
			return e.rec.Title
		}
	}

	pick := entries[0]
	if year != "" {
		for _, e := range entries {
			if strings.Contains(e.rec.RawName, year) {
				pick = e
				break
			}
		}
	}
	return title.Display(pick.rec.RawName, year)
}
