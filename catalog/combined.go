package catalog

import (
	"strconv"
	"strings"

	"github.com/felipemarinho97/torrent-catalog/schema"
)

// CombinedLine renders one release as a pipe-delimited line with per-torrent
// parallel arrays joined by '^'. The arrays (sources, qualities, seeds,
// sizes, magnets) are index-aligned and all have torrentCount elements.
func CombinedLine(rel schema.Release) string {
	n := len(rel.Torrents)
	srcs := make([]string, 0, n)
	qualities := make([]string, 0, n)
	seeds := make([]string, 0, n)
	sizes := make([]string, 0, n)
	magnets := make([]string, 0, n)
	for _, t := range rel.Torrents {
		srcs = append(srcs, string(t.Source))
		qualities = append(qualities, t.Quality)
		seeds = append(seeds, strconv.Itoa(t.Seeders))
		sizes = append(sizes, t.SizeLabel)
		magnets = append(magnets, t.MagnetURI)
	}

	poster := rel.PosterURL
	if poster == "" {
		poster = "N/A"
	}
	rating := rel.DisplayRating
	if rating == "" {
		rating = "N/A"
	}
	genre := strings.Join(rel.Genres, ",")
	if genre == "" {
		genre = strconv.Itoa(n)
	}

	fields := []string{
		"COMBINED",
		rel.DisplayTitle,
		strings.Join(srcs, "^"),
		strings.Join(qualities, "^"),
		strings.Join(seeds, "^"),
		strings.Join(sizes, "^"),
		strings.Join(magnets, "^"),
		poster,
		rating,
		genre,
		strconv.Itoa(n),
	}
	return strings.Join(fields, "|")
}

// RenderCombined serializes the whole release list, one line per release.
func RenderCombined(releases []schema.Release) string {
	lines := make([]string, 0, len(releases))
	for _, rel := range releases {
		lines = append(lines, CombinedLine(rel))
	}
	return strings.Join(lines, "\n")
}
