package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/felipemarinho97/torrent-catalog/schema"
)

// SortTorrents orders torrents best-first: quality tier ascending, then
// seeders descending. The sort is stable so same-tier same-seeder torrents
// keep their fold order.
func SortTorrents(torrents []schema.Torrent) {
	sort.SliceStable(torrents, func(i, j int) bool {
		ti, tj := schema.TierOf(torrents[i].Quality), schema.TierOf(torrents[j].Quality)
		if ti != tj {
			return ti < tj
		}
		return torrents[i].Seeders > torrents[j].Seeders
	})
}

// SortReleases orders releases for presentation. With a query, by Jaccard
// similarity of the display title to the query, then total seeders; without
// one, newest year first, then total seeders.
func SortReleases(releases []schema.Release, query string) {
	if query == "" {
		sort.SliceStable(releases, func(i, j int) bool {
			yi, yj := yearValue(releases[i].Year), yearValue(releases[j].Year)
			if yi != yj {
				return yi > yj
			}
			return releases[i].TotalSeeders() > releases[j].TotalSeeders()
		})
		return
	}

	qLower := strings.ToLower(query)
	splitLength := 2
	similarities := make([]float32, len(releases))
	indexes := make([]int, len(releases))
	for i, rel := range releases {
		jLower := strings.ReplaceAll(strings.ToLower(rel.DisplayTitle), ".", " ")
		similarities[i] = edlib.JaccardSimilarity(jLower, qLower, splitLength)
		indexes[i] = i
	}

	sort.SliceStable(indexes, func(a, b int) bool {
		i, j := indexes[a], indexes[b]
		if similarities[i] != similarities[j] {
			return similarities[i] > similarities[j]
		}
		return releases[i].TotalSeeders() > releases[j].TotalSeeders()
	})

	ordered := make([]schema.Release, len(releases))
	for pos, i := range indexes {
		ordered[pos] = releases[i]
	}
	copy(releases, ordered)
}

// yearValue maps a year string to a sortable int; unresolved years sort last.
func yearValue(year string) int {
	if year == "" {
		return -1
	}
	v, err := strconv.Atoi(year)
	if err != nil {
		return -1
	}
	return v
}
