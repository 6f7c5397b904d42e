package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/felipemarinho97/torrent-catalog/dedup"
	"github.com/felipemarinho97/torrent-catalog/logging"
	"github.com/felipemarinho97/torrent-catalog/schema"
	"github.com/felipemarinho97/torrent-catalog/sources"
	"github.com/felipemarinho97/torrent-catalog/title"
)

// Aggregator fans one request out to every configured source, waits for all
// of them, and folds the raw records through normalization, deduplication
// and grouping into the final release list. Client slice order is the
// dedup priority: when two sources report the same hash, the earlier
// client's record survives.
type Aggregator struct {
	clients []sources.Client
	workers int
}

func NewAggregator(clients []sources.Client, workers int) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{clients: clients, workers: workers}
}

// SourceResult is the per-source slice of the aggregation summary.
type SourceResult struct {
	Source  schema.Source `json:"source"`
	OK      bool          `json:"ok"`
	Records int           `json:"records"`
}

// Summary reports which sources contributed to an aggregation run.
type Summary struct {
	Sources  []SourceResult `json:"sources"`
	Records  int            `json:"records"`
	Releases int            `json:"releases"`
}

// Search aggregates search results for a free-text query across all sources.
func (a *Aggregator) Search(ctx context.Context, query string) ([]schema.Release, Summary) {
	return a.run(ctx, query, func(ctx context.Context, c sources.Client) ([]schema.RawRecord, error) {
		return c.Search(ctx, query)
	})
}

// Catalog aggregates the top listings of one category across all sources.
func (a *Aggregator) Catalog(ctx context.Context, category sources.Category) ([]schema.Release, Summary) {
	return a.run(ctx, "", func(ctx context.Context, c sources.Client) ([]schema.RawRecord, error) {
		return c.Top(ctx, category)
	})
}

func (a *Aggregator) run(ctx context.Context, query string, fetch func(context.Context, sources.Client) ([]schema.RawRecord, error)) ([]schema.Release, Summary) {
	results := make([][]schema.RawRecord, len(a.clients))
	failures := make([]error, len(a.clients))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, client := range a.clients {
		i, client := i, client
		g.Go(func() error {
			records, err := fetch(gctx, client)
			if err != nil {
				// A dead source costs its records, never the run.
				logging.Warn().Err(err).Str("source", string(client.Name())).Msg("Source failed, aggregating without it")
				failures[i] = err
				return nil
			}
			results[i] = records
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{Sources: make([]SourceResult, 0, len(a.clients))}
	set := dedup.NewSet()
	b := newBuckets()
	for i, client := range a.clients {
		summary.Sources = append(summary.Sources, SourceResult{
			Source:  client.Name(),
			OK:      failures[i] == nil,
			Records: len(results[i]),
		})
		summary.Records += len(results[i])
		for _, rec := range results[i] {
			fold(rec, set, b)
		}
	}

	releases := b.releases()
	SortReleases(releases, query)
	summary.Releases = len(releases)

	logging.Info().
		Int("records", summary.Records).
		Int("unique", set.Len()).
		Int("releases", summary.Releases).
		Msg("Aggregation complete")
	return releases, summary
}

// fold admits one raw record into the buckets: derive the grouping key,
// reject empty titles, derive the canonical identity, drop sentinels and
// already-seen hashes.
func fold(rec schema.RawRecord, set *dedup.Set, b *buckets) {
	var key title.Key
	if rec.Title != "" {
		key = title.NormalizeWithYear(rec.Title, rec.Year)
	} else {
		key = title.Normalize(rec.RawName)
	}
	if key.NormalizedTitle == "" {
		logging.Debug().Str("raw_name", rec.RawName).Msg("Rejecting record with empty normalized title")
		return
	}

	hash := dedup.Identify(rec, key.NormalizedTitle)
	if dedup.IsSentinel(hash) {
		return
	}
	if !set.Admit(hash) {
		return
	}

	b.add(entry{rec: rec, key: key, hash: hash})
}
