package sources

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/felipemarinho97/torrent-catalog/cache"
	"github.com/felipemarinho97/torrent-catalog/logging"
	"github.com/felipemarinho97/torrent-catalog/monitoring"
	"github.com/felipemarinho97/torrent-catalog/requester"
	"github.com/felipemarinho97/torrent-catalog/schema"
)

// Category selects which upstream listing a Top call targets.
type Category string

const (
	CategoryMovies Category = "movies"
	CategoryShows  Category = "shows"
)

// Client is one upstream torrent index. Both operations return raw records
// exactly as the source reported them; normalization, deduplication and
// grouping happen downstream. A client that exhausts every mirror returns an
// empty slice and an error the orchestrator absorbs.
type Client interface {
	Name() schema.Source
	Search(ctx context.Context, query string) ([]schema.RawRecord, error)
	Top(ctx context.Context, category Category) ([]schema.RawRecord, error)
}

// Deps bundles the shared plumbing every source client needs.
type Deps struct {
	Requester *requester.Requester
	Cache     cache.Cache
	Metrics   *monitoring.Metrics

	// TTL classes: ShortTTL for volatile search queries, LongTTL for
	// near-static top listings. Clients pick the class by operation kind.
	ShortTTL time.Duration
	LongTTL  time.Duration
}

// fetcher is the mirror-fallback HTTP layer embedded by every client. It
// tries the last-working domain first, then the rest in configured order,
// and serves from the response cache before touching the network at all.
type fetcher struct {
	source  schema.Source
	domains []string
	deps    Deps

	mu      sync.Mutex
	working string
	loaded  bool
}

func newFetcher(source schema.Source, domains []string, deps Deps) fetcher {
	return fetcher{source: source, domains: domains, deps: deps}
}

func (f *fetcher) cacheKey(op, path string) string {
	return fmt.Sprintf("%s:%s:%s", strings.ToLower(string(f.source)), op, path)
}

func (f *fetcher) workingDomainKey() string {
	return fmt.Sprintf("domains:%s", strings.ToLower(string(f.source)))
}

// orderedDomains returns the mirror list with the memoized working domain
// moved to the front. The memo survives restarts best-effort via the cache.
func (f *fetcher) orderedDomains(ctx context.Context) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.loaded {
		f.loaded = true
		if v, err := f.deps.Cache.Get(ctx, f.workingDomainKey()); err == nil {
			f.working = string(v)
		}
	}

	if f.working == "" {
		return f.domains
	}
	ordered := make([]string, 0, len(f.domains))
	ordered = append(ordered, f.working)
	for _, d := range f.domains {
		if d != f.working {
			ordered = append(ordered, d)
		}
	}
	return ordered
}

func (f *fetcher) memoizeWorking(ctx context.Context, domain string) {
	f.mu.Lock()
	f.working = domain
	f.mu.Unlock()
	if err := f.deps.Cache.SetWithExpiration(ctx, f.workingDomainKey(), []byte(domain), f.deps.LongTTL); err != nil {
		logging.Debug().Err(err).Str("source", string(f.source)).Msg("Failed to persist working domain")
	}
}

// fetch resolves one upstream path: cache first, then each mirror in order
// until one serves a payload the validator accepts. The winning response is
// cached under the given TTL and the winning domain memoized.
func (f *fetcher) fetch(ctx context.Context, op, path string, ttl time.Duration, validate func([]byte) error) ([]byte, error) {
	key := f.cacheKey(op, path)
	if body, err := f.deps.Cache.Get(ctx, key); err == nil {
		f.deps.Metrics.CacheHits.WithLabelValues(string(f.source)).Inc()
		return body, nil
	}
	f.deps.Metrics.CacheMisses.WithLabelValues(string(f.source)).Inc()

	start := time.Now()
	defer func() {
		f.deps.Metrics.SourceDuration.WithLabelValues(string(f.source), op).Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for _, domain := range f.orderedDomains(ctx) {
		f.deps.Metrics.SourceRequests.WithLabelValues(string(f.source)).Inc()

		body, err := f.deps.Requester.Get(ctx, domain+path)
		if err != nil {
			lastErr = err
			logging.Warn().Err(err).Str("source", string(f.source)).Str("domain", domain).Msg("Mirror failed, trying next")
			continue
		}
		if validate != nil {
			if err := validate(body); err != nil {
				lastErr = fmt.Errorf("invalid payload from %s: %w", domain, err)
				logging.Warn().Err(err).Str("source", string(f.source)).Str("domain", domain).Msg("Mirror served invalid payload, trying next")
				continue
			}
		}

		f.memoizeWorking(ctx, domain)
		if err := f.deps.Cache.SetWithExpiration(ctx, key, body, ttl); err != nil {
			logging.Debug().Err(err).Str("key", key).Msg("Failed to cache response")
		}
		return body, nil
	}

	f.deps.Metrics.SourceErrors.WithLabelValues(string(f.source)).Inc()
	if lastErr == nil {
		lastErr = fmt.Errorf("no mirrors configured")
	}
	return nil, fmt.Errorf("%s: all mirrors failed for %s: %w", f.source, path, lastErr)
}
