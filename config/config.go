package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
)

// Config is the full environment surface of the aggregator. Every knob is
// overridable without code changes; defaults match the public mirrors and
// category codes the sources are known to expose.
type Config struct {
	// Mirror domains per source, in priority order.
	TPBDomains   []string
	YTSDomains   []string
	EZTVDomains  []string
	LeetxDomains []string

	// Upstream category codes for listing calls.
	TPBCategoryMovies int
	TPBCategoryShows  int

	// Retry policy for source fetches.
	MaxRetries     int
	RetryDelayBase time.Duration
	FetchTimeout   time.Duration

	// Cache TTL classes: Short for volatile search/listing queries, Long for
	// near-static top-100 snapshots. Callers pick the class by operation
	// kind, never by ad hoc values.
	ShortTTL time.Duration
	LongTTL  time.Duration

	CacheBackend string // "file" (default) or "redis"
	CacheDir     string
	RedisHost    string

	// Fan-out cap for concurrent source fetches.
	Workers int
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for anything unset.
func FromEnv() Config {
	return Config{
		TPBDomains: envList("TPB_DOMAINS", []string{
			"https://apibay.org",
			"https://pirateproxy.live",
			"https://piratebay.live",
		}),
		YTSDomains: envList("YTS_DOMAINS", []string{
			"https://yts.mx",
			"https://yts.lt",
			"https://yts.do",
		}),
		EZTVDomains: envList("EZTV_DOMAINS", []string{
			"https://eztv.re",
			"https://eztv.wf",
			"https://eztv.it",
			"https://eztv.ch",
		}),
		LeetxDomains: envList("LEETX_DOMAINS", []string{
			"https://1337x.to",
		}),
		TPBCategoryMovies: envInt("TPB_CATEGORY_MOVIES", 207),
		TPBCategoryShows:  envInt("TPB_CATEGORY_SHOWS", 208),
		MaxRetries:        envInt("FETCH_MAX_RETRIES", 3),
		RetryDelayBase:    envDuration("FETCH_RETRY_DELAY", time.Second),
		FetchTimeout:      envDuration("FETCH_TIMEOUT", 8*time.Second),
		ShortTTL:          envDuration("CACHE_SHORT_TTL", 40*time.Minute),
		LongTTL:           envDuration("CACHE_LONG_TTL", 4*time.Hour),
		CacheBackend:      envString("CACHE_BACKEND", "file"),
		CacheDir:          envString("CACHE_DIR", defaultCacheDir()),
		RedisHost:         envString("REDIS_HOST", "localhost"),
		Workers:           envInt("FETCH_WORKERS", 10),
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir + "/torrent-catalog"
	}
	return os.TempDir() + "/torrent-catalog"
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// envDuration parses durations in extended form ("40m", "4h", "1d12h").
func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := str2duration.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
