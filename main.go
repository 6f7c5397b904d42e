package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	handler "github.com/felipemarinho97/torrent-catalog/api"
	"github.com/felipemarinho97/torrent-catalog/cache"
	"github.com/felipemarinho97/torrent-catalog/catalog"
	"github.com/felipemarinho97/torrent-catalog/config"
	"github.com/felipemarinho97/torrent-catalog/logging"
	"github.com/felipemarinho97/torrent-catalog/monitoring"
	"github.com/felipemarinho97/torrent-catalog/requester"
	"github.com/felipemarinho97/torrent-catalog/sources"
)

func main() {
	logging.InitLogger()
	cfg := config.FromEnv()

	var responseCache cache.Cache
	if cfg.CacheBackend == "redis" {
		responseCache = cache.NewRedis(cfg.RedisHost)
	} else {
		responseCache = cache.NewFile(cfg.CacheDir, cfg.ShortTTL)
	}

	metrics := monitoring.NewMetrics()
	metrics.Register()

	deps := sources.Deps{
		Requester: requester.NewRequester(cfg.FetchTimeout, cfg.MaxRetries, cfg.RetryDelayBase),
		Cache:     responseCache,
		Metrics:   metrics,
		ShortTTL:  cfg.ShortTTL,
		LongTTL:   cfg.LongTTL,
	}

	// Slice order is dedup priority: when two sources report the same hash,
	// the earlier one's record survives.
	clients := []sources.Client{
		sources.NewYTS(deps, cfg.YTSDomains),
		sources.NewPirateBay(deps, cfg.TPBDomains, cfg.TPBCategoryMovies, cfg.TPBCategoryShows),
		sources.NewEZTV(deps, cfg.EZTVDomains),
		sources.NewLeetx(deps, cfg.LeetxDomains),
	}

	aggregator := catalog.NewAggregator(clients, cfg.Workers)
	h := handler.NewHandler(aggregator)

	catalogMux := http.NewServeMux()
	metricsMux := http.NewServeMux()

	catalogMux.HandleFunc("/", handler.HandlerIndex)
	catalogMux.HandleFunc("/catalog", h.HandlerCatalog)
	catalogMux.HandleFunc("/search", h.HandlerSearch)

	metricsMux.Handle("/metrics", promhttp.Handler())

	go func() {
		err := http.ListenAndServe(":8081", metricsMux)
		if err != nil {
			panic(err)
		}
	}()

	logging.Info().Str("addr", ":7007").Msg("Catalog server listening")
	err := http.ListenAndServe(":7007", logging.HTTPLoggingMiddleware(catalogMux))
	if err != nil {
		panic(err)
	}
}
