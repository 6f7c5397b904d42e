package handler

import (
	"encoding/json"
	"net/http"

	"github.com/felipemarinho97/torrent-catalog/catalog"
	"github.com/felipemarinho97/torrent-catalog/logging"
	"github.com/felipemarinho97/torrent-catalog/schema"
	"github.com/felipemarinho97/torrent-catalog/sources"
)

// Handler exposes the aggregator over HTTP. Every endpoint answers JSON by
// default and the COMBINED text format with ?format=combined.
type Handler struct {
	aggregator *catalog.Aggregator
}

func NewHandler(aggregator *catalog.Aggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

type response struct {
	Query    string           `json:"query,omitempty"`
	Category string           `json:"category,omitempty"`
	Summary  catalog.Summary  `json:"summary"`
	Releases []schema.Release `json:"releases"`
}

// HandlerSearch aggregates search results across all sources.
// Query params: q (required), format (json|combined).
func (h *Handler) HandlerSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "Query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	releases, summary := h.aggregator.Search(r.Context(), q)
	h.write(w, r, response{Query: q, Summary: summary, Releases: releases})
}

// HandlerCatalog aggregates the top listings of one category.
// Query params: category (movies|shows, default movies), format (json|combined).
func (h *Handler) HandlerCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category := sources.CategoryMovies
	switch r.URL.Query().Get("category") {
	case "", string(sources.CategoryMovies):
	case string(sources.CategoryShows):
		category = sources.CategoryShows
	default:
		http.Error(w, "Invalid category, expected 'movies' or 'shows'", http.StatusBadRequest)
		return
	}

	releases, summary := h.aggregator.Catalog(r.Context(), category)
	h.write(w, r, response{Category: string(category), Summary: summary, Releases: releases})
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, resp response) {
	if resp.Releases == nil {
		resp.Releases = []schema.Release{}
	}

	if r.URL.Query().Get("format") == "combined" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		out := catalog.RenderCombined(resp.Releases)
		if out != "" {
			out += "\n"
		}
		if _, err := w.Write([]byte(out)); err != nil {
			logging.ErrorWithRequest(r).Err(err).Msg("Failed to write response")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.ErrorWithRequest(r).Err(err).Msg("Failed to encode response")
	}
}
