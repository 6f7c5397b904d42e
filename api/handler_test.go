package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handler "github.com/felipemarinho97/torrent-catalog/api"
	"github.com/felipemarinho97/torrent-catalog/catalog"
	"github.com/felipemarinho97/torrent-catalog/schema"
	"github.com/felipemarinho97/torrent-catalog/sources"
)

type stubClient struct {
	name    schema.Source
	records []schema.RawRecord
}

func (s stubClient) Name() schema.Source { return s.name }

func (s stubClient) Search(_ context.Context, _ string) ([]schema.RawRecord, error) {
	return s.records, nil
}

func (s stubClient) Top(_ context.Context, _ sources.Category) ([]schema.RawRecord, error) {
	return s.records, nil
}

func newTestHandler() *handler.Handler {
	client := stubClient{name: schema.SourceTPB, records: []schema.RawRecord{
		{
			Source:       schema.SourceTPB,
			RawName:      "The Matrix 1999 1080p BluRay x264-GROUP",
			MagnetOrHash: strings.Repeat("a", 40),
			Seeders:      120,
			SizeBytes:    1 << 31,
		},
	}}
	return handler.NewHandler(catalog.NewAggregator([]sources.Client{client}, 2))
}

func TestHandlerSearchJSON(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/search?q=matrix", nil)
	rec := httptest.NewRecorder()
	h.HandlerSearch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Query    string           `json:"query"`
		Releases []schema.Release `json:"releases"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Query != "matrix" {
		t.Errorf("query = %q", resp.Query)
	}
	if len(resp.Releases) != 1 {
		t.Fatalf("got %d releases, want 1", len(resp.Releases))
	}
	if resp.Releases[0].DisplayTitle != "The Matrix (1999)" {
		t.Errorf("DisplayTitle = %q", resp.Releases[0].DisplayTitle)
	}
}

func TestHandlerSearchRequiresQuery(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	rec := httptest.NewRecorder()
	h.HandlerSearch(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerSearchCombinedFormat(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/search?q=matrix&format=combined", nil)
	rec := httptest.NewRecorder()
	h.HandlerSearch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}

	body := strings.TrimSpace(rec.Body.String())
	if !strings.HasPrefix(body, "COMBINED|The Matrix (1999)|") {
		t.Errorf("unexpected combined output: %s", body)
	}
}

func TestHandlerCatalogDefaultsToMovies(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	rec := httptest.NewRecorder()
	h.HandlerCatalog(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Category != "movies" {
		t.Errorf("category = %q, want movies", resp.Category)
	}
}

func TestHandlerCatalogRejectsUnknownCategory(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/catalog?category=music", nil)
	rec := httptest.NewRecorder()
	h.HandlerCatalog(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
