package sources_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/felipemarinho97/torrent-catalog/cache"
	"github.com/felipemarinho97/torrent-catalog/monitoring"
	"github.com/felipemarinho97/torrent-catalog/requester"
	"github.com/felipemarinho97/torrent-catalog/schema"
	"github.com/felipemarinho97/torrent-catalog/sources"
)

func newTestDeps(t *testing.T) sources.Deps {
	t.Helper()
	return sources.Deps{
		Requester: requester.NewRequester(2*time.Second, 1, time.Millisecond),
		Cache:     cache.NewFile(t.TempDir(), time.Minute),
		Metrics:   monitoring.NewMetrics(),
		ShortTTL:  time.Minute,
		LongTTL:   time.Hour,
	}
}

func TestPirateBaySearch(t *testing.T) {
	// q.php encodes every number as a string; the placeholder row marks an
	// empty result set and must never surface.
	payload := `[
		{"name":"The Matrix 1999 1080p BluRay x264-GROUP","info_hash":"ABCDEF0123456789ABCDEF0123456789ABCDEF01","seeders":"120","leechers":"30","size":"1500000000","category":"207","imdb":"tt0133093"},
		{"name":"No results returned","info_hash":"0000000000000000000000000000000000000000","seeders":"0","leechers":"0","size":"0","category":"0","imdb":""}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/q.php" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := sources.NewPirateBay(newTestDeps(t), []string{srv.URL}, 207, 208)
	records, err := client.Search(context.Background(), "matrix")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Search() returned %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Source != schema.SourceTPB {
		t.Errorf("Source = %q", rec.Source)
	}
	if rec.MagnetOrHash != "abcdef0123456789abcdef0123456789abcdef01" {
		t.Errorf("MagnetOrHash = %q", rec.MagnetOrHash)
	}
	if rec.Seeders != 120 || rec.Leechers != 30 || rec.SizeBytes != 1500000000 {
		t.Errorf("numbers not decoded: %+v", rec)
	}
	if rec.ExternalID != "tt0133093" {
		t.Errorf("ExternalID = %q", rec.ExternalID)
	}
}

func TestPirateBayTopFiltersTV(t *testing.T) {
	// Precompiled snapshots encode numbers as bare JSON numbers.
	payload := `[
		{"name":"Great Movie 2023 1080p WEB-DL","info_hash":"1111111111111111111111111111111111111111","seeders":50,"leechers":5,"size":2000000000,"category":207},
		{"name":"Some Show S01E05 720p HDTV","info_hash":"2222222222222222222222222222222222222222","seeders":90,"leechers":9,"size":800000000,"category":207}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/precompiled/data_top100_207.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := sources.NewPirateBay(newTestDeps(t), []string{srv.URL}, 207, 208)
	records, err := client.Top(context.Background(), sources.CategoryMovies)
	if err != nil {
		t.Fatalf("Top() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Top() returned %d records, want 1 (episodic name dropped)", len(records))
	}
	if records[0].RawName != "Great Movie 2023 1080p WEB-DL" {
		t.Errorf("kept wrong record: %q", records[0].RawName)
	}
}

func TestMirrorFallbackAndCache(t *testing.T) {
	payload := `[{"name":"Great Movie 2023 1080p","info_hash":"1111111111111111111111111111111111111111","seeders":"5","leechers":"1","size":"1000","category":"207","imdb":""}]`

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer dead.Close()

	var hits int
	alive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(payload))
	}))
	defer alive.Close()

	client := sources.NewPirateBay(newTestDeps(t), []string{dead.URL, alive.URL}, 207, 208)

	records, err := client.Search(context.Background(), "movie")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Search() returned %d records, want 1", len(records))
	}
	if hits != 1 {
		t.Fatalf("fallback mirror hit %d times, want 1", hits)
	}

	// Second identical call must be served from cache, not the network.
	if _, err := client.Search(context.Background(), "movie"); err != nil {
		t.Fatalf("cached Search() error: %v", err)
	}
	if hits != 1 {
		t.Errorf("cached call reached the network, hits = %d", hits)
	}
}

func TestAllMirrorsExhausted(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer dead.Close()

	client := sources.NewPirateBay(newTestDeps(t), []string{dead.URL}, 207, 208)
	records, err := client.Search(context.Background(), "anything")
	if err == nil {
		t.Fatal("Search() returned no error with every mirror down")
	}
	if len(records) != 0 {
		t.Errorf("Search() returned %d records, want 0", len(records))
	}
}

func TestYTSSearch(t *testing.T) {
	payload := `{"status":"ok","data":{"movie_count":1,"movies":[{
		"title":"The Matrix","year":1999,"rating":8.7,"genres":["Action","Sci-Fi"],
		"imdb_code":"tt0133093","large_cover_image":"https://img.example/matrix.jpg",
		"torrents":[
			{"hash":"ABCDEF0123456789ABCDEF0123456789ABCDEF01","quality":"1080p","type":"bluray","seeds":80,"peers":10,"size_bytes":1800000000},
			{"hash":"1234567890ABCDEF1234567890ABCDEF12345678","quality":"720p","type":"web","seeds":40,"peers":5,"size_bytes":900000000}
		]}]}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := sources.NewYTS(newTestDeps(t), []string{srv.URL})
	records, err := client.Search(context.Background(), "matrix")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Search() returned %d records, want one per torrent", len(records))
	}

	rec := records[0]
	if rec.Title != "The Matrix" || rec.Year != "1999" {
		t.Errorf("structured metadata missing: %+v", rec)
	}
	if rec.PosterURL != "https://img.example/matrix.jpg" || rec.DisplayRating != "8.7" {
		t.Errorf("enrichment fields missing: %+v", rec)
	}
	if rec.ExternalID != "tt0133093" {
		t.Errorf("ExternalID = %q", rec.ExternalID)
	}
	if len(rec.Genres) != 2 {
		t.Errorf("Genres = %v", rec.Genres)
	}
}

func TestYTSTopSkipsShows(t *testing.T) {
	client := sources.NewYTS(newTestDeps(t), []string{"http://unused.invalid"})
	records, err := client.Top(context.Background(), sources.CategoryShows)
	if err != nil {
		t.Fatalf("Top() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Top(shows) returned %d records, want 0", len(records))
	}
}

func TestEZTVSearch(t *testing.T) {
	payload := `{"torrents_count":2,"torrents":[
		{"title":"Some Show S02E05 720p HDTV x264","magnet_url":"magnet:?xt=urn:btih:abcdef0123456789abcdef0123456789abcdef01","imdb_id":"1234567","season":"2","episode":"5","seeds":60,"peers":12,"size_bytes":"734003200"},
		{"title":"Other Show S01E01 1080p WEB","magnet_url":"magnet:?xt=urn:btih:1234567890abcdef1234567890abcdef12345678","imdb_id":"0","season":"1","episode":"1","seeds":20,"peers":3,"size_bytes":"1500000000"}
	]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := sources.NewEZTV(newTestDeps(t), []string{srv.URL})
	records, err := client.Search(context.Background(), "some show")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Search() returned %d records, want 1 matching the query", len(records))
	}

	rec := records[0]
	if rec.Season != 2 || rec.Episode != 5 {
		t.Errorf("episode metadata = S%dE%d, want S2E5", rec.Season, rec.Episode)
	}
	if rec.ExternalID != "tt1234567" {
		t.Errorf("ExternalID = %q", rec.ExternalID)
	}
	if rec.SizeBytes != 734003200 {
		t.Errorf("SizeBytes = %d", rec.SizeBytes)
	}
}

func TestEZTVTopSkipsMovies(t *testing.T) {
	client := sources.NewEZTV(newTestDeps(t), []string{"http://unused.invalid"})
	records, err := client.Top(context.Background(), sources.CategoryMovies)
	if err != nil {
		t.Fatalf("Top() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Top(movies) returned %d records, want 0", len(records))
	}
}

func TestLeetxSearch(t *testing.T) {
	indexPage := `<html><body><table class="table-list"><tbody>
		<tr>
			<td class="coll-1"><a href="/sub/20/0/"><i></i></a><a href="/torrent/123/the-matrix/">The Matrix 1999 1080p BluRay x264-GROUP</a></td>
			<td class="coll-2">120</td>
			<td class="coll-3">30</td>
			<td class="coll-4">1.4 GB<span class="seeds">120</span></td>
		</tr>
	</tbody></table></body></html>`
	detailPage := `<html><body><a href="magnet:?xt=urn:btih:abcdef0123456789abcdef0123456789abcdef01&dn=The.Matrix">Magnet</a></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/torrent/123/the-matrix/":
			w.Write([]byte(detailPage))
		default:
			w.Write([]byte(indexPage))
		}
	}))
	defer srv.Close()

	client := sources.NewLeetx(newTestDeps(t), []string{srv.URL})
	records, err := client.Search(context.Background(), "matrix")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Search() returned %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.RawName != "The Matrix 1999 1080p BluRay x264-GROUP" {
		t.Errorf("RawName = %q", rec.RawName)
	}
	if rec.Seeders != 120 || rec.Leechers != 30 {
		t.Errorf("swarm numbers = %d/%d", rec.Seeders, rec.Leechers)
	}
	if rec.SizeBytes == 0 {
		t.Error("size not parsed from index cell")
	}
	if rec.MagnetOrHash == "" {
		t.Error("magnet link not resolved from detail page")
	}
}

func TestParseEpisode(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantSeason  int
		wantEpisode int
	}{
		{"sxxexx", "Show S02E05 720p", 2, 5},
		{"lowercase", "show s02e05 720p", 2, 5},
		{"cross form", "Show 2x05 720p", 2, 5},
		{"long form", "Show Season 2 Episode 5", 2, 5},
		{"season pack", "Show S03 Complete 1080p", 3, 0},
		{"movie", "Some Movie 2023 1080p", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			season, episode := sources.ParseEpisode(tt.in)
			if season != tt.wantSeason || episode != tt.wantEpisode {
				t.Errorf("ParseEpisode(%q) = S%dE%d, want S%dE%d", tt.in, season, episode, tt.wantSeason, tt.wantEpisode)
			}
		})
	}
}
