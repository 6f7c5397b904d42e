package title_test

import (
	"testing"

	"github.com/felipemarinho97/torrent-catalog/title"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		rawName   string
		wantTitle string
		wantYear  string
	}{
		{
			name:      "scene name with group suffix",
			rawName:   "The Matrix 1999 1080p BluRay x264-GROUP",
			wantTitle: "matrix",
			wantYear:  "1999",
		},
		{
			name:      "comma-The suffix with bracketed tags",
			rawName:   "Matrix, The (1999) [720p] [WEBRip]",
			wantTitle: "matrix",
			wantYear:  "1999",
		},
		{
			name:      "dotted separators",
			rawName:   "The.Matrix.1999.2160p.HEVC",
			wantTitle: "matrix",
			wantYear:  "1999",
		},
		{
			name:      "no year at all",
			rawName:   "Inception 1080p BluRay x265",
			wantTitle: "inception",
			wantYear:  "",
		},
		{
			name:      "roman numeral sequel marker",
			rawName:   "Rocky II 1979 720p",
			wantTitle: "rocky 2",
			wantYear:  "1979",
		},
		{
			name:      "streaming service and audio tags",
			rawName:   "Some.Film.2023.NF.WEB-DL.DDP5.1.Atmos.H.264",
			wantTitle: "some film",
			wantYear:  "2023",
		},
		{
			name:      "edition markers stripped",
			rawName:   "Blade Runner 1982 Directors Cut Remastered 4K UHD",
			wantTitle: "blade runner",
			wantYear:  "1982",
		},
		{
			name:      "parenthesized year preferred over bare number",
			rawName:   "1917 (2019) 1080p WEB-DL",
			wantTitle: "1917",
			wantYear:  "2019",
		},
		{
			name:      "hyphenated title keeps its last word",
			rawName:   "Spider-Man.2002.1080p.BluRay.x264-LOL",
			wantTitle: "spider man",
			wantYear:  "2002",
		},
		{
			name:      "bare hyphenated title without release markers",
			rawName:   "Ben-Hur",
			wantTitle: "ben hur",
			wantYear:  "",
		},
		{
			name:      "title colliding with a release group name",
			rawName:   "Joy (2015) 1080p BluRay",
			wantTitle: "joy",
			wantYear:  "2015",
		},
		{
			name:      "title colliding with a streaming service tag",
			rawName:   "Max 2015 720p WEBRip",
			wantTitle: "max",
			wantYear:  "2015",
		},
		{
			name:      "title colliding with an edition tag",
			rawName:   "Real 2017 1080p",
			wantTitle: "real",
			wantYear:  "2017",
		},
		{
			name:      "year only removed at word boundaries",
			rawName:   "Area 21999 1999 1080p",
			wantTitle: "area 21999",
			wantYear:  "1999",
		},
		{
			name:      "only junk yields empty title",
			rawName:   "1080p x264 WEBRip",
			wantTitle: "",
			wantYear:  "",
		},
		{
			name:      "language and dual audio tokens",
			rawName:   "Old.Movie.1965.Dual.Audio.Hindi.English.720p.BluRay",
			wantTitle: "old movie",
			wantYear:  "1965",
		},
		{
			name:      "dual as a title survives the audio phrase removal",
			rawName:   "Dual (2022) 1080p WEBRip",
			wantTitle: "dual",
			wantYear:  "2022",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := title.Normalize(tt.rawName)
			if got.NormalizedTitle != tt.wantTitle {
				t.Errorf("Normalize() title = %q, want %q", got.NormalizedTitle, tt.wantTitle)
			}
			if got.Year != tt.wantYear {
				t.Errorf("Normalize() year = %q, want %q", got.Year, tt.wantYear)
			}
		})
	}
}

func TestNormalizeIsIdempotentOnTitles(t *testing.T) {
	names := []string{
		"The Matrix 1999 1080p BluRay x264-GROUP",
		"Matrix, The (1999) [720p] [WEBRip]",
		"Total Recall 2012 720p",
	}
	for _, name := range names {
		first := title.Normalize(name)
		second := title.Normalize(name)
		if first != second {
			t.Errorf("Normalize(%q) not deterministic: %v vs %v", name, first, second)
		}
		// Running the normalizer over its own output must not change it.
		again := title.Normalize(first.NormalizedTitle)
		if again.NormalizedTitle != first.NormalizedTitle {
			t.Errorf("Normalize(%q) not idempotent: %q -> %q", name, first.NormalizedTitle, again.NormalizedTitle)
		}
	}
}

func TestNormalizeWithYear(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		year      string
		wantTitle string
	}{
		{"plain title", "The Matrix", "1999", "matrix"},
		{"hyphenated title is not truncated", "Spider-Man", "2002", "spider man"},
		{"numeric title is not mistaken for a year", "1917", "2019", "1917"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := title.NormalizeWithYear(tt.title, tt.year)
			if key.NormalizedTitle != tt.wantTitle || key.Year != tt.year {
				t.Errorf("NormalizeWithYear(%q, %q) = %+v, want {%s %s}", tt.title, tt.year, key, tt.wantTitle, tt.year)
			}
		})
	}
}

func TestNormalizeStructuredAndSceneNamesAgree(t *testing.T) {
	tests := []struct {
		name       string
		structured string
		year       string
		sceneName  string
	}{
		{"hyphenated title", "Spider-Man", "2002", "Spider-Man.2002.1080p.BluRay.x264-LOL"},
		{"plain title", "The Matrix", "1999", "The Matrix 1999 1080p BluRay x264-GROUP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			structured := title.NormalizeWithYear(tt.structured, tt.year)
			scene := title.Normalize(tt.sceneName)
			if structured != scene {
				t.Errorf("keys diverge: structured %+v, scene %+v", structured, scene)
			}
		})
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare year", "Movie 2021 stuff", "2021"},
		{"parenthesized", "Movie (1987)", "1987"},
		{"too old", "Movie 1910", ""},
		{"not a year", "Movie 2077", ""},
		{"year glued to digits", "Movie 219997", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := title.ExtractYear(tt.in); got != tt.want {
				t.Errorf("ExtractYear(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name    string
		rawName string
		year    string
		want    string
	}{
		{
			name:    "scene name",
			rawName: "The Matrix 1999 1080p BluRay x264-GROUP",
			year:    "1999",
			want:    "The Matrix (1999)",
		},
		{
			name:    "comma-The folded to prefix",
			rawName: "Matrix, The (1999) [720p] [WEBRip]",
			year:    "1999",
			want:    "The Matrix (1999)",
		},
		{
			name:    "dotted name",
			rawName: "The.Matrix.1999.2160p.HEVC",
			year:    "1999",
			want:    "The Matrix (1999)",
		},
		{
			name:    "no year cuts at tech token",
			rawName: "Inception.1080p.BluRay.x265",
			year:    "",
			want:    "Inception",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := title.Display(tt.rawName, tt.year); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}
