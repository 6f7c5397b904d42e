package utils_test

import (
	"reflect"
	"testing"

	"github.com/felipemarinho97/torrent-catalog/utils"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name string // description of this test case
		// Named input parameters for target function.
		sizeStr string
		want    int64
	}{
		{
			name:    "Bytes without space",
			sizeStr: "512B",
			want:    512,
		},
		{
			name:    "Kilobytes with space",
			sizeStr: "1.5 KB",
			want:    1536,
		},
		{
			name:    "Megabytes with comma",
			sizeStr: "2,75 MB",
			want:    2883584,
		},
		{
			name:    "Gigabytes without space",
			sizeStr: "3GB",
			want:    3221225472,
		},
		{
			name:    "Terabytes with space",
			sizeStr: "0.5 TB",
			want:    549755813888,
		},
		{
			name:    "Invalid format",
			sizeStr: "100 XB",
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := utils.ParseSize(tt.sizeStr)

			if got != tt.want {
				t.Errorf("ParseSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name      string
		sizeBytes int64
		want      string
	}{
		{
			name:      "Gigabyte range uses one decimal",
			sizeBytes: 2 * 1 << 30,
			want:      "2.0GB",
		},
		{
			name:      "Megabyte range is integral",
			sizeBytes: 700 * 1 << 20,
			want:      "700MB",
		},
		{
			name:      "Zero is not available",
			sizeBytes: 0,
			want:      "N/A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.FormatSize(tt.sizeBytes); got != tt.want {
				t.Errorf("FormatSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	got := utils.Filter(in, func(v int) bool { return v%2 == 0 })
	want := []int{2, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}
