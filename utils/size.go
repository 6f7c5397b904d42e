package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var sizeRegex = regexp.MustCompile(`(?i)^\s*([\d.,]+)\s*(B|KB|MB|GB|TB)\s*$`)

var sizeMultipliers = map[string]float64{
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

// ParseSize converts a human readable size label like "1.5 KB", "2,75 MB" or
// "3GB" to bytes. Returns 0 when the label is not parseable.
func ParseSize(sizeStr string) int64 {
	match := sizeRegex.FindStringSubmatch(sizeStr)
	if match == nil {
		return 0
	}
	num, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
	if err != nil {
		return 0
	}
	return int64(num * sizeMultipliers[strings.ToUpper(match[2])])
}

// FormatSize formats a byte count as a short human readable label.
// Zero or negative sizes format as "N/A".
func FormatSize(sizeBytes int64) string {
	if sizeBytes <= 0 {
		return "N/A"
	}
	if sizeBytes >= 1<<30 {
		return fmt.Sprintf("%.1fGB", float64(sizeBytes)/float64(1<<30))
	}
	return fmt.Sprintf("%dMB", sizeBytes/(1<<20))
}
