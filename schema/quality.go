package schema

import "regexp"

// Quality tier table, lower is better. Unknown ranks last so unlabelled
// torrents never outrank a recognized quality.
const UnknownTier = 99

var qualityTiers = map[string]int{
	"4K":    0,
	"2160p": 0,
	"1080p": 1,
	"720p":  2,
	"480p":  3,
	"HDTV":  4,
	"CAM":   5,
	"TS":    6,
	"TC":    7,
}

// TierOf returns the rank of a quality label, UnknownTier if unrecognized.
func TierOf(quality string) int {
	if tier, ok := qualityTiers[quality]; ok {
		return tier
	}
	return UnknownTier
}

type qualityPattern struct {
	regex *regexp.Regexp
	label string
}

// Order matters: higher qualities are checked first so a name carrying
// both "2160p" and "1080p" (remux comparisons etc.) resolves to the best.
var qualityPatterns = []qualityPattern{
	{regexp.MustCompile(`(?i)\b(2160p|4k|uhd)\b`), "4K"},
	{regexp.MustCompile(`(?i)\b(1080p|1080i|fhd)\b`), "1080p"},
	{regexp.MustCompile(`(?i)\b720p\b`), "720p"},
	{regexp.MustCompile(`(?i)\b480p\b`), "480p"},
	{regexp.MustCompile(`(?i)\bhdtv\b`), "HDTV"},
	{regexp.MustCompile(`(?i)\b(cam|camrip|hdcam)\b`), "CAM"},
	{regexp.MustCompile(`(?i)\b(ts|telesync|hdts)\b`), "TS"},
	{regexp.MustCompile(`(?i)\b(tc|telecine)\b`), "TC"},
}

var sourceTypePatterns = []qualityPattern{
	{regexp.MustCompile(`(?i)\b(bluray|blu-ray|bdrip|brrip)\b`), "BluRay"},
	{regexp.MustCompile(`(?i)\b(web-?dl)\b`), "WEB-DL"},
	{regexp.MustCompile(`(?i)\b(web-?rip)\b`), "WEBRip"},
	{regexp.MustCompile(`(?i)\bhdrip\b`), "HDRip"},
	{regexp.MustCompile(`(?i)\b(dvdrip|dvdr)\b`), "DVDRip"},
	{regexp.MustCompile(`(?i)\bhdtv\b`), "HDTV"},
}

// QualityFromName extracts the resolution tier label from a raw torrent
// name. Returns "Unknown" when nothing matches.
func QualityFromName(name string) string {
	for _, p := range qualityPatterns {
		if p.regex.MatchString(name) {
			return p.label
		}
	}
	return "Unknown"
}

// SourceTypeFromName extracts the rip source (BluRay, WEB-DL, ...) from a
// raw torrent name. Returns "" when nothing matches.
func SourceTypeFromName(name string) string {
	for _, p := range sourceTypePatterns {
		if p.regex.MatchString(name) {
			return p.label
		}
	}
	return ""
}
