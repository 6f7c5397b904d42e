package title

import (
	"fmt"
	"regexp"
	"strings"
)

// techMarkerRegex locates the first quality/source token in a name, used to
// cut off the tech tail when no year is present to cut at.
var techMarkerRegex = regexp.MustCompile(`(?i)[. _(\[-](2160p|1080p|1080i|720p|480p|4k|uhd|bluray|blu-ray|bdrip|brrip|web-?dl|web-?rip|hdtv|hdrip|dvdrip|x264|x265|hevc|h264|h265|xvid|hdcam|camrip)\b`)

var theSuffixDisplayRegex = regexp.MustCompile(`(?i)^(.+),\s*(the)$`)

// Display derives a human-readable title from a raw torrent name: the text
// before the year (or before the first tech token), separators folded to
// spaces, ", The" moved back to the front. The year, when resolved, is
// appended in parentheses.
func Display(rawName, year string) string {
	t := bracketSpanRegex.ReplaceAllString(rawName, " ")

	if year != "" {
		if idx := strings.Index(t, year); idx >= 0 {
			t = t[:idx]
		}
	} else if loc := techMarkerRegex.FindStringIndex(t); loc != nil {
		t = t[:loc[0]]
	}

	t = separatorRegex.ReplaceAllString(t, " ")
	t = multiSpaceRegex.ReplaceAllString(t, " ")
	t = strings.Trim(t, " ([{,.")

	if match := theSuffixDisplayRegex.FindStringSubmatch(t); match != nil {
		t = match[2] + " " + strings.TrimSpace(match[1])
	}

	if t == "" {
		t = strings.TrimSpace(rawName)
	}
	if year != "" {
		return fmt.Sprintf("%s (%s)", t, year)
	}
	return t
}
