package sources

import (
	"regexp"
	"strconv"
)

// Episode markers in rough order of reliability. Season packs ("S02" with no
// episode part, "Season 3 Complete") yield a season with episode zero.
var (
	sxxExxRegex      = regexp.MustCompile(`(?i)\bS(\d{1,2})[ ._]?E(\d{1,2})\b`)
	crossRegex       = regexp.MustCompile(`(?i)\b(\d{1,2})x(\d{2})\b`)
	longFormRegex    = regexp.MustCompile(`(?i)\bSeason[ ._]?(\d{1,2})[ ._]?Episode[ ._]?(\d{1,2})\b`)
	seasonPackRegex  = regexp.MustCompile(`(?i)\bS(?:eason[ ._]?)?(\d{1,2})\b`)
	completePackHint = regexp.MustCompile(`(?i)\b(complete|season)\b`)
)

// ParseEpisode extracts season and episode numbers from a release name.
// Returns (0, 0) for non-episodic names and (season, 0) for season packs.
func ParseEpisode(name string) (season, episode int) {
	for _, re := range []*regexp.Regexp{sxxExxRegex, longFormRegex, crossRegex} {
		if m := re.FindStringSubmatch(name); m != nil {
			season, _ = strconv.Atoi(m[1])
			episode, _ = strconv.Atoi(m[2])
			return season, episode
		}
	}
	if m := seasonPackRegex.FindStringSubmatch(name); m != nil && completePackHint.MatchString(name) {
		season, _ = strconv.Atoi(m[1])
		return season, 0
	}
	return 0, 0
}
