package title

import (
	"regexp"
	"sort"
	"strings"
)

// Key is the grouping key derived from a raw release name. Records whose
// NormalizedTitle is empty cannot be grouped and must be dropped.
type Key struct {
	NormalizedTitle string
	Year            string
}

var (
	parenYearRegex = regexp.MustCompile(`\((19[2-9]\d|20[0-2]\d)\)`)
	bareYearRegex  = regexp.MustCompile(`\b(19[2-9]\d|20[0-2]\d)\b`)

	bracketSpanRegex = regexp.MustCompile(`\[[^\]]*\]`)
	parenSpanRegex   = regexp.MustCompile(`\([^)]*\)`)

	separatorRegex   = regexp.MustCompile(`[._+-]`)
	groupSuffixRegex = regexp.MustCompile(`-[A-Za-z0-9]+\s*$`)
	versionRegex     = regexp.MustCompile(`\bv\d+\b`)
	thePrefixRegex   = regexp.MustCompile(`^the\s+`)
	theSuffixRegex   = regexp.MustCompile(`,\s*the$`)
	nonAlnumRegex    = regexp.MustCompile(`[^a-z0-9 ]`)
	multiSpaceRegex  = regexp.MustCompile(`\s+`)

	romanNumeralRegex = regexp.MustCompile(`\b(viii|vii|iii|ix|iv|vi|ii|v|x)\b`)
)

var romanNumerals = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9", "x": "10",
}

// Hyphenated tech compounds are stripped before separators are converted to
// spaces, otherwise "web-dl" splits into the unknown tokens "web" and "dl".
var hyphenCompoundRegex = regexp.MustCompile(`(?i)\b(web-dl|web-rip|blu-ray|dts-hd|h-264|h-265|x-264|x-265|dd5-1|hdr10\+?)\b`)

// Dotted codec and channel compounds ("H.264", "DDP5.1", "5.1") would split
// into orphan digits once separators become spaces; fold them first.
var (
	dottedCodecRegex   = regexp.MustCompile(`(?i)\b[hx][._ ]?26[3-6]\b`)
	dottedChannelRegex = regexp.MustCompile(`(?i)\b(ddp?[257]|eac3|[257])\.([01])\b`)
)

// removalTags is the fixed vocabulary of quality, source, codec, audio,
// HDR, streaming-service, release-group, edition and language tokens that
// never distinguish one title from another.
var removalTags = []string{
	// Quality
	"2160p", "1080p", "1080i", "720p", "480p", "4k", "uhd", "fhd", "hd", "sd",
	// Source
	"bluray", "bdrip", "brrip", "web", "webdl", "webrip", "hdrip", "dvdrip", "hdtv",
	"pdtv", "cam", "camrip", "hdcam", "ts", "tc", "telesync", "telecine",
	"screener", "dvdscr", "r5", "ppvrip",
	// Codec (including truncated variants like "h26" from "h264")
	"x264", "x265", "x26", "hevc", "h264", "h265", "h26", "avc", "10bit",
	"8bit", "12bit", "xvid", "divx", "av1", "vp9",
	// Audio
	"aac", "ac3", "dts", "truehd", "atmos", "flac", "mp3", "ogg", "opus",
	"lpcm", "eac3", "dd5", "dd51", "dd71", "ddp5", "ddp51", "ddp",
	"51", "71", "20", // channel configs
	// HDR / Dolby. "vision" only as part of the Dolby phrase: alone it is a
	// legitimate title word (the removal pass runs after separators become
	// spaces, so multi-word tokens match as phrases).
	"hdr", "hdr10", "hdr10plus", "dolby", "dolby vision", "dovi", "sdr", "dv",
	// Streaming services. Bare "max" is a real film title; "hmax" covers the
	// service tag.
	"nf", "amzn", "dsnp", "hmax", "atvp", "pcok", "hulu", "pmtp",
	"netflix", "amazon", "disney", "apple", "peacock",
	// Release groups, unambiguous names only: groups that collide with
	// common title words (JOY, BONE) are handled by the scene-name suffix
	// strip instead.
	"yts", "yify", "rarbg", "eztv", "ettv", "sparks", "axxo", "ethel",
	"tepes", "tigole", "qxr", "psypher", "flux", "ion10",
	"megusta", "playweb", "cmrg", "psa", "telly", "ntb", "fgt", "evo",
	"geckos", "galaxyrg", "rgb",
	// Edition tags, likewise only the ones that never stand alone as a
	// title word.
	"repack", "proper", "extended", "unrated", "directors", "cut",
	"theatrical", "remastered", "imax", "internal", "limited", "remux",
	"criterion", "anniversary", "uncut", "ultimate", "edition",
	// Languages and audio variants
	"english", "hindi", "spanish", "french", "german", "italian", "russian",
	"korean", "chinese", "japanese", "arabic", "portuguese", "turkish",
	"tamil", "en", "eng", "hin", "spa", "fre", "ger", "ita", "rus", "kor",
	"chi", "jpn", "dual audio", "audio", "multi", "subbed", "dubbed", "subs",
	"hc", "hardcoded",
	// Misc
	"ma", // multi-channel audio marker
}

// removalRegex matches any vocabulary token as a whole word. A single
// compiled alternation keeps removal independent of token ordering; longer
// tokens are listed first so "ddp51" is never half-eaten as "ddp".
var removalRegex = buildRemovalRegex()

func buildRemovalRegex() *regexp.Regexp {
	tags := make([]string, len(removalTags))
	copy(tags, removalTags)
	sort.Slice(tags, func(i, j int) bool { return len(tags[i]) > len(tags[j]) })
	for i, tag := range tags {
		tags[i] = regexp.QuoteMeta(tag)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(tags, "|") + `)\b`)
}

// ExtractYear returns the first plausible release year (1920-2029) found in
// the name, preferring a parenthesized one, or "" when none is present.
func ExtractYear(name string) string {
	if match := parenYearRegex.FindStringSubmatch(name); match != nil {
		return match[1]
	}
	if match := bareYearRegex.FindStringSubmatch(name); match != nil {
		return match[1]
	}
	return ""
}

// Normalize canonicalizes a raw release name into a grouping key. The steps
// run in a fixed order; each operates on the previous step's output.
func Normalize(rawName string) Key {
	return normalize(rawName, true)
}

func normalize(rawName string, sceneName bool) Key {
	var year string
	if sceneName {
		year = ExtractYear(rawName)
	}
	t := rawName

	// Bracketed and parenthesized spans carry release-group or tech noise.
	t = bracketSpanRegex.ReplaceAllString(t, " ")
	t = parenSpanRegex.ReplaceAllString(t, " ")

	if year != "" {
		// Boundary-anchored so the year is never excised from inside a
		// longer digit run.
		t = bareYearRegex.ReplaceAllStringFunc(t, func(m string) string {
			if m == year {
				return " "
			}
			return m
		})
	}

	t = hyphenCompoundRegex.ReplaceAllString(t, " ")
	t = dottedCodecRegex.ReplaceAllString(t, " ")
	t = dottedChannelRegex.ReplaceAllString(t, "${1}${2}")
	// Scene names end in "-GROUP"; unknown groups would otherwise survive
	// the vocabulary pass and split otherwise identical titles. Only names
	// that carry release markers (a year or a vocabulary token) get the
	// suffix stripped, so a bare hyphenated title (Spider-Man, Ben-Hur) is
	// never truncated.
	if sceneName && (year != "" || removalRegex.MatchString(strings.ToLower(t))) {
		t = groupSuffixRegex.ReplaceAllString(t, " ")
	}
	t = separatorRegex.ReplaceAllString(t, " ")
	t = strings.ToLower(t)

	t = removalRegex.ReplaceAllString(t, " ")
	t = versionRegex.ReplaceAllString(t, " ")

	t = romanNumeralRegex.ReplaceAllStringFunc(t, func(m string) string {
		return romanNumerals[m]
	})

	t = multiSpaceRegex.ReplaceAllString(t, " ")
	t = strings.TrimSpace(t)
	t = thePrefixRegex.ReplaceAllString(t, "")
	t = theSuffixRegex.ReplaceAllString(t, "")

	t = nonAlnumRegex.ReplaceAllString(t, "")
	t = multiSpaceRegex.ReplaceAllString(t, " ")
	t = strings.TrimSpace(t)

	return Key{NormalizedTitle: t, Year: year}
}

// NormalizeWithYear builds a key for sources that report title and year as
// structured fields. A structured title is a clean human title, not a scene
// name: no year is extracted from it and no release-group suffix is
// stripped, so titles like "Spider-Man" or "1917" key the same as their
// scene-name counterparts.
func NormalizeWithYear(structuredTitle, year string) Key {
	key := normalize(structuredTitle, false)
	key.Year = year
	return key
}
