package magnet

import (
	"encoding/base32"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
)

var (
	hexHashRegex    = regexp.MustCompile(`(?i)btih:([a-f0-9]{40})`)
	base32HashRegex = regexp.MustCompile(`(?i)btih:([a-z2-7]{32})`)
	bareHexRegex    = regexp.MustCompile(`(?i)^[a-f0-9]{40}$`)
	bareBase32Regex = regexp.MustCompile(`(?i)^[a-z2-7]{32}$`)
)

// ParseInfoHash extracts the canonical lowercase 40-hex info hash from a
// full magnet URI or a bare hex/base32 identifier. Base32-encoded btih
// values are decoded to their hex form so both encodings of the same swarm
// compare equal. Returns "" when no identifier is present.
func ParseInfoHash(magnetOrHash string) string {
	s := strings.TrimSpace(magnetOrHash)
	if s == "" {
		return ""
	}

	if match := hexHashRegex.FindStringSubmatch(s); match != nil {
		return strings.ToLower(match[1])
	}
	if match := base32HashRegex.FindStringSubmatch(s); match != nil {
		return base32ToHex(match[1])
	}
	if bareHexRegex.MatchString(s) {
		return strings.ToLower(s)
	}
	if bareBase32Regex.MatchString(s) {
		return base32ToHex(s)
	}
	return ""
}

func base32ToHex(s string) string {
	decoded, err := base32.StdEncoding.DecodeString(strings.ToUpper(s))
	if err != nil || len(decoded) != 20 {
		return ""
	}
	return hex.EncodeToString(decoded)
}

// defaultTrackers are appended to built magnet URIs so clients can join the
// swarm even when the source reported only a bare hash.
var defaultTrackers = []string{
	"udp://tracker.opentrackr.org:1337/announce",
	"udp://open.stealth.si:80/announce",
	"udp://tracker.torrent.eu.org:451/announce",
	"udp://explodie.org:6969/announce",
	"udp://exodus.desync.com:6969/announce",
	"udp://open.demonii.com:1337/announce",
	"udp://tracker.theoks.net:6969/announce",
	"udp://p4p.arenabg.com:1337/announce",
}

// Build constructs a magnet URI from an info hash and display name.
func Build(infoHash, displayName string) string {
	var b strings.Builder
	b.WriteString("magnet:?xt=urn:btih:")
	b.WriteString(infoHash)
	if displayName != "" {
		b.WriteString("&dn=")
		b.WriteString(url.QueryEscape(displayName))
	}
	for _, tracker := range defaultTrackers {
		b.WriteString("&tr=")
		b.WriteString(url.QueryEscape(tracker))
	}
	return b.String()
}
