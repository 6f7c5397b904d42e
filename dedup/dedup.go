package dedup

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/felipemarinho97/torrent-catalog/magnet"
	"github.com/felipemarinho97/torrent-catalog/schema"
)

// ZeroHash is the all-zero info hash some upstream APIs return as a
// "no results" placeholder. It is never a real torrent.
const ZeroHash = "0000000000000000000000000000000000000000"

// fallbackPrefix namespaces synthetic identities so they can never collide
// with a real 40-hex info hash.
const fallbackPrefix = "data:"

// Identify derives the canonical identity of a record: the info hash from
// its magnet link when present, otherwise a deterministic synthetic hash of
// (normalized name, size, source).
func Identify(rec schema.RawRecord, normalizedName string) string {
	if hash := magnet.ParseInfoHash(rec.MagnetOrHash); hash != "" {
		return hash
	}
	return FallbackHash(normalizedName, rec.SizeBytes, rec.Source)
}

// FallbackHash synthesizes an identity for records that carry no info hash.
func FallbackHash(normalizedName string, sizeBytes int64, source schema.Source) string {
	data := fmt.Sprintf("%s:%d:%s", strings.ToLower(normalizedName), sizeBytes, source)
	return fmt.Sprintf("%s%016x", fallbackPrefix, xxhash.Sum64String(data))
}

// IsSentinel reports whether the hash is a known "no results" placeholder.
func IsSentinel(hash string) bool {
	return hash == ZeroHash
}

// IsFallback reports whether the hash is a synthetic identity rather than a
// real info hash. Synthetic identities cannot seed a magnet URI.
func IsFallback(hash string) bool {
	return strings.HasPrefix(hash, fallbackPrefix)
}

// Set is the seen-hash set for one aggregation run. It is safe for
// concurrent use, though the orchestrator folds records through it
// sequentially to keep first-seen-wins deterministic.
type Set struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Seen reports whether the hash was already admitted.
func (s *Set) Seen(hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[hash]
	return ok
}

// MarkSeen records the hash.
func (s *Set) MarkSeen(hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[hash] = struct{}{}
}

// Admit atomically checks and records the hash, returning false when it was
// seen before. First caller wins.
func (s *Set) Admit(hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[hash]; ok {
		return false
	}
	s.seen[hash] = struct{}{}
	return true
}

// Len returns the number of distinct hashes admitted so far.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
