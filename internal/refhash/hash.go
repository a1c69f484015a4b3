// Package refhash implements the deterministic FNV-1a hashing that backs
// stable ref assignment (spec.md §4.1.6). It is a pure function of its input
// bytes: no hash-map iteration, no locale-dependent case folding, no global
// state — unlike the teacher's atomic ref counter (cpunion-agent-browser-go/
// snapshot.go refCounter), refs here are content-addressed, not allocation
// ordered.
package refhash

const (
	offsetBasis uint64 = 14695981039346656037
	prime       uint64 = 1099511628211
)

// Sum computes the FNV-1a hash of parts, concatenated in order with no
// separators inserted (callers that need field separation include it
// themselves, e.g. "id:" prefixes per spec.md §4.1.6).
func Sum(parts ...[]byte) uint64 {
	h := offsetBasis
	for _, p := range parts {
		for _, b := range p {
			h ^= uint64(b)
			h *= prime
		}
	}
	return h
}

// SumStrings is a convenience wrapper for string inputs.
func SumStrings(parts ...string) uint64 {
	h := offsetBasis
	for _, p := range parts {
		for i := 0; i < len(p); i++ {
			h ^= uint64(p[i])
			h *= prime
		}
	}
	return h
}

// RefCandidate maps a hash into the display range [10000, 99999] spec.md
// §4.1.6 requires: mod 90000, offset by 10000.
func RefCandidate(h uint64) uint32 {
	return uint32(h%90000) + 10000
}
