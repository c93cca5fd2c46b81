package types

import (
	"fmt"
)

// PatternByte is a single position of a signature pattern: either a concrete
// byte value or a wildcard that matches any byte. Modeling the wildcard as an
// explicit variant avoids any "unset means match-all" ambiguity.
type PatternByte struct {
	Value    byte
	Wildcard bool
}

// Byte returns a concrete pattern position.
func Byte(v byte) PatternByte {
	return PatternByte{Value: v}
}

// Any returns a wildcard pattern position.
func Any() PatternByte {
	return PatternByte{Wildcard: true}
}

// Signature describes one recognized file format: the byte pattern that
// identifies it, where in the file the pattern starts, and the MIME type and
// extensions to report on a match.
type Signature struct {
	ID         string        // e.g., "image.png"
	Name       string        // human-readable name, e.g., "PNG image"
	MIME       string        // canonical MIME type, e.g., "image/png"
	Extensions []string      // candidate extensions; first is canonical
	Offset     int           // byte position where pattern comparison begins
	Pattern    []PatternByte // non-empty; wildcards allowed anywhere
	References []string      // format documentation URLs, optional
}

// LongestLiteral returns the longest run of concrete (non-wildcard) bytes in
// the pattern and the absolute buffer offset at which that run begins.
// Returns a nil slice for an all-wildcard pattern.
func (s *Signature) LongestLiteral() ([]byte, int) {
	var best []byte
	bestAt := 0

	var run []byte
	runAt := 0
	for i, pb := range s.Pattern {
		if pb.Wildcard {
			if len(run) > len(best) {
				best, bestAt = run, runAt
			}
			run = nil
			continue
		}
		if run == nil {
			runAt = s.Offset + i
		}
		run = append(run, pb.Value)
	}
	if len(run) > len(best) {
		best, bestAt = run, runAt
	}
	return best, bestAt
}

// Set is an ordered, immutable collection of signatures. Order determines
// precedence: the first signature that matches a buffer wins. A Set is never
// mutated after construction and is safe to share across goroutines.
type Set struct {
	sigs []*Signature
}

// NewSet validates signatures and builds a Set preserving their order.
// Malformed signatures (empty pattern, missing MIME, negative offset) are
// rejected here so they can never surface mid-match.
func NewSet(sigs []*Signature) (*Set, error) {
	for i, sig := range sigs {
		if err := ValidateSignature(sig); err != nil {
			return nil, fmt.Errorf("signature %d: %w", i, err)
		}
	}

	out := make([]*Signature, len(sigs))
	copy(out, sigs)
	return &Set{sigs: out}, nil
}

// Entries returns the signatures in construction order.
// The returned slice is a copy; the Set itself stays immutable.
func (s *Set) Entries() []*Signature {
	out := make([]*Signature, len(s.sigs))
	copy(out, s.sigs)
	return out
}

// Len returns the number of signatures in the set.
func (s *Set) Len() int {
	return len(s.sigs)
}
