// Package matcher implements the signature matching core: testing a byte
// window against a single signature, and classifying a window against an
// ordered signature set.
package matcher

import (
	"fmt"

	"github.com/bytesleuth/sleuth/pkg/prefilter"
	"github.com/bytesleuth/sleuth/pkg/types"
)

// Matches reports whether buf satisfies sig's pattern at its offset.
//
// Pure and total: a byte position past the end of buf is "absent". A wildcard
// position matches anything, including an absent byte; a concrete position
// requires the byte to be present and equal. The comparison short-circuits on
// the first failing position. A buffer shorter than offset+len(pattern) is a
// non-match, never an error or an out-of-bounds access. Offsets so large that
// indexing would overflow are likewise non-matches.
func Matches(buf []byte, sig *types.Signature) bool {
	for i, pb := range sig.Pattern {
		if pb.Wildcard {
			continue
		}
		// An offset near MaxInt wraps negative once the pattern index is
		// added; a wrapped index is past the end of any buffer, so treat
		// it as absent rather than indexing it.
		idx := sig.Offset + i
		if idx < 0 || idx >= len(buf) || buf[idx] != pb.Value {
			return false
		}
	}
	return true
}

// Classify scans the set in priority order and returns the first matching
// signature's result. When no signature matches, it returns an Unknown result
// carrying the caller-supplied fallback MIME. Single pass, deterministic, no
// attempt to find a "best" or "longest" match.
func Classify(buf []byte, set *types.Set, fallback string) types.Result {
	for _, sig := range set.Entries() {
		if Matches(buf, sig) {
			return types.Recognized(sig)
		}
	}
	return types.Unknown(fallback)
}

// Config configures a Matcher.
type Config struct {
	Set *types.Set

	// DisablePrefilter skips the Aho-Corasick literal prefilter and walks
	// the full table on every call. Mostly useful for benchmarking and for
	// verifying prefilter equivalence in tests.
	DisablePrefilter bool
}

// Matcher classifies byte windows against a fixed signature set. It snapshots
// the set's entries at construction and optionally narrows candidates with a
// literal prefilter, so repeated classification avoids rescanning signatures
// whose magic bytes cannot be present. A Matcher is immutable after New and
// safe for concurrent use.
type Matcher struct {
	sigs []*types.Signature
	pf   *prefilter.Prefilter
}

// New creates a Matcher for the given set.
func New(cfg Config) (*Matcher, error) {
	if cfg.Set == nil {
		return nil, fmt.Errorf("signature set is required")
	}

	m := &Matcher{sigs: cfg.Set.Entries()}
	if !cfg.DisablePrefilter {
		m.pf = prefilter.New(m.sigs)
	}
	return m, nil
}

// Classify returns the first-match result for buf, or Unknown{fallback}.
// Equivalent to the package-level Classify for the matcher's set.
func (m *Matcher) Classify(buf []byte, fallback string) types.Result {
	candidates := m.sigs
	if m.pf != nil {
		candidates = m.pf.Filter(buf)
	}

	for _, sig := range candidates {
		if Matches(buf, sig) {
			return types.Recognized(sig)
		}
	}
	return types.Unknown(fallback)
}

// SignatureCount returns the number of signatures the matcher tests against.
func (m *Matcher) SignatureCount() int {
	return len(m.sigs)
}
