package prefilter

import (
	"sort"

	"github.com/cloudflare/ahocorasick"

	"github.com/bytesleuth/sleuth/pkg/types"
)

// minLiteralLen is the shortest concrete run worth indexing. Signatures whose
// longest literal is shorter than this are always checked directly.
const minLiteralLen = 2

// Prefilter narrows a signature table to the entries whose magic-byte
// literals actually occur in a buffer, using Aho-Corasick over each
// signature's longest concrete run. It is narrowing-only: a signature
// surviving the filter still has to match at its required offset, and the
// returned candidates keep table order so first-match-wins is preserved.
//
// No false negatives: a signature can only match a buffer that contains its
// literal run in full, so filtering on literal presence never drops a
// would-be match.
type Prefilter struct {
	matcher     *ahocorasick.Matcher
	literalSigs [][]int // literal index -> table indices of signatures needing it
	alwaysCheck []int   // table indices with no usable literal
	sigs        []*types.Signature
}

// New builds a prefilter over sigs. The slice order is the table's priority
// order and is retained in Filter results.
func New(sigs []*types.Signature) *Prefilter {
	pf := &Prefilter{sigs: sigs}

	var literals [][]byte
	seen := make(map[string]int) // literal -> index into literals
	for i, sig := range sigs {
		lit, _ := sig.LongestLiteral()
		if len(lit) < minLiteralLen {
			pf.alwaysCheck = append(pf.alwaysCheck, i)
			continue
		}

		li, ok := seen[string(lit)]
		if !ok {
			li = len(literals)
			seen[string(lit)] = li
			literals = append(literals, lit)
			pf.literalSigs = append(pf.literalSigs, nil)
		}
		pf.literalSigs[li] = append(pf.literalSigs[li], i)
	}

	if len(literals) > 0 {
		pf.matcher = ahocorasick.NewMatcher(literals)
	}
	return pf
}

// Filter returns the signatures that might match buf, in table order.
// Signatures without an indexable literal are always included.
func (pf *Prefilter) Filter(buf []byte) []*types.Signature {
	if pf.matcher == nil {
		return pf.at(pf.alwaysCheck)
	}

	hits := pf.matcher.Match(buf)

	indices := make([]int, 0, len(pf.alwaysCheck)+len(hits))
	indices = append(indices, pf.alwaysCheck...)
	for _, hit := range hits {
		indices = append(indices, pf.literalSigs[hit]...)
	}
	sort.Ints(indices)

	return pf.at(indices)
}

// at maps sorted table indices back to signatures.
func (pf *Prefilter) at(indices []int) []*types.Signature {
	out := make([]*types.Signature, len(indices))
	for i, idx := range indices {
		out[i] = pf.sigs[idx]
	}
	return out
}
