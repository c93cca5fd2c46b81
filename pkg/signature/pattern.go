package signature

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytesleuth/sleuth/pkg/types"
)

// Wildcard is the pattern token that matches any byte value.
const Wildcard = "??"

// ParsePattern parses the textual pattern form used by signature files:
// whitespace-separated tokens, each either two hex digits ("89", "4E") or the
// wildcard token "??".
//
//	"52 49 46 46 ?? ?? ?? ?? 57 45 42 50"
func ParsePattern(s string) ([]types.PatternByte, error) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil, types.ErrEmptyPattern
	}

	pattern := make([]types.PatternByte, 0, len(tokens))
	for i, tok := range tokens {
		if tok == Wildcard {
			pattern = append(pattern, types.Any())
			continue
		}
		if len(tok) != 2 {
			return nil, fmt.Errorf("pattern byte %d: expected two hex digits or %q, got %q", i, Wildcard, tok)
		}
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("pattern byte %d: invalid hex %q: %w", i, tok, err)
		}
		pattern = append(pattern, types.Byte(byte(v)))
	}
	return pattern, nil
}

// FormatPattern renders a pattern back into the textual form ParsePattern
// accepts. Round-trips modulo hex case.
func FormatPattern(pattern []types.PatternByte) string {
	var b strings.Builder
	for i, pb := range pattern {
		if i > 0 {
			b.WriteByte(' ')
		}
		if pb.Wildcard {
			b.WriteString(Wildcard)
		} else {
			fmt.Fprintf(&b, "%02X", pb.Value)
		}
	}
	return b.String()
}
