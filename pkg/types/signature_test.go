package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngSignature() *Signature {
	return &Signature{
		ID:         "image.png",
		Name:       "PNG image",
		MIME:       "image/png",
		Extensions: []string{"png"},
		Pattern: []PatternByte{
			Byte(0x89), Byte(0x50), Byte(0x4E), Byte(0x47),
			Byte(0x0D), Byte(0x0A), Byte(0x1A), Byte(0x0A),
		},
	}
}

func TestNewSet_ValidSignatures(t *testing.T) {
	set, err := NewSet([]*Signature{pngSignature()})
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, "image.png", set.Entries()[0].ID)
}

func TestNewSet_RejectsEmptyPattern(t *testing.T) {
	sig := pngSignature()
	sig.Pattern = nil

	_, err := NewSet([]*Signature{sig})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyPattern)
}

func TestNewSet_RejectsMissingMIME(t *testing.T) {
	sig := pngSignature()
	sig.MIME = ""

	_, err := NewSet([]*Signature{sig})
	assert.ErrorIs(t, err, ErrMissingMIME)
}

func TestNewSet_RejectsNegativeOffset(t *testing.T) {
	sig := pngSignature()
	sig.Offset = -1

	_, err := NewSet([]*Signature{sig})
	assert.Error(t, err)
}

func TestSet_EntriesPreserveOrder(t *testing.T) {
	first := pngSignature()
	second := pngSignature()
	second.ID = "image.png.copy"

	set, err := NewSet([]*Signature{first, second})
	require.NoError(t, err)

	entries := set.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "image.png", entries[0].ID)
	assert.Equal(t, "image.png.copy", entries[1].ID)

	// Stable across calls.
	again := set.Entries()
	assert.Equal(t, entries, again)
}

func TestSet_EntriesReturnsCopy(t *testing.T) {
	set, err := NewSet([]*Signature{pngSignature()})
	require.NoError(t, err)

	entries := set.Entries()
	entries[0] = nil

	assert.NotNil(t, set.Entries()[0])
}

func TestLongestLiteral(t *testing.T) {
	tests := []struct {
		name    string
		sig     *Signature
		literal []byte
		at      int
	}{
		{
			name:    "no wildcards",
			sig:     pngSignature(),
			literal: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
			at:      0,
		},
		{
			name: "wildcards split runs",
			sig: &Signature{
				ID: "image.webp", MIME: "image/webp",
				Pattern: []PatternByte{
					Byte('R'), Byte('I'), Byte('F'), Byte('F'),
					Any(), Any(), Any(), Any(),
					Byte('W'), Byte('E'), Byte('B'), Byte('P'), Byte('V'),
				},
			},
			literal: []byte("WEBPV"),
			at:      8,
		},
		{
			name: "offset shifts literal position",
			sig: &Signature{
				ID: "video.mp4", MIME: "video/mp4", Offset: 4,
				Pattern: []PatternByte{
					Byte('f'), Byte('t'), Byte('y'), Byte('p'),
				},
			},
			literal: []byte("ftyp"),
			at:      4,
		},
		{
			name: "all wildcards",
			sig: &Signature{
				ID: "x", MIME: "application/octet-stream",
				Pattern: []PatternByte{Any(), Any()},
			},
			literal: nil,
			at:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit, at := tt.sig.LongestLiteral()
			assert.Equal(t, tt.literal, lit)
			assert.Equal(t, tt.at, at)
		})
	}
}

func TestRecognized(t *testing.T) {
	sig := pngSignature()
	r := Recognized(sig)

	assert.True(t, r.Matched)
	assert.Equal(t, "image/png", r.MIME)
	assert.Equal(t, []string{"png"}, r.Extensions)
	assert.Equal(t, "image.png", r.SignatureID)

	// Result owns its extensions.
	r.Extensions[0] = "mutated"
	assert.Equal(t, "png", sig.Extensions[0])
}

func TestUnknown(t *testing.T) {
	r := Unknown("text/plain")

	assert.False(t, r.Matched)
	assert.Equal(t, "text/plain", r.MIME)
	assert.Empty(t, r.Extensions)
	assert.Empty(t, r.SignatureID)
}
