package matcher

import (
	"math"
	"testing"

	"github.com/bytesleuth/sleuth/pkg/types"
)

var pngPattern = []types.PatternByte{
	types.Byte(0x89), types.Byte(0x50), types.Byte(0x4E), types.Byte(0x47),
	types.Byte(0x0D), types.Byte(0x0A), types.Byte(0x1A), types.Byte(0x0A),
}

func pngSig() *types.Signature {
	return &types.Signature{
		ID: "image.png", Name: "PNG image", MIME: "image/png",
		Extensions: []string{"png"},
		Pattern:    pngPattern,
	}
}

func mp4Sig() *types.Signature {
	return &types.Signature{
		ID: "video.mp4", Name: "MP4 video", MIME: "video/mp4",
		Extensions: []string{"mp4"},
		Offset:     4,
		Pattern: []types.PatternByte{
			types.Byte(0x66), types.Byte(0x74), types.Byte(0x79), types.Byte(0x70),
			types.Byte(0x69), types.Byte(0x73), types.Byte(0x6F), types.Byte(0x6D),
		},
	}
}

func mustSet(t *testing.T, sigs ...*types.Signature) *types.Set {
	t.Helper()
	set, err := types.NewSet(sigs)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}
	return set
}

func TestMatches(t *testing.T) {
	pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

	tests := []struct {
		name string
		buf  []byte
		sig  *types.Signature
		want bool
	}{
		{
			name: "exact pattern at offset zero",
			buf:  pngHeader,
			sig:  pngSig(),
			want: true,
		},
		{
			name: "buffer exactly pattern length",
			buf:  pngHeader[:8],
			sig:  pngSig(),
			want: true,
		},
		{
			name: "flipped byte fails",
			buf:  []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0B},
			sig:  pngSig(),
			want: false,
		},
		{
			name: "short buffer is a non-match not an error",
			buf:  pngHeader[:4],
			sig:  pngSig(),
			want: false,
		},
		{
			name: "empty buffer",
			buf:  nil,
			sig:  pngSig(),
			want: false,
		},
		{
			name: "pattern at non-zero offset",
			buf:  []byte{0, 0, 0, 0x18, 0x66, 0x74, 0x79, 0x70, 0x69, 0x73, 0x6F, 0x6D, 0, 0},
			sig:  mp4Sig(),
			want: true,
		},
		{
			name: "buffer shorter than offset",
			buf:  []byte{0, 0},
			sig:  mp4Sig(),
			want: false,
		},
		{
			name: "leading bytes before offset are ignored",
			buf:  []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x66, 0x74, 0x79, 0x70, 0x69, 0x73, 0x6F, 0x6D},
			sig:  mp4Sig(),
			want: true,
		},
		{
			name: "wildcard matches any byte",
			buf:  []byte{'R', 'I', 'F', 'F', 0xDE, 0xAD, 0xBE, 0xEF, 'W', 'E', 'B', 'P'},
			sig: &types.Signature{
				ID: "image.webp", MIME: "image/webp",
				Pattern: []types.PatternByte{
					types.Byte('R'), types.Byte('I'), types.Byte('F'), types.Byte('F'),
					types.Any(), types.Any(), types.Any(), types.Any(),
					types.Byte('W'), types.Byte('E'), types.Byte('B'), types.Byte('P'),
				},
			},
			want: true,
		},
		{
			name: "trailing wildcard matches absent byte",
			buf:  []byte{'R', 'I', 'F', 'F'},
			sig: &types.Signature{
				ID: "riff", MIME: "application/x-riff",
				Pattern: []types.PatternByte{
					types.Byte('R'), types.Byte('I'), types.Byte('F'), types.Byte('F'),
					types.Any(), types.Any(),
				},
			},
			want: true,
		},
		{
			name: "concrete byte after wildcard still required",
			buf:  []byte{'R', 'I', 'F', 'F', 0x00},
			sig: &types.Signature{
				ID: "wav", MIME: "audio/wav",
				Pattern: []types.PatternByte{
					types.Byte('R'), types.Byte('I'), types.Byte('F'), types.Byte('F'),
					types.Any(), types.Any(), types.Any(), types.Any(),
					types.Byte('W'), types.Byte('A'), types.Byte('V'), types.Byte('E'),
				},
			},
			want: false,
		},
		{
			name: "all-wildcard pattern matches empty buffer",
			buf:  nil,
			sig: &types.Signature{
				ID: "any", MIME: "application/octet-stream",
				Pattern: []types.PatternByte{types.Any(), types.Any()},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.buf, tt.sig); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatches_OverflowingOffsetDoesNotPanic(t *testing.T) {
	// A leading wildcard skips position 0, so the first concrete position
	// computes MaxInt+1, which wraps negative. That index is absent from
	// every buffer and must be a plain non-match.
	sig := &types.Signature{
		ID: "huge.offset", MIME: "application/octet-stream",
		Offset:  math.MaxInt,
		Pattern: []types.PatternByte{types.Any(), types.Byte(0x41)},
	}

	if Matches([]byte{0x41, 0x41, 0x41, 0x41}, sig) {
		t.Error("expected non-match for offset past any buffer")
	}
}

func TestMatches_FlippingAnyConcreteByteFails(t *testing.T) {
	sig := pngSig()
	base := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

	for i := range base {
		buf := make([]byte, len(base))
		copy(buf, base)
		buf[i] ^= 0x01

		if Matches(buf, sig) {
			t.Errorf("expected non-match with byte %d flipped", i)
		}
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	generic := &types.Signature{
		ID: "riff.container", Name: "RIFF container", MIME: "application/x-riff",
		Extensions: []string{"riff"},
		Pattern: []types.PatternByte{
			types.Byte('R'), types.Byte('I'), types.Byte('F'), types.Byte('F'),
		},
	}
	wav := &types.Signature{
		ID: "audio.wav", Name: "WAV audio", MIME: "audio/wav",
		Extensions: []string{"wav"},
		Pattern: []types.PatternByte{
			types.Byte('R'), types.Byte('I'), types.Byte('F'), types.Byte('F'),
			types.Any(), types.Any(), types.Any(), types.Any(),
			types.Byte('W'), types.Byte('A'), types.Byte('V'), types.Byte('E'),
		},
	}

	buf := []byte("RIFF\x24\x00\x00\x00WAVEfmt ")

	// Both signatures match this buffer; earlier entry must win.
	set := mustSet(t, generic, wav)
	res := Classify(buf, set, "application/octet-stream")
	if !res.Matched || res.SignatureID != "riff.container" {
		t.Errorf("expected riff.container to win, got %+v", res)
	}

	// Reversed table order flips the winner.
	set = mustSet(t, wav, generic)
	res = Classify(buf, set, "application/octet-stream")
	if !res.Matched || res.SignatureID != "audio.wav" {
		t.Errorf("expected audio.wav to win, got %+v", res)
	}
}

func TestClassify_Unknown(t *testing.T) {
	set := mustSet(t, pngSig(), mp4Sig())

	tests := []struct {
		name     string
		buf      []byte
		fallback string
	}{
		{"empty buffer", nil, "text/plain"},
		{"zero buffer", make([]byte, 32), "application/octet-stream"},
		{"unrecognized bytes", []byte("hello, world"), "text/html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify(tt.buf, set, tt.fallback)
			if res.Matched {
				t.Fatalf("expected no match, got %+v", res)
			}
			if res.MIME != tt.fallback {
				t.Errorf("expected fallback %q, got %q", tt.fallback, res.MIME)
			}
		})
	}
}

func TestClassify_PNGScenario(t *testing.T) {
	set := mustSet(t, pngSig(), mp4Sig())

	buf := make([]byte, 32)
	copy(buf, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})

	res := Classify(buf, set, "application/octet-stream")
	if !res.Matched {
		t.Fatal("expected PNG match")
	}
	if res.MIME != "image/png" {
		t.Errorf("expected image/png, got %s", res.MIME)
	}
	if len(res.Extensions) != 1 || res.Extensions[0] != "png" {
		t.Errorf("expected extensions [png], got %v", res.Extensions)
	}
}

func TestClassify_MP4Scenario(t *testing.T) {
	set := mustSet(t, pngSig(), mp4Sig())

	// Bytes 0-3 are arbitrary; ftypisom starts at offset 4.
	buf := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0x66, 0x74, 0x79, 0x70, 0x69, 0x73, 0x6F, 0x6D}

	res := Classify(buf, set, "application/octet-stream")
	if !res.Matched || res.MIME != "video/mp4" {
		t.Errorf("expected video/mp4, got %+v", res)
	}
}

func TestMatcher_MatchesPackageClassify(t *testing.T) {
	set := mustSet(t, pngSig(), mp4Sig())

	m, err := New(Config{Set: set})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	buffers := [][]byte{
		nil,
		make([]byte, 32),
		[]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
		[]byte{0, 0, 0, 0x18, 0x66, 0x74, 0x79, 0x70, 0x69, 0x73, 0x6F, 0x6D},
		[]byte("plain text content"),
	}

	for _, buf := range buffers {
		want := Classify(buf, set, "fallback/mime")
		got := m.Classify(buf, "fallback/mime")
		if got.Matched != want.Matched || got.MIME != want.MIME || got.SignatureID != want.SignatureID {
			t.Errorf("Matcher.Classify(%v) = %+v, package Classify = %+v", buf, got, want)
		}
	}
}

func TestMatcher_PrefilterPreservesPriority(t *testing.T) {
	generic := &types.Signature{
		ID: "riff.container", MIME: "application/x-riff",
		Pattern: []types.PatternByte{
			types.Byte('R'), types.Byte('I'), types.Byte('F'), types.Byte('F'),
		},
	}
	wav := &types.Signature{
		ID: "audio.wav", MIME: "audio/wav",
		Pattern: []types.PatternByte{
			types.Byte('R'), types.Byte('I'), types.Byte('F'), types.Byte('F'),
			types.Any(), types.Any(), types.Any(), types.Any(),
			types.Byte('W'), types.Byte('A'), types.Byte('V'), types.Byte('E'),
		},
	}

	set := mustSet(t, generic, wav)
	buf := []byte("RIFF\x24\x00\x00\x00WAVEfmt ")

	for _, disable := range []bool{false, true} {
		m, err := New(Config{Set: set, DisablePrefilter: disable})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		res := m.Classify(buf, "application/octet-stream")
		if res.SignatureID != "riff.container" {
			t.Errorf("prefilter disabled=%v: expected riff.container, got %s", disable, res.SignatureID)
		}
	}
}

func TestNew_RequiresSet(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for nil set")
	}
}
