// Package sleuth provides content-type detection from magic bytes.
//
// Sleuth inspects the leading bytes of a file (a window) against a table of
// byte signatures and reports the media type of the first signature that
// matches. When nothing matches it falls back to a caller-supplied type, so
// detection never fails outright.
//
// # Basic Usage
//
// Create a detector with builtin signatures and classify a window:
//
//	detector, err := sleuth.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := detector.Detect(window, "application/octet-stream")
//	fmt.Printf("%s (matched=%v)\n", result.MIME, result.Matched)
//
// # Detecting Files
//
// DetectFile reads the window itself:
//
//	result, err := detector.DetectFile("/uploads/photo.jpg", sleuth.FallbackForPath("photo.jpg"))
//
// A PNG renamed to .jpg still comes back as image/png, since the bytes win
// over the name.
package sleuth

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/bytesleuth/sleuth/pkg/matcher"
	"github.com/bytesleuth/sleuth/pkg/signature"
	"github.com/bytesleuth/sleuth/pkg/types"
	"github.com/bytesleuth/sleuth/pkg/window"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/bytesleuth/sleuth" without subpackages.
type (
	// Signature defines a byte pattern anchored at an offset.
	Signature = types.Signature

	// PatternByte is a single position in a signature pattern, either a
	// concrete byte value or a wildcard.
	PatternByte = types.PatternByte

	// Set is an ordered, validated collection of signatures.
	Set = types.Set

	// Result is the outcome of classifying a window.
	Result = types.Result

	// FileID identifies content by a digest of its window bytes.
	FileID = types.FileID
)

// Re-export the pattern byte constructors.
var (
	Byte = types.Byte
	Any  = types.Any
)

// DefaultWindowSize is the number of leading bytes read by DetectReader
// and DetectFile when no override is given.
const DefaultWindowSize = window.DefaultSize

// Detector classifies byte windows against a signature table.
type Detector struct {
	matcher *matcher.Matcher
	config  *detectorConfig
}

// detectorConfig holds detector configuration.
type detectorConfig struct {
	signatures    []*types.Signature
	signatureFile string
	windowSize    int
	noPrefilter   bool
}

// Option configures a Detector.
type Option func(*detectorConfig)

// WithSignatures uses custom signatures instead of the builtin table.
// Order matters: earlier signatures win when several match.
func WithSignatures(sigs []*Signature) Option {
	return func(c *detectorConfig) {
		c.signatures = sigs
	}
}

// WithSignatureFile loads signatures from a YAML file instead of the
// builtin table.
func WithSignatureFile(path string) Option {
	return func(c *detectorConfig) {
		c.signatureFile = path
	}
}

// WithWindowSize sets how many leading bytes DetectReader and DetectFile
// read. Default is DefaultWindowSize.
func WithWindowSize(n int) Option {
	return func(c *detectorConfig) {
		c.windowSize = n
	}
}

// WithoutPrefilter disables the literal prescan and checks every
// signature on every window. Mainly useful for debugging.
func WithoutPrefilter() Option {
	return func(c *detectorConfig) {
		c.noPrefilter = true
	}
}

// New creates a Detector with the given options.
//
// By default the detector uses the builtin signature table and reads
// DefaultWindowSize bytes per file.
func New(opts ...Option) (*Detector, error) {
	config := &detectorConfig{
		windowSize: window.DefaultSize,
	}

	for _, opt := range opts {
		opt(config)
	}

	set, err := resolveSet(config)
	if err != nil {
		return nil, err
	}

	m, err := matcher.New(matcher.Config{
		Set:              set,
		DisablePrefilter: config.noPrefilter,
	})
	if err != nil {
		return nil, fmt.Errorf("creating matcher: %w", err)
	}

	return &Detector{matcher: m, config: config}, nil
}

func resolveSet(config *detectorConfig) (*types.Set, error) {
	if config.signatures != nil {
		set, err := types.NewSet(config.signatures)
		if err != nil {
			return nil, fmt.Errorf("building signature set: %w", err)
		}
		return set, nil
	}

	loader := signature.NewLoader()
	if config.signatureFile != "" {
		sigs, err := loader.LoadSignatureFile(config.signatureFile)
		if err != nil {
			return nil, fmt.Errorf("loading signature file: %w", err)
		}
		set, err := types.NewSet(sigs)
		if err != nil {
			return nil, fmt.Errorf("building signature set: %w", err)
		}
		return set, nil
	}

	set, err := loader.LoadBuiltinSet()
	if err != nil {
		return nil, fmt.Errorf("loading builtin signatures: %w", err)
	}
	return set, nil
}

// Detect classifies a window of bytes already in memory. The fallback is
// reported, with Matched false, when no signature matches.
func (d *Detector) Detect(win []byte, fallback string) Result {
	return d.matcher.Classify(win, fallback)
}

// DetectReader reads the detector's window from r and classifies it.
// Content shorter than the window is fine; whatever was read is matched.
func (d *Detector) DetectReader(r io.Reader, fallback string) (Result, error) {
	win, err := window.Read(r, d.config.windowSize)
	if err != nil {
		return Result{}, fmt.Errorf("reading window: %w", err)
	}
	return d.matcher.Classify(win, fallback), nil
}

// DetectFile reads the window from the named file and classifies it.
// The fallback is typically what the source system already believed about the
// file; FallbackForPath derives one from the extension when nothing better is
// known.
func (d *Detector) DetectFile(path, fallback string) (Result, error) {
	win, err := window.ReadFile(path, d.config.windowSize)
	if err != nil {
		return Result{}, err
	}
	return d.matcher.Classify(win, fallback), nil
}

// SignatureCount returns the number of signatures loaded.
func (d *Detector) SignatureCount() int {
	return d.matcher.SignatureCount()
}

// FallbackForPath derives a fallback media type from a file name's
// extension. Unknown extensions map to application/octet-stream.
func FallbackForPath(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}
