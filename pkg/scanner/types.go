package scanner

import (
	"fmt"
	"os"

	"github.com/bytesleuth/sleuth/pkg/types"
)

// ContentItem represents a content item to classify.
// Content is raw bytes (base64-encoded on the wire).
type ContentItem struct {
	Source   string            `json:"source"`   // e.g., "upload:avatar.png"
	Content  []byte            `json:"content"`  // the byte window to classify
	Fallback string            `json:"fallback"` // MIME reported when nothing matches
	Metadata map[string]string `json:"metadata,omitempty"`
}

// DetectResult represents the classification of a single item.
type DetectResult struct {
	Source string       `json:"source"`
	FileID types.FileID `json:"file_id"`
	Result types.Result `json:"result"`
}

// BatchDetectResult represents batch classification results.
type BatchDetectResult struct {
	Results    []DetectResult `json:"results"`
	Recognized int            `json:"recognized"`
}

// DebugLogger provides platform-specific logging.
type DebugLogger interface {
	Log(format string, args ...interface{})
}

// NoopLogger is a no-op logger.
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...interface{}) {}

// StderrLogger writes debug lines to stderr, keeping stdout free for results.
type StderrLogger struct{}

// NewStderrLogger returns a logger for verbose CLI runs.
func NewStderrLogger() StderrLogger {
	return StderrLogger{}
}

func (StderrLogger) Log(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "sleuth: "+format+"\n", args...)
}
