package store

import (
	"fmt"

	"github.com/bytesleuth/sleuth/pkg/types"
)

// Store provides persistence for detection results.
// This interface abstracts the underlying storage implementation,
// allowing for different backends (SQLite, in-memory).
type Store interface {
	// AddFile stores a file record, keyed by window content ID.
	AddFile(id types.FileID, size int64) error

	// AddDetection stores a detection record.
	AddDetection(d *types.Detection) error

	// GetDetections retrieves detections for a file.
	GetDetections(id types.FileID) ([]*types.Detection, error)

	// GetAllDetections retrieves all detections (for JSON export).
	GetAllDetections() ([]*types.Detection, error)

	// FileExists checks if a file has already been classified.
	FileExists(id types.FileID) (bool, error)

	// Close closes the underlying storage.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store (useful for testing and serve mode).
	Path string
}

// New creates a new Store. ":memory:" paths get the in-memory store; file
// paths get SQLite.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
