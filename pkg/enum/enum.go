// Package enum enumerates classification targets and acquires their leading
// byte windows. It owns all file I/O for directory scans; the matcher core
// only ever sees the materialized windows.
package enum

import (
	"context"

	"github.com/bytesleuth/sleuth/pkg/types"
)

// Callback receives one file's head window. win may be shorter than the
// configured window size for small files; size is the file's full size.
type Callback func(win []byte, size int64, id types.FileID, path string) error

// Enumerator yields file windows from some source.
type Enumerator interface {
	Enumerate(ctx context.Context, callback Callback) error
}

// Config controls enumeration behavior.
type Config struct {
	// Root is the file or directory to enumerate.
	Root string

	// WindowSize is the number of leading bytes to read per file.
	WindowSize int

	// IncludeHidden includes dotfiles and dot-directories.
	IncludeHidden bool

	// MaxFileSize skips files larger than this many bytes (0 = no limit).
	// The skip saves nothing on reads (only the window is read either way)
	// but keeps results comparable with size-capped pipelines.
	MaxFileSize int64

	// FollowSymlinks follows symbolic links during the walk.
	FollowSymlinks bool
}
