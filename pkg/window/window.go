// Package window acquires the leading byte window the matcher core inspects.
// This is the I/O boundary: the core never reads files itself, it only
// receives a materialized buffer. Short reads are normal here — a window
// smaller than requested simply means trailing positions are absent, which
// the matcher treats as a non-match, not an error.
package window

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultSize is the default acquisition window, bytes [0,32).
const DefaultSize = 32

// Read reads up to size bytes from the start of r.
// Returns fewer bytes without error when r is shorter than size.
func Read(r io.Reader, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("reading window: %w", err)
	}
	return buf[:n], nil
}

// ReadAt reads the byte range [start, end) from r.
// Returns fewer bytes without error when r ends before end.
func ReadAt(r io.ReaderAt, start, end int64) ([]byte, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("invalid window range [%d, %d)", start, end)
	}
	if end == start {
		return nil, nil
	}

	buf := make([]byte, end-start)
	n, err := r.ReadAt(buf, start)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading window at %d: %w", start, err)
	}
	return buf[:n], nil
}

// ReadFile reads up to size leading bytes of the file at path.
func ReadFile(path string, size int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	buf, err := Read(f, size)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return buf, nil
}
