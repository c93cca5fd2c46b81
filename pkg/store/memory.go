package store

import (
	"sync"

	"github.com/bytesleuth/sleuth/pkg/types"
)

// fileRecord stores file metadata.
type fileRecord struct {
	id   types.FileID
	size int64
}

// MemoryStore implements Store using in-memory data structures.
// Used by serve mode and tests, where nothing should touch disk.
type MemoryStore struct {
	mu         sync.RWMutex
	files      map[string]fileRecord // keyed by FileID.Hex()
	detections []*types.Detection
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		files:      make(map[string]fileRecord),
		detections: make([]*types.Detection, 0),
	}
}

// AddFile stores a file record.
func (m *MemoryStore) AddFile(id types.FileID, size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := id.Hex()
	if _, exists := m.files[key]; exists {
		// Idempotent - already exists
		return nil
	}

	m.files[key] = fileRecord{id: id, size: size}
	return nil
}

// AddDetection stores a detection record.
func (m *MemoryStore) AddDetection(d *types.Detection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.detections = append(m.detections, d)
	return nil
}

// GetDetections retrieves detections for a file.
func (m *MemoryStore) GetDetections(id types.FileID) ([]*types.Detection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*types.Detection
	for _, d := range m.detections {
		if d.FileID == id {
			result = append(result, d)
		}
	}
	return result, nil
}

// GetAllDetections retrieves all detections.
func (m *MemoryStore) GetAllDetections() ([]*types.Detection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*types.Detection, len(m.detections))
	copy(result, m.detections)
	return result, nil
}

// FileExists checks if a file has already been classified.
func (m *MemoryStore) FileExists(id types.FileID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.files[id.Hex()]
	return exists, nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}
