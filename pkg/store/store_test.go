package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytesleuth/sleuth/pkg/types"
)

func TestNew_RequiresPath(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNew_MemoryPath(t *testing.T) {
	s, err := New(Config{Path: ":memory:"})
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*MemoryStore)
	assert.True(t, ok, "expected MemoryStore for :memory: path")
}

func TestNew_FilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sleuth.db")

	s, err := New(Config{Path: path})
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*SQLiteStore)
	assert.True(t, ok, "expected SQLiteStore for file path")
}

// storeFactories returns all Store implementations for shared contract tests.
func storeFactories(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemory()
		},
		"sqlite": func(t *testing.T) Store {
			s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
			require.NoError(t, err)
			return s
		},
	}
}

func sampleDetection(content []byte, path string) *types.Detection {
	return &types.Detection{
		FileID:   types.ComputeFileID(content),
		Path:     path,
		Size:     int64(len(content)),
		Fallback: "application/octet-stream",
		Result: types.Result{
			Matched:     true,
			MIME:        "image/png",
			Extensions:  []string{"png"},
			SignatureID: "image.png",
		},
	}
}

func TestStore_AddAndGetDetections(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			content := []byte{0x89, 0x50, 0x4E, 0x47}
			d := sampleDetection(content, "/tmp/a.png")

			require.NoError(t, s.AddFile(d.FileID, d.Size))
			require.NoError(t, s.AddDetection(d))

			got, err := s.GetDetections(d.FileID)
			require.NoError(t, err)
			require.Len(t, got, 1)

			assert.Equal(t, d.FileID, got[0].FileID)
			assert.Equal(t, "/tmp/a.png", got[0].Path)
			assert.Equal(t, "image/png", got[0].Result.MIME)
			assert.Equal(t, []string{"png"}, got[0].Result.Extensions)
			assert.True(t, got[0].Result.Matched)
		})
	}
}

func TestStore_GetAllDetections(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			first := sampleDetection([]byte("first"), "/a")
			second := sampleDetection([]byte("second"), "/b")
			second.Result = types.Unknown("text/plain")

			require.NoError(t, s.AddFile(first.FileID, first.Size))
			require.NoError(t, s.AddDetection(first))
			require.NoError(t, s.AddFile(second.FileID, second.Size))
			require.NoError(t, s.AddDetection(second))

			all, err := s.GetAllDetections()
			require.NoError(t, err)
			require.Len(t, all, 2)

			assert.Equal(t, "/a", all[0].Path)
			assert.Equal(t, "/b", all[1].Path)
			assert.False(t, all[1].Result.Matched)
			assert.Equal(t, "text/plain", all[1].Result.MIME)
		})
	}
}

func TestStore_FileExists(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			id := types.ComputeFileID([]byte("content"))

			exists, err := s.FileExists(id)
			require.NoError(t, err)
			assert.False(t, exists)

			require.NoError(t, s.AddFile(id, 7))

			exists, err = s.FileExists(id)
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}

func TestStore_AddFileIdempotent(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			defer s.Close()

			id := types.ComputeFileID([]byte("content"))
			require.NoError(t, s.AddFile(id, 7))
			require.NoError(t, s.AddFile(id, 7))

			exists, err := s.FileExists(id)
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)

	d := sampleDetection([]byte("persistent"), "/keep.png")
	require.NoError(t, s.AddFile(d.FileID, d.Size))
	require.NoError(t, s.AddDetection(d))
	require.NoError(t, s.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	all, err := reopened.GetAllDetections()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "/keep.png", all[0].Path)

	exists, err := reopened.FileExists(d.FileID)
	require.NoError(t, err)
	assert.True(t, exists)
}
