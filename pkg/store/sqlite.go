package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/bytesleuth/sleuth/pkg/types"
)

// SQLiteStore implements Store using SQLite (pure-Go driver, no CGO).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Initialize schema
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddFile stores a file record.
func (s *SQLiteStore) AddFile(id types.FileID, size int64) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO files (id, size) VALUES (?, ?)", id.Hex(), size)
	if err != nil {
		return fmt.Errorf("inserting file: %w", err)
	}
	return nil
}

// AddDetection stores a detection record.
func (s *SQLiteStore) AddDetection(d *types.Detection) error {
	extsJSON, err := json.Marshal(d.Result.Extensions)
	if err != nil {
		return fmt.Errorf("marshaling extensions: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO detections (file_id, path, size, fallback, matched, mime, signature_id, extensions_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		d.FileID.Hex(),
		d.Path,
		d.Size,
		d.Fallback,
		d.Result.Matched,
		d.Result.MIME,
		d.Result.SignatureID,
		string(extsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting detection: %w", err)
	}

	return nil
}

// GetDetections retrieves detections for a file.
func (s *SQLiteStore) GetDetections(id types.FileID) ([]*types.Detection, error) {
	rows, err := s.db.Query(`
		SELECT file_id, path, size, fallback, matched, mime, signature_id, extensions_json
		FROM detections
		WHERE file_id = ?
	`, id.Hex())
	if err != nil {
		return nil, fmt.Errorf("querying detections: %w", err)
	}
	defer rows.Close()

	return scanDetections(rows)
}

// GetAllDetections retrieves all detections (for JSON export).
func (s *SQLiteStore) GetAllDetections() ([]*types.Detection, error) {
	rows, err := s.db.Query(`
		SELECT file_id, path, size, fallback, matched, mime, signature_id, extensions_json
		FROM detections
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying detections: %w", err)
	}
	defer rows.Close()

	return scanDetections(rows)
}

// FileExists checks if a file has already been classified.
func (s *SQLiteStore) FileExists(id types.FileID) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM files WHERE id = ?", id.Hex()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking file existence: %w", err)
	}
	return count > 0, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanDetections(rows *sql.Rows) ([]*types.Detection, error) {
	var detections []*types.Detection
	for rows.Next() {
		var d types.Detection
		var fileIDHex string
		var extsJSON string

		err := rows.Scan(
			&fileIDHex,
			&d.Path,
			&d.Size,
			&d.Fallback,
			&d.Result.Matched,
			&d.Result.MIME,
			&d.Result.SignatureID,
			&extsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning detection: %w", err)
		}

		fileID, err := types.ParseFileID(fileIDHex)
		if err != nil {
			return nil, fmt.Errorf("parsing file ID: %w", err)
		}
		d.FileID = fileID

		if err := json.Unmarshal([]byte(extsJSON), &d.Result.Extensions); err != nil {
			return nil, fmt.Errorf("unmarshaling extensions: %w", err)
		}

		detections = append(detections, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating detections: %w", err)
	}

	return detections, nil
}
