package types

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// FileID is a Git-style SHA-1 content hash (20 bytes). It keys scanned
// content in the store, so re-scanning identical bytes is detectable
// regardless of path or name.
type FileID [20]byte

// ComputeFileID computes a Git-style content ID: SHA-1("blob {len}\0{content}").
func ComputeFileID(content []byte) FileID {
	header := fmt.Sprintf("blob %d\x00", len(content))
	h := sha1.New()
	h.Write([]byte(header))
	h.Write(content)

	var id FileID
	copy(id[:], h.Sum(nil))
	return id
}

// Hex returns the 40-character hex string.
func (id FileID) Hex() string {
	return hex.EncodeToString(id[:])
}

// String implements Stringer (returns Hex()).
func (id FileID) String() string {
	return id.Hex()
}

// ParseFileID parses a 40-char hex string into a FileID.
func ParseFileID(hexStr string) (FileID, error) {
	if len(hexStr) != 40 {
		return FileID{}, fmt.Errorf("invalid file ID length: expected 40, got %d", len(hexStr))
	}

	decoded, err := hex.DecodeString(hexStr)
	if err != nil {
		return FileID{}, fmt.Errorf("invalid hex string: %w", err)
	}

	var id FileID
	copy(id[:], decoded)
	return id, nil
}

// MarshalJSON implements json.Marshaler.
func (id FileID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *FileID) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}

	parsed, err := ParseFileID(hexStr)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}
