// Package signature loads signature tables from YAML files. The file format
// is the persisted shape of the table: adding entries is backward compatible,
// editing an existing entry's pattern or offset changes classification
// behavior and requires test updates.
package signature

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bytesleuth/sleuth/pkg/types"
)

// Loader handles loading signatures from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in signatures
}

// NewLoader creates a loader with built-in signatures from the embedded
// filesystem.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinSignaturesFS,
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// LoadSignatures loads signatures from YAML bytes, preserving file order.
// Returns error if the YAML is invalid or any entry is malformed.
func (l *Loader) LoadSignatures(data []byte) ([]*types.Signature, error) {
	var yamlFile yamlSignaturesFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(yamlFile.Signatures) == 0 {
		return nil, fmt.Errorf("no signatures found in YAML")
	}

	sigs := make([]*types.Signature, 0, len(yamlFile.Signatures))
	for _, ys := range yamlFile.Signatures {
		sig, err := convertYAMLSignature(ys)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

// LoadSignatureFile loads signatures from a YAML file path.
func (l *Loader) LoadSignatureFile(path string) ([]*types.Signature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.LoadSignatures(data)
}

// LoadBuiltinSignatures loads all built-in signatures from the embedded
// filesystem. Files are visited in lexical order, so priority across files is
// fixed by file naming.
func (l *Loader) LoadBuiltinSignatures() ([]*types.Signature, error) {
	var sigs []*types.Signature

	err := fs.WalkDir(l.fs, "signatures", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		loaded, err := l.LoadSignatures(data)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		sigs = append(sigs, loaded...)

		return nil
	})

	if err != nil {
		return nil, err
	}

	return sigs, nil
}

// LoadBuiltinSet builds a validated Set from the built-in signatures.
func (l *Loader) LoadBuiltinSet() (*types.Set, error) {
	sigs, err := l.LoadBuiltinSignatures()
	if err != nil {
		return nil, err
	}
	return types.NewSet(sigs)
}

// convertYAMLSignature converts yamlSignature to types.Signature, parsing the
// textual pattern and rejecting malformed entries.
func convertYAMLSignature(ys yamlSignature) (*types.Signature, error) {
	pattern, err := ParsePattern(ys.Pattern)
	if err != nil {
		return nil, fmt.Errorf("signature %s: %w", ys.ID, err)
	}

	sig := &types.Signature{
		ID:         ys.ID,
		Name:       ys.Name,
		MIME:       ys.MIME,
		Extensions: ys.Extensions,
		Offset:     ys.Offset,
		Pattern:    pattern,
		References: ys.References,
	}
	if err := types.ValidateSignature(sig); err != nil {
		return nil, err
	}
	return sig, nil
}
