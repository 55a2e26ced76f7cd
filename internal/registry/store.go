package registry

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// FileName is the registry file kept at the repository root. It is the
// single source of truth for task state and is meant to be human-editable.
const FileName = "gaffer.yaml"

// ErrNotFound indicates no registry file exists at the expected location.
var ErrNotFound = errors.New("registry not found")

// Path returns the registry path for a repository root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, FileName)
}

// Exists reports whether a registry file is present at the repository
// root.
func Exists(repoRoot string) bool {
	_, err := os.Stat(Path(repoRoot))
	return err == nil
}

// Load reads the registry from the repository root. Returns ErrNotFound
// when the file does not exist and a parse error for malformed content,
// including unknown status values.
func Load(repoRoot string) (*Registry, error) {
	path := Path(repoRoot)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no %s at %s", ErrNotFound, FileName, path)
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	return &reg, nil
}

// Save writes the registry to the repository root. Field order and the
// omission of empty optional fields are stable so diffs of the registry
// file stay readable.
func (r *Registry) Save(repoRoot string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}

	if err := os.WriteFile(Path(repoRoot), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}
