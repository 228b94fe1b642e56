package statement

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ErrInvalidName is returned for file names that would leave the storage directory
var ErrInvalidName = errors.New("invalid document file name")

// Storage is a directory of per-document files. Files are named after the document identifier
// plus a role suffix (".txt" for normalized text, ".csv"/".xlsx" for tables).
type Storage interface {
	// Write stores data as <identifier><suffix> and returns the file name
	Write(identifier, suffix string, data []byte) (string, error)

	// Read returns the content of a stored file
	Read(name string) ([]byte, error)

	// Remove deletes a stored file
	Remove(name string) error

	// Exists reports whether a stored file is present
	Exists(name string) (bool, error)

	// Documents returns the names of all regular files, sorted
	Documents() ([]string, error)
}

// DocumentDir implements Storage on a local directory
type DocumentDir struct {
	root string
}

// OpenDocumentDir opens root, creating it if needed
func OpenDocumentDir(root string) (*DocumentDir, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating document directory: %w", err)
	}
	return &DocumentDir{root: root}, nil
}

// Write stores data under the identifier and suffix
func (d *DocumentDir) Write(identifier, suffix string, data []byte) (string, error) {
	name := identifier + suffix
	path, err := d.path(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return name, nil
}

// Read returns the content of name
func (d *DocumentDir) Read(name string) ([]byte, error) {
	path, err := d.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Remove deletes name
func (d *DocumentDir) Remove(name string) error {
	path, err := d.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", name, err)
	}
	return nil
}

// Exists reports whether name is present. A missing file is not an error.
func (d *DocumentDir) Exists(name string) (bool, error) {
	path, err := d.path(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("checking %s: %w", name, err)
	}
}

// Documents returns the regular files directly under the directory
func (d *DocumentDir) Documents() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", d.root, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// path resolves a bare file name inside the directory
func (d *DocumentDir) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(d.root, name), nil
}
