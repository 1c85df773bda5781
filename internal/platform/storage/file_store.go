package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore saves uploaded photo files to disk under a base directory. The
// submission ledger does not own file storage; the HTTP layer saves the file
// first and removes it again if the ledger rejects the submission.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Save writes an uploaded file and returns the path relative to the base
// directory, which is what gets persisted on the photo record.
func (f *FileStore) Save(filename string, r io.Reader) (string, error) {
	name := SafeFilename(filename)
	target := filepath.Join(f.basePath, name)

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored file by its relative path. Missing files are not an
// error; removal is a cleanup step after a failed submission.
func (f *FileStore) Remove(relPath string) error {
	target := filepath.Join(f.basePath, SafeFilename(relPath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// SafeFilename strips any path components from an uploaded filename.
func SafeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	name = strings.TrimSpace(name)
	if name == "" {
		return "photo"
	}
	return name
}

// AllowedExtension reports whether the filename has one of the allowed
// image extensions (compared case-insensitively, without the dot).
func AllowedExtension(filename string, allowed []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
