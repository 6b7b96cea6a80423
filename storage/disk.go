// Package storage stores uploaded evidence files and hands back stable
// URLs. The rest of the system only ever sees the URLs.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Allowed evidence file extensions, matching the intake form.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".mp4":  true,
}

// MaxFileSize caps a single evidence upload at 50MB.
const MaxFileSize = 50 << 20

// EvidenceStore saves raw file bytes and returns a stable URL.
type EvidenceStore interface {
	Save(originalName string, r io.Reader) (url string, err error)
}

// DiskStore writes evidence files to a local directory served under a
// fixed URL prefix.
type DiskStore struct {
	dir       string
	urlPrefix string
}

// NewDiskStore creates the uploads directory if needed.
func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &DiskStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Save writes the file under a random name, keeping the original
// extension. Rejects disallowed types and oversized files.
func (s *DiskStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file type %q not allowed (jpg, jpeg, png, pdf, mp4 only)", ext)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	if written > MaxFileSize {
		os.Remove(path)
		return "", fmt.Errorf("file exceeds the 50MB limit")
	}

	return s.urlPrefix + "/" + name, nil
}

// Dir returns the directory files are written to, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}
