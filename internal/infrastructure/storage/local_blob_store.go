package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalBlobStore is a filesystem-backed stand-in for the external CDN
// upload service. It satisfies the same Upload contract: takes bytes,
// returns a stable URL.
type LocalBlobStore struct {
	dir     string
	baseURL string
}

// NewLocalBlobStore creates a blob store rooted at dir, serving files
// under baseURL
func NewLocalBlobStore(dir, baseURL string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob dir: %w", err)
	}
	return &LocalBlobStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload stores the content under a random name, keeping the original
// extension, and returns the public URL
func (s *LocalBlobStore) Upload(ctx context.Context, content io.Reader, fileName, contentType string) (string, error) {
	name := uuid.New().String() + sanitizeExt(fileName)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

func sanitizeExt(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".pdf":
		return ext
	}
	return ""
}
