package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FS is a filesystem implementation of Store: blobs live under a base
// directory and are served from a configured base URL.
type FS struct {
	baseDir string
	baseURL string
}

// NewFS creates a filesystem blob store rooted at baseDir.
func NewFS(baseDir, baseURL string) (*FS, error) {
	if baseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &FS{baseDir: baseDir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (f *FS) Upload(ctx context.Context, key string, r io.Reader) (string, error) {
	if strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	path := filepath.Join(f.baseDir, key)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	return f.baseURL + "/" + key, nil
}
