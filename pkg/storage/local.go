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

type localStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage creates a disk-backed implementation of ImageStorage. Files
// land under baseDir/<folder>/ and are served back as absolute URLs rooted at
// baseURL (e.g. https://host:8088/static).
func NewLocalStorage(baseDir, baseURL string) (ImageStorage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("local storage base directory is empty")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &localStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *localStorage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", folder, err)
	}

	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, folder, name), nil
}

func (s *localStorage) DeleteImage(ctx context.Context, fileURL string) error {
	idx := strings.Index(fileURL, s.baseURL)
	if idx == -1 {
		return fmt.Errorf("url %s is not served by this storage", fileURL)
	}

	rel := strings.TrimPrefix(fileURL[idx+len(s.baseURL):], "/")
	// Keep the delete inside the storage root.
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("invalid storage path in url %s", fileURL)
	}

	if err := os.Remove(filepath.Join(s.baseDir, rel)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
