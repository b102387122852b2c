// Package storage persists uploaded document images. The local backend keeps
// files on disk and serves them from the API's /uploads path; a cloud backend
// can replace it behind the same interface.
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

// Store saves and removes uploaded files, addressing them by public URL.
type Store interface {
	// Save writes the file and returns its public URL. The original filename
	// contributes only its extension; the stored name is a fresh UUID.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// LocalStore keeps uploads on the local filesystem under uploadsDir and
// serves them at baseURL/uploads/.
type LocalStore struct {
	baseURL    string
	uploadsDir string
}

func NewLocalStore(baseURL, uploadsDir string) (*LocalStore, error) {
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &LocalStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		uploadsDir: uploadsDir,
	}, nil
}

func (s *LocalStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	key := uuid.NewString() + ext

	path := filepath.Join(s.uploadsDir, key)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return s.baseURL + "/uploads/" + key, nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	key := filepath.Base(url)
	// Guard against traversal out of the uploads directory.
	if key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	err := os.Remove(filepath.Join(s.uploadsDir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Dir returns the directory served at /uploads.
func (s *LocalStore) Dir() string { return s.uploadsDir }
