// Package local stores photos as files in a directory.
package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/photostore"
)

// Store keeps photos under a base directory, one file per key.
type Store struct {
	basePath string
}

// New creates the base directory if needed and returns a Store rooted there.
func New(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("creating photo directory: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Save writes r to a new file and returns its key. A partial file is removed
// on failure.
func (s *Store) Save(ctx context.Context, mimeType string, r io.Reader) (string, error) {
	key, err := photostore.NewKey(mimeType)
	if err != nil {
		return "", err
	}
	filePath := filepath.Join(s.basePath, key)

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating photo file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close photo after write error", "key", key, "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove partial photo", "key", key, "error", rerr)
		}
		return "", fmt.Errorf("writing photo: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove partial photo", "key", key, "error", rerr)
		}
		return "", fmt.Errorf("closing photo: %w", err)
	}
	return key, nil
}

// Get opens the photo stored under key.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if err := photostore.ValidateKey(key); err != nil {
		return nil, "", err
	}

	f, err := os.Open(filepath.Join(s.basePath, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", photostore.ErrNotFound
		}
		return nil, "", fmt.Errorf("opening photo: %w", err)
	}
	return f, photostore.MIMEForKey(key), nil
}

// Delete removes the photo stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := photostore.ValidateKey(key); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.basePath, key)); err != nil {
		if os.IsNotExist(err) {
			return photostore.ErrNotFound
		}
		return fmt.Errorf("deleting photo: %w", err)
	}
	return nil
}
