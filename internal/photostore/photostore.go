// Package photostore stores processed item photos under opaque keys.
package photostore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no photo exists under a key.
var ErrNotFound = errors.New("photo not found")

// ErrInvalidKey is returned for keys this package did not generate.
var ErrInvalidKey = errors.New("invalid photo key")

// Store saves and serves photo bytes.
type Store interface {
	Save(ctx context.Context, mimeType string, r io.Reader) (key string, err error)
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

// NewKey returns a fresh time-ordered key with an extension for mimeType.
func NewKey(mimeType string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating photo key: %w", err)
	}
	return id.String() + ExtForMIME(mimeType), nil
}

// ValidateKey accepts only keys of the form <uuid>.<ext> produced by NewKey,
// which rules out path traversal and bucket prefix tricks.
func ValidateKey(key string) error {
	ext := path.Ext(key)
	if MIMEForKey(key) == "" || ext == "" {
		return ErrInvalidKey
	}
	if _, err := uuid.Parse(strings.TrimSuffix(key, ext)); err != nil || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}

// ExtForMIME maps an image MIME type to a file extension.
func ExtForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// MIMEForKey returns the image MIME type implied by key's extension, or ""
// for unknown extensions.
func MIMEForKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}
