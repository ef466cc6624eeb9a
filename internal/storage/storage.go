// Package storage keeps gemstone images and invoice documents on the local
// disk or in an S3 bucket behind one interface.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sphenegem/gem-inventory-api/internal/config"
)

const MaxImageSize = 10 << 20

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
	ErrInvalidImage   = errors.New("invalid image")
)

var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New builds the store selected by conf.Driver.
func New(ctx context.Context, conf *config.StorageConfig) (ObjectStore, error) {
	switch conf.Driver {
	case "s3":
		return NewS3Store(ctx, conf)
	case "local":
		return NewLocalStore(conf.LocalDir, conf.PublicPath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Driver)
	}
}

// NewImageKey validates an uploaded image and returns a fresh random key for
// it together with its content type.
func NewImageKey(filename string, size int64) (string, string, error) {
	if size <= 0 {
		return "", "", fmt.Errorf("%w: empty file", ErrInvalidImage)
	}
	if size > MaxImageSize {
		return "", "", fmt.Errorf("%w: larger than %d MB", ErrInvalidImage, MaxImageSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := contentTypes[ext]
	if !ok || ext == ".pdf" {
		return "", "", fmt.Errorf("%w: only png, jpg, jpeg and webp files are accepted", ErrInvalidImage)
	}

	return "gem_" + uuid.NewString() + ext, contentType, nil
}

// IsImageKey reports whether key names a single image object at the store
// root, which is all the public uploads route may serve.
func IsImageKey(key string) bool {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return false
	}

	ct, ok := contentTypes[strings.ToLower(filepath.Ext(key))]

	return ok && ct != "application/pdf"
}

// ContentType guesses the MIME type from the key extension.
func ContentType(key string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(key))]; ok {
		return ct
	}

	return "application/octet-stream"
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return ErrInvalidKey
		}
	}

	return nil
}
