package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type LocalStore struct {
	dir        string
	publicPath string
}

func NewLocalStore(dir, publicPath string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &LocalStore{
		dir:        dir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
	}, nil
}

func (s *LocalStore) path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	return filepath.Join(s.dir, filepath.FromSlash(key)), nil
}

// Put writes through a temporary file so readers never see a partial object.
func (s *LocalStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll -> %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp -> %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("io.Copy -> %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close -> %w", err)
	}

	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("os.Rename -> %w", err)
	}

	return nil
}

func (s *LocalStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrObjectNotFound
		}

		return nil, fmt.Errorf("os.Open -> %w", err)
	}

	return f, nil
}

func (s *LocalStore) URL(_ context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	return s.publicPath + "/" + key, nil
}

// Delete is idempotent.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}
