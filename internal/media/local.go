// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/olegiv/mirror-creative/internal/util"
)

// LocalStore reads objects from a directory. Lookups go through an os.Root,
// so symlinks and ".." cannot reach files outside the directory.
type LocalStore struct {
	root *os.Root
}

// NewLocalStore opens dir, creating it when missing.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media dir: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("opening media dir: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Get reads the object with the given name.
func (s *LocalStore) Get(_ context.Context, name string) ([]byte, error) {
	name, err := util.CleanObjectName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	f, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return readLimited(f, name)
}

// Close releases the directory handle.
func (s *LocalStore) Close() error {
	return s.root.Close()
}

// readLimited reads r up to MaxObjectSize.
func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(data) > MaxObjectSize {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, name)
	}
	return data, nil
}

var _ Store = (*LocalStore)(nil)
