package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local stores objects as files under root directory.
type Local struct {
	root    string
	baseURL string
}

// NewLocal returns new Local store. Object URLs are prefixed with baseURL
// or point to files under root when baseURL is empty.
func NewLocal(root, baseURL string) *Local {
	return &Local{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload copies local file into the store.
func (s *Local) Upload(_ context.Context, localPath, name string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("can't open file %q: %w", localPath, err)
	}
	defer src.Close()

	dstPath := s.path(name)
	if err = os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("can't upload object %q: %w", name, err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("can't upload object %q: %w", name, err)
	}
	if _, err = io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("can't upload object %q: %w", name, err)
	}

	return dst.Close()
}

// List returns all objects with provided name prefix.
func (s *Local) List(_ context.Context, prefix string) ([]Object, error) {
	var objects []Object

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if !strings.HasPrefix(name, prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, Object{Name: name, Updated: info.ModTime()})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't list objects with prefix %q: %w", prefix, err)
	}

	return objects, nil
}

// Delete removes object with provided name.
func (s *Local) Delete(_ context.Context, name string) error {
	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("can't delete object %q: %w", name, ErrNotExist)
	}
	if err != nil {
		return fmt.Errorf("can't delete object %q: %w", name, err)
	}

	return nil
}

// Open returns reader of object with provided name.
func (s *Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("can't open object %q: %w", name, ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("can't open object %q: %w", name, err)
	}

	return f, nil
}

// URL returns URL of object.
func (s *Local) URL(name string) string {
	if s.baseURL == "" {
		return s.path(name)
	}
	return s.baseURL + "/" + path.Clean(name)
}

func (s *Local) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+name)))
}
