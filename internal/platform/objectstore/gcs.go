package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCS stores objects in Google Cloud Storage bucket.
type GCS struct {
	bucket *storage.BucketHandle
	name   string
}

// NewGCS returns new GCS store for given bucket.
func NewGCS(client *storage.Client, bucket string) *GCS {
	return &GCS{
		bucket: client.Bucket(bucket),
		name:   bucket,
	}
}

// Upload uploads local file as object with provided name.
func (s *GCS) Upload(ctx context.Context, localPath, name string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("can't open file %q: %w", localPath, err)
	}
	defer f.Close()

	w := s.bucket.Object(name).NewWriter(ctx)
	if _, err = io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("can't upload object %q: %w", name, err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("can't upload object %q: %w", name, err)
	}

	return nil
}

// List returns all objects with provided name prefix.
func (s *GCS) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object

	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return objects, nil
		}
		if err != nil {
			return nil, fmt.Errorf("can't list objects with prefix %q: %w", prefix, err)
		}

		objects = append(objects, Object{Name: attrs.Name, Updated: attrs.Updated})
	}
}

// Delete deletes object with provided name.
func (s *GCS) Delete(ctx context.Context, name string) error {
	err := s.bucket.Object(name).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("can't delete object %q: %w", name, ErrNotExist)
	}
	if err != nil {
		return fmt.Errorf("can't delete object %q: %w", name, err)
	}

	return nil
}

// Open returns reader of object with provided name.
func (s *GCS) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := s.bucket.Object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("can't open object %q: %w", name, ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("can't open object %q: %w", name, err)
	}

	return r, nil
}

// URL returns public URL of object.
func (s *GCS) URL(name string) string {
	return (&url.URL{
		Scheme: "https",
		Host:   "storage.googleapis.com",
		Path:   "/" + s.name + "/" + name,
	}).String()
}
