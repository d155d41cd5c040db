package output

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

//go:generate mockery --name Uploader --filename uploader.go

// DefaultInlineLimit is default maximal total size of archived files built in memory.
const DefaultInlineLimit = 32 << 20

// Uploader uploads files to remote store.
type Uploader interface {
	Upload(ctx context.Context, localPath, name string) error
	URL(name string) string
}

// Item is a file or a directory added to archive under Name.
type Item struct {
	Path string
	Name string
}

// Archive is a built zip archive.
type Archive struct {
	// Inline is archive content when it was built in memory.
	Inline []byte
	// Path is local path of streamed archive.
	Path string
	// URL is remote URL of uploaded archive.
	URL string
	// InputSize is total size of archived files.
	InputSize int64
}

// ArchiverOption is custom configuration of Archiver.
type ArchiverOption func(a *Archiver)

// Archiver packs output files into zip archive.
type Archiver struct {
	inlineLimit int64
	uploader    Uploader
	prefix      string
}

// NewArchiver returns new Archiver. Archives with total input size above inlineLimit
// are streamed to file instead of built in memory.
func NewArchiver(inlineLimit int64, ops ...ArchiverOption) *Archiver {
	a := &Archiver{inlineLimit: inlineLimit}
	for _, op := range ops {
		op(a)
	}

	return a
}

type archiveEntry struct {
	path string
	name string
	size int64
}

// Archive builds zip archive of items. Large archives are streamed into dst
// and uploaded when Archiver has an Uploader.
func (a *Archiver) Archive(ctx context.Context, dst string, items ...Item) (*Archive, error) {
	entries, total, err := collectEntries(items)
	if err != nil {
		return nil, err
	}

	if total <= a.inlineLimit {
		var buf bytes.Buffer
		if err = writeZip(ctx, &buf, entries); err != nil {
			return nil, err
		}
		return &Archive{Inline: buf.Bytes(), InputSize: total}, nil
	}

	if err = os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("can't create archive directory: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("can't create archive: %w", err)
	}
	if err = writeZip(ctx, f, entries); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err = f.Close(); err != nil {
		return nil, fmt.Errorf("can't close archive: %w", err)
	}

	archive := &Archive{Path: dst, InputSize: total}
	if a.uploader == nil {
		return archive, nil
	}

	name := path.Join(a.prefix, filepath.Base(dst))
	if err = a.uploader.Upload(ctx, dst, name); err != nil {
		return nil, fmt.Errorf("can't upload archive: %w", err)
	}
	archive.URL = a.uploader.URL(name)

	return archive, nil
}

func collectEntries(items []Item) ([]archiveEntry, int64, error) {
	var (
		entries []archiveEntry
		total   int64
	)

	for _, item := range items {
		err := filepath.WalkDir(item.Path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(item.Path, p)
			if err != nil {
				return err
			}

			name := item.Name
			if rel != "." {
				name = path.Join(item.Name, filepath.ToSlash(rel))
			}
			entries = append(entries, archiveEntry{path: p, name: name, size: info.Size()})
			total += info.Size()

			return nil
		})
		if err != nil {
			return nil, 0, fmt.Errorf("can't collect archive entries of %q: %w", item.Path, err)
		}
	}

	return entries, total, nil
}

func writeZip(ctx context.Context, w io.Writer, entries []archiveEntry) error {
	zw := zip.NewWriter(w)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		ew, err := zw.Create(entry.name)
		if err != nil {
			return fmt.Errorf("can't add %q to archive: %w", entry.name, err)
		}
		if err = copyFile(ew, entry.path); err != nil {
			return fmt.Errorf("can't add %q to archive: %w", entry.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("can't close archive: %w", err)
	}

	return nil
}

func copyFile(w io.Writer, p string) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

// WithUploader sets Uploader of streamed archives. Uploaded objects are named prefix/<archive file name>.
func WithUploader(uploader Uploader, prefix string) ArchiverOption {
	return func(a *Archiver) {
		a.uploader = uploader
		a.prefix = prefix
	}
}
