package output_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/MichalMitros/pdsa-generator/internal/output"
	"github.com/MichalMitros/pdsa-generator/internal/output/mocks"
	"github.com/MichalMitros/pdsa-generator/internal/platform/objectstore"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func archiveInput(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "output.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("campaigns"), 0o644))

	imagesDir := filepath.Join(dir, "images")
	require.NoError(t, os.MkdirAll(filepath.Join(imagesDir, "SKU1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, "SKU1", "a_sq.png"), []byte("square"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, "SKU1", "a_ls.png"), []byte("landscape"), 0o644))

	return csvPath, imagesDir
}

func zipContent(t *testing.T, r io.ReaderAt, size int64) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(r, size)
	require.NoError(t, err, "should be valid zip")

	content := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		content[f.Name] = string(data)
	}

	return content
}

var wantArchive = map[string]string{
	"output.csv":           "campaigns",
	"images/SKU1/a_sq.png": "square",
	"images/SKU1/a_ls.png": "landscape",
}

func TestUnitArchiveInline(t *testing.T) {
	csvPath, imagesDir := archiveInput(t)
	dst := filepath.Join(t.TempDir(), "output.zip")

	archive, err := output.NewArchiver(output.DefaultInlineLimit).Archive(
		context.TODO(),
		dst,
		output.Item{Path: csvPath, Name: "output.csv"},
		output.Item{Path: imagesDir, Name: "images"},
	)

	require.NoError(t, err, "should build archive")
	assert.Equal(t, int64(len("campaigns")+len("square")+len("landscape")), archive.InputSize, "should sum input size")
	assert.Empty(t, archive.Path, "shouldn't write archive file")
	assert.NoFileExists(t, dst, "shouldn't write archive file")
	assert.Equal(t, wantArchive, zipContent(t, bytes.NewReader(archive.Inline), int64(len(archive.Inline))),
		"should archive all files",
	)
}

func TestUnitArchiveStreamed(t *testing.T) {
	csvPath, imagesDir := archiveInput(t)
	dst := filepath.Join(t.TempDir(), "output.zip")
	store := objectstore.NewLocal(t.TempDir(), "https://cdn.example.com")

	archive, err := output.NewArchiver(10, output.WithUploader(store, "archives")).Archive(
		context.TODO(),
		dst,
		output.Item{Path: csvPath, Name: "output.csv"},
		output.Item{Path: imagesDir, Name: "images"},
	)

	require.NoError(t, err, "should build archive")
	assert.Nil(t, archive.Inline, "shouldn't build archive in memory")
	assert.Equal(t, dst, archive.Path, "should stream archive to file")
	assert.Equal(t, "https://cdn.example.com/archives/output.zip", archive.URL, "should upload archive")

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, wantArchive, zipContent(t, f, info.Size()), "should archive all files")

	objects, err := store.List(context.TODO(), "archives/")
	require.NoError(t, err)
	assert.Equal(t, []string{"archives/output.zip"},
		lo.Map(objects, func(o objectstore.Object, _ int) string { return o.Name }),
		"should store archive",
	)
}

func TestUnitArchiveMissingInput(t *testing.T) {
	_, err := output.NewArchiver(output.DefaultInlineLimit).Archive(
		context.TODO(),
		filepath.Join(t.TempDir(), "output.zip"),
		output.Item{Path: filepath.Join(t.TempDir(), "missing.csv"), Name: "output.csv"},
	)

	require.ErrorIs(t, err, os.ErrNotExist, "should fail on missing input")
}

func TestUnitArchiveUploadError(t *testing.T) {
	csvPath, _ := archiveInput(t)
	dst := filepath.Join(t.TempDir(), "output.zip")
	uploader := mocks.NewUploader(t)
	uploader.On("Upload", mock.Anything, dst, "archives/output.zip").Return(assert.AnError)

	_, err := output.NewArchiver(0, output.WithUploader(uploader, "archives")).Archive(
		context.TODO(),
		dst,
		output.Item{Path: csvPath, Name: "output.csv"},
	)

	require.ErrorIs(t, err, assert.AnError, "should return upload error")
	require.ErrorContains(t, err, "can't upload archive", "should wrap upload error")
	uploader.AssertNotCalled(t, "URL", mock.Anything)
}
