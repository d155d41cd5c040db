package fetcher

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Fetcher builds http requests and fetches files via http.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher returns new Fetcher.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
	}
}

// Download is the outcome of a conditional file download.
type Download struct {
	// Path is local file path.
	Path string
	// NotModified is true when server answered 304 and local copy was kept.
	NotModified bool
	// LastModified is remote modification time, zero when server didn't send it.
	LastModified time.Time
}

// FetchFile returns ReadCloser with feed file fetched from provided url or error.
// The caller is responsible for closing returned ReadCloser.
func (f *Fetcher) FetchFile(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("Accept", "application/xml")
	req.Header.Add("Accept-Encoding", "gzip")
	req.Header.Add("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, ErrStatusNotOK
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch mediaType {
	case "application/xml", "text/xml", "application/rss+xml", "application/atom+xml":
		if resp.Header.Get("Content-Encoding") == "gzip" {
			return decompressResponse(resp.Body)
		}
		return resp.Body, nil
	case "application/zip", "application/gzip", "application/x-gzip":
		return decompressResponse(resp.Body)
	default:
		_ = resp.Body.Close()
		return nil, ErrContentTypeNotSupported
	}
}

// DownloadFile downloads url into localPath.
// When modifiedSince is not zero request carries If-Modified-Since header and
// 304 response keeps existing local file untouched.
// Local file modification time is set to response's Last-Modified.
func (f *Fetcher) DownloadFile(ctx context.Context, url, localPath string, modifiedSince time.Time) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request for %s: %w", url, err)
	}

	req.Header.Add("User-Agent", f.userAgent)
	if !modifiedSince.IsZero() {
		req.Header.Add("If-Modified-Since", modifiedSince.UTC().Format(http.TimeFormat))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't download %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		return &Download{Path: localPath, NotModified: true, LastModified: modifiedSince}, nil
	case http.StatusOK:
	default:
		return nil, fmt.Errorf("can't download %s: %w (%s)", url, ErrStatusNotOK, resp.Status)
	}

	// zero when header is missing or malformed
	lastModified, _ := http.ParseTime(resp.Header.Get("Last-Modified"))

	if err := writeFile(localPath, resp.Body, lastModified); err != nil {
		return nil, fmt.Errorf("can't save %s: %w", url, err)
	}

	return &Download{Path: localPath, LastModified: lastModified}, nil
}

// writeFile writes body into temporary file renamed to path once complete,
// so interrupted download never leaves truncated file behind.
// Not zero modTime is set as file modification time.
func writeFile(path string, body io.Reader, modTime time.Time) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(file.Name())
		}
	}()

	if _, err = io.Copy(file, body); err != nil {
		_ = file.Close()
		return err
	}
	if err = file.Close(); err != nil {
		return err
	}

	if !modTime.IsZero() {
		if err = os.Chtimes(file.Name(), modTime, modTime); err != nil {
			return fmt.Errorf("can't set modification time of %s: %w", path, err)
		}
	}

	return os.Rename(file.Name(), path)
}

// decompressResponse returns io.ReadCloser with decompressed http response and error.
func decompressResponse(response io.ReadCloser) (io.ReadCloser, error) {
	decompressed, err := gzip.NewReader(response)
	if err != nil {
		_ = response.Close()
		return nil, fmt.Errorf("can't decompress response: %w", err)
	}

	return &decompressedReadCloser{
		compressed:   response,
		decompressed: decompressed,
	}, nil
}

// decompressedReadCloser wraps decompressed Reader and compressed ReadCloser.
// It reads from decompressed Reader, but closes compressed ReadCloser.
type decompressedReadCloser struct {
	compressed   io.ReadCloser
	decompressed io.Reader
}

// Read reads uncompressed bytes from underlying Reader into p.
// Returns number of read bytes and error.
func (r decompressedReadCloser) Read(p []byte) (n int, err error) {
	return r.decompressed.Read(p)
}

// Close closes underlying compressed ReadCloser.
func (r decompressedReadCloser) Close() error {
	return r.compressed.Close()
}
