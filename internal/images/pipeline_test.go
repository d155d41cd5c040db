package images_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MichalMitros/pdsa-generator/internal/fetcher"
	"github.com/MichalMitros/pdsa-generator/internal/images"
	"github.com/MichalMitros/pdsa-generator/internal/images/mocks"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models/modelstesting"
	"github.com/MichalMitros/pdsa-generator/internal/platform/objectstore"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var imagesModTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

type imageServer struct {
	*httptest.Server
	downloads   atomic.Int32
	notModified atomic.Int32
}

func newImageServer(t *testing.T) *imageServer {
	t.Helper()

	content := map[string][]byte{
		"/img/front.png": pngBytes(t, 400, 400),
		"/img/side.png":  pngBytes(t, 100, 400),
		"/img/back.png":  pngBytes(t, 400, 100),
	}

	s := &imageServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w}
		http.ServeContent(rec, r, r.URL.Path, imagesModTime, bytes.NewReader(data))
		if rec.status == http.StatusNotModified {
			s.notModified.Add(1)
		} else {
			s.downloads.Add(1)
		}
	}))

	return s
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func productWithImages(server *imageServer) *models.Product {
	p := modelstesting.FakeProduct(func(p *models.Product) {
		p.OfferID = "SKU1"
		p.ImageLink = server.URL + "/img/front.png"
		p.AdditionalImageLinks = []string{
			server.URL + "/img/side.png",
			server.URL + "/img/front.png",
			server.URL + "/img/back.png",
		}
	})
	return &p
}

func TestUnitProcessLocal(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	server := newImageServer(t)
	defer server.Close()
	client := server.Client()
	defer client.CloseIdleConnections()

	folder := t.TempDir()
	pipeline := images.NewPipeline(
		fetcher.NewFetcher(client, "test"),
		images.Config{Folder: folder, Workers: 2},
	)
	product := productWithImages(server)

	result, err := pipeline.Process(context.TODO(), product, images.Freshness{})

	require.NoError(t, err, "should process images")
	wantImages := []string{
		filepath.Join(folder, "SKU1", "front_sq.png"),
		filepath.Join(folder, "SKU1", "front_ls.png"),
		filepath.Join(folder, "SKU1", "side_sq.png"),
		filepath.Join(folder, "SKU1", "side_ls.png"),
		filepath.Join(folder, "SKU1", "back_sq.png"),
		filepath.Join(folder, "SKU1", "back_ls.png"),
	}
	assert.Equal(t, wantImages, result.Images, "should return variants in candidate order")
	assert.Empty(t, result.Touched, "shouldn't touch remote objects without store")
	for _, p := range wantImages {
		assert.FileExists(t, p, "should write variant")
	}
	assert.Equal(t, int32(3), server.downloads.Load(), "should download each image once")

	again, err := pipeline.Process(context.TODO(), product, images.Freshness{})

	require.NoError(t, err, "should process cached images")
	assert.Equal(t, result, again, "should return the same variants")
	assert.Equal(t, int32(3), server.notModified.Load(), "should reuse cached images")
	assert.Equal(t, int32(3), server.downloads.Load(), "shouldn't download cached images again")
}

func TestUnitProcessWithStore(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	server := newImageServer(t)
	defer server.Close()
	client := server.Client()
	defer client.CloseIdleConnections()

	ctx := context.TODO()
	folder := t.TempDir()
	store := objectstore.NewLocal(t.TempDir(), "https://cdn.example.com")
	stale := writeImage(t, "stale.png", pngBytes(t, 10, 10))
	require.NoError(t, store.Upload(ctx, stale, "images/OLD/stale.png"))
	require.NoError(t, store.Upload(ctx, stale, "output/output.csv"))

	pipeline := images.NewPipeline(
		fetcher.NewFetcher(client, "test"),
		images.Config{Folder: folder, Workers: 3, MaxCount: 2},
		images.WithStore(store),
	)
	product := productWithImages(server)

	freshness, err := pipeline.Freshness(ctx)
	require.NoError(t, err, "should list stored images")
	assert.Len(t, freshness, 1, "should know only stale image")

	result, err := pipeline.Process(ctx, product, freshness)

	require.NoError(t, err, "should process images")
	assert.Equal(t, []string{
		"https://cdn.example.com/images/SKU1/front_sq.png",
		"https://cdn.example.com/images/SKU1/front_ls.png",
		"https://cdn.example.com/images/SKU1/side_sq.png",
		"https://cdn.example.com/images/SKU1/side_ls.png",
	}, result.Images, "should return stored variant urls")
	wantTouched := []string{
		"images/SKU1/front.png", "images/SKU1/front_sq.png", "images/SKU1/front_ls.png",
		"images/SKU1/side.png", "images/SKU1/side_sq.png", "images/SKU1/side_ls.png",
	}
	assert.Equal(t, wantTouched, result.Touched, "should touch uploaded objects")
	assert.NoFileExists(t, filepath.Join(folder, "SKU1", "front.png"), "should remove uploaded local file")

	freshness, err = pipeline.Freshness(ctx)
	require.NoError(t, err, "should list stored images")

	cached, err := pipeline.Process(ctx, product, freshness)

	require.NoError(t, err, "should process cached images")
	assert.Equal(t, result, cached, "should return the same result for cached images")
	assert.Equal(t, int32(2), server.notModified.Load(), "should reuse stored images")
	assert.Equal(t, int32(2), server.downloads.Load(), "shouldn't download stored images again")

	touched := images.Touched{}
	touched.Add(cached.Touched...)
	deleted, err := pipeline.Sweep(ctx, touched)

	require.NoError(t, err, "should sweep unused images")
	assert.Equal(t, 1, deleted, "should delete only stale image")
	objects, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t,
		append(wantTouched, "output/output.csv"),
		lo.Map(objects, func(o objectstore.Object, _ int) string { return o.Name }),
		"should keep touched images and objects outside image prefix",
	)
}

func TestUnitProcessDryRun(t *testing.T) {
	downloader := mocks.NewDownloader(t)
	pipeline := images.NewPipeline(downloader, images.Config{Folder: "images", DryRun: true})
	product := modelstesting.FakeProduct(func(p *models.Product) {
		p.OfferID = "SKU1"
		p.ImageLink = "https://example.com/a.webp"
		p.AdditionalImageLinks = nil
	})

	result, err := pipeline.Process(context.TODO(), &product, images.Freshness{})

	require.NoError(t, err, "dry run shouldn't fail")
	assert.Equal(t,
		[]string{filepath.Join("images", "SKU1", "a_sq.png"), filepath.Join("images", "SKU1", "a_ls.png")},
		result.Images,
		"should return variant names only",
	)
}

func TestUnitProcessNoImages(t *testing.T) {
	pipeline := images.NewPipeline(mocks.NewDownloader(t), images.Config{})
	product := modelstesting.FakeProduct(func(p *models.Product) {
		p.ImageLink = ""
		p.AdditionalImageLinks = nil
	})

	result, err := pipeline.Process(context.TODO(), &product, images.Freshness{})

	require.NoError(t, err, "shouldn't fail without images")
	assert.Empty(t, result.Images, "should return no images")
}

func TestUnitProcessErrors(t *testing.T) {
	product := modelstesting.FakeProduct(func(p *models.Product) {
		p.OfferID = "SKU1"
		p.ImageLink = "https://example.com/a.png"
		p.AdditionalImageLinks = []string{"https://example.com/b.png"}
	})

	t.Run("download error", func(t *testing.T) {
		downloader := mocks.NewDownloader(t)
		downloader.On("DownloadFile", mock.Anything, mock.Anything, mock.Anything, time.Time{}).
			Return(nil, assert.AnError)

		pipeline := images.NewPipeline(downloader, images.Config{Folder: t.TempDir(), Workers: 2})

		_, err := pipeline.Process(context.TODO(), &product, images.Freshness{})

		require.ErrorIs(t, err, assert.AnError, "should return download error")
		require.ErrorContains(t, err, "https://example.com/", "error should name url")
	})

	t.Run("upload error", func(t *testing.T) {
		content := pngBytes(t, 300, 300)
		downloader := mocks.NewDownloader(t)
		downloader.On("DownloadFile", mock.Anything, "https://example.com/a.png", mock.Anything, time.Time{}).
			Return(func(_ context.Context, _, localPath string, _ time.Time) (*fetcher.Download, error) {
				require.NoError(t, os.MkdirAll(filepath.Dir(localPath), 0o755))
				require.NoError(t, os.WriteFile(localPath, content, 0o644))
				return &fetcher.Download{Path: localPath}, nil
			})
		store := mocks.NewObjectStore(t)
		store.On("Upload", mock.Anything, mock.Anything, "images/SKU1/a.png").Return(assert.AnError)

		pipeline := images.NewPipeline(
			downloader,
			images.Config{Folder: t.TempDir(), SkipAdditional: true},
			images.WithStore(store),
		)

		_, err := pipeline.Process(context.TODO(), &product, images.Freshness{})

		require.ErrorIs(t, err, assert.AnError, "should return upload error")
		require.ErrorContains(t, err, "https://example.com/a.png", "error should name url")
	})

	t.Run("sweep delete error", func(t *testing.T) {
		store := mocks.NewObjectStore(t)
		store.On("List", mock.Anything, "images/").
			Return([]objectstore.Object{{Name: "images/OLD/a.png"}}, nil)
		store.On("Delete", mock.Anything, "images/OLD/a.png").Return(assert.AnError)

		pipeline := images.NewPipeline(mocks.NewDownloader(t), images.Config{}, images.WithStore(store))

		_, err := pipeline.Sweep(context.TODO(), images.Touched{})

		require.ErrorIs(t, err, assert.AnError, "should return delete error")
	})
}

func TestUnitCandidates(t *testing.T) {
	product := modelstesting.FakeProduct(func(p *models.Product) {
		p.ImageLink = "https://example.com/a.jpg"
		p.AdditionalImageLinks = []string{
			"https://example.com/b.gif",
			"https://example.com/a.jpg",
			"",
			"https://example.com/c.jpg",
			"https://example.com/d.jpg",
		}
	})
	gifs, err := images.ParseFilter("*.gif")
	require.NoError(t, err)

	tests := map[string]struct {
		skipAdditional bool
		filter         *images.Filter
		maxCount       int
		want           []string
	}{
		"all": {
			want: []string{
				"https://example.com/a.jpg",
				"https://example.com/b.gif",
				"https://example.com/c.jpg",
				"https://example.com/d.jpg",
			},
		},
		"skip additional": {
			skipAdditional: true,
			want:           []string{"https://example.com/a.jpg"},
		},
		"cap after filter": {
			filter:   gifs,
			maxCount: 2,
			want:     []string{"https://example.com/a.jpg", "https://example.com/c.jpg"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := images.Candidates(&product, tt.skipAdditional, tt.filter, tt.maxCount)

			assert.Equal(t, tt.want, got, "should return correct candidates")
		})
	}
}
