package images

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/MichalMitros/pdsa-generator/internal/fetcher"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/MichalMitros/pdsa-generator/internal/platform/objectstore"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Downloader --filename downloader.go
//go:generate mockery --name ObjectStore --filename objectstore.go

// DefaultPrefix is default object name prefix of uploaded images.
const DefaultPrefix = "images"

// Downloader downloads files with conditional requests.
type Downloader interface {
	DownloadFile(ctx context.Context, url, localPath string, modifiedSince time.Time) (*fetcher.Download, error)
}

// ObjectStore is remote store of processed images.
type ObjectStore interface {
	// Upload uploads local file as object with provided name.
	Upload(ctx context.Context, localPath, name string) error
	// List returns objects with provided name prefix.
	List(ctx context.Context, prefix string) ([]objectstore.Object, error)
	// Delete deletes object with provided name.
	Delete(ctx context.Context, name string) error
	// URL returns URL of object with provided name.
	URL(name string) string
}

// Config configures image processing.
type Config struct {
	// Folder is local folder of downloaded and generated images.
	Folder string
	// Prefix is object name prefix used in remote store.
	Prefix         string
	MaxDimension   int
	MaxCount       int
	SkipAdditional bool
	Filter         *Filter
	// DryRun makes Process return variant names without any downloading.
	DryRun bool
	// Workers limits concurrent downloads of one product's images.
	Workers int
}

// Freshness maps remote object name to its last modification time.
type Freshness map[string]time.Time

// Touched is a set of remote object names confirmed in use.
type Touched map[string]struct{}

// Add adds names to the set.
func (t Touched) Add(names ...string) {
	for _, name := range names {
		t[name] = struct{}{}
	}
}

// Result is outcome of processing product's images.
type Result struct {
	// Images are square and landscape variant references of every image, in candidate order.
	Images []string
	// Touched are remote object names used by the product.
	Touched []string
}

// Option is custom configuration of Pipeline.
type Option func(p *Pipeline)

// Pipeline downloads and normalizes product images.
type Pipeline struct {
	downloader Downloader
	store      ObjectStore
	cfg        Config
	logger     *zerolog.Logger
}

// NewPipeline returns new Pipeline.
func NewPipeline(downloader Downloader, cfg Config, ops ...Option) *Pipeline {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.MaxDimension <= 0 {
		cfg.MaxDimension = DefaultMaxDimension
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	nop := zerolog.Nop()
	p := &Pipeline{
		downloader: downloader,
		cfg:        cfg,
		logger:     &nop,
	}

	for _, op := range ops {
		op(p)
	}

	return p
}

// Freshness returns modification times of remote objects under image prefix.
// It is empty without remote store or in dry run.
func (p *Pipeline) Freshness(ctx context.Context) (Freshness, error) {
	freshness := Freshness{}
	if p.store == nil || p.cfg.DryRun {
		return freshness, nil
	}

	objects, err := p.store.List(ctx, p.cfg.Prefix+"/")
	if err != nil {
		return nil, fmt.Errorf("can't list stored images: %w", err)
	}

	for _, o := range objects {
		freshness[o.Name] = o.Updated
	}

	return freshness, nil
}

// Process returns normalized image variants of product.
// More than one image is processed concurrently, results keep candidate order.
func (p *Pipeline) Process(ctx context.Context, product *models.Product, freshness Freshness) (*Result, error) {
	candidates := Candidates(product, p.cfg.SkipAdditional, p.cfg.Filter, p.cfg.MaxCount)
	names := fileNames(candidates)
	slots := make([]*Result, len(candidates))

	switch len(candidates) {
	case 0:
	case 1:
		r, err := p.processImage(ctx, product.OfferID, candidates[0], names[0], freshness)
		if err != nil {
			return nil, err
		}
		slots[0] = r
	default:
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(p.cfg.Workers)

		for ix := range candidates {
			eg.Go(func() error {
				r, err := p.processImage(egCtx, product.OfferID, candidates[ix], names[ix], freshness)
				if err != nil {
					return err
				}
				slots[ix] = r
				return nil
			})
		}

		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	result := &Result{}
	for _, r := range slots {
		result.Images = append(result.Images, r.Images...)
		result.Touched = append(result.Touched, r.Touched...)
	}

	return result, nil
}

func (p *Pipeline) processImage(
	ctx context.Context,
	offerID, url, name string,
	freshness Freshness,
) (*Result, error) {
	localPath := filepath.Join(p.cfg.Folder, offerID, name)
	objectName := path.Join(p.cfg.Prefix, offerID, name)
	localVariants := VariantPaths(localPath)
	objectVariants := VariantPaths(objectName)
	objectNames := []string{objectName, objectVariants.Square, objectVariants.Landscape}

	if p.cfg.DryRun {
		return &Result{Images: p.references(localVariants, objectVariants)}, nil
	}

	download, err := p.downloader.DownloadFile(ctx, url, localPath, p.modifiedSince(localPath, objectNames, freshness))
	if err != nil {
		return nil, fmt.Errorf("can't download image %s: %w", url, err)
	}

	logger := p.logger.With().Str("url", url).Str("offerID", offerID).Logger()

	if download.NotModified {
		logger.Debug().Msg("image reused from cache")
		if p.store != nil {
			return &Result{Images: p.references(localVariants, objectVariants), Touched: objectNames}, nil
		}
		if exists(localVariants.Square) && exists(localVariants.Landscape) {
			return &Result{Images: p.references(localVariants, objectVariants)}, nil
		}
	}

	if _, err = Normalize(localPath, p.cfg.MaxDimension); err != nil {
		return nil, fmt.Errorf("can't normalize image %s: %w", url, err)
	}

	if p.store == nil {
		return &Result{Images: p.references(localVariants, objectVariants)}, nil
	}

	localPaths := []string{localPath, localVariants.Square, localVariants.Landscape}
	for ix := range localPaths {
		if err = p.store.Upload(ctx, localPaths[ix], objectNames[ix]); err != nil {
			return nil, fmt.Errorf("can't upload image %s: %w", url, err)
		}
		if err = os.Remove(localPaths[ix]); err != nil {
			return nil, fmt.Errorf("can't remove uploaded image %q: %w", localPaths[ix], err)
		}
	}
	logger.Debug().Msg("image uploaded")

	return &Result{Images: p.references(localVariants, objectVariants), Touched: objectNames}, nil
}

// modifiedSince returns last known modification time of image.
// With remote store the image is known only when all its objects are stored.
func (p *Pipeline) modifiedSince(localPath string, objectNames []string, freshness Freshness) time.Time {
	if p.store == nil {
		info, err := os.Stat(localPath)
		if err != nil {
			return time.Time{}
		}
		return info.ModTime()
	}

	for _, name := range objectNames {
		if _, ok := freshness[name]; !ok {
			return time.Time{}
		}
	}

	return freshness[objectNames[0]]
}

func (p *Pipeline) references(local, object Variants) []string {
	if p.store == nil {
		return []string{local.Square, local.Landscape}
	}
	return []string{p.store.URL(object.Square), p.store.URL(object.Landscape)}
}

// Sweep deletes stored images under image prefix which are not touched.
// Returns number of deleted objects.
func (p *Pipeline) Sweep(ctx context.Context, touched Touched) (int, error) {
	if p.store == nil || p.cfg.DryRun {
		return 0, nil
	}

	objects, err := p.store.List(ctx, p.cfg.Prefix+"/")
	if err != nil {
		return 0, fmt.Errorf("can't list stored images: %w", err)
	}

	deleted := 0
	for _, o := range objects {
		if _, ok := touched[o.Name]; ok {
			continue
		}

		if err = p.store.Delete(ctx, o.Name); err != nil && !errors.Is(err, objectstore.ErrNotExist) {
			return deleted, fmt.Errorf("can't delete unused image: %w", err)
		}
		deleted++
		p.logger.Debug().Str("object", o.Name).Msg("unused image deleted")
	}

	return deleted, nil
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return !errors.Is(err, fs.ErrNotExist)
}

// WithStore sets remote store of processed images.
func WithStore(store ObjectStore) Option {
	return func(p *Pipeline) {
		p.store = store
	}
}

// WithLogger sets Pipeline's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}
