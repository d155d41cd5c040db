package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Fetcher --filename fetcher.go
//go:generate mockery --name Decoder --filename decoder.go

// Fetcher fetches feed file.
type Fetcher interface {
	FetchFile(context.Context, string) (io.ReadCloser, error)
}

// Decoder decodes feed file into parsing results.
type Decoder interface {
	Decode(context.Context, io.Reader, chan<- models.ParsingResult) error
	Schema() []models.SchemaField
}

// Option is custom configuration of Loader.
type Option func(l *Loader)

// Loader loads product catalog from feed.
type Loader struct {
	fetcher Fetcher
	decoder Decoder
	rules   LabelRules
	logger  *zerolog.Logger
}

// NewLoader returns new Loader.
func NewLoader(fetcher Fetcher, decoder Decoder, ops ...Option) *Loader {
	nop := zerolog.Nop()
	l := &Loader{
		fetcher: fetcher,
		decoder: decoder,
		logger:  &nop,
	}

	for _, op := range ops {
		op(l)
	}

	return l
}

// Load fetches and decodes feed from feedURL. Items which can't be decoded are skipped
// and counted as failed. Products keep feed order.
func (l *Loader) Load(ctx context.Context, feedURL string) (*models.Catalog, error) {
	xmlFile, err := l.fetcher.FetchFile(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("can't fetch feed file: %w", err)
	}
	defer xmlFile.Close()

	catalog := &models.Catalog{Schema: l.decoder.Schema()}
	parsingResults := make(chan models.ParsingResult)

	errGroup, egCtx := errgroup.WithContext(ctx)

	// decode feed file.
	errGroup.Go(func() error {
		defer close(parsingResults)
		if err := l.decoder.Decode(egCtx, xmlFile, parsingResults); err != nil {
			return fmt.Errorf("can't decode feed file: %w", err)
		}
		return nil
	})

	// collect products.
	errGroup.Go(func() error {
		for result := range parsingResults {
			if result.Error != nil {
				catalog.FailedItems++
				l.logger.Warn().Err(result.Error).Msg("feed item skipped")
				continue
			}

			product := result.Product
			l.rules.Apply(&product)
			catalog.Products = append(catalog.Products, product)
		}
		return nil
	})

	if err = errGroup.Wait(); err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("feed", feedURL).
		Int("products", len(catalog.Products)).
		Int("failed", catalog.FailedItems).
		Msg("catalog loaded")

	return catalog, nil
}

// WithRules sets Loader's label rules.
func WithRules(rules LabelRules) Option {
	return func(l *Loader) {
		l.rules = rules
	}
}

// WithLogger sets Loader's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}
