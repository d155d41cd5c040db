package reconciler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/MichalMitros/pdsa-generator/internal/output"
	"github.com/MichalMitros/pdsa-generator/internal/platform/objectstore"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Opener --filename opener.go

// Opener opens previously generated output.
type Opener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Key identifies ad of previous output.
type Key struct {
	Campaign string
	AdGroup  string
	// Templated is set for templated ad written ahead of default ad of ad group.
	Templated bool
}

// Previous maps ad group to its previously rendered description.
type Previous map[Key]string

// Files opens previous output from local filesystem.
type Files struct{}

// Open opens local file.
func (Files) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Reconciler reads previously rendered descriptions.
type Reconciler struct {
	opener Opener
	logger *zerolog.Logger
}

// NewReconciler returns new Reconciler.
func NewReconciler(opener Opener, logger *zerolog.Logger) *Reconciler {
	return &Reconciler{
		opener: opener,
		logger: logger,
	}
}

// Load returns descriptions of previous output named name.
// Missing or not UTF-16 encoded output gives empty Previous.
// The last ad of ad group is its default ad, the first of two ads is templated one.
// Ads with empty description are skipped.
func (r *Reconciler) Load(ctx context.Context, name string) (Previous, error) {
	previous := Previous{}

	f, err := r.opener.Open(ctx, name)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, objectstore.ErrNotExist) {
		r.logger.Debug().Str("path", name).Msg("no previous output")
		return previous, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't open previous output: %w", err)
	}
	defer f.Close()

	table, err := output.ReadTable(f)
	if errors.Is(err, output.ErrBadEncoding) {
		r.logger.Warn().Err(err).Str("path", name).Msg("previous output can't be decoded")
		return previous, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't read previous output: %w", err)
	}

	campaignIx := lo.IndexOf(table.Header, output.ColumnCampaign)
	adGroupIx := lo.IndexOf(table.Header, output.ColumnAdGroup)
	adTypeIx := lo.IndexOf(table.Header, output.ColumnAdType)
	descriptionIx := lo.IndexOf(table.Header, output.ColumnDescription)
	if campaignIx < 0 || adGroupIx < 0 || adTypeIx < 0 || descriptionIx < 0 {
		r.logger.Warn().Str("path", name).Msg("previous output has unknown columns")
		return previous, nil
	}

	ads := map[Key][]string{}
	for _, row := range table.Rows {
		if len(row) <= max(campaignIx, adGroupIx, adTypeIx, descriptionIx) || row[adTypeIx] == "" {
			continue
		}
		key := Key{Campaign: row[campaignIx], AdGroup: row[adGroupIx]}
		ads[key] = append(ads[key], row[descriptionIx])
	}

	for key, descriptions := range ads {
		previous.add(key, descriptions[len(descriptions)-1])
		if len(descriptions) > 1 {
			key.Templated = true
			previous.add(key, descriptions[0])
		}
	}

	return previous, nil
}

func (p Previous) add(key Key, desc string) {
	if desc != "" {
		p[key] = desc
	}
}
