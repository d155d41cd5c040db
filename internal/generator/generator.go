package generator

import (
	"context"
	"fmt"

	"github.com/MichalMitros/pdsa-generator/internal/adcustomizer"
	"github.com/MichalMitros/pdsa-generator/internal/description"
	"github.com/MichalMitros/pdsa-generator/internal/images"
	"github.com/MichalMitros/pdsa-generator/internal/labels"
	"github.com/MichalMitros/pdsa-generator/internal/pagefeed"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/MichalMitros/pdsa-generator/internal/reconciler"
	"github.com/rs/zerolog"
)

//go:generate mockery --name ImagePipeline --filename imagepipeline.go
//go:generate mockery --name PreviousLoader --filename previousloader.go

// Defaults of generated campaigns.
const (
	DefaultProductCampaignName  = "PDSA Products"
	DefaultCategoryCampaignName = "PDSA Categories"
	DefaultPageFeedName         = "PDSA_Pagefeed"
	DefaultAdCustomizerFeedName = "PDSA_Product_Customizers"
)

// Values of generated rows.
const (
	TargetingSourcePageFeed = "Page feed"
	AdGroupBid              = "0.01"
	AdGroupTypeDynamic      = "Dynamic"
	TargetConditionLabel    = "CUSTOM_LABEL"
	AdTypeExpandedDSA       = "Expanded Dynamic Search Ad"
)

// ImagePipeline produces normalized product images.
type ImagePipeline interface {
	// Freshness returns modification times of stored images.
	Freshness(ctx context.Context) (images.Freshness, error)
	// Process returns image variants of product.
	Process(ctx context.Context, product *models.Product, freshness images.Freshness) (*images.Result, error)
	// Sweep deletes stored images which are not touched. Returns number of deleted images.
	Sweep(ctx context.Context, touched images.Touched) (int, error)
}

// PreviousLoader loads descriptions of previous output.
type PreviousLoader interface {
	Load(ctx context.Context, name string) (reconciler.Previous, error)
}

// Config configures generated campaigns.
type Config struct {
	DSAWebsite           string
	DSALanguage          string
	PageFeedName         string
	ProductCampaignName  string
	CategoryCampaignName string
	CampaignBudget       string
	Description          description.Config
	// AdCustomizerIgnoreFields are product attributes not exported to ad customizer feed.
	AdCustomizerIgnoreFields []string
	// PreviousOutput is name of previously generated campaign output.
	PreviousOutput string
}

// Stats are statistics of generation.
type Stats struct {
	Products     int
	Labels       int
	AdGroups     int
	Images       int
	SweptObjects int
}

// Result is generated campaign data.
type Result struct {
	Rows          []models.Row
	AdCustomizers *models.Table
	PageFeed      *models.Table
	Stats         Stats
}

// Option is custom configuration of Generator.
type Option func(g *Generator)

// Generator generates campaign rows from product catalog.
type Generator struct {
	cfg      Config
	selector *description.Selector
	pipeline ImagePipeline
	previous PreviousLoader
	logger   *zerolog.Logger
}

// NewGenerator returns new Generator. Empty names are replaced with defaults.
func NewGenerator(cfg Config, pipeline ImagePipeline, previous PreviousLoader, ops ...Option) *Generator {
	if cfg.ProductCampaignName == "" {
		cfg.ProductCampaignName = DefaultProductCampaignName
	}
	if cfg.CategoryCampaignName == "" {
		cfg.CategoryCampaignName = DefaultCategoryCampaignName
	}
	if cfg.PageFeedName == "" {
		cfg.PageFeedName = DefaultPageFeedName
	}
	if cfg.Description.CustomizerFeed == "" {
		cfg.Description.CustomizerFeed = DefaultAdCustomizerFeedName
	}
	if cfg.AdCustomizerIgnoreFields == nil {
		cfg.AdCustomizerIgnoreFields = adcustomizer.DefaultIgnoreFields
	}

	nop := zerolog.Nop()
	g := &Generator{
		cfg:      cfg,
		selector: description.NewSelector(cfg.Description),
		pipeline: pipeline,
		previous: previous,
		logger:   &nop,
	}

	for _, op := range ops {
		op(g)
	}

	return g
}

// Generate returns campaign rows, ad customizer feed and page feed of catalog.
// Rows follow label discovery order. Missing category description fails generation
// before any image is processed.
func (g *Generator) Generate(ctx context.Context, catalog *models.Catalog) (*Result, error) {
	classification := labels.Classify(catalog.Products)

	categoryDescriptions, err := g.categoryDescriptions(classification)
	if err != nil {
		return nil, err
	}

	previous, err := g.previous.Load(ctx, g.cfg.PreviousOutput)
	if err != nil {
		return nil, fmt.Errorf("can't load previous output: %w", err)
	}

	freshness, err := g.pipeline.Freshness(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load images freshness: %w", err)
	}

	result := &Result{
		Stats: Stats{
			Products: len(catalog.Products),
			Labels:   len(classification.Labels),
		},
	}

	if classification.HasProductScope {
		result.Rows = append(result.Rows, g.campaignRow(g.cfg.ProductCampaignName))
	}
	if classification.HasCategoryScope {
		result.Rows = append(result.Rows, g.campaignRow(g.cfg.CategoryCampaignName))
	}

	touched := images.Touched{}
	processed := map[string]*images.Result{}

	for _, label := range classification.Labels {
		product := classification.Representatives[label]
		group := g.adGroup(label, classification.Scopes[label], &product, categoryDescriptions)

		imagesResult, ok := processed[product.OfferID]
		if !ok {
			imagesResult, err = g.pipeline.Process(ctx, &product, freshness)
			if err != nil {
				return nil, fmt.Errorf("can't process images of product %q: %w", product.OfferID, err)
			}
			processed[product.OfferID] = imagesResult
			touched.Add(imagesResult.Touched...)
		}

		result.Rows = append(result.Rows, group.rows(previous, imagesResult.Images)...)
		result.Stats.AdGroups++
		result.Stats.Images += len(imagesResult.Images)
	}

	result.Stats.SweptObjects, err = g.pipeline.Sweep(ctx, touched)
	if err != nil {
		return nil, fmt.Errorf("can't sweep unused images: %w", err)
	}

	customizers := adcustomizer.NewGenerator(catalog.Schema, g.cfg.ProductCampaignName, g.cfg.AdCustomizerIgnoreFields)
	result.AdCustomizers = customizers.Generate(classification)
	result.PageFeed = pagefeed.Build(catalog.Products)

	g.logger.Info().
		Int("products", result.Stats.Products).
		Int("labels", result.Stats.Labels).
		Int("images", result.Stats.Images).
		Int("sweptObjects", result.Stats.SweptObjects).
		Msg("campaign generated")

	return result, nil
}

// Validate returns every problem preventing generation of catalog.
func (g *Generator) Validate(catalog *models.Catalog) []error {
	var errs []error

	for _, label := range labels.Classify(catalog.Products).Labels {
		if labels.ScopeOf(label) != labels.ScopeCategory {
			continue
		}
		if _, err := g.selector.Category(label); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// categoryDescriptions returns descriptions of category-scoped labels.
// Returns error naming the first label without description.
func (g *Generator) categoryDescriptions(classification *labels.Classification) (map[string]string, error) {
	descriptions := map[string]string{}

	for _, label := range classification.Labels {
		if classification.Scopes[label] != labels.ScopeCategory {
			continue
		}

		desc, err := g.selector.Category(label)
		if err != nil {
			return nil, err
		}
		descriptions[label] = desc
	}

	return descriptions, nil
}

func (g *Generator) campaignRow(name string) models.Row {
	return models.Row{
		Campaign:           name,
		Budget:             g.cfg.CampaignBudget,
		DSAWebsite:         g.cfg.DSAWebsite,
		DSALanguage:        g.cfg.DSALanguage,
		DSATargetingSource: TargetingSourcePageFeed,
		DSAPageFeeds:       g.cfg.PageFeedName,
	}
}

type adGroup struct {
	campaign    string
	name        string
	label       string
	templated   string
	description string
}

func (g *Generator) adGroup(
	label string,
	scope labels.Scope,
	product *models.Product,
	categoryDescriptions map[string]string,
) adGroup {
	if scope == labels.ScopeCategory {
		return adGroup{
			campaign:    g.cfg.CategoryCampaignName,
			name:        label,
			label:       label,
			description: categoryDescriptions[label],
		}
	}

	selection := g.selector.Select(product)

	return adGroup{
		campaign:    g.cfg.ProductCampaignName,
		name:        product.OfferID,
		label:       label,
		templated:   selection.Templated,
		description: selection.Text,
	}
}

// rows returns ad group rows: templated ad when present, default ad,
// targeting and images. Each ad keeps its own previous description.
func (a adGroup) rows(previous reconciler.Previous, imageRefs []string) []models.Row {
	rows := make([]models.Row, 0, 3+len(imageRefs))

	if a.templated != "" {
		rows = append(rows, a.adGroupRow(a.templated, a.previousOr(previous, true, a.templated)))
	}
	rows = append(rows, a.adGroupRow(a.description, a.previousOr(previous, false, a.description)))

	rows = append(rows, models.Row{
		Campaign:        a.campaign,
		AdGroup:         a.name,
		TargetCondition: TargetConditionLabel,
		TargetValue:     a.label,
	})

	for _, ref := range imageRefs {
		rows = append(rows, models.Row{
			Campaign: a.campaign,
			AdGroup:  a.name,
			Image:    ref,
		})
	}

	return rows
}

func (a adGroup) previousOr(previous reconciler.Previous, templated bool, desc string) string {
	if prev, ok := previous[reconciler.Key{Campaign: a.campaign, AdGroup: a.name, Templated: templated}]; ok {
		return prev
	}

	return desc
}

func (a adGroup) adGroupRow(original, desc string) models.Row {
	return models.Row{
		Campaign:            a.campaign,
		AdGroup:             a.name,
		MaxCPM:              AdGroupBid,
		TargetCPM:           AdGroupBid,
		AdGroupType:         AdGroupTypeDynamic,
		AdType:              AdTypeExpandedDSA,
		OriginalDescription: original,
		Description:         desc,
	}
}

// WithLogger sets Generator's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}
