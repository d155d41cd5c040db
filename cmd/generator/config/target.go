package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/MichalMitros/pdsa-generator/internal/catalog"
	"github.com/MichalMitros/pdsa-generator/internal/description"
	"github.com/MichalMitros/pdsa-generator/internal/generator"
	"github.com/MichalMitros/pdsa-generator/internal/images"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// DefaultMaxImageCount is default maximal number of images of one ad group.
const DefaultMaxImageCount = 20

// ErrUnknownTarget is returned when target is not configured.
var ErrUnknownTarget = errors.New("unknown target")

// File is targets configuration file.
type File struct {
	Targets []Target `yaml:"targets"`
}

// Target configures campaign generation of one product feed.
type Target struct {
	Name    string `yaml:"name"`
	FeedURL string `yaml:"feed_url"`

	DSAWebsite           string `yaml:"dsa_website"`
	DSALanguage          string `yaml:"dsa_lang"`
	PageFeedName         string `yaml:"page_feed_name"`
	ProductCampaignName  string `yaml:"product_campaign_name"`
	CategoryCampaignName string `yaml:"category_campaign_name"`
	CampaignBudget       string `yaml:"campaign_budget"`

	AdDescriptionTemplate            string            `yaml:"ad_description_template"`
	AdDescriptionMinLength           int               `yaml:"ad_description_min_length"`
	AdDescriptionMaxLength           int               `yaml:"ad_description_max_length"`
	AdCustomizerFeedName             string            `yaml:"adcustomizer_feed_name"`
	AdCustomizerIgnoreFields         []string          `yaml:"adcustomizer_ignore_fields"`
	CategoryAdDescriptions           map[string]string `yaml:"category_ad_descriptions"`
	ProductDescription               string            `yaml:"product_description"`
	ProductDescriptionAsFallbackOnly bool              `yaml:"product_description_as_fallback_only"`

	MaxImageDimension    int    `yaml:"max_image_dimension"`
	MaxImageCount        *int   `yaml:"max_image_count"`
	SkipAdditionalImages bool   `yaml:"skip_additional_images"`
	ImageFilter          string `yaml:"image_filter"`

	ProductLabelField      string `yaml:"product_label_field"`
	ProductLabelValue      string `yaml:"product_label_value"`
	CategoryLabelField     string `yaml:"category_label_field"`
	CustomDescriptionField string `yaml:"custom_description_field"`
}

// ReadFile reads targets configuration file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("can't decode config file %q: %w", path, err)
	}

	return &f, nil
}

// Target returns target with provided name.
func (f *File) Target(name string) (*Target, error) {
	target, ok := lo.Find(f.Targets, func(t Target) bool { return t.Name == name })
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
	}

	return &target, nil
}

// Validate returns every invalid field of target.
func (t *Target) Validate() []error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("target %q: "+format, append([]any{t.Name}, args...)...))
	}

	if t.Name == "" {
		invalid("name is required")
	}
	if u, err := url.Parse(t.FeedURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		invalid("feed_url %q is not http(s) url", t.FeedURL)
	}
	if t.DSAWebsite == "" {
		invalid("dsa_website is required")
	}
	if t.DSALanguage == "" {
		invalid("dsa_lang is required")
	}
	if t.AdDescriptionMinLength < 0 || t.AdDescriptionMaxLength < 0 {
		invalid("ad description lengths can't be negative")
	}
	if t.AdDescriptionMaxLength > 0 && t.AdDescriptionMinLength > t.AdDescriptionMaxLength {
		invalid("ad_description_min_length %d is greater than ad_description_max_length %d",
			t.AdDescriptionMinLength, t.AdDescriptionMaxLength)
	}
	if t.MaxImageDimension != 0 && t.MaxImageDimension < images.FloorDimension {
		invalid("max_image_dimension %d is lower than %d", t.MaxImageDimension, images.FloorDimension)
	}
	if t.MaxImageCount != nil && *t.MaxImageCount < 0 {
		invalid("max_image_count can't be negative")
	}
	if _, err := images.ParseFilter(t.ImageFilter); err != nil {
		invalid("image_filter: %w", err)
	}
	for label, desc := range t.CategoryAdDescriptions {
		if desc == "" {
			invalid("category_ad_descriptions of %q is empty", label)
		}
	}
	if t.ProductLabelValue != "" && t.ProductLabelField == "" {
		invalid("product_label_value requires product_label_field")
	}

	return errs
}

// GeneratorConfig returns configuration of generated campaigns.
// previousOutput is name of previously generated campaign output.
func (t *Target) GeneratorConfig(previousOutput string) generator.Config {
	return generator.Config{
		DSAWebsite:           t.DSAWebsite,
		DSALanguage:          t.DSALanguage,
		PageFeedName:         t.PageFeedName,
		ProductCampaignName:  t.ProductCampaignName,
		CategoryCampaignName: t.CategoryCampaignName,
		CampaignBudget:       t.CampaignBudget,
		Description: description.Config{
			StaticDescription:    t.ProductDescription,
			StaticAsFallbackOnly: t.ProductDescriptionAsFallbackOnly,
			Template:             t.AdDescriptionTemplate,
			CustomizerFeed:       t.AdCustomizerFeedName,
			MinLength:            t.AdDescriptionMinLength,
			MaxLength:            t.AdDescriptionMaxLength,
			CategoryDescriptions: t.CategoryAdDescriptions,
		},
		AdCustomizerIgnoreFields: t.AdCustomizerIgnoreFields,
		PreviousOutput:           previousOutput,
	}
}

// ImagesConfig returns image processing configuration.
func (t *Target) ImagesConfig(folder, prefix string, workers int, dryRun bool) (images.Config, error) {
	filter, err := images.ParseFilter(t.ImageFilter)
	if err != nil {
		return images.Config{}, fmt.Errorf("can't parse image filter: %w", err)
	}

	return images.Config{
		Folder:         folder,
		Prefix:         prefix,
		MaxDimension:   t.MaxImageDimension,
		MaxCount:       lo.FromPtrOr(t.MaxImageCount, DefaultMaxImageCount),
		SkipAdditional: t.SkipAdditionalImages,
		Filter:         filter,
		DryRun:         dryRun,
		Workers:        workers,
	}, nil
}

// LabelRules returns rules deriving labels of products.
func (t *Target) LabelRules() catalog.LabelRules {
	return catalog.LabelRules{
		ProductField:           t.ProductLabelField,
		ProductValue:           t.ProductLabelValue,
		CategoryField:          t.CategoryLabelField,
		CustomDescriptionField: t.CustomDescriptionField,
	}
}
