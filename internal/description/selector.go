package description

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/samber/lo"
)

// Default length limits of ad description.
const (
	DefaultMinLength = 35
	DefaultMaxLength = 90
)

// StaticDescriptionMacro is replaced in templates with configured static description.
const StaticDescriptionMacro = "{product_description}"

const (
	primarySeparators  = ".!?|\n"
	extendedSeparators = primarySeparators + ",;"
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Config configures description selection.
type Config struct {
	// StaticDescription is configured product description override.
	StaticDescription string
	// StaticAsFallbackOnly makes StaticDescription used only when nothing else fits.
	StaticAsFallbackOnly bool
	// Template is description with {field} placeholders.
	Template string
	// CustomizerFeed is ad customizer feed name used in placeholder references.
	CustomizerFeed string
	MinLength      int
	MaxLength      int
	// CategoryDescriptions maps category label to its description.
	CategoryDescriptions map[string]string
}

// Selection is description selected for a product.
type Selection struct {
	// Templated is expanded template, empty when template didn't apply.
	// Its length is not validated.
	Templated string
	// Text is description chosen by length heuristics, empty when nothing fits.
	Text string
}

// Primary returns description used when only one can be emitted.
func (s Selection) Primary() string {
	if s.Templated != "" {
		return s.Templated
	}
	return s.Text
}

// Selector selects ad descriptions.
type Selector struct {
	cfg Config
}

// NewSelector returns new Selector. Zero length limits are replaced with defaults.
func NewSelector(cfg Config) *Selector {
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultMinLength
	}
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = DefaultMaxLength
	}
	return &Selector{cfg: cfg}
}

// Select returns description for product-scoped ad group.
func (s *Selector) Select(product *models.Product) Selection {
	static := s.cfg.StaticDescription
	if static != "" && !s.cfg.StaticAsFallbackOnly && s.fits(static) {
		return Selection{Text: static}
	}

	return Selection{
		Templated: s.expandTemplate(),
		Text:      s.heuristic(product),
	}
}

// Category returns configured description of category label.
func (s *Selector) Category(label string) (string, error) {
	desc := strings.TrimSpace(s.cfg.CategoryDescriptions[label])
	if desc == "" {
		return "", &MissingCategoryError{Label: label}
	}
	return desc, nil
}

func (s *Selector) heuristic(product *models.Product) string {
	custom := strings.TrimSpace(product.CustomDescription)
	if custom != "" && s.fits(custom) {
		return custom
	}

	desc := strings.TrimSpace(product.Description)
	if desc != "" && s.fits(desc) {
		return desc
	}

	title := strings.TrimSpace(product.Title)
	if title != "" && s.fits(title) {
		return title
	}

	if static := s.cfg.StaticDescription; static != "" && s.fits(static) {
		return static
	}

	for _, separators := range []string{primarySeparators, extendedSeparators} {
		if sentence, ok := s.firstSentence(separators, title, desc); ok {
			return sentence
		}
	}

	return ""
}

// expandTemplate replaces static description macro and rewrites {field} placeholders
// into ad customizer references. Returns empty string if template didn't change.
func (s *Selector) expandTemplate() string {
	if s.cfg.Template == "" {
		return ""
	}

	expanded := strings.ReplaceAll(s.cfg.Template, StaticDescriptionMacro, s.cfg.StaticDescription)
	expanded = placeholderRe.ReplaceAllString(expanded, "{="+s.cfg.CustomizerFeed+".$1}")
	if expanded == s.cfg.Template {
		return ""
	}

	return expanded
}

func (s *Selector) firstSentence(separators string, texts ...string) (string, bool) {
	candidates := lo.FlatMap(texts, func(text string, _ int) []string {
		return strings.FieldsFunc(text, func(r rune) bool { return strings.ContainsRune(separators, r) })
	})

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		length := utf8.RuneCountInString(candidate)
		if length >= s.cfg.MinLength && length <= s.cfg.MaxLength {
			return candidate, true
		}
	}

	return "", false
}

func (s *Selector) fits(text string) bool {
	return utf8.RuneCountInString(text) <= s.cfg.MaxLength
}
