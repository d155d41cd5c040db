package labels

import (
	"strings"

	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
)

// ProductPrefix marks labels targeting a single product.
const ProductPrefix = "product_"

// Separator separates labels in product's labels field.
const Separator = ";"

// Scope is label scope.
type Scope int

// Label scopes.
const (
	ScopeCategory Scope = iota
	ScopeProduct
)

// String returns scope name.
func (s Scope) String() string {
	if s == ScopeProduct {
		return "product"
	}
	return "category"
}

// Classification is the result of catalog labels classification.
type Classification struct {
	// Labels in order of discovery.
	Labels []string
	// Scopes maps label to its scope.
	Scopes map[string]Scope
	// Representatives maps label to the first product carrying it.
	Representatives map[string]models.Product
	// HasProductScope is true when at least one product-scoped label was seen.
	HasProductScope bool
	// HasCategoryScope is true when at least one category-scoped label was seen.
	HasCategoryScope bool
}

// Classify partitions products by their labels.
// First product carrying a label becomes its representative.
func Classify(products []models.Product) *Classification {
	result := &Classification{
		Scopes:          map[string]Scope{},
		Representatives: map[string]models.Product{},
	}

	for ix := range products {
		for _, label := range Split(products[ix].Labels) {
			scope := ScopeOf(label)
			if scope == ScopeProduct {
				result.HasProductScope = true
			} else {
				result.HasCategoryScope = true
			}

			if _, ok := result.Representatives[label]; ok {
				continue
			}
			result.Labels = append(result.Labels, label)
			result.Scopes[label] = scope
			result.Representatives[label] = products[ix]
		}
	}

	return result
}

// ScopeOf returns scope of label.
func ScopeOf(label string) Scope {
	if strings.HasPrefix(label, ProductPrefix) {
		return ScopeProduct
	}
	return ScopeCategory
}

// Split splits raw labels field into trimmed, non-empty labels.
func Split(raw string) []string {
	parts := strings.Split(raw, Separator)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if label := strings.TrimSpace(part); label != "" {
			result = append(result, label)
		}
	}
	return result
}

// Join joins labels into labels field value.
func Join(labels []string) string {
	return strings.Join(labels, Separator)
}
