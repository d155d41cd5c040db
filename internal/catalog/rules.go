package catalog

import (
	"fmt"

	"github.com/MichalMitros/pdsa-generator/internal/labels"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
)

// LabelRules derive labels of products without explicit pdsa_custom_labels.
type LabelRules struct {
	// ProductField and ProductValue select products getting product-scoped label.
	// Every product gets it when ProductField is empty.
	ProductField string
	ProductValue string
	// CategoryField is attribute used as category-scoped label.
	CategoryField string
	// CustomDescriptionField is attribute used as product's custom description.
	CustomDescriptionField string
}

// Apply sets derived labels and custom description of product.
func (r LabelRules) Apply(product *models.Product) {
	if r.CustomDescriptionField != "" {
		product.CustomDescription = attribute(product, r.CustomDescriptionField)
	}

	if product.Labels != "" {
		return
	}

	var derived []string
	if r.ProductField == "" || attribute(product, r.ProductField) == r.ProductValue {
		derived = append(derived, labels.ProductPrefix+product.OfferID)
	}
	if r.CategoryField != "" {
		if category := attribute(product, r.CategoryField); category != "" {
			derived = append(derived, category)
		}
	}

	product.Labels = labels.Join(derived)
}

func attribute(product *models.Product, name string) string {
	switch v := product.Attributes[name].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
