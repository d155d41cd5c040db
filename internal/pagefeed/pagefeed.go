package pagefeed

import (
	"strings"

	"github.com/MichalMitros/pdsa-generator/internal/labels"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/samber/lo"
)

// Page feed columns.
const (
	ColumnPageURL     = "Page URL"
	ColumnCustomLabel = "Custom label"
)

// Labels added to every page and to pages with product-scoped labels.
const (
	CommonLabel  = "PDSA"
	ProductLabel = "PDSA_PRODUCT"
)

// Build returns page feed of products. Products without link or labels are skipped,
// the first product wins duplicated link.
func Build(products []models.Product) *models.Table {
	table := &models.Table{Header: []string{ColumnPageURL, ColumnCustomLabel}}
	seen := map[string]struct{}{}

	for _, product := range products {
		link := strings.TrimSpace(product.Link)
		productLabels := labels.Split(product.Labels)
		if link == "" || len(productLabels) == 0 {
			continue
		}
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}

		pageLabels := append(productLabels, CommonLabel)
		if lo.ContainsBy(productLabels, func(l string) bool { return labels.ScopeOf(l) == labels.ScopeProduct }) {
			pageLabels = append(pageLabels, ProductLabel)
		}

		table.Rows = append(table.Rows, []string{link, strings.Join(pageLabels, "; ")})
	}

	return table
}
