package adcustomizer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/MichalMitros/pdsa-generator/internal/adcustomizer"
	"github.com/MichalMitros/pdsa-generator/internal/labels"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models/modelstesting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const campaign = "PDSA Products"

var schema = []models.SchemaField{
	{Name: "offer_id", Type: models.FieldTypeString},
	{Name: "title", Type: models.FieldTypeString},
	{Name: "stock", Type: models.FieldTypeInteger},
	{Name: "rating", Type: models.FieldTypeNumeric},
	{Name: "available_from", Type: models.FieldTypeDate},
	{Name: "updated_at", Type: models.FieldTypeTimestamp},
	{Name: "tags", Type: models.FieldTypeString, Mode: models.FieldModeRepeated},
	{
		Name: "price",
		Type: models.FieldTypeRecord,
		Fields: []models.SchemaField{
			{Name: "value", Type: models.FieldTypeNumeric},
			{Name: "currency", Type: models.FieldTypeString},
		},
	},
	{
		Name: "dimensions",
		Type: models.FieldTypeRecord,
		Fields: []models.SchemaField{
			{Name: "width", Type: models.FieldTypeNumeric},
			{Name: "unit", Type: models.FieldTypeString},
			{Name: "notes", Type: models.FieldTypeString, Mode: models.FieldModeRepeated},
		},
	},
	{
		Name: "shipping",
		Type: models.FieldTypeRecord,
		Mode: models.FieldModeRepeated,
		Fields: []models.SchemaField{
			{Name: "country", Type: models.FieldTypeString},
		},
	},
}

func TestUnitHeader(t *testing.T) {
	gen := adcustomizer.NewGenerator(schema, campaign, []string{"offer_id"})

	assert.Equal(t, []string{
		"title (text)",
		"stock (number)",
		"rating (number)",
		"available_from (date)",
		"updated_at (date)",
		"price (price)",
		"dimensions_width (number)",
		"dimensions_unit (text)",
		"Target campaign",
		"Target ad group",
	}, gen.Header(), "should derive columns from schema")
}

func TestUnitGenerate(t *testing.T) {
	withAttributes := func(offerID, rawLabels string, attributes map[string]any) models.Product {
		return modelstesting.FakeProduct(func(p *models.Product) {
			p.OfferID = offerID
			p.Labels = rawLabels
			p.Attributes = attributes
		})
	}

	products := []models.Product{
		withAttributes("SKU1", "category_shoes;product_SKU1", map[string]any{
			"title":          "Boots {size}\twith\nlaces",
			"stock":          12,
			"rating":         decimal.RequireFromString("4.75"),
			"available_from": time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
			"price":          models.Price{Value: decimal.RequireFromString("104.95"), Currency: "USD"},
			"dimensions":     map[string]any{"width": 10.9, "unit": "cm"},
		}),
		withAttributes("SKU2", "product_SKU2", map[string]any{
			"title":  strings.Repeat("ż", 100),
			"rating": "3.2",
		}),
		withAttributes("SKU3", "category_boots", map[string]any{"title": "Category only"}),
	}

	gen := adcustomizer.NewGenerator(schema, campaign, adcustomizer.DefaultIgnoreFields)
	table := gen.Generate(labels.Classify(products))

	require.Len(t, table.Rows, 2, "should generate row for every product-scoped label")
	assert.Equal(t, gen.Header(), table.Header, "should use generator header")
	assert.Equal(t, []string{
		"Boots sizewithlaces",
		"12",
		"4",
		"2024/05/02 00:00:00",
		"",
		"104 USD",
		"10",
		"cm",
		campaign,
		"SKU1",
	}, table.Rows[0], "should serialize attributes")
	assert.Equal(t, strings.Repeat("ż", adcustomizer.MaxTextLength), table.Rows[1][0], "should truncate text")
	assert.Equal(t, "3", table.Rows[1][2], "should truncate numeric strings")
	assert.Equal(t, "SKU2", table.Rows[1][len(table.Rows[1])-1], "should target product ad group")
}

func TestUnitGenerateNoProductLabels(t *testing.T) {
	gen := adcustomizer.NewGenerator(schema, campaign, nil)

	table := gen.Generate(labels.Classify([]models.Product{
		modelstesting.FakeProduct(func(p *models.Product) { p.Labels = "shoes" }),
	}))

	assert.Empty(t, table.Rows, "should generate no rows without product-scoped labels")
	assert.NotEmpty(t, table.Header, "should still have header")
}
