package adcustomizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/MichalMitros/pdsa-generator/internal/labels"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	// ColumnTargetCampaign is name of campaign column.
	ColumnTargetCampaign = "Target campaign"
	// ColumnTargetAdGroup is name of ad group column.
	ColumnTargetAdGroup = "Target ad group"
	// MaxTextLength is maximal length of text value.
	MaxTextLength = 80

	dateLayout = "2006/01/02 15:04:05"
)

// Customizer attribute types.
const (
	TypeText   = "text"
	TypeNumber = "number"
	TypeDate   = "date"
	TypePrice  = "price"
)

// DefaultIgnoreFields are product attributes never exported.
var DefaultIgnoreFields = []string{
	"offer_id",
	"link",
	"image_link",
	"additional_image_link",
	"pdsa_custom_labels",
}

type column struct {
	header string
	field  string
	sub    string
	kind   string
}

// Generator generates ad customizer feed of product-scoped ad groups.
type Generator struct {
	columns  []column
	campaign string
}

// NewGenerator returns new Generator with columns derived from schema.
// Fields listed in ignore and repeated fields are skipped, records are expanded one level.
func NewGenerator(schema []models.SchemaField, campaign string, ignore []string) *Generator {
	g := &Generator{campaign: campaign}

	for _, field := range schema {
		if field.Mode == models.FieldModeRepeated || lo.Contains(ignore, field.Name) {
			continue
		}

		if field.Type != models.FieldTypeRecord || field.IsPrice() {
			if kind, ok := kindOf(field); ok {
				g.columns = append(g.columns, newColumn(field.Name, field.Name, "", kind))
			}
			continue
		}

		for _, sub := range field.Fields {
			if sub.Mode == models.FieldModeRepeated {
				continue
			}
			if kind, ok := kindOf(sub); ok {
				g.columns = append(g.columns, newColumn(field.Name+"_"+sub.Name, field.Name, sub.Name, kind))
			}
		}
	}

	return g
}

// Header returns feed columns.
func (g *Generator) Header() []string {
	header := lo.Map(g.columns, func(c column, _ int) string { return c.header })
	return append(header, ColumnTargetCampaign, ColumnTargetAdGroup)
}

// Generate returns feed with one row per product-scoped label in classification order.
func (g *Generator) Generate(classification *labels.Classification) *models.Table {
	table := &models.Table{Header: g.Header()}

	for _, label := range classification.Labels {
		if classification.Scopes[label] != labels.ScopeProduct {
			continue
		}

		product := classification.Representatives[label]
		row := make([]string, 0, len(g.columns)+2)
		for _, c := range g.columns {
			row = append(row, c.value(product.Attributes))
		}
		table.Rows = append(table.Rows, append(row, g.campaign, product.OfferID))
	}

	return table
}

func newColumn(name, field, sub, kind string) column {
	return column{
		header: fmt.Sprintf("%s (%s)", name, kind),
		field:  field,
		sub:    sub,
		kind:   kind,
	}
}

func kindOf(field models.SchemaField) (string, bool) {
	switch {
	case field.IsPrice():
		return TypePrice, true
	case field.Type == models.FieldTypeString:
		return TypeText, true
	case field.Type == models.FieldTypeInteger, field.Type == models.FieldTypeNumeric:
		return TypeNumber, true
	case field.Type == models.FieldTypeDate, field.Type == models.FieldTypeTimestamp:
		return TypeDate, true
	default:
		return "", false
	}
}

func (c column) value(attributes map[string]any) string {
	value, ok := attributes[c.field]
	if !ok || value == nil {
		return ""
	}

	if c.sub != "" {
		record, ok := value.(map[string]any)
		if !ok {
			return ""
		}
		value = record[c.sub]
		if value == nil {
			return ""
		}
	}

	switch c.kind {
	case TypePrice:
		return formatPrice(value)
	case TypeNumber:
		return formatNumber(value)
	case TypeDate:
		return formatDate(value)
	default:
		return formatText(value)
	}
}

// formatNumber returns integer part of number, fractional values are not accepted by customizers.
func formatNumber(value any) string {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return decimal.NewFromFloat(v).Truncate(0).String()
	case decimal.Decimal:
		return v.Truncate(0).String()
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return ""
		}
		return d.Truncate(0).String()
	default:
		return ""
	}
}

func formatPrice(value any) string {
	switch v := value.(type) {
	case models.Price:
		return v.Value.Truncate(0).String() + " " + v.Currency
	case map[string]any:
		currency, _ := v["currency"].(string)
		return formatNumber(v["value"]) + " " + currency
	default:
		return ""
	}
}

func formatDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format(dateLayout)
	case string:
		return formatText(v)
	default:
		return ""
	}
}

// formatText strips braces and control characters and truncates value to MaxTextLength.
func formatText(value any) string {
	text, ok := value.(string)
	if !ok {
		text = fmt.Sprint(value)
	}

	text = strings.Map(func(r rune) rune {
		if r == '{' || r == '}' || unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
	text = strings.TrimSpace(text)

	if utf8.RuneCountInString(text) > MaxTextLength {
		text = string([]rune(text)[:MaxTextLength])
	}

	return text
}
