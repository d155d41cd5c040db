package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParsingResult contains product with parsing error if there is any.
type ParsingResult struct {
	Product Product
	Error   error
}

// FieldType is catalog schema field type.
type FieldType string

// Catalog schema field types.
const (
	FieldTypeString    FieldType = "STRING"
	FieldTypeInteger   FieldType = "INTEGER"
	FieldTypeNumeric   FieldType = "NUMERIC"
	FieldTypeDate      FieldType = "DATE"
	FieldTypeTimestamp FieldType = "TIMESTAMP"
	FieldTypeRecord    FieldType = "RECORD"
)

// FieldMode is catalog schema field mode.
type FieldMode string

// Catalog schema field modes.
const (
	FieldModeNullable FieldMode = "NULLABLE"
	FieldModeRepeated FieldMode = "REPEATED"
)

// SchemaField describes one catalog attribute.
type SchemaField struct {
	Name   string
	Type   FieldType
	Mode   FieldMode
	Fields []SchemaField
}

// IsPrice reports whether field is a record of value and currency.
func (f SchemaField) IsPrice() bool {
	if f.Type != FieldTypeRecord || len(f.Fields) != 2 {
		return false
	}
	var hasValue, hasCurrency bool
	for _, sub := range f.Fields {
		switch sub.Name {
		case "value":
			hasValue = true
		case "currency":
			hasCurrency = true
		}
	}
	return hasValue && hasCurrency
}

// Price is product's price.
type Price struct {
	Value    decimal.Decimal
	Currency string
}

// Product is catalog product model.
type Product struct {
	OfferID              string
	Title                string
	Description          string
	CustomDescription    string
	Link                 string
	ImageLink            string
	AdditionalImageLinks []string
	Price                Price
	// Labels holds semicolon-delimited pdsa custom labels.
	Labels string
	// Attributes holds every catalog attribute by schema field name.
	// Values are string, int64, decimal.Decimal, time.Time, Price,
	// map[string]any for records and slices for repeated fields.
	Attributes map[string]any
}

// Catalog is the result of a catalog query.
type Catalog struct {
	Schema      []SchemaField
	Products    []Product
	FailedItems int
}

// Row is a single Ads Editor import row. Unset columns stay empty.
type Row struct {
	Campaign            string
	Budget              string
	DSAWebsite          string
	DSALanguage         string
	DSATargetingSource  string
	DSAPageFeeds        string
	AdGroup             string
	MaxCPM              string
	TargetCPM           string
	AdGroupType         string
	TargetCondition     string
	TargetValue         string
	AdType              string
	OriginalDescription string
	Description         string
	Image               string
}

// Table is a flat export with dynamic columns.
type Table struct {
	Header []string
	Rows   [][]string
}

// Run is generation run model.
type Run struct {
	ID            int
	Target        string
	CreatedAt     time.Time
	FinishedAt    *time.Time
	IsSuccess     *bool
	StatusMessage *string
	Products      *int32
	FailedItems   *int32
	Labels        *int32
	AdGroups      *int32
	Images        *int32
	SweptObjects  *int32
	OutputPath    *string
}
