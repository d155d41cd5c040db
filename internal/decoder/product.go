package decoder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/shopspring/decimal"
)

// ErrBadPrice is returned when item's price can't be parsed.
var ErrBadPrice = errors.New("price should be in \"<value> <currency>\" format")

// Product is model for product items in feed files.
type Product struct {
	ID                  string     `xml:"id"`
	Title               string     `xml:"title"`
	Description         string     `xml:"description"`
	URL                 string     `xml:"link"`
	ImageURL            string     `xml:"image_link"`
	AdditionalImageURLs []string   `xml:"additional_image_link"`
	Condition           string     `xml:"condition"`
	Availability        string     `xml:"availability"`
	AvailabilityDate    *string    `xml:"availability_date"`
	Price               string     `xml:"price"`
	SalePrice           *string    `xml:"sale_price"`
	Shippings           []Shipping `xml:"shipping"`
	Brand               *string    `xml:"brand"`
	GTIN                *string    `xml:"gtin"`
	MPN                 *string    `xml:"mpn"`
	ProductCategory     *string    `xml:"google_product_category"`
	ProductType         *string    `xml:"product_type"`
	Color               *string    `xml:"color"`
	Size                *string    `xml:"size"`
	ItemGroupID         *string    `xml:"item_group_id"`
	Gender              *string    `xml:"gender"`
	AgeGroup            *string    `xml:"age_group"`
	CustomLabel0        *string    `xml:"custom_label_0"`
	CustomLabel1        *string    `xml:"custom_label_1"`
	CustomLabel2        *string    `xml:"custom_label_2"`
	CustomLabel3        *string    `xml:"custom_label_3"`
	CustomLabel4        *string    `xml:"custom_label_4"`
	PDSACustomLabels    *string    `xml:"pdsa_custom_labels"`
}

// Shipping is model for product items shippings in feed files.
type Shipping struct {
	Country string `xml:"country"`
	Service string `xml:"service"`
	Price   string `xml:"price"`
}

var (
	stringField = func(name string) models.SchemaField {
		return models.SchemaField{Name: name, Type: models.FieldTypeString, Mode: models.FieldModeNullable}
	}
	priceField = func(name string) models.SchemaField {
		return models.SchemaField{
			Name: name,
			Type: models.FieldTypeRecord,
			Mode: models.FieldModeNullable,
			Fields: []models.SchemaField{
				{Name: "value", Type: models.FieldTypeNumeric, Mode: models.FieldModeNullable},
				{Name: "currency", Type: models.FieldTypeString, Mode: models.FieldModeNullable},
			},
		}
	}
)

// Schema returns schema of products produced by Decoder in feed element order.
func Schema() []models.SchemaField {
	return []models.SchemaField{
		stringField("offer_id"),
		stringField("title"),
		stringField("description"),
		stringField("link"),
		stringField("image_link"),
		{Name: "additional_image_link", Type: models.FieldTypeString, Mode: models.FieldModeRepeated},
		stringField("condition"),
		stringField("availability"),
		{Name: "availability_date", Type: models.FieldTypeDate, Mode: models.FieldModeNullable},
		priceField("price"),
		priceField("sale_price"),
		{
			Name: "shipping",
			Type: models.FieldTypeRecord,
			Mode: models.FieldModeRepeated,
			Fields: []models.SchemaField{
				stringField("country"),
				stringField("service"),
				stringField("price"),
			},
		},
		stringField("brand"),
		stringField("gtin"),
		stringField("mpn"),
		stringField("google_product_category"),
		stringField("product_type"),
		stringField("color"),
		stringField("size"),
		stringField("item_group_id"),
		stringField("gender"),
		stringField("age_group"),
		stringField("custom_label_0"),
		stringField("custom_label_1"),
		stringField("custom_label_2"),
		stringField("custom_label_3"),
		stringField("custom_label_4"),
		stringField("pdsa_custom_labels"),
	}
}

func toAppProduct(product *Product) (*models.Product, error) {
	price, err := parsePrice(product.Price)
	if err != nil {
		return nil, fmt.Errorf("can't parse price of item %q: %w", product.ID, err)
	}

	attributes := map[string]any{
		"offer_id":     product.ID,
		"title":        product.Title,
		"description":  product.Description,
		"link":         product.URL,
		"image_link":   product.ImageURL,
		"condition":    product.Condition,
		"availability": product.Availability,
		"price":        price,
	}
	if len(product.AdditionalImageURLs) > 0 {
		attributes["additional_image_link"] = product.AdditionalImageURLs
	}
	if len(product.Shippings) > 0 {
		attributes["shipping"] = toAppShippings(product.Shippings)
	}
	if product.SalePrice != nil {
		salePrice, err := parsePrice(*product.SalePrice)
		if err != nil {
			return nil, fmt.Errorf("can't parse sale price of item %q: %w", product.ID, err)
		}
		attributes["sale_price"] = salePrice
	}
	if product.AvailabilityDate != nil {
		date, err := parseDate(*product.AvailabilityDate)
		if err != nil {
			return nil, fmt.Errorf("can't parse availability date of item %q: %w", product.ID, err)
		}
		attributes["availability_date"] = date
	}

	optional := map[string]*string{
		"brand":                   product.Brand,
		"gtin":                    product.GTIN,
		"mpn":                     product.MPN,
		"google_product_category": product.ProductCategory,
		"product_type":            product.ProductType,
		"color":                   product.Color,
		"size":                    product.Size,
		"item_group_id":           product.ItemGroupID,
		"gender":                  product.Gender,
		"age_group":               product.AgeGroup,
		"custom_label_0":          product.CustomLabel0,
		"custom_label_1":          product.CustomLabel1,
		"custom_label_2":          product.CustomLabel2,
		"custom_label_3":          product.CustomLabel3,
		"custom_label_4":          product.CustomLabel4,
		"pdsa_custom_labels":      product.PDSACustomLabels,
	}
	for name, value := range optional {
		if value != nil {
			attributes[name] = *value
		}
	}

	appProduct := &models.Product{
		OfferID:              product.ID,
		Title:                product.Title,
		Description:          product.Description,
		Link:                 product.URL,
		ImageLink:            product.ImageURL,
		AdditionalImageLinks: product.AdditionalImageURLs,
		Price:                price,
		Attributes:           attributes,
	}
	if product.PDSACustomLabels != nil {
		appProduct.Labels = *product.PDSACustomLabels
	}

	return appProduct, nil
}

func toAppShippings(shippings []Shipping) []any {
	appShippings := make([]any, 0, len(shippings))
	for ix := range shippings {
		appShippings = append(appShippings, map[string]any{
			"country": shippings[ix].Country,
			"service": shippings[ix].Service,
			"price":   shippings[ix].Price,
		})
	}
	return appShippings
}

// parsePrice parses "104.95 USD" into models.Price. Empty price is zero price.
func parsePrice(raw string) (models.Price, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Price{}, nil
	}

	value, currency, found := strings.Cut(raw, " ")
	if !found {
		return models.Price{}, ErrBadPrice
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return models.Price{}, fmt.Errorf("%w: %w", ErrBadPrice, err)
	}

	return models.Price{
		Value:    amount,
		Currency: strings.TrimSpace(currency),
	}, nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04-0700", "2006-01-02T15:04Z0700", time.DateOnly}

func parseDate(raw string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var date time.Time
		if date, err = time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return date, nil
		}
	}
	return time.Time{}, err
}
