package decoder

import (
	"context"
	"encoding/xml"
	"errors"
	"html"
	"io"
	"strings"

	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
)

// Decoder decodes xml feed files into products.
type Decoder struct{}

// Decode decodes products from xmlFile and returns each product with decoding error into output channel.
func (d Decoder) Decode(ctx context.Context, xmlFile io.Reader, output chan<- models.ParsingResult) error {
	dec := xml.NewDecoder(xmlFile)
	dec.Strict = true

	for {
		token, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		element, ok := token.(xml.StartElement)
		if !ok || element.Name.Local != "item" {
			continue
		}

		var product Product
		result := models.ParsingResult{}
		if err = dec.DecodeElement(&product, &element); err != nil {
			result.Error = err
		} else {
			unescapeProductFields(&product)
			appProduct, convErr := toAppProduct(&product)
			if convErr != nil {
				result.Error = convErr
			} else {
				result.Product = *appProduct
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case output <- result:
		}

		// syntax errors leave decoder in unusable state
		var syntaxErr *xml.SyntaxError
		if errors.As(result.Error, &syntaxErr) {
			return result.Error
		}
	}
}

// Schema returns schema of decoded products.
func (d Decoder) Schema() []models.SchemaField {
	return Schema()
}

// unescapeProductFields unescapes html characters from product text fields.
func unescapeProductFields(product *Product) {
	product.ID = strings.TrimSpace(product.ID)
	product.Title = html.UnescapeString(product.Title)
	product.Description = html.UnescapeString(product.Description)
	for _, field := range []*string{
		product.ProductCategory,
		product.ProductType,
		product.CustomLabel0,
		product.CustomLabel1,
		product.CustomLabel2,
		product.CustomLabel3,
		product.CustomLabel4,
	} {
		if field != nil {
			*field = html.UnescapeString(*field)
		}
	}
}
