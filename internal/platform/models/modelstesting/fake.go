package modelstesting

import (
	"math/rand"

	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
)

// FakeProduct returns models.Product with fake data and random number of fake additional images.
func FakeProduct(ops ...func(p *models.Product)) models.Product {
	offerID := faker.UUIDDigit()
	product := models.Product{
		OfferID:              offerID,
		Title:                faker.Sentence(),
		Description:          faker.Paragraph(),
		Link:                 faker.URL(),
		ImageLink:            faker.URL() + "/" + faker.Word() + ".jpg",
		AdditionalImageLinks: fakeAdditionalImageLinks(),
		Price:                FakePrice(),
		Labels:               "product_" + offerID,
	}

	for _, op := range ops {
		op(&product)
	}

	if product.Attributes == nil {
		product.Attributes = map[string]any{
			"offer_id":    product.OfferID,
			"title":       product.Title,
			"description": product.Description,
			"link":        product.Link,
			"image_link":  product.ImageLink,
			"price":       product.Price,
		}
	}

	return product
}

// FakePrice returns models.Price with fake data.
func FakePrice(ops ...func(p *models.Price)) models.Price {
	price := models.Price{
		Value:    decimal.NewFromFloat(float64(rand.Intn(100000)) / 100),
		Currency: faker.Currency(),
	}

	for _, op := range ops {
		op(&price)
	}

	return price
}

// FakeCatalog returns models.Catalog with provided products and minimal schema.
func FakeCatalog(products ...models.Product) *models.Catalog {
	return &models.Catalog{
		Schema: []models.SchemaField{
			{Name: "offer_id", Type: models.FieldTypeString, Mode: models.FieldModeNullable},
			{Name: "title", Type: models.FieldTypeString, Mode: models.FieldModeNullable},
			{Name: "description", Type: models.FieldTypeString, Mode: models.FieldModeNullable},
			{Name: "link", Type: models.FieldTypeString, Mode: models.FieldModeNullable},
			{Name: "image_link", Type: models.FieldTypeString, Mode: models.FieldModeNullable},
			{
				Name: "price",
				Type: models.FieldTypeRecord,
				Mode: models.FieldModeNullable,
				Fields: []models.SchemaField{
					{Name: "value", Type: models.FieldTypeNumeric, Mode: models.FieldModeNullable},
					{Name: "currency", Type: models.FieldTypeString, Mode: models.FieldModeNullable},
				},
			},
		},
		Products: products,
	}
}

func fakeAdditionalImageLinks() []string {
	additionalLen := rand.Intn(5)
	links := make([]string, 0, additionalLen)
	for range additionalLen {
		links = append(links, faker.URL()+"/"+faker.Word()+".png")
	}

	return links
}
