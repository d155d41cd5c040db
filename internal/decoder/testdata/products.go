package testdata

import (
	"time"

	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/shopspring/decimal"
)

var necklacePrice = models.Price{Value: decimal.RequireFromString("104.95"), Currency: "USD"}

var dvdPrice = models.Price{Value: decimal.RequireFromString("11.99"), Currency: "GBP"}

// Products are expected products decoded from feed.xml.
var Products = []models.Product{
	{
		OfferID:     "110-01-1792-09",
		Title:       "3D Engraved Bar Necklace in Gold Plating",
		Description: "The Dimensional Love 3D Bar Necklace represents a true love story. Express your love in all dimensions & personalize it.",
		Link:        "http://www.example.com/necklaces/110-01-1792-09.html",
		ImageLink:   "http://images.example.com/necklace.jpg",
		AdditionalImageLinks: []string{
			"http://images.example.com/necklace_side.jpg",
			"http://images.example.com/necklace_box.png",
		},
		Price: necklacePrice,
		Attributes: map[string]any{
			"offer_id":     "110-01-1792-09",
			"title":        "3D Engraved Bar Necklace in Gold Plating",
			"description":  "The Dimensional Love 3D Bar Necklace represents a true love story. Express your love in all dimensions & personalize it.",
			"link":         "http://www.example.com/necklaces/110-01-1792-09.html",
			"image_link":   "http://images.example.com/necklace.jpg",
			"condition":    "new",
			"availability": "in stock",
			"price":        necklacePrice,
			"additional_image_link": []string{
				"http://images.example.com/necklace_side.jpg",
				"http://images.example.com/necklace_box.png",
			},
			"availability_date": time.Date(2021, time.December, 15, 0, 0, 0, 0, time.UTC),
			"sale_price":        models.Price{Value: decimal.RequireFromString("99.00"), Currency: "USD"},
			"shipping": []any{
				map[string]any{"country": "US", "service": "Standard", "price": "4.95 USD"},
			},
			"brand":          "MYKA",
			"color":          "Gold",
			"product_type":   "Gifts for Women > Jewelry > Necklace",
			"custom_label_1": "Necklaces",
			"custom_label_2": "PDSA_PRODUCT",
		},
	},
	{
		OfferID:     "DVD-0564738",
		Title:       "Merlin: Series 3 - Volume 2 - 3 DVD Box set",
		Description: "Episodes 7-13 from the third series of the BBC fantasy drama.",
		Link:        "http://www.example.com/media/dvd/?sku=384616",
		ImageLink:   "http://images.example.com/DVD-0564738?size=large",
		Price:       dvdPrice,
		Labels:      "product_DVD-0564738;category_dvd",
		Attributes: map[string]any{
			"offer_id":           "DVD-0564738",
			"title":              "Merlin: Series 3 - Volume 2 - 3 DVD Box set",
			"description":        "Episodes 7-13 from the third series of the BBC fantasy drama.",
			"link":               "http://www.example.com/media/dvd/?sku=384616",
			"image_link":         "http://images.example.com/DVD-0564738?size=large",
			"condition":          "new",
			"availability":       "in stock",
			"price":              dvdPrice,
			"pdsa_custom_labels": "product_DVD-0564738;category_dvd",
		},
	},
}
