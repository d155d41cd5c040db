package helpers

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MichalMitros/pdsa-generator/internal/decoder"
	"github.com/MichalMitros/pdsa-generator/internal/output"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models/modelstesting"
	"github.com/MichalMitros/pdsa-generator/internal/platform/storage/storagetesting"
	"github.com/go-jet/jet/v2/qrm"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"
	// CategoryLabel is category-scoped label of every third generated product.
	CategoryLabel = "category_shoes"
)

var imagesModTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// WaitForRunToBeFinished is blocking helper function, returns latest run of target after it is finished.
func WaitForRunToBeFinished(t *testing.T, queryable qrm.Queryable, target string) *models.Run {
	t.Helper()

	for {
		<-time.After(time.Millisecond * 500)
		latestRun := storagetesting.GetLatestRun(t, queryable, target)
		if latestRun != nil && latestRun.FinishedAt != nil {
			return latestRun
		}
	}
}

// PrepareMockedHTTPServer is helper function for mocking http srv serving feed file and product images.
// Returns function for setting feed file to return. Every path under /img/ is served as PNG image.
func PrepareMockedHTTPServer(t *testing.T, statusCode int) (*httptest.Server, func([]byte)) {
	t.Helper()

	var feedFile atomic.Pointer[[]byte]
	feedFile.Store(&[]byte{})
	img := PNG(t, 400, 300)

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/img/") {
			http.ServeContent(wrt, req, req.URL.Path, imagesModTime, bytes.NewReader(img))
			return
		}

		wrt.Header().Add(contentType, "application/xml")
		wrt.WriteHeader(statusCode)
		_, _ = wrt.Write(*feedFile.Load())
	}))

	t.Cleanup(func() {
		srv.Client().CloseIdleConnections()
		srv.Close()
	})

	return srv, func(feed []byte) { feedFile.Store(&feed) }
}

// PNG is helper function encoding w x h PNG image.
func PNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		require.FailNow(t, "can't encode png", err)
	}

	return buf.Bytes()
}

// DeclareRMQExchange is helper function for declaring RMQ exchange.
func DeclareRMQExchange(t *testing.T, ch *amqp.Channel, exchange string) {
	t.Helper()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		require.FailNow(t, "can't declare exchange", exchange, err)
	}
}

// DeclareRMQQueue is helper function for declaring RMQ queue and binding and cleaning them after test is finished.
func DeclareRMQQueue(t *testing.T, channel *amqp.Channel, queueName, exchange, routingKey string) {
	t.Helper()

	_, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		require.FailNow(t, "can't declare queue", queueName, err)
	}

	err = channel.QueueBind(queueName, routingKey, exchange, false, nil)
	if err != nil {
		require.FailNow(t, "can't bind queue", queueName, routingKey, err)
	}

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, true)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}

// GenerateTestData generates n products with OfferID in [1;n] and single image served by server at baseURL.
// Every third product, starting with the first one, is labeled also with CategoryLabel.
func GenerateTestData(t *testing.T, n int, baseURL string) []models.Product {
	t.Helper()

	results := make([]models.Product, n)

	for ix := range n {
		results[ix] = modelstesting.FakeProduct(func(p *models.Product) {
			p.OfferID = strconv.Itoa(ix + 1)
			p.Link = fmt.Sprintf("https://shop.example.com/products/%d", ix+1)
			p.ImageLink = fmt.Sprintf("%s/img/%d.png", baseURL, ix+1)
			p.AdditionalImageLinks = nil
			p.Labels = "product_" + p.OfferID
			if ix%3 == 0 {
				p.Labels += ";" + CategoryLabel
			}
		})
	}

	return results
}

// ToDecoderProduct is helper function for converting products to model from internal/decoder package.
func ToDecoderProduct(t *testing.T, products []models.Product) []decoder.Product {
	t.Helper()

	return lo.Map(products, func(p models.Product, _ int) decoder.Product { return *toDecoderProduct(&p) })
}

// ProductsToXML is helper function which converts products to xml and returns them as byte slice.
func ProductsToXML(t *testing.T, products []decoder.Product) []byte {
	t.Helper()

	var buf bytes.Buffer
	encoder := xml.NewEncoder(&buf)

	for ix := range products {
		err := encoder.EncodeElement(&products[ix], xml.StartElement{Name: xml.Name{Local: "item"}})
		if err != nil {
			require.FailNow(t, "can't encode product to xml", err)
		}
	}

	err := encoder.Flush()
	if err != nil {
		require.FailNow(t, "can't flush xml encoder", err)
	}

	err = encoder.Close()
	if err != nil {
		require.FailNow(t, "can't close xml encoder", err)
	}

	return buf.Bytes()
}

// ReadTable is helper function reading UTF-16 encoded output file.
func ReadTable(t *testing.T, path string) *models.Table {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		require.FailNow(t, "can't open output file", path, err)
	}
	defer f.Close()

	table, err := output.ReadTable(f)
	if err != nil {
		require.FailNow(t, "can't read output file", path, err)
	}

	return table
}

func toDecoderProduct(product *models.Product) *decoder.Product {
	result := &decoder.Product{
		ID:                  product.OfferID,
		Title:               product.Title,
		Description:         product.Description,
		URL:                 product.Link,
		ImageURL:            product.ImageLink,
		AdditionalImageURLs: product.AdditionalImageLinks,
		Price:               product.Price.Value.StringFixed(2) + " " + product.Price.Currency,
	}
	if product.Labels != "" {
		result.PDSACustomLabels = lo.ToPtr(product.Labels)
	}

	return result
}
