package images

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/samber/lo"
)

// Candidates returns deduplicated product image urls in feed order.
// Primary image goes first, additional images follow unless skipAdditional is set.
// Filter is applied before capping the list to maxCount. Zero maxCount means no cap.
func Candidates(product *models.Product, skipAdditional bool, filter *Filter, maxCount int) []string {
	urls := []string{product.ImageLink}
	if !skipAdditional {
		urls = append(urls, product.AdditionalImageLinks...)
	}

	urls = lo.Filter(lo.Uniq(urls), func(u string, _ int) bool {
		return strings.TrimSpace(u) != "" && filter.Allow(u)
	})

	if maxCount > 0 && len(urls) > maxCount {
		urls = urls[:maxCount]
	}

	return urls
}

// fileNames returns file names of image urls, unique within the list.
func fileNames(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))

	return lo.Map(urls, func(rawURL string, ix int) string {
		name := "image"
		if u, err := url.Parse(rawURL); err == nil {
			if base := path.Base(u.Path); base != "." && base != "/" {
				name = base
			}
		}

		if _, ok := seen[name]; ok {
			ext := path.Ext(name)
			name = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), ix, ext)
		}
		seen[name] = struct{}{}

		return name
	})
}
