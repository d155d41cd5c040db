package images

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// FloorDimension is minimal width and height of processed image.
	FloorDimension = 300
	// LandscapeRatio is width to height ratio of landscape variant.
	LandscapeRatio = 1.91
	// DefaultMaxDimension is default maximal width and height of variants.
	DefaultMaxDimension = 1200

	squareSuffix    = "_sq"
	landscapeSuffix = "_ls"
	jpegQuality     = 90
)

// Variants are paths of normalized image variants.
type Variants struct {
	Square    string
	Landscape string
}

// VariantPaths returns square and landscape variant paths of image path.
// Formats other than jpeg and png produce png variants.
func VariantPaths(p string) Variants {
	ext := filepath.Ext(p)
	base := strings.TrimSuffix(p, ext)

	out := strings.ToLower(ext)
	switch out {
	case ".jpg", ".jpeg", ".png":
	default:
		out = ".png"
	}

	return Variants{
		Square:    base + squareSuffix + out,
		Landscape: base + landscapeSuffix + out,
	}
}

// Normalize writes square and landscape variants of image at srcPath next to it.
// Images smaller than FloorDimension are padded first. Variants are padded with white
// background to target ratio and scaled down to fit maxDimension.
func Normalize(srcPath string, maxDimension int) (*Variants, error) {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("can't read image %q: %w", srcPath, err)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("can't decode image %q: %w (%v)", srcPath, ErrUnsupportedFormat, err)
	}

	variants := VariantPaths(srcPath)

	padded := false
	if b := img.Bounds(); b.Dx() < FloorDimension || b.Dy() < FloorDimension {
		img = pad(img, max(b.Dx(), FloorDimension), max(b.Dy(), FloorDimension))
		padded = true
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	// square
	if w == h && !padded && sameFormat(format, variants.Square) {
		err = os.WriteFile(variants.Square, raw, 0o644)
	} else {
		side := max(w, h)
		square := pad(img, side, side)
		if side > maxDimension {
			square = scale(square, maxDimension, maxDimension)
		}
		err = encode(variants.Square, square)
	}
	if err != nil {
		return nil, fmt.Errorf("can't write square variant of %q: %w", srcPath, err)
	}

	// landscape
	if IsLandscape(w, h) && !padded && sameFormat(format, variants.Landscape) {
		err = os.WriteFile(variants.Landscape, raw, 0o644)
	} else {
		lw, lh := landscapeSize(w, h)
		landscape := pad(img, lw, lh)
		if lw > maxDimension {
			landscape = scale(landscape, maxDimension, int(math.Round(float64(maxDimension)/LandscapeRatio)))
		}
		err = encode(variants.Landscape, landscape)
	}
	if err != nil {
		return nil, fmt.Errorf("can't write landscape variant of %q: %w", srcPath, err)
	}

	return &variants, nil
}

// IsLandscape reports whether w to h ratio rounded to two decimals equals LandscapeRatio.
func IsLandscape(w, h int) bool {
	if h == 0 {
		return false
	}
	return math.Round(float64(w)/float64(h)*100)/100 == LandscapeRatio
}

// landscapeSize returns the smallest size with LandscapeRatio containing w x h.
func landscapeSize(w, h int) (int, int) {
	if float64(w)/float64(h) <= LandscapeRatio {
		return int(math.Round(float64(h) * LandscapeRatio)), h
	}
	return w, int(math.Round(float64(w) / LandscapeRatio))
}

// pad centers img on white w x h canvas.
func pad(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	offset := image.Pt((w-b.Dx()+1)/2, (h-b.Dy()+1)/2)
	draw.Draw(canvas, image.Rectangle{Min: offset, Max: offset.Add(b.Size())}, img, b.Min, draw.Over)

	return canvas
}

func scale(img image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	return dst
}

func sameFormat(format, p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".jpg", ".jpeg":
		return format == "jpeg"
	case ".png":
		return format == "png"
	default:
		return false
	}
}

func encode(p string, img image.Image) error {
	f, err := os.Create(p)
	if err != nil {
		return err
	}

	if err = encodeTo(f, p, img); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func encodeTo(w io.Writer, p string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	default:
		return png.Encode(w, img)
	}
}
