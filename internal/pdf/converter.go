// Package pdf renders résumé documents into page images for vision models.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/gen2brain/go-fitz"
)

// DefaultMaxPages bounds how many pages of a résumé are sent to the model
const DefaultMaxPages = 4

const jpegQuality = 90

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether data starts with the PDF header
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// RenderPages rasterizes up to maxPages pages of a PDF into JPEG images.
// maxPages <= 0 renders DefaultMaxPages.
func RenderPages(data []byte, maxPages int) ([][]byte, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	n := min(doc.NumPage(), maxPages)
	pages := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		encoded, err := encodeJPEG(img)
		if err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}
		pages = append(pages, encoded)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}
	return pages, nil
}

// ToJPEG re-encodes a JPEG or PNG upload so every image sent to the model
// has the same format
func ToJPEG(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if format == "jpeg" {
		return data, nil
	}
	return encodeJPEG(img)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
