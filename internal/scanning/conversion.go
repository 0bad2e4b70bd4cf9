package scanning

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// Vision providers want a single PNG. Uploads arrive as phone photos
// (JPEG, HEIC), screenshots (PNG) or exported PDFs, so everything is
// funneled through toPNG before transcription.

// toPNG renders or re-encodes the document as PNG. PDFs contribute
// their first page only; the invoices that matter here are single-page.
func toPNG(docData []byte, contentType string) ([]byte, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	if mimeType == "application/pdf" {
		return pdfFirstPagePNG(docData)
	}
	if mimeType == "image/png" && !isHEIC(docData, mimeType) {
		return docData, nil
	}
	return imagePNG(docData, mimeType)
}

func pdfFirstPagePNG(pdfData []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}

	return encodePNG(img)
}

func imagePNG(docData []byte, mimeType string) ([]byte, error) {
	var img image.Image
	var err error

	if isHEIC(docData, mimeType) {
		// iPhone photos; Go's standard image package cannot decode them.
		img, err = heic.Decode(bytes.NewReader(docData))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC image: %w", err)
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(docData))
		if err != nil {
			return nil, fmt.Errorf("decoding image (supported: JPEG, PNG, GIF, HEIC, PDF): %w", err)
		}
	}

	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// isHEIC sniffs the ftyp box brands HEIC containers start with, and
// also trusts an explicit HEIC MIME type since some browsers upload
// the bytes without a usable extension.
func isHEIC(data []byte, mimeType string) bool {
	if strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif") {
		return true
	}
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heif", "mif1", "msf1":
		return true
	}
	return false
}
