// Package qr renders order deep links as scannable PNG images.
// Opaque collaborator of the invoice service: it maps a link to image
// bytes and knows nothing about pricing.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"pharmakart/internal/domain/invoice"
)

// Encoder renders deep links with go-qrcode.
type Encoder struct {
	size int
}

// Compile-time check.
var _ invoice.QREncoder = (*Encoder)(nil)

// NewEncoder creates an encoder. size is the image edge in pixels;
// values below 64 fall back to 256.
func NewEncoder(size int) *Encoder {
	if size < 64 {
		size = 256
	}
	return &Encoder{size: size}
}

// Encode returns the link as a PNG image.
func (e *Encoder) Encode(link string) ([]byte, error) {
	if link == "" {
		return nil, fmt.Errorf("empty deep link")
	}
	png, err := qrcode.Encode(link, qrcode.Medium, e.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
