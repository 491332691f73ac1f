// internal/qr/qr.go
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Generator renders QR PNGs for pet tag URLs.
type Generator struct {
	size int
}

func NewGenerator() *Generator {
	return &Generator{size: 256}
}

func (g *Generator) Generate(url string) ([]byte, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate qr code: %w", err)
	}
	return png, nil
}
