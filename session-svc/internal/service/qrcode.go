package service

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(sessionID int) ([]byte, error)
}

// DefaultQRGenerator encodes the public session link as a 256px PNG.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(sessionID int) ([]byte, error) {
	link := fmt.Sprintf("%s/sessions/%d", strings.TrimRight(g.BaseURL, "/"), sessionID)
	return qrcode.Encode(link, qrcode.Medium, 256)
}
