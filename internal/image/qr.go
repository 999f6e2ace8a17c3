package imagepkg

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/youruser/killfeedapp/internal/killboard"
)

const (
	DefaultQRSize = 256
	maxQRSize     = 1024
)

// KillboardQRPNG returns PNG bytes of a QR code linking to the event's
// killboard page. Sizes outside (0, 1024] fall back to DefaultQRSize.
func KillboardQRPNG(eventID int64, size int) ([]byte, error) {
	if size <= 0 || size > maxQRSize {
		size = DefaultQRSize
	}
	b, err := qrcode.Encode(killboard.KillboardURL(eventID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr for event %d: %w", eventID, err)
	}
	return b, nil
}
