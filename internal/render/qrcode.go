package render

import (
	"errors"
	"image"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// SettingsQRCode encodes the settings page URL so it can be opened from a phone.
func SettingsQRCode(url string, sizePx int) (image.Image, error) {
	if url == "" {
		return nil, errors.New("settings url not configured")
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return code.Image(sizePx), nil
}
