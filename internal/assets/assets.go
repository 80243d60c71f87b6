package assets

import (
	"embed"
	"io/fs"

	"golang.org/x/image/font/gofont/gomonobold"
)

// FontTTF is the face used for the hour badge.
var FontTTF = gomonobold.TTF

//go:embed web
var webFS embed.FS

// SettingsUI is the embedded settings page rooted at internal/assets/web.
var SettingsUI fs.FS

func init() {
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	SettingsUI = sub
}
