package web

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/quarterface/quarterface/internal/assets"
)

// NewRouter builds the router shared by the device and the simulator:
// - /api/v1/* for the API
// - / for the settings page
//
// extra registers binary-specific routes ahead of the settings page.
func NewRouter(cfg ServerConfig, deps APIV1Deps, extra ...func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Mount("/api/v1", apiV1Router(cfg, deps))
	for _, register := range extra {
		register(r)
	}
	r.Mount("/", StaticUIHandler(assets.SettingsUI))

	if cfg.DevMode {
		return WithDevCORS(r)
	}
	return r
}

// StaticUIHandler serves the embedded settings page.
func StaticUIHandler(ui fs.FS) http.Handler {
	return http.FileServer(http.FS(ui))
}
