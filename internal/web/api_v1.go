package web

import (
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quarterface/quarterface/internal/app/screens"
	"github.com/quarterface/quarterface/internal/render"
	"github.com/quarterface/quarterface/internal/watch"
)

const maxSettingsBody = 4 << 10

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// faceSettings uses the words of the watch's own settings page.
type faceSettings struct {
	BgColor   string `json:"bg_color"`
	Interval  string `json:"interval"`
	HourDigit string `json:"hour_digit"`
}

// faceUpdate is a partial faceSettings; nil fields keep their value.
type faceUpdate struct {
	BgColor   *string `json:"bg_color"`
	Interval  *string `json:"interval"`
	HourDigit *string `json:"hour_digit"`
}

type timeResponse struct {
	Set       bool   `json:"set"`
	Time      string `json:"time"`
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
	Second    int    `json:"second"`
	LastPaint string `json:"last_paint"`
	Frames    uint64 `json:"frames"`
	Revision  uint64 `json:"revision"`
}

func apiV1Router(cfg ServerConfig, deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	r := chi.NewRouter()
	r.Get("/face", func(w http.ResponseWriter, r *http.Request) { handleGetFace(w, r, deps) })
	r.Put("/face", func(w http.ResponseWriter, r *http.Request) { handlePutFace(w, r, deps) })
	r.Get("/time", func(w http.ResponseWriter, r *http.Request) { handleTime(w, r, deps) })
	r.Get("/preview.png", func(w http.ResponseWriter, r *http.Request) { handlePreview(w, r, deps) })
	r.Get("/settings-qr.png", func(w http.ResponseWriter, r *http.Request) { handleSettingsQR(w, r, cfg) })
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusNotFound, "not_found", "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	return r
}

func settingsFromFace(face watch.Config) faceSettings {
	digit := "hide"
	if face.ShowHourBadge {
		digit = "show"
	}
	return faceSettings{BgColor: face.Theme.Name, Interval: face.Granularity.String(), HourDigit: digit}
}

func (u faceUpdate) apply(face watch.Config) (watch.Config, error) {
	if u.BgColor != nil {
		theme, err := watch.ThemeByName(*u.BgColor)
		if err != nil {
			return face, err
		}
		face.Theme = theme
	}
	if u.Interval != nil {
		g, err := watch.ParseGranularity(*u.Interval)
		if err != nil {
			return face, err
		}
		face.Granularity = g
	}
	if u.HourDigit != nil {
		switch *u.HourDigit {
		case "show":
			face.ShowHourBadge = true
		case "hide":
			face.ShowHourBadge = false
		default:
			return face, fmt.Errorf("unknown hour_digit %q", *u.HourDigit)
		}
	}
	return face, nil
}

func handleGetFace(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "state not configured")
		return
	}
	writeJSON(w, http.StatusOK, settingsFromFace(deps.Store.Snapshot().Face))
}

func handlePutFace(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Store == nil || deps.ApplyFace == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "face updates not configured")
		return
	}

	var update faceUpdate
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSettingsBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&update); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	face, err := deps.ApplyFace(update.apply)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_setting", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settingsFromFace(face))
}

func handleTime(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "state not configured")
		return
	}
	snap := deps.Store.Snapshot()
	writeJSON(w, http.StatusOK, timeResponse{
		Set:       !snap.Time.IsUnset(),
		Time:      snap.Time.String(),
		Hour:      snap.Time.Hour,
		Minute:    snap.Time.Minute,
		Second:    snap.Time.Second,
		LastPaint: snap.LastPaint,
		Frames:    snap.Frames,
		Revision:  snap.Revision,
	})
}

// handlePreview paints the current state with a fresh face, so it never
// disturbs the incremental state of the one on the display.
func handlePreview(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "state not configured")
		return
	}
	snap := deps.Store.Snapshot()
	if snap.Time.IsUnset() {
		snap.Time = watch.FromClock(deps.Now())
	}

	canvas := render.NewRaster(deps.Canvas)
	screens.NewWatchFace(deps.Geometry).Draw(canvas, snap)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := canvas.EncodePNG(w); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
	}
}

func handleSettingsQR(w http.ResponseWriter, r *http.Request, cfg ServerConfig) {
	img, err := render.SettingsQRCode(cfg.SettingsURL, 0)
	if err != nil {
		writeAPIError(w, http.StatusNotFound, "no_settings_url", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
