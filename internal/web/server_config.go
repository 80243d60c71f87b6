package web

// ServerConfig contains settings for running the HTTP server.
//
// The intended defaults differ per binary:
// - real device: 127.0.0.1:8080 unless the config file opens it up
// - simulator:   :8080
type ServerConfig struct {
	ListenAddr string

	// DevMode wraps the router in permissive CORS.
	DevMode bool

	// SettingsURL is what the settings QR code points at.
	SettingsURL string
}
