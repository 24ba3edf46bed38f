package server

import "github.com/calder-r/veriscan/internal/logging"

// Config carries what the HTTP surface needs beyond the application itself.
type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// Logger is optional; a stdout logger is used when nil.
	Logger logging.Logger
}
