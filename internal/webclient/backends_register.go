package webclient

import (
	"net/http"
	"time"

	"github.com/calder-r/veriscan/internal/interfaces"
)

// RegisterDefaultBackends registers the default nethttp and chromedp backends.
// Call this early in main() to make backends available to NewWebClient.
func RegisterDefaultBackends() {
	RegisterBackend("nethttp", func(cfg Config, logger interfaces.Logger) (interfaces.WebClient, error) {
		timeout := 30 * time.Second
		if cfg.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		return NewNetHTTPClient(&http.Client{Timeout: timeout}, logger), nil
	})

	RegisterBackend("chromedp", func(cfg Config, logger interfaces.Logger) (interfaces.WebClient, error) {
		return NewChromeDPClient(2*time.Second, cfg.Headless, logger)
	})
}
