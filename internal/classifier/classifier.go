// Package classifier hosts the two classification policies behind the
// interfaces.Classifier contract: an offline provider that synthesizes
// verdicts locally and a remote provider that delegates to the detection
// service. Which one runs is a config flag, never a code fork.
package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/calder-r/veriscan/internal/interfaces"
	"github.com/calder-r/veriscan/internal/logging"
	"github.com/calder-r/veriscan/internal/model"
)

// Provider names accepted by Config.Provider.
const (
	ProviderOffline = "offline"
	ProviderRemote  = "remote"
)

// Failure taxonomy. The scan session uses these to phrase its error message:
// a connection failure reads differently from a rejection by the service.
var (
	// ErrUnreachable means the detection service could not be reached at all.
	ErrUnreachable = errors.New("detection service unreachable")

	// ErrRejected means the service answered but refused or failed the scan.
	ErrRejected = errors.New("scan rejected by detection service")
)

// Config selects and parameterizes a classification provider.
type Config struct {
	// Provider is offline or remote. Empty means offline.
	Provider string `yaml:"provider"`

	// BaseURL is the remote detection service root, e.g. http://localhost:8000.
	BaseURL string `yaml:"base_url"`
}

// ProfileProber is the optional page probe the offline provider uses to
// attach real profile metadata to a synthesized verdict.
type ProfileProber interface {
	Probe(ctx context.Context, profileURL string) (*model.ProfileData, error)
}

// New constructs the configured provider. prober may be nil; it only serves
// the offline provider and is best-effort there.
func New(cfg Config, prober ProfileProber, logger logging.Logger) (interfaces.Classifier, error) {
	switch cfg.Provider {
	case "", ProviderOffline:
		return NewOfflineProvider(prober, logger), nil
	case ProviderRemote:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("remote classifier requires a base_url")
		}
		return NewRemoteProvider(cfg.BaseURL, nil, logger), nil
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", cfg.Provider)
	}
}
