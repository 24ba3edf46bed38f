package interfaces

import (
	"context"

	"github.com/calder-r/veriscan/internal/model"
)

// Classifier is the minimal cross-package contract for producing a fake/real
// verdict on a social-media profile. Implementations may work offline or
// delegate to a remote service; the scan session does not care which.
type Classifier interface {
	// Classify produces a verdict for the given profile. The context carries
	// the caller's deadline; on expiry the implementation must return the
	// context error rather than hang.
	Classify(ctx context.Context, platform model.Platform, profileURL string) (*model.Verdict, error)

	// Healthy reports whether the backing service is reachable. It is a
	// display-only connectivity indicator and never gates a scan attempt.
	Healthy(ctx context.Context) bool
}
