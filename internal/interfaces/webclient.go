package interfaces

import (
	"context"

	"github.com/calder-r/veriscan/internal/model"
)

// WebClient abstracts page retrieval so the profile probe can run against
// either plain HTTP or a rendering browser backend.
type WebClient interface {
	Do(ctx context.Context, req *model.Request) (*model.Response, error)

	// Get is a convenience method for simple GET requests
	Get(ctx context.Context, url string) (*model.Response, error)

	Close() error
}
