package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/calder-r/veriscan/internal/logging"
	"github.com/calder-r/veriscan/internal/model"
)

// RemoteProvider delegates classification to the detection service: one POST
// per scan, one GET for the connectivity probe. Timeouts are the caller's
// responsibility via ctx; the provider itself never retries.
type RemoteProvider struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// NewRemoteProvider wraps the service at baseURL. client may be nil, in which
// case a default client is used; per-scan deadlines still come from ctx.
func NewRemoteProvider(baseURL string, client *http.Client, logger logging.Logger) *RemoteProvider {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &RemoteProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger.With(logging.Field{Key: "component", Value: "classifier/remote"}),
	}
}

type scanRequest struct {
	Platform   string `json:"platform"`
	ProfileURL string `json:"profileUrl"`
}

type scanResponse struct {
	Success        bool               `json:"success"`
	IsFake         bool               `json:"isFake"`
	Confidence     int                `json:"confidence"`
	AccountStatus  string             `json:"accountStatus"`
	PredictedClass string             `json:"predictedClass"`
	Details        model.Details      `json:"details"`
	ProfileData    *model.ProfileData `json:"profileData"`
	Error          string             `json:"error"`
	Detail         string             `json:"detail"`
}

func (p *RemoteProvider) Classify(ctx context.Context, platform model.Platform, profileURL string) (*model.Verdict, error) {
	payload, err := json.Marshal(scanRequest{Platform: string(platform), ProfileURL: profileURL})
	if err != nil {
		return nil, fmt.Errorf("encoding scan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/scan", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	p.logger.Debug("sending scan request",
		logging.Field{Key: "platform", Value: string(platform)},
		logging.Field{Key: "url", Value: profileURL})

	resp, err := p.client.Do(req)
	if err != nil {
		// Surface a context error as-is so the session can report a timeout
		// instead of a generic connection failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		p.logger.Warn("scan request failed", logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnreachable, err)
	}

	var decoded scanResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The service may still supply a message alongside a non-2xx status.
		_ = json.Unmarshal(body, &decoded)
		msg := firstNonEmpty(decoded.Error, decoded.Detail, http.StatusText(resp.StatusCode))
		return nil, fmt.Errorf("%w: %s", ErrRejected, msg)
	}

	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrRejected, err)
	}
	if !decoded.Success {
		msg := firstNonEmpty(decoded.Error, decoded.Detail, "scan failed")
		return nil, fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	if decoded.Confidence < 0 || decoded.Confidence > 100 {
		return nil, fmt.Errorf("%w: confidence %d out of range", ErrRejected, decoded.Confidence)
	}

	return &model.Verdict{
		IsFake:         decoded.IsFake,
		Confidence:     decoded.Confidence,
		AccountStatus:  decoded.AccountStatus,
		PredictedClass: decoded.PredictedClass,
		Details:        decoded.Details,
		ProfileData:    decoded.ProfileData,
	}, nil
}

// Healthy probes GET /health. The result is a display-only connectivity
// indicator; it never gates whether a scan may be attempted.
func (p *RemoteProvider) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	var status struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return false
	}
	return resp.StatusCode == http.StatusOK && status.Status == "healthy"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
