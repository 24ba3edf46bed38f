// Package session implements the scan session state machine: the sequence of
// states one platform/profile scan moves through, from platform selection to
// a recorded result or a surfaced error.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calder-r/veriscan/internal/classifier"
	"github.com/calder-r/veriscan/internal/history"
	"github.com/calder-r/veriscan/internal/interfaces"
	"github.com/calder-r/veriscan/internal/logging"
	"github.com/calder-r/veriscan/internal/model"
	"github.com/calder-r/veriscan/internal/utils"
)

// State is the position of a session in its lifecycle.
type State string

const (
	StateIdle             State = "idle"
	StatePlatformSelected State = "platform_selected"
	StateScanning         State = "scanning"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
)

// Validation failures. These never persist anything and the session stays
// interactive; the caller surfaces them and lets the user retry.
var (
	ErrNoPlatform      = errors.New("no platform selected")
	ErrEmptyIdentifier = errors.New("profile identifier is required")
	ErrScanInFlight    = errors.New("a scan is already in progress")
)

type EventType string

const (
	EventState  EventType = "state"
	EventResult EventType = "result"
	EventError  EventType = "error"
)

// Event is emitted on every transition so the websocket surface can stream
// scan progress, same as it would job progress.
type Event struct {
	Type   EventType         `json:"type"`
	State  State             `json:"state"`
	Result *model.ScanResult `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// Snapshot is a read-only copy of the session for display.
type Snapshot struct {
	State      State             `json:"state"`
	Platform   model.Platform    `json:"platform,omitempty"`
	Identifier string            `json:"identifier,omitempty"`
	Result     *model.ScanResult `json:"result,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Session drives one scan at a time. All transitions happen in response to
// discrete caller actions; the classification call is the only suspension
// point and at most one is outstanding.
type Session struct {
	classifier interfaces.Classifier
	history    *history.Store
	timeout    time.Duration
	logger     logging.Logger

	mu         sync.Mutex
	state      State
	platform   model.Platform
	identifier string
	result     *model.ScanResult
	lastErr    string

	events chan Event
}

// New creates an idle session. timeout bounds the classification call; zero
// means no deadline beyond the caller's context.
func New(cls interfaces.Classifier, hist *history.Store, timeout time.Duration, logger logging.Logger) *Session {
	return &Session{
		classifier: cls,
		history:    hist,
		timeout:    timeout,
		logger:     logger.With(logging.Field{Key: "component", Value: "session"}),
		state:      StateIdle,
		events:     make(chan Event, 16),
	}
}

// Events exposes the transition stream. Sends are non-blocking; with no
// consumer, events beyond the buffer are dropped.
func (s *Session) Events() <-chan Event {
	return s.events
}

func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
	}
}

// Snapshot returns the current session for display.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:      s.state,
		Platform:   s.platform,
		Identifier: s.identifier,
		Result:     s.result,
		Error:      s.lastErr,
	}
}

// SelectPlatform moves the session to PlatformSelected and clears any
// previous result or error. Selecting is ignored while a scan is running.
func (s *Session) SelectPlatform(p model.Platform) error {
	if _, err := model.ParsePlatform(string(p)); err != nil {
		return err
	}

	s.mu.Lock()
	if s.state == StateScanning {
		s.mu.Unlock()
		return ErrScanInFlight
	}
	s.platform = p
	s.result = nil
	s.lastErr = ""
	s.state = StatePlatformSelected
	s.mu.Unlock()

	s.emit(Event{Type: EventState, State: StatePlatformSelected})
	return nil
}

// EditIdentifier records the identifier text and, after a finished scan,
// returns the session to PlatformSelected with result and error cleared.
func (s *Session) EditIdentifier(identifier string) error {
	s.mu.Lock()
	if s.state == StateScanning {
		s.mu.Unlock()
		return ErrScanInFlight
	}
	s.identifier = identifier
	s.result = nil
	s.lastErr = ""
	if s.state == StateSucceeded || s.state == StateFailed {
		s.state = StatePlatformSelected
	}
	s.mu.Unlock()
	return nil
}

// Scan runs one full scan of identifier on the selected platform: guard
// checks, the Scanning transition, the classification call, and either a
// recorded result (Succeeded) or a surfaced message (Failed).
//
// While a scan is in flight further submissions return ErrScanInFlight
// without touching the classifier. An empty or whitespace-only identifier
// never leaves PlatformSelected and never reaches the classifier.
func (s *Session) Scan(ctx context.Context, identifier string) (*model.ScanResult, error) {
	s.mu.Lock()
	if s.state == StateScanning {
		s.mu.Unlock()
		return nil, ErrScanInFlight
	}
	if s.platform == "" {
		s.mu.Unlock()
		return nil, ErrNoPlatform
	}
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		s.lastErr = ErrEmptyIdentifier.Error()
		s.state = StatePlatformSelected
		s.mu.Unlock()
		return nil, ErrEmptyIdentifier
	}
	s.identifier = trimmed
	s.result = nil
	s.lastErr = ""
	s.state = StateScanning
	platform := s.platform
	s.mu.Unlock()

	s.emit(Event{Type: EventState, State: StateScanning})

	profileURL := utils.NormalizeIdentifier(trimmed)

	s.logger.Info("scan started",
		logging.Field{Key: "platform", Value: string(platform)},
		logging.Field{Key: "url", Value: profileURL})

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	verdict, err := s.classifier.Classify(callCtx, platform, profileURL)
	if err != nil {
		msg := failureMessage(err)
		s.mu.Lock()
		s.state = StateFailed
		s.lastErr = msg
		s.mu.Unlock()

		s.logger.Warn("scan failed", logging.Field{Key: "error", Value: err.Error()})
		s.emit(Event{Type: EventError, State: StateFailed, Error: msg})
		return nil, err
	}

	result := &model.ScanResult{
		ID:             uuid.NewString(),
		Platform:       platform,
		URL:            profileURL,
		IsFake:         verdict.IsFake,
		Confidence:     verdict.Confidence,
		AccountStatus:  verdict.AccountStatus,
		PredictedClass: verdict.PredictedClass,
		Details:        verdict.Details,
		ProfileData:    verdict.ProfileData,
		Timestamp:      time.Now().UTC(),
	}

	// A persistence failure keeps the verdict visible; it does not turn a
	// completed scan into a failed one.
	if err := s.history.Record(ctx, result); err != nil {
		s.logger.Error("recording scan result", logging.Field{Key: "error", Value: err.Error()})
	}

	s.mu.Lock()
	s.state = StateSucceeded
	s.result = result
	s.mu.Unlock()

	s.logger.Info("scan finished",
		logging.Field{Key: "is_fake", Value: result.IsFake},
		logging.Field{Key: "confidence", Value: result.Confidence})
	s.emit(Event{Type: EventResult, State: StateSucceeded, Result: result})
	return result, nil
}

// failureMessage phrases a classification error for the user, keeping the
// timed-out / unreachable / rejected cases distinguishable.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Scan timed out. Please try again."
	case errors.Is(err, context.Canceled):
		return "Scan was canceled."
	case errors.Is(err, classifier.ErrUnreachable):
		return "Could not connect to the detection service. Please check that it is running."
	default:
		return err.Error()
	}
}
