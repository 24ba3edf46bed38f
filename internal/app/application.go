package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/calder-r/veriscan/internal/auth"
	"github.com/calder-r/veriscan/internal/classifier"
	"github.com/calder-r/veriscan/internal/history"
	"github.com/calder-r/veriscan/internal/interfaces"
	"github.com/calder-r/veriscan/internal/kvstore"
	"github.com/calder-r/veriscan/internal/logging"
	"github.com/calder-r/veriscan/internal/probe"
	"github.com/calder-r/veriscan/internal/session"
	"github.com/calder-r/veriscan/internal/webclient"
)

// Application wires the KV store, history, classifier, probe and auth
// together and hands out one scan session per authenticated user.
type Application struct {
	cfg    *Config
	logger logging.Logger

	kv         interfaces.KVStore
	wc         interfaces.WebClient
	classifier interfaces.Classifier
	history    *history.Store
	auth       *auth.Service

	sessMu   sync.Mutex
	sessions map[string]*session.Session
}

// NewApplication builds the full object graph from cfg. Webclient backends
// must be registered (webclient.RegisterDefaultBackends) before calling it.
func NewApplication(ctx context.Context, cfg *Config, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	storageRoot, err := cfg.ExpandStorageRoot()
	if err != nil {
		return nil, fmt.Errorf("expanding storage root path: %w", err)
	}
	storeCfg := cfg.Store
	if storeCfg.Path == "" {
		storeCfg.Path = storageRoot
	}

	kv, err := kvstore.Open(ctx, storeCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening kv store: %w", err)
	}

	wc, err := webclient.NewWebClient(cfg.WebClient, logger)
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("constructing webclient: %w", err)
	}

	prober := probe.New(wc, logger)
	cls, err := classifier.New(cfg.Classifier, prober, logger)
	if err != nil {
		wc.Close()
		kv.Close()
		return nil, fmt.Errorf("constructing classifier: %w", err)
	}

	authSvc, err := auth.NewService(cfg.Auth, kv, logger)
	if err != nil {
		wc.Close()
		kv.Close()
		return nil, fmt.Errorf("constructing auth service: %w", err)
	}

	return &Application{
		cfg:        cfg,
		logger:     logger,
		kv:         kv,
		wc:         wc,
		classifier: cls,
		history:    history.NewStore(ctx, kv, logger),
		auth:       authSvc,
		sessions:   make(map[string]*session.Session),
	}, nil
}

func (a *Application) Auth() *auth.Service               { return a.auth }
func (a *Application) History() *history.Store           { return a.history }
func (a *Application) Classifier() interfaces.Classifier { return a.classifier }

// SessionFor returns the scan session owned by email, creating an idle one
// on first use.
func (a *Application) SessionFor(email string) *session.Session {
	a.sessMu.Lock()
	defer a.sessMu.Unlock()
	sess, ok := a.sessions[email]
	if !ok {
		sess = session.New(a.classifier, a.history, a.cfg.ScanTimeout(), a.logger)
		a.sessions[email] = sess
	}
	return sess
}

// Close releases the webclient and the KV store.
func (a *Application) Close() {
	if a.wc != nil {
		_ = a.wc.Close()
	}
	if a.kv != nil {
		_ = a.kv.Close()
	}
}
