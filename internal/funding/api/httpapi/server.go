// Package httpapi exposes the funding engine over JSON HTTP. Write endpoints
// authenticate callers with bearer access tokens; reads are public.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/louisbranch/fundraising.space/internal/funding/auth"
	"github.com/louisbranch/fundraising.space/internal/funding/service"
	platformcmd "github.com/louisbranch/fundraising.space/internal/platform/cmd"
	"github.com/louisbranch/fundraising.space/internal/platform/httpx"
)

// Server routes funding API requests to the lifecycle engine.
type Server struct {
	engine   *service.Engine
	verifier auth.VerifierConfig
	now      func() time.Time
	handler  http.Handler
}

// Option adjusts server construction.
type Option func(*Server)

// WithClock overrides the server clock. Tests use this to pin request time.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer builds the HTTP handler stack around the engine.
func NewServer(engine *service.Engine, verifier auth.VerifierConfig, opts ...Option) (*Server, error) {
	if engine == nil {
		return nil, errors.New("engine is required")
	}
	s := &Server{
		engine:   engine,
		verifier: verifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/campaigns", s.handleCreateCampaign)
	mux.HandleFunc("POST /v1/campaigns/{id}/contributions", s.handleContribute)
	mux.HandleFunc("POST /v1/campaigns/{id}/finalize", s.handleFinalize)
	mux.HandleFunc("POST /v1/campaigns/{id}/withdrawals", s.handleWithdraw)
	mux.HandleFunc("GET /v1/campaigns/{id}", s.handleGetCampaign)
	mux.HandleFunc("GET /v1/campaigns/{id}/contributions/{contributor}", s.handleGetContribution)
	mux.HandleFunc("GET /v1/campaigns/{id}/events", s.handleListEvents)

	s.handler = httpx.Chain(mux,
		httpx.RequestID(),
		httpx.RecoverPanic(),
		httpx.Trace(platformcmd.ServiceFunding),
	)
	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}
