// Package server exposes the forecast engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/theirongolddev/growthcast/internal/forecast"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const shutdownTimeout = 5 * time.Second

// Config controls the server runtime behavior.
type Config struct {
	Addr     string
	Defaults forecast.Input
	Logger   *logrus.Logger
}

// Server serves the forecast API.
type Server struct {
	cfg Config
	log *logrus.Logger
}

type route struct {
	method  string
	path    string
	handler httprouter.Handle
}

// New returns a server with the provided config. A nil Logger falls back to
// the logrus standard logger.
func New(cfg Config) *Server {
	l := cfg.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Server{cfg: cfg, log: l}
}

func (s *Server) routes() []route {
	return []route{
		{http.MethodGet, "/healthz", s.handleHealth},
		{http.MethodGet, "/v1/defaults", s.handleDefaults},
		{http.MethodGet, "/v1/forecast", s.handleForecastQuery},
		{http.MethodPost, "/v1/forecast", s.handleForecastBody},
	}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	r := httprouter.New()
	for _, rt := range s.routes() {
		r.Handle(rt.method, rt.path, rt.handler)
	}
	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, ErrNotFound, "no such route")
	})
	return s.middleware().Then(r)
}

// Run serves on cfg.Addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", ln.Addr().String()).Info("forecast API listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("forecast http server: %w", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
