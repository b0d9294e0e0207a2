package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/profile-card/internal/config"
	"github.com/jonathan/profile-card/internal/document"
	"github.com/jonathan/profile-card/internal/logging"
	"github.com/jonathan/profile-card/internal/rendering"
	"github.com/jonathan/profile-card/internal/server/ratelimit"
	"github.com/jonathan/profile-card/internal/types"
)

// ProfileExtractor runs the extraction pipeline for one upload.
type ProfileExtractor interface {
	Run(ctx context.Context, upload *document.Upload) (*types.ExtractionResult, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	extractor       ProfileExtractor
	renderer        rendering.Renderer
	documents       *document.Validator
	limits          config.Limits
	allowedOrigin   string
	shutdownTimeout time.Duration
	rateLimiter     *ratelimit.Limiter
	logger          *logrus.Logger
}

// Options holds the server's dependencies.
type Options struct {
	Config    *config.Config
	Extractor ProfileExtractor
	Renderer  rendering.Renderer
	Logger    *logrus.Logger
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("server config is required")
	}
	if opts.Extractor == nil || opts.Renderer == nil {
		return nil, errors.New("server requires an extractor and a renderer")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	cfg := opts.Config
	s := &Server{
		extractor:       opts.Extractor,
		renderer:        opts.Renderer,
		documents:       document.NewValidator(cfg.Limits),
		limits:          cfg.Limits,
		allowedOrigin:   cfg.Server.AllowedOrigin,
		shutdownTimeout: time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second,
		rateLimiter:     ratelimit.NewLimiter(ratelimit.FromConfig(cfg.RateLimit)),
		logger:          logger,
	}
	if s.allowedOrigin == "" {
		s.allowedOrigin = "*"
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 10 * time.Second
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+ratelimit.ParsePath, s.handleParsePDF)
	mux.HandleFunc("POST "+ratelimit.CardPath, s.handleGenerateCard)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.withRequestID(s.withLogging(s.withCORS(s.withRateLimit(mux)))),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for model calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM,
// then drains in-flight requests.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.httpServer.Addr)
	}
	return s.serve(ln, stop)
}

func (s *Server) serve(ln net.Listener, stop <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", ln.Addr().String()).Info("server.start")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return errors.Wrap(err, "server error")
		}
		return nil
	case <-stop:
	}

	s.logger.Info("server.shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server shutdown failed")
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()
	s.logger.Info("server.stopped")
	return nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithField("req_id", logging.RequestID(r.Context())).WithError(err).Error("http.encode_failed")
	}
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
