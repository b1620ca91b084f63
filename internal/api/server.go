package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sanverite/number-classifier/internal/core"
	"github.com/sanverite/number-classifier/internal/trivia"
)

// DefaultAddress binds every interface on a fixed port.
const DefaultAddress = "0.0.0.0:8000"

// FactSource supplies fun facts. Implementations must always return a usable
// Fact; the error only explains why the fallback was used.
type FactSource interface {
	Fetch(ctx context.Context, n int64) (trivia.Fact, error)
}

// ServerOptions configures the HTTP server.
// WriteTimeout must exceed the trivia timeout or slow facts are cut off.
type ServerOptions struct {
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	Logger            *zap.Logger
	CORS              CORSPolicy
}

// Server hosts the HTTP API.
type Server struct {
	http    *http.Server
	handler http.Handler
	facts   FactSource
	logger  *zap.Logger
	opts    ServerOptions
}

// NewServer constructs a new API server backed by facts.
// The server does not start listening until ListenAndServe or Serve is called.
func NewServer(facts FactSource, opts ServerOptions) *Server {
	if facts == nil {
		panic("api.NewServer: fact source is nil")
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddress
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 5 * time.Second
	}
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 2 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	opts.CORS = opts.CORS.withDefaults().clone()

	mux := http.NewServeMux()
	s := &Server{
		facts:  facts,
		logger: opts.Logger,
		opts:   opts,
	}
	s.handler = withMiddleware(mux, opts.Logger, opts.CORS)
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		ErrorLog:          zap.NewStdLog(opts.Logger),
		BaseContext: func(l net.Listener) context.Context {
			return context.Background()
		},
	}

	// Routes
	mux.HandleFunc("/number", s.handleNumber)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/", s.handleNotFound)

	return s
}

// Handler returns the fully wrapped handler, useful for tests.
func (s *Server) Handler() http.Handler { return s.handler }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.opts.Addr }

// ListenAndServe binds Addr and serves until Stop. It returns nil after a
// graceful shutdown.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve accepts connections on l until Stop.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("api: listening", zap.String("addr", l.Addr().String()))
	if err := s.http.Serve(l); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server, waiting up to ShutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	timeout := s.opts.ShutdownTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.http.Shutdown(ctx)
}

// handleHealthz is a simple liveness endpoint.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, newAPIError("method not allowed"))
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: TimeNow().UTC().Format(time.RFC3339),
	})
}

// handleNumber classifies the number in the "number" query parameter.
// Method: GET
// Response (200): NumberResponse JSON
// Errors:
//   - 400 NumberError when the value is not a non-negative int64
//   - 405 for methods other than GET
//
// Trivia failures are logged and replaced by the fallback fact; they never
// change the status code.
func (s *Server) handleNumber(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, newAPIError("method not allowed"))
		return
	}

	raw := lastQueryValue(r.URL.RawQuery, "number")
	n, err := core.ParseNumber(raw)
	if err != nil {
		s.logger.Debug("rejected number",
			zap.String("raw", raw),
			zap.Error(err),
			zap.String("request_id", RequestIDFrom(r.Context())))
		writeJSON(w, http.StatusBadRequest, NumberError{Number: raw, Error: true})
		return
	}

	// Classification is CPU-bound and the fact is I/O-bound; run them side by side.
	var (
		analysis core.Analysis
		fact     trivia.Fact
		g        errgroup.Group
	)
	g.Go(func() error {
		analysis = core.Classify(n)
		return nil
	})
	g.Go(func() error {
		var ferr error
		fact, ferr = s.facts.Fetch(r.Context(), n)
		if ferr != nil {
			s.logger.Warn("trivia unavailable, using fallback",
				zap.Int64("number", n),
				zap.Int("upstream_status", fact.Status),
				zap.Duration("latency", fact.Latency),
				zap.Error(ferr),
				zap.String("request_id", RequestIDFrom(r.Context())))
		}
		return nil
	})
	_ = g.Wait()

	text := fact.Text
	if text == "" {
		text = trivia.DefaultFallback
	}
	writeJSON(w, http.StatusOK, FromAnalysis(analysis.WithFunFact(text)))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, newAPIError("not found"))
}

// lastQueryValue returns the last value bound to key, decoded when possible
// and verbatim otherwise, so malformed escapes are still echoed back.
func lastQueryValue(rawQuery, key string) string {
	var value string
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if dk, err := url.QueryUnescape(k); err != nil || dk != key {
			continue
		}
		if dv, err := url.QueryUnescape(v); err == nil {
			v = dv
		}
		value = v
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}
