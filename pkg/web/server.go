package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"mini-livechart/pkg/feed"
	"mini-livechart/pkg/model"
	"mini-livechart/pkg/stream"
	"mini-livechart/pkg/view"
)

// ViewRegistry is where the server looks up views by name.
type ViewRegistry interface {
	Get(name string) (*view.View, error)
	Names() []string
	Remove(name string) error
}

// Subscriber hands out frame subscriptions for the stream endpoint.
type Subscriber interface {
	Subscribe(k model.SeriesKey) (*stream.Subscription, error)
}

// Server handles setting up an HTTP server and servicing HTTP requests.
type Server struct {
	lis       net.Listener
	server    *http.Server
	logWriter io.Writer
	logger    *slog.Logger
	policy    feed.IntervalPolicy
}

// NewServer opens a TCP listener on addr and returns an initialized Server.
func NewServer(
	addr string,
	views ViewRegistry,
	subs Subscriber,
	opts ...ServerOption,
) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on %s: %w", addr, err)
	}

	s := &Server{
		lis:       lis,
		logWriter: os.Stdout,
		logger:    slog.Default(),
		policy:    feed.DefaultPolicy,
	}
	for _, o := range opts {
		o(s)
	}
	s.logger.Info("server bound", "addr", lis.Addr().String())

	s.server = &http.Server{
		Handler:           handlers.LoggingHandler(s.logWriter, NewRouter(views, subs, s.policy, s.logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// NewRouter registers every view endpoint on a fresh router.
func NewRouter(views ViewRegistry, subs Subscriber, policy feed.IntervalPolicy, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()

	router.Handle("/policy", PolicyShow(policy)).Methods(http.MethodGet)
	router.Handle("/views", ViewsIndex(views)).Methods(http.MethodGet)
	router.Handle("/views/{name}", ViewShow(views)).Methods(http.MethodGet)
	router.Handle("/views/{name}", ViewDelete(views)).Methods(http.MethodDelete)
	router.Handle("/views/{name}/start", ViewStart(views)).Methods(http.MethodPost)
	router.Handle("/views/{name}/stop", ViewStop(views)).Methods(http.MethodPost)
	router.Handle("/views/{name}/toggle", ViewToggle(views)).Methods(http.MethodPost)
	router.Handle("/views/{name}/interval", ViewInterval(views, policy)).Methods(http.MethodPut)
	router.Handle("/views/{name}/export", ViewExport(views)).Methods(http.MethodGet)
	router.Handle("/views/{name}/chart.png", ViewPNG(views, logger)).Methods(http.MethodGet)
	router.Handle("/views/{name}/stream", ViewStream(views, subs, logger)).Methods(http.MethodGet)

	return router
}

// Addr returns the address that the listener is bound to.
func (s *Server) Addr() string {
	return s.lis.Addr().String()
}

// Serve serves the HTTP server on the servers Listener. This is a blocking
// method.
func (s *Server) Serve() {
	if err := s.server.Serve(s.lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("server stopped", "error", err)
	}
}

// Stop will perform a graceful shutdown of the HTTP server.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Warn("server shutdown", "error", err)
	}
}

// ServerOption is a function that can be passed to the server initializer to
// configure optional settings.
type ServerOption func(*Server)

// WithLogWriter will override the writer used for HTTP access logs.
func WithLogWriter(w io.Writer) ServerOption {
	return func(s *Server) {
		s.logWriter = w
	}
}

func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// WithIntervalPolicy sets the bounds enforced on interval changes.
func WithIntervalPolicy(p feed.IntervalPolicy) ServerOption {
	return func(s *Server) {
		s.policy = p
	}
}
