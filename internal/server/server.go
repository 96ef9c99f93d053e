package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nao1215/proxycollector/internal/model"
	"github.com/nao1215/proxycollector/internal/report"
)

// channelParam is the query parameter holding the channel reference.
const channelParam = "channel"

// HealthPath is the liveness endpoint.
const HealthPath = "/healthz"

// Collector runs the collect pipeline. *pipeline.Collector satisfies it.
type Collector interface {
	Collect(ctx context.Context, rawChannel string) (*model.Collection, error)
}

// Server is the HTTP gateway. It is an http.Handler.
type Server struct {
	router    *mux.Router
	collector Collector
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and error logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server that answers collect requests with collector.
func New(collector Collector, opts ...Option) *Server {
	s := &Server{collector: collector}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	// SkipClean keeps mux from answering unclean paths with a redirect
	// that would bypass the middleware.
	router := mux.NewRouter().SkipClean(true)
	router.Use(commonHeaders, requestLogger(s.logger))
	router.HandleFunc(HealthPath, s.handleHealth).Methods(http.MethodGet)
	router.PathPrefix("/").HandlerFunc(s.handleCollect)
	s.router = router

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeEnvelope(w, http.StatusOK, &model.Envelope{OK: true})
}

// handleCollect validates the method, runs the pipeline and writes the envelope.
func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet:
	default:
		s.writeEnvelope(w, http.StatusMethodNotAllowed, model.NewErrorEnvelope(model.ErrMethodNotAllowed))
		return
	}

	raw := r.URL.Query().Get(channelParam)

	// The fetch outlives a disconnected caller; the fetch timeout bounds it.
	collection, err := s.collector.Collect(context.WithoutCancel(r.Context()), raw)
	if err != nil {
		s.logger.Warn("collect failed", "channel", raw, "error", err)
	}

	env := model.NewErrorEnvelope(err)
	if err == nil {
		env = collection.Envelope()
	}
	s.writeEnvelope(w, StatusFor(err), env)
}

func (s *Server) writeEnvelope(w http.ResponseWriter, status int, env *model.Envelope) {
	w.WriteHeader(status)
	if _, err := report.NewJSONWriter(w).WriteEnvelope(env); err != nil {
		s.logger.Debug("failed to write response", "error", err)
	}
}
