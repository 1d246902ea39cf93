// Package http exposes the parse engine and the command catalog over HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/argot"
	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/persistence/middleware"
	"github.com/aretw0/argot/pkg/ports"
	"github.com/aretw0/argot/pkg/schema"
)

// Server serves the parse endpoints.
type Server struct {
	parser   ports.Parser
	store    ports.CommandStore
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithGatherer exposes the gatherer on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler. store may be nil, in which case only
// inline usages can be parsed.
func NewHandler(parser ports.Parser, store ports.CommandStore, opts ...Option) http.Handler {
	s := &Server{
		parser: parser,
		store:  store,
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/types", s.ListTypes)
	r.Get("/commands", s.ListCommands)
	r.Get("/commands/{name}", s.GetCommand)
	r.Put("/commands/{name}", s.PutCommand)
	r.Delete("/commands/{name}", s.DeleteCommand)
	r.Post("/parse", s.Parse)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

// Serve runs handler on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TypeInfo describes one registered type.
type TypeInfo struct {
	Name string `json:"name"`
	Info string `json:"info,omitempty"`
}

// CommandInfo is a command together with its rendered synopsis.
type CommandInfo struct {
	domain.Command
	Synopsis string `json:"synopsis"`
}

// ParseRequest is the body of POST /parse. Exactly one of Command or Usage is set.
type ParseRequest struct {
	Command string          `json:"command,omitempty"`
	Usage   json.RawMessage `json:"usage,omitempty"`
	Tokens  []any           `json:"tokens"`
}

// ParseResponse is the body of a successful POST /parse.
type ParseResponse struct {
	Command string `json:"command,omitempty"`
	Values  []any  `json:"values"`
}

// ErrorBody is the error envelope of every failed request.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable part of a failure.
type ErrorDetail struct {
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
	Position *int     `json:"position,omitempty"`
	Value    any      `json:"value,omitempty"`
	Types    []string `json:"types,omitempty"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "argot-http",
		"version": argot.Version,
	})
}

// ListTypes handles the GET /types request.
func (s *Server) ListTypes(w http.ResponseWriter, r *http.Request) {
	descriptors := s.parser.Types()
	out := make([]TypeInfo, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, TypeInfo{Name: d.Name, Info: d.Info})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// ListCommands handles the GET /commands request.
func (s *Server) ListCommands(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusOK, []CommandInfo{})
		return
	}

	names, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("ListCommands failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, ErrorDetail{Kind: "internal", Message: err.Error()})
		return
	}

	out := make([]CommandInfo, 0, len(names))
	for _, name := range names {
		cmd, err := s.store.Load(r.Context(), name)
		if errors.Is(err, domain.ErrCommandNotFound) {
			// Expired between List and Load
			continue
		}
		if err != nil {
			s.logger.Error("ListCommands load failed", "command", name, "err", err)
			s.writeError(w, http.StatusInternalServerError, ErrorDetail{Kind: "internal", Message: err.Error()})
			return
		}
		out = append(out, CommandInfo{Command: cmd, Synopsis: cmd.Synopsis()})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetCommand handles the GET /commands/{name} request.
func (s *Server) GetCommand(w http.ResponseWriter, r *http.Request) {
	cmd, ok := s.loadCommand(w, r, chi.URLParam(r, "name"))
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, CommandInfo{Command: cmd, Synopsis: cmd.Synopsis()})
}

// PutCommand handles the PUT /commands/{name} request.
// The name in the path wins over any name in the body.
func (s *Server) PutCommand(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, ErrorDetail{Kind: "not_found", Message: "no command catalog configured"})
		return
	}

	var cmd domain.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		if schema.IsSchemaError(err) {
			s.writeFailure(w, err)
			return
		}
		s.logger.Warn("PutCommand: Invalid request body", "err", err)
		s.writeError(w, http.StatusBadRequest, ErrorDetail{Kind: "bad_request", Message: "invalid request body"})
		return
	}
	cmd.Name = chi.URLParam(r, "name")

	if err := s.store.Save(r.Context(), cmd); err != nil {
		s.writeStoreFailure(w, err)
		return
	}
	s.logger.Info("Command saved", "command", cmd.Name)
	s.writeJSON(w, http.StatusOK, CommandInfo{Command: cmd, Synopsis: cmd.Synopsis()})
}

// DeleteCommand handles the DELETE /commands/{name} request.
func (s *Server) DeleteCommand(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, ErrorDetail{Kind: "not_found", Message: "no command catalog configured"})
		return
	}
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.writeStoreFailure(w, err)
		return
	}
	s.logger.Info("Command deleted", "command", name)
	w.WriteHeader(http.StatusNoContent)
}

// Parse handles the POST /parse request.
func (s *Server) Parse(w http.ResponseWriter, r *http.Request) {
	var body ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("Parse: Invalid request body", "err", err)
		s.writeError(w, http.StatusBadRequest, ErrorDetail{Kind: "bad_request", Message: "invalid request body"})
		return
	}

	// 1. Resolve the usage, from the catalog or inline
	var usage schema.Usage
	switch {
	case body.Command != "" && len(body.Usage) > 0:
		s.writeError(w, http.StatusBadRequest, ErrorDetail{Kind: "bad_request", Message: "set either command or usage, not both"})
		return
	case body.Command != "":
		cmd, ok := s.loadCommand(w, r, body.Command)
		if !ok {
			return
		}
		usage = cmd.Usage
	case len(body.Usage) > 0:
		var raw any
		if err := json.Unmarshal(body.Usage, &raw); err != nil {
			s.writeError(w, http.StatusBadRequest, ErrorDetail{Kind: "bad_request", Message: "invalid usage"})
			return
		}
		decoded, err := schema.DecodeUsage(raw)
		if err != nil {
			s.writeFailure(w, err)
			return
		}
		usage = decoded
	default:
		s.writeError(w, http.StatusBadRequest, ErrorDetail{Kind: "bad_request", Message: "command or usage is required"})
		return
	}

	// 2. Parse
	values, err := s.parser.Parse(r.Context(), body.Tokens, usage)
	if err != nil {
		s.logger.Debug("Parse rejected", "command", body.Command, "kind", schema.Kind(err), "err", err)
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ParseResponse{Command: body.Command, Values: values})
}

func (s *Server) loadCommand(w http.ResponseWriter, r *http.Request, name string) (domain.Command, bool) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, ErrorDetail{Kind: "not_found", Message: "no command catalog configured"})
		return domain.Command{}, false
	}
	cmd, err := s.store.Load(r.Context(), name)
	if errors.Is(err, domain.ErrCommandNotFound) {
		s.writeError(w, http.StatusNotFound, ErrorDetail{Kind: "not_found", Message: fmt.Sprintf("command %q not found", name)})
		return domain.Command{}, false
	}
	if err != nil {
		s.logger.Error("Command load failed", "command", name, "err", err)
		s.writeError(w, http.StatusInternalServerError, ErrorDetail{Kind: "internal", Message: err.Error()})
		return domain.Command{}, false
	}
	return cmd, true
}

// writeFailure maps engine errors to status codes: schema problems are the
// caller's usage (400), argument problems are the caller's tokens (422).
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	detail := ErrorDetail{Kind: schema.Kind(err), Message: err.Error()}

	var argErr *schema.ArgumentError
	var schemaErr *schema.SchemaError
	switch {
	case errors.As(err, &argErr):
		pos := argErr.Position
		detail.Position = &pos
		detail.Value = argErr.Value
		detail.Types = argErr.Types
		s.writeError(w, http.StatusUnprocessableEntity, detail)
	case errors.As(err, &schemaErr):
		if schemaErr.Position >= 0 {
			pos := schemaErr.Position
			detail.Position = &pos
		}
		s.writeError(w, http.StatusBadRequest, detail)
	default:
		s.logger.Error("Parse failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, detail)
	}
}

func (s *Server) writeStoreFailure(w http.ResponseWriter, err error) {
	switch {
	case schema.IsSchemaError(err):
		s.writeFailure(w, err)
	case errors.Is(err, domain.ErrInvalidCommand):
		s.writeError(w, http.StatusBadRequest, ErrorDetail{Kind: "invalid_command", Message: err.Error()})
	case errors.Is(err, middleware.ErrReadOnly):
		s.writeError(w, http.StatusForbidden, ErrorDetail{Kind: "read_only", Message: err.Error()})
	default:
		s.logger.Error("Store failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, ErrorDetail{Kind: "internal", Message: err.Error()})
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail ErrorDetail) {
	s.writeJSON(w, status, ErrorBody{Error: detail})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}
