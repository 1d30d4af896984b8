package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"task-launcher/internal/application/port/input"
	"task-launcher/internal/application/port/output"
	"task-launcher/internal/domain/entity"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
)

const maxBodyBytes = 64 * 1024

type CommandRequest struct {
	Text string `json:"text"`
}

type CommandResponse struct {
	ID       string `json:"id"`
	Action   string `json:"action"`
	Target   string `json:"target,omitempty"`
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes the command processor over HTTP. Commands run one at a
// time, matching the interactive session.
type Server struct {
	processor input.CommandProcessor
	registry  output.AppRegistry
	logger    output.LoggerPort

	mu sync.Mutex
}

func NewServer(processor input.CommandProcessor, registry output.AppRegistry, logger output.LoggerPort) *Server {
	return &Server{
		processor: processor,
		registry:  registry,
		logger:    logger,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	requestLog := httplog.NewLogger("launcher", httplog.Options{
		JSON:    true,
		Concise: true,
	}).Output(requestLogWriter{logger: s.logger})
	r.Use(httplog.RequestLogger(requestLog))

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/commands", s.runCommand)
		r.Get("/apps", s.listApps)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP trigger listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("HTTP trigger shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) runCommand(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r.Header.Get("Content-Type")) {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{Error: "content type must be application/json"})
		return
	}
	if !isLocalOrigin(r.Header.Get("Origin")) {
		s.logger.Warn("Rejected cross-origin command", "origin", r.Header.Get("Origin"))
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "cross-origin requests are not allowed"})
		return
	}

	var req CommandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return
	}

	s.mu.Lock()
	result, err := s.processor.Process(r.Context(), req.Text)
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("HTTP command failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, toResponse(result))
}

func (s *Server) listApps(w http.ResponseWriter, r *http.Request) {
	apps := s.registry.List()
	if apps == nil {
		apps = []entity.AppEntry{}
	}
	writeJSON(w, http.StatusOK, apps)
}

func toResponse(result *entity.CommandResult) CommandResponse {
	return CommandResponse{
		ID:       result.ID,
		Action:   result.Intent.Action.String(),
		Target:   result.Intent.Target,
		Response: result.Response,
	}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

// isLocalOrigin accepts requests without an Origin header (curl, scripts)
// and pages served from the loopback interface.
func isLocalOrigin(origin string) bool {
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}

// requestLogWriter feeds httplog's JSON lines into the session log instead
// of stdout.
type requestLogWriter struct {
	logger output.LoggerPort
}

func (w requestLogWriter) Write(p []byte) (int, error) {
	var fields map[string]any
	if err := json.Unmarshal(p, &fields); err != nil {
		w.logger.Info("HTTP request", "raw", strings.TrimSpace(string(p)))
		return len(p), nil
	}

	msg, _ := fields["message"].(string)
	if msg == "" {
		msg = "HTTP request"
	}
	for _, key := range []string{"message", "level", "time", "timestamp"} {
		delete(fields, key)
	}

	w.logger.WithFields(fields).Info(msg)
	return len(p), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
