// # internal/serve/server.go
package serve

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orphan/internal/errors"
	"orphan/internal/report"
)

//go:embed openapi.yaml
var openapiSpec []byte

// ReportSource hands out the most recent completed report, or nil when no
// scan has finished yet.
type ReportSource interface {
	Current() *report.Report
}

// Server exposes the latest report over HTTP next to the Prometheus
// endpoint. It is read-only; scans stay driven by the CLI or the watcher.
type Server struct {
	source ReportSource
	http   *http.Server
}

func New(addr string, source ReportSource) (*Server, error) {
	if _, err := LoadEmbeddedSpec(); err != nil {
		return nil, err
	}

	s := &Server{source: source}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /report", s.handleReport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /openapi.yaml", s.handleSpec)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// LoadEmbeddedSpec parses and validates the bundled OpenAPI document. Run
// at startup so a drifted spec fails loudly instead of serving garbage.
func LoadEmbeddedSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "load embedded openapi spec")
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "validate embedded openapi spec")
	}
	return doc, nil
}

func (s *Server) ListenAndServe() error {
	slog.Info("serving report", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	current := s.source.Current()
	if current == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no scan has completed yet"})
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapiSpec)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}
