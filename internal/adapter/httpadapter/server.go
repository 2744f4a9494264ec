package httpadapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/metar-etl-service/internal/metar"
)

// maxReportBytes caps the body of a parse request.
const maxReportBytes = 64 << 10

// Server exposes health, readiness, metrics and on-demand parse endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	rollover   metar.RolloverPolicy
	clock      clockwork.Clock
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and
// /v1/metar/parse routes. Reports parsed without an explicit year and month
// are anchored on the current date using rollover.
func NewServer(addr string, ready sharedobs.ReadinessChecker, rollover metar.RolloverPolicy, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:   logger,
		rollover: rollover,
		clock:    clockwork.NewRealClock(),
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/metar/parse", s.handleParse)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleParse decodes the request body as a single report. The response is
// always the decoded report; decode problems are listed in parse_errors.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	ctx, err := s.parseContext(r)
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxReportBytes))
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "report too large"})
		return
	}

	report := metar.Parse(string(body), ctx)
	s.logger.Debug("parsed report on demand",
		"bytes", len(body),
		"parse_errors", len(report.ParseErrors),
	)
	sharedobs.WriteJSON(w, http.StatusOK, report)
}

func (s *Server) parseContext(r *http.Request) (metar.Context, error) {
	q := r.URL.Query()
	yearStr, monthStr := q.Get("year"), q.Get("month")
	if yearStr == "" && monthStr == "" {
		return metar.ContextAt(s.clock.Now()).WithRollover(s.rollover), nil
	}
	if yearStr == "" || monthStr == "" {
		return metar.Context{}, errors.New("year and month must be given together")
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		return metar.Context{}, fmt.Errorf("invalid year %q", yearStr)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return metar.Context{}, fmt.Errorf("invalid month %q", monthStr)
	}
	return metar.ForMonth(year, time.Month(month)), nil
}
