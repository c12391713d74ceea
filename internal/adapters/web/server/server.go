package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lcalzada-xor/dot11ingest/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/dot11ingest/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr string

	// ReportRateLimit is the number of reports accepted per minute and
	// remote host; zero disables limiting.
	ReportRateLimit int

	AlertFeed     *websocket.AlertFeed
	IngestHandler *handlers.IngestHandler
	AlertHandler  *handlers.AlertHandler
	srv           *http.Server
}

// NewServer creates a new web server.
func NewServer(addr string, reportRateLimit int, queue handlers.ReportQueue, alerts ports.AlertRepository, feed *websocket.AlertFeed) *Server {
	return &Server{
		Addr:            addr,
		ReportRateLimit: reportRateLimit,
		AlertFeed:       feed,
		IngestHandler:   handlers.NewIngestHandler(queue),
		AlertHandler:    handlers.NewAlertHandler(alerts),
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	handler := otelhttp.NewHandler(SetupRoutes(s), "dot11ingest-server")

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Web server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Web server shutdown error", "error", err)
		}
		s.AlertFeed.Close()
	}()

	slog.Info("Web server listening", "addr", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
