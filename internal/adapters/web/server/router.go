package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/dot11ingest/internal/adapters/web/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()

	// Tap report ingestion
	var ingest http.Handler = http.HandlerFunc(s.IngestHandler.HandleReport)
	if s.ReportRateLimit > 0 {
		ingest = middleware.RateLimitMiddleware(middleware.NewRateLimiter(s.ReportRateLimit, time.Minute))(ingest)
	}
	r.Handle("/api/taps/{tap_uuid}/reports/dot11", ingest).Methods(http.MethodPost)

	// Alerts
	r.HandleFunc("/api/alerts", s.AlertHandler.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/api/alerts/stream", s.AlertFeed.HandleWebSocket)

	r.Handle("/metrics", promhttp.Handler())

	return r
}
