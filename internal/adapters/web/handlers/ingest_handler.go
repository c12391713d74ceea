package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/lcalzada-xor/dot11ingest/internal/core/services/ingest"
)

// maxReportSize bounds the request body of one report.
const maxReportSize = 16 << 20

// ReportQueue accepts reports for asynchronous handling.
type ReportQueue interface {
	Submit(job ingest.Job) error
}

// ReportRequest is the body of a report submission. A missing timestamp is
// replaced by the time of receipt.
type ReportRequest struct {
	Timestamp time.Time     `json:"timestamp"`
	Report    domain.Report `json:"report"`
}

// IngestHandler receives 802.11 reports from taps
type IngestHandler struct {
	Queue ReportQueue
}

// NewIngestHandler creates a new IngestHandler
func NewIngestHandler(queue ReportQueue) *IngestHandler {
	return &IngestHandler{
		Queue: queue,
	}
}

// HandleReport validates a report and queues it
func (h *IngestHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	tapUUID, err := uuid.Parse(mux.Vars(r)["tap_uuid"])
	if err != nil {
		http.Error(w, "Invalid tap UUID", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReportSize)

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Report.Validate(); err != nil {
		http.Error(w, "Invalid report: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}

	err = h.Queue.Submit(ingest.Job{TapUUID: tapUUID, Timestamp: req.Timestamp, Report: req.Report})
	switch {
	case errors.Is(err, ingest.ErrQueueFull), errors.Is(err, ingest.ErrQueueClosed):
		slog.Warn("802.11 report rejected", "tap_uuid", tapUUID, "error", err)
		w.Header().Set("Retry-After", "1")
		http.Error(w, "Ingest queue unavailable", http.StatusServiceUnavailable)
		return
	case err != nil:
		http.Error(w, "Failed to queue report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "queued"})
}
