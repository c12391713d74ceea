package ingest

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
	"github.com/lcalzada-xor/dot11ingest/internal/telemetry"
)

var (
	ErrQueueFull   = errors.New("ingest queue is full")
	ErrQueueClosed = errors.New("ingest queue is closed")
)

// Job is a report waiting to be handled.
type Job struct {
	TapUUID   uuid.UUID
	Timestamp time.Time
	Report    domain.Report
}

// Queue hands reports to a fixed number of workers so that reports of
// different taps are handled in parallel.
type Queue struct {
	handler ports.ReportHandler
	jobs    chan Job
	workers int
	closed  bool
	mu      sync.RWMutex
	wg      sync.WaitGroup
}

// NewQueue creates a queue buffering up to size reports.
func NewQueue(handler ports.ReportHandler, workers, size int) *Queue {
	if workers < 1 {
		workers = 1
	}
	return &Queue{
		handler: handler,
		jobs:    make(chan Job, size),
		workers: workers,
	}
}

// Submit queues a report without blocking.
func (q *Queue) Submit(job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		telemetry.ReportsDropped.WithLabelValues("closed").Inc()
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		telemetry.ReportsDropped.WithLabelValues("queue_full").Inc()
		return ErrQueueFull
	}
}

// Run starts the workers and blocks until ctx is done. Reports already
// queued are drained before it returns.
func (q *Queue) Run(ctx context.Context) error {
	// Draining must not be cut short by the cancellation that stops us.
	work := context.WithoutCancel(ctx)

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			for job := range q.jobs {
				q.handle(work, job)
			}
		}()
	}

	<-ctx.Done()

	q.mu.Lock()
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}

func (q *Queue) handle(ctx context.Context, job Job) {
	if err := q.handler.HandleReport(ctx, job.TapUUID, job.Timestamp, job.Report); err != nil {
		slog.Error("802.11 report was not fully persisted", "tap_uuid", job.TapUUID, "error", err)
	}
}
