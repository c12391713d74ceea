package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
)

// ReportHandler ingests one tap report.
type ReportHandler interface {
	HandleReport(ctx context.Context, tapID uuid.UUID, timestamp time.Time, report domain.Report) error
}
