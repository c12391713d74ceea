package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
)

// TapRegistry resolves taps. A nil tap with a nil error means unknown.
type TapRegistry interface {
	FindTap(ctx context.Context, id uuid.UUID) (*domain.Tap, error)
}

// KeyValueRegistry holds runtime configuration values.
type KeyValueRegistry interface {
	// GetValue returns false when the key has no value.
	GetValue(ctx context.Context, key domain.RegistryKey) (string, bool, error)
	SetValue(ctx context.Context, key domain.RegistryKey, value string) error
}
