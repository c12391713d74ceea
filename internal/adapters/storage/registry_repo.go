package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
	"github.com/lcalzada-xor/dot11ingest/internal/core/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TapRepository reads taps registered by the tap management service.
type TapRepository struct {
	db *gorm.DB
}

func NewTapRepository(db *gorm.DB) *TapRepository {
	return &TapRepository{db: db}
}

// FindTap returns nil without error when the tap does not exist.
func (r *TapRepository) FindTap(ctx context.Context, id uuid.UUID) (*domain.Tap, error) {
	var m TapModel
	err := r.db.WithContext(ctx).First(&m, "uuid = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find tap: %w", domain.ErrPersistence, err)
	}
	return toTap(m), nil
}

// Registry is the key/value store of runtime settings.
type Registry struct {
	db *gorm.DB
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

func (r *Registry) GetValue(ctx context.Context, key domain.RegistryKey) (string, bool, error) {
	var m RegistryModel
	err := r.db.WithContext(ctx).First(&m, "key = ?", string(key)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: read registry: %w", domain.ErrPersistence, err)
	}
	return m.Value, true, nil
}

func (r *Registry) SetValue(ctx context.Context, key domain.RegistryKey, value string) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&RegistryModel{Key: string(key), Value: value}).Error
	if err != nil {
		return fmt.Errorf("%w: write registry: %w", domain.ErrPersistence, err)
	}
	return nil
}

// Ensure interface compliance
var (
	_ ports.TapRegistry      = (*TapRepository)(nil)
	_ ports.KeyValueRegistry = (*Registry)(nil)
)
