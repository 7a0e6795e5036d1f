package repositories

import (
	"ShifaCare/cache"
	"ShifaCare/logger"
	"ShifaCare/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const OverrideCacheExpiry = 24 * time.Hour

// AvailabilityRepository stores per-doctor, per-date schedule overrides.
// Overrides are upserted, never deleted.
type AvailabilityRepository interface {
	Upsert(ctx context.Context, override *models.AvailabilityOverride) error
	GetByDoctorAndDate(ctx context.Context, doctorID, date string) (*models.AvailabilityOverride, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.AvailabilityOverride, error)
}

type availabilityRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewAvailabilityRepository(db *gorm.DB, cache *cache.Cache) AvailabilityRepository {
	return &availabilityRepository{db: db, cache: cache}
}

// Upsert inserts or updates the single override row for (doctor_id, date).
func (r *availabilityRepository) Upsert(ctx context.Context, override *models.AvailabilityOverride) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "doctor_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_available", "override_type", "reason", "custom_windows", "updated_at",
		}),
	}).Create(override).Error
	if err != nil {
		return fmt.Errorf("failed to upsert availability override: %w", err)
	}

	if err := r.cache.Delete(ctx, r.overrideCacheKey(override.DoctorID, override.Date)); err != nil {
		return fmt.Errorf("failed to delete override cache: %w", err)
	}
	return nil
}

func (r *availabilityRepository) GetByDoctorAndDate(ctx context.Context, doctorID, date string) (*models.AvailabilityOverride, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.overrideCacheKey(doctorID, date)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var override models.AvailabilityOverride
		if err := json.Unmarshal([]byte(cached), &override); err == nil {
			return &override, nil
		}
	} else if err != redis.Nil {
		logger.L.Warnf("Failed to get override from cache: %v", err)
	}

	var override models.AvailabilityOverride
	err = r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get availability override: %w", err)
	}

	if overrideJSON, err := json.Marshal(override); err == nil {
		if err := r.cache.Set(ctx, cacheKey, overrideJSON, OverrideCacheExpiry); err != nil {
			logger.L.Warnf("Failed to set override in cache: %v", err)
		}
	}

	return &override, nil
}

func (r *availabilityRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.AvailabilityOverride, error) {
	var overrides []models.AvailabilityOverride
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("date DESC").
		Find(&overrides).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list availability overrides: %w", err)
	}
	return overrides, nil
}

func (r *availabilityRepository) overrideCacheKey(doctorID, date string) string {
	return fmt.Sprintf("override_cache:%s_%s", doctorID, date)
}
