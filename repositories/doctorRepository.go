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
)

const (
	DoctorCacheExpiry = 24 * time.Hour

	doctorsListCacheKey = "doctors_cache"
)

// DoctorRepository provides access to doctors and their weekly schedule
// templates.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	Update(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	GetAll(ctx context.Context) ([]models.Doctor, error)
	ReplaceSchedule(ctx context.Context, doctorID string, windows []models.ScheduleWindow) error
	GetScheduleWindows(ctx context.Context, doctorID string, weekday int) ([]models.ScheduleWindow, error)
}

type doctorRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDoctorRepository(db *gorm.DB, cache *cache.Cache) DoctorRepository {
	return &doctorRepository{db: db, cache: cache}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return r.invalidate(ctx, doctor.ID)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	if err := r.db.WithContext(ctx).Save(doctor).Error; err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return r.invalidate(ctx, doctor.ID)
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.doctorCacheKey(id)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var doctor models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctor); err == nil {
			return &doctor, nil
		}
	} else if err != redis.Nil {
		logger.L.Warnf("Failed to get doctor from cache: %v", err)
	}

	var doctor models.Doctor
	err = r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctorJSON, err := json.Marshal(doctor); err == nil {
		if err := r.cache.Set(ctx, cacheKey, doctorJSON, DoctorCacheExpiry); err != nil {
			logger.L.Warnf("Failed to set doctor in cache: %v", err)
		}
	}

	return &doctor, nil
}

func (r *doctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cached, err := r.cache.Get(ctx, doctorsListCacheKey)
	if err == nil {
		var doctors []models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctors); err == nil {
			return doctors, nil
		}
	} else if err != redis.Nil {
		logger.L.Warnf("Failed to get doctors from cache: %v", err)
	}

	var doctors []models.Doctor
	err = r.db.WithContext(ctx).Order("name").Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all doctors: %w", err)
	}

	if doctorsJSON, err := json.Marshal(doctors); err == nil {
		if err := r.cache.Set(ctx, doctorsListCacheKey, doctorsJSON, DoctorCacheExpiry); err != nil {
			logger.L.Warnf("Failed to set doctors in cache: %v", err)
		}
	}

	return doctors, nil
}

// ReplaceSchedule swaps a doctor's entire weekly template in one transaction,
// then drops every cached weekday of the old template.
func (r *doctorRepository) ReplaceSchedule(ctx context.Context, doctorID string, windows []models.ScheduleWindow) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&models.ScheduleWindow{}).Error; err != nil {
			return err
		}
		if len(windows) == 0 {
			return nil
		}
		for i := range windows {
			windows[i].DoctorID = doctorID
		}
		return tx.Create(&windows).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace schedule: %w", err)
	}

	if err := r.cache.DeleteAll(ctx, fmt.Sprintf("schedule_cache:%s_*", doctorID)); err != nil {
		return fmt.Errorf("failed to delete schedule cache: %w", err)
	}
	return r.invalidate(ctx, doctorID)
}

// GetScheduleWindows is on the slot-derivation hot path, so each
// (doctor, weekday) result is cached.
func (r *doctorRepository) GetScheduleWindows(ctx context.Context, doctorID string, weekday int) ([]models.ScheduleWindow, error) {
	cacheKey := r.scheduleCacheKey(doctorID, weekday)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var windows []models.ScheduleWindow
		if err := json.Unmarshal([]byte(cached), &windows); err == nil {
			return windows, nil
		}
	} else if err != redis.Nil {
		logger.L.Warnf("Failed to get schedule windows from cache: %v", err)
	}

	var windows []models.ScheduleWindow
	err = r.db.WithContext(ctx).
		Where("doctor_id = ? AND weekday = ?", doctorID, weekday).
		Order("start_time").
		Find(&windows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule windows: %w", err)
	}

	if windowsJSON, err := json.Marshal(windows); err == nil {
		if err := r.cache.Set(ctx, cacheKey, windowsJSON, DoctorCacheExpiry); err != nil {
			logger.L.Warnf("Failed to set schedule windows in cache: %v", err)
		}
	}

	return windows, nil
}

func (r *doctorRepository) invalidate(ctx context.Context, doctorID string) error {
	if err := r.cache.DeleteBatch(ctx, r.doctorCacheKey(doctorID), doctorsListCacheKey); err != nil {
		return fmt.Errorf("failed to delete doctor caches: %w", err)
	}
	return nil
}

func (r *doctorRepository) doctorCacheKey(id string) string {
	return fmt.Sprintf("doctor_cache:%s", id)
}

func (r *doctorRepository) scheduleCacheKey(doctorID string, weekday int) string {
	return fmt.Sprintf("schedule_cache:%s_%d", doctorID, weekday)
}
