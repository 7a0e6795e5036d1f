package services

import (
	"ShifaCare/models"
	"ShifaCare/repositories"
	"ShifaCare/utils"
	"context"
	"encoding/json"
	"errors"
	"sort"
)

var (
	// ErrInvalidOverrideType signals an unknown override type value.
	ErrInvalidOverrideType = errors.New("invalid override type")
	// ErrCustomWindowsRequired requires at least one window for CUSTOM_HOURS.
	ErrCustomWindowsRequired = errors.New("custom hours override requires at least one time window")
	// ErrOverlappingWindows rejects custom windows that overlap each other.
	ErrOverlappingWindows = errors.New("custom time windows must not overlap")
)

// OverrideInput is an admin request to upsert an availability override.
type OverrideInput struct {
	DoctorID      string              `json:"doctor_id"`
	Date          string              `json:"date"`
	IsAvailable   bool                `json:"is_available"`
	OverrideType  string              `json:"override_type"`
	Reason        string              `json:"reason"`
	CustomWindows []models.TimeWindow `json:"custom_windows"`
}

type AvailabilityService struct {
	doctorRepo       repositories.DoctorRepository
	availabilityRepo repositories.AvailabilityRepository
}

func NewAvailabilityService(
	doctorRepo repositories.DoctorRepository,
	availabilityRepo repositories.AvailabilityRepository,
) *AvailabilityService {
	return &AvailabilityService{doctorRepo: doctorRepo, availabilityRepo: availabilityRepo}
}

// UpsertOverride validates and stores the single override row for
// (doctor, date). Existing overrides are replaced, never duplicated.
func (s *AvailabilityService) UpsertOverride(ctx context.Context, input OverrideInput) (*models.AvailabilityOverride, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if _, err := utils.ParseCalendarDate(input.Date); err != nil {
		return nil, err
	}
	if !models.ValidOverrideType(input.OverrideType) {
		return nil, ErrInvalidOverrideType
	}

	customJSON := ""
	if input.OverrideType == models.OverrideCustomHours {
		if len(input.CustomWindows) == 0 {
			return nil, ErrCustomWindowsRequired
		}
		for _, w := range input.CustomWindows {
			if err := utils.ValidateClockTime(w.StartTime); err != nil {
				return nil, err
			}
			if err := utils.ValidateClockTime(w.EndTime); err != nil {
				return nil, err
			}
			if w.StartTime >= w.EndTime {
				return nil, utils.ErrInvalidTimeWindow
			}
		}

		// Store windows chronologically so slot numbering stays in time
		// order regardless of the order the admin submitted them.
		windows := make([]models.TimeWindow, len(input.CustomWindows))
		copy(windows, input.CustomWindows)
		sort.Slice(windows, func(i, j int) bool {
			return windows[i].StartTime < windows[j].StartTime
		})
		for i := 1; i < len(windows); i++ {
			if windows[i].StartTime < windows[i-1].EndTime {
				return nil, ErrOverlappingWindows
			}
		}

		encoded, err := json.Marshal(windows)
		if err != nil {
			return nil, err
		}
		customJSON = string(encoded)
	}

	override := &models.AvailabilityOverride{
		DoctorID:      input.DoctorID,
		Date:          input.Date,
		IsAvailable:   input.IsAvailable,
		OverrideType:  input.OverrideType,
		Reason:        input.Reason,
		CustomWindows: customJSON,
	}
	if err := s.availabilityRepo.Upsert(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

// ListOverrides returns a doctor's overrides, newest date first.
func (s *AvailabilityService) ListOverrides(ctx context.Context, doctorID string) ([]models.AvailabilityOverride, error) {
	return s.availabilityRepo.ListByDoctor(ctx, doctorID)
}
