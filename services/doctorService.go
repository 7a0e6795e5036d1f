package services

import (
	"ShifaCare/models"
	"ShifaCare/repositories"
	"ShifaCare/utils"
	"context"
	"errors"
)

var errWeekdayOutOfRange = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")

type DoctorService struct {
	repository repositories.DoctorRepository
}

func NewDoctorService(repository repositories.DoctorRepository) *DoctorService {
	return &DoctorService{repository: repository}
}

func (s *DoctorService) Create(ctx context.Context, doctor *models.Doctor) error {
	if doctor.SlotDurationMins <= 0 {
		doctor.SlotDurationMins = 30
	}
	return s.repository.Create(ctx, doctor)
}

func (s *DoctorService) Update(ctx context.Context, doctor *models.Doctor) error {
	return s.repository.Update(ctx, doctor)
}

func (s *DoctorService) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *DoctorService) GetAll(ctx context.Context) ([]models.Doctor, error) {
	return s.repository.GetAll(ctx)
}

// ReplaceSchedule validates and swaps a doctor's weekly template.
func (s *DoctorService) ReplaceSchedule(ctx context.Context, doctorID string, windows []models.ScheduleWindow) error {
	doctor, err := s.repository.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	for _, w := range windows {
		if w.Weekday < 0 || w.Weekday > 6 {
			return errWeekdayOutOfRange
		}
		if err := utils.ValidateClockTime(w.StartTime); err != nil {
			return err
		}
		if err := utils.ValidateClockTime(w.EndTime); err != nil {
			return err
		}
		if w.StartTime >= w.EndTime {
			return utils.ErrInvalidTimeWindow
		}
	}
	return s.repository.ReplaceSchedule(ctx, doctorID, windows)
}
