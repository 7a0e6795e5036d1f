package services

import (
	"ShifaCare/models"
	"ShifaCare/repositories"
	"ShifaCare/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrDoctorNotFound signals the doctor id does not resolve.
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrDateNotBookable signals no slots exist for the requested date:
	// the doctor is blocked by an override or the weekly template has no
	// windows for that weekday.
	ErrDateNotBookable = errors.New("date not bookable")
)

// Slot is one bookable window within a day. SlotNumber is 1-based and stable
// across calls for the same doctor, date and schedule inputs.
type Slot struct {
	SlotNumber int    `json:"slot_number"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	IsBooked   bool   `json:"is_booked"`
}

// DaySlots is the full slot listing for a doctor's calendar date, with the
// doctor metadata clients need without a second round trip.
type DaySlots struct {
	DoctorID          string `json:"doctor_id"`
	DoctorName        string `json:"doctor_name"`
	DoctorDesignation string `json:"doctor_designation"`
	Date              string `json:"date"`
	Slots             []Slot `json:"slots"`
}

type SlotService struct {
	doctorRepo       repositories.DoctorRepository
	availabilityRepo repositories.AvailabilityRepository
	appointmentRepo  repositories.AppointmentRepository
}

func NewSlotService(
	doctorRepo repositories.DoctorRepository,
	availabilityRepo repositories.AvailabilityRepository,
	appointmentRepo repositories.AppointmentRepository,
) *SlotService {
	return &SlotService{
		doctorRepo:       doctorRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
	}
}

// GetAvailableSlots derives the bookable slot list for (doctorID, date).
//
// Resolution order: an override with is_available=false blocks the whole date
// regardless of its type; a CUSTOM_HOURS override replaces (never merges with)
// the weekly template's windows; otherwise the template windows for the
// date's weekday apply. Windows expand into fixed-duration slots numbered
// sequentially from 1, then non-cancelled appointments mark slots booked.
func (s *SlotService) GetAvailableSlots(ctx context.Context, doctorID, date string) (*DaySlots, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	day, err := utils.ParseCalendarDate(date)
	if err != nil {
		return nil, err
	}

	windows, err := s.resolveWindows(ctx, doctorID, date, int(day.Weekday()))
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, ErrDateNotBookable
	}

	slots, err := expandWindows(windows, doctor.SlotDurationMins)
	if err != nil {
		return nil, err
	}

	booked, err := s.appointmentRepo.ListActiveByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	bookedNumbers := make(map[int]bool, len(booked))
	for _, a := range booked {
		bookedNumbers[a.SlotNumber] = true
	}
	for i := range slots {
		slots[i].IsBooked = bookedNumbers[slots[i].SlotNumber]
	}

	return &DaySlots{
		DoctorID:          doctor.ID,
		DoctorName:        doctor.Name,
		DoctorDesignation: doctor.Designation,
		Date:              date,
		Slots:             slots,
	}, nil
}

// resolveWindows picks the effective time windows for the date: override
// first, weekly template second.
func (s *SlotService) resolveWindows(ctx context.Context, doctorID, date string, weekday int) ([]models.TimeWindow, error) {
	override, err := s.availabilityRepo.GetByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if override != nil {
		if !override.IsAvailable {
			return nil, ErrDateNotBookable
		}
		if override.OverrideType == models.OverrideCustomHours {
			var custom []models.TimeWindow
			if err := json.Unmarshal([]byte(override.CustomWindows), &custom); err != nil {
				return nil, fmt.Errorf("malformed custom windows for override %d: %w", override.ID, err)
			}
			return custom, nil
		}
		// Available override without custom hours falls through to the
		// weekly template.
	}

	scheduled, err := s.doctorRepo.GetScheduleWindows(ctx, doctorID, weekday)
	if err != nil {
		return nil, err
	}
	windows := make([]models.TimeWindow, 0, len(scheduled))
	for _, w := range scheduled {
		windows = append(windows, models.TimeWindow{StartTime: w.StartTime, EndTime: w.EndTime})
	}
	return windows, nil
}

// expandWindows cuts each window into duration-sized slots, numbering them
// sequentially across windows in chronological order.
func expandWindows(windows []models.TimeWindow, durationMins int) ([]Slot, error) {
	if durationMins <= 0 {
		return nil, fmt.Errorf("invalid slot duration: %d", durationMins)
	}

	var slots []Slot
	number := 1
	for _, w := range windows {
		start, err := parseClockMinutes(w.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := parseClockMinutes(w.EndTime)
		if err != nil {
			return nil, err
		}
		for t := start; t+durationMins <= end; t += durationMins {
			slots = append(slots, Slot{
				SlotNumber: number,
				StartTime:  formatClockMinutes(t),
				EndTime:    formatClockMinutes(t + durationMins),
			})
			number++
		}
	}
	return slots, nil
}

func parseClockMinutes(t string) (int, error) {
	if err := utils.ValidateClockTime(t); err != nil {
		return 0, err
	}
	var h, m int
	if _, err := fmt.Sscanf(t, "%d:%d", &h, &m); err != nil {
		return 0, utils.ErrInvalidTimeWindow
	}
	return h*60 + m, nil
}

func formatClockMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
