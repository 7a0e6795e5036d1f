package services

import (
	"ShifaCare/logger"
	"ShifaCare/models"
	"ShifaCare/repositories"
	"ShifaCare/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrPastDate rejects bookings for dates before today.
	ErrPastDate = errors.New("cannot book an appointment in the past")
	// ErrSlotNotFound signals the requested slot number does not exist in
	// the day's generated slot list.
	ErrSlotNotFound = errors.New("requested slot does not exist")
	// ErrSlotTaken is the single user-facing conflict error, whether the
	// conflict was caught pre-insert or by the storage constraint.
	ErrSlotTaken = errors.New("slot no longer available")
	// ErrAppointmentNotFound signals an unknown appointment id.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrCnicMismatch rejects a cancel request whose CNIC does not match
	// the appointment's patient.
	ErrCnicMismatch = errors.New("CNIC does not match this appointment")
	// ErrNotCancellable rejects cancellation of appointments already in a
	// terminal state.
	ErrNotCancellable = errors.New("appointment can no longer be cancelled")
)

// BookingInput is a patient-submitted booking request.
type BookingInput struct {
	DoctorID        string `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	SlotNumber      int    `json:"slot_number"`
	PatientName     string `json:"patient_name"`
	PatientCnic     string `json:"patient_cnic"`
	PatientPhone    string `json:"patient_phone"`
	PatientEmail    string `json:"patient_email"`
	Notes           string `json:"notes"`
	IPAddress       string `json:"-"`
	UserAgent       string `json:"-"`
}

type BookingService struct {
	slots           *SlotService
	appointmentRepo repositories.AppointmentRepository
	locker          Locker
}

func NewBookingService(slots *SlotService, appointmentRepo repositories.AppointmentRepository, locker Locker) *BookingService {
	return &BookingService{slots: slots, appointmentRepo: appointmentRepo, locker: locker}
}

// Book validates the request and creates a PENDING appointment with its
// initial audit row. All validation happens before any write; on failure the
// first failing precondition's error is returned and nothing is persisted.
func (s *BookingService) Book(ctx context.Context, input BookingInput) (*models.Appointment, error) {
	if err := utils.ValidateBookingFields(utils.BookingFields{
		PatientName:  input.PatientName,
		PatientCnic:  input.PatientCnic,
		PatientEmail: input.PatientEmail,
		PatientPhone: input.PatientPhone,
	}); err != nil {
		return nil, err
	}

	day, err := utils.ParseCalendarDate(input.AppointmentDate)
	if err != nil {
		return nil, err
	}
	if utils.IsPastDate(day) {
		return nil, ErrPastDate
	}

	lockKey := fmt.Sprintf("slot_lock:%s_%s_%d", input.DoctorID, input.AppointmentDate, input.SlotNumber)
	lockValue := uuid.New().String()
	locked, err := s.locker.Acquire(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil || !locked {
		// The unique index still protects us; proceed without the lock.
		logger.L.Warnf("Proceeding without booking lock for %s: %v", lockKey, err)
	} else {
		defer func() {
			if err := s.locker.Release(ctx, lockKey, lockValue); err != nil {
				logger.L.Warnf("Failed to release booking lock: %v", err)
			}
		}()
	}

	// Re-derive the day's slots; the requested slot must exist and be free.
	daySlots, err := s.slots.GetAvailableSlots(ctx, input.DoctorID, input.AppointmentDate)
	if err != nil {
		return nil, err
	}
	var requested *Slot
	for i := range daySlots.Slots {
		if daySlots.Slots[i].SlotNumber == input.SlotNumber {
			requested = &daySlots.Slots[i]
			break
		}
	}
	if requested == nil {
		return nil, ErrSlotNotFound
	}
	if requested.IsBooked {
		return nil, ErrSlotTaken
	}

	appointment := &models.Appointment{
		DoctorID:        input.DoctorID,
		AppointmentDate: input.AppointmentDate,
		SlotNumber:      input.SlotNumber,
		SlotStartTime:   requested.StartTime,
		SlotEndTime:     requested.EndTime,
		PatientName:     input.PatientName,
		PatientCnic:     utils.NormalizeCnic(input.PatientCnic),
		PatientPhone:    input.PatientPhone,
		PatientEmail:    input.PatientEmail,
		Status:          models.StatusPending,
		Notes:           input.Notes,
		IPAddress:       input.IPAddress,
		UserAgent:       input.UserAgent,
	}
	audit := &models.AppointmentAuditLog{
		Action:      models.AuditActionCreated,
		NewStatus:   models.StatusPending,
		PerformedBy: "patient",
		Details:     fmt.Sprintf("Booked slot %d (%s-%s)", input.SlotNumber, requested.StartTime, requested.EndTime),
		IPAddress:   input.IPAddress,
	}

	if err := s.appointmentRepo.CreateWithAudit(ctx, appointment, audit); err != nil {
		if errors.Is(err, repositories.ErrDuplicateSlot) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	appointment.DoctorName = daySlots.DoctorName
	return appointment, nil
}

// Cancel lets a patient cancel their own PENDING or CONFIRMED appointment.
// Knowledge of the CNIC is the credential. Cancelling frees the slot because
// the conflict index excludes CANCELLED rows.
func (s *BookingService) Cancel(ctx context.Context, appointmentID uint, reason, cnic, ip string) error {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if utils.NormalizeCnic(appointment.PatientCnic) != utils.NormalizeCnic(cnic) {
		return ErrCnicMismatch
	}
	if models.IsTerminalStatus(appointment.Status) {
		return ErrNotCancellable
	}

	previous := appointment.Status
	now := time.Now()
	appointment.Status = models.StatusCancelled
	appointment.CancelReason = reason
	appointment.CancelledAt = &now

	audit := &models.AppointmentAuditLog{
		Action:         models.AuditActionCancelled,
		PreviousStatus: previous,
		NewStatus:      models.StatusCancelled,
		PerformedBy:    "patient",
		Details:        reason,
		IPAddress:      ip,
	}
	if err := s.appointmentRepo.UpdateStatusWithAudit(ctx, appointment, audit); err != nil {
		if errors.Is(err, repositories.ErrStaleStatus) {
			return ErrStatusConflict
		}
		return err
	}
	return nil
}

// MyAppointments returns the appointments matching the given CNIC or email.
// Knowledge of the identifier is the only credential on this surface.
func (s *BookingService) MyAppointments(ctx context.Context, cnic, email string) ([]models.Appointment, error) {
	if cnic == "" && email == "" {
		return nil, errors.New("cnic or email is required")
	}
	return s.appointmentRepo.FindByIdentifier(ctx, utils.NormalizeCnic(cnic), email)
}
