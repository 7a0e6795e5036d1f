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
)

var (
	// ErrInvalidStatus signals the requested value is not one of the six
	// defined statuses. This is a validation error, not a lifecycle error.
	ErrInvalidStatus = errors.New("invalid appointment status")
	// ErrTerminalStatus rejects any transition out of COMPLETED, CANCELLED,
	// NO_SHOW or EXPIRED.
	ErrTerminalStatus = errors.New("appointment is in a terminal state")
	// ErrInvalidTransition rejects lifecycle moves the transition table
	// does not permit.
	ErrInvalidTransition = errors.New("status transition not permitted")
	// ErrCancelReasonRequired requires a reason when cancelling.
	ErrCancelReasonRequired = errors.New("cancel reason is required")
	// ErrStatusConflict signals the appointment's status changed between the
	// validation read and the write; the caller should re-read and retry.
	ErrStatusConflict = errors.New("appointment was modified concurrently, please retry")
)

type StatusService struct {
	appointmentRepo repositories.AppointmentRepository
	auditRepo       repositories.AuditLogRepository
	mailer          utils.Mailer
}

func NewStatusService(
	appointmentRepo repositories.AppointmentRepository,
	auditRepo repositories.AuditLogRepository,
	mailer utils.Mailer,
) *StatusService {
	return &StatusService{appointmentRepo: appointmentRepo, auditRepo: auditRepo, mailer: mailer}
}

// SetStatus moves an appointment through its lifecycle on behalf of an admin.
// The status update and its single audit row commit in one transaction.
// Entering CONFIRMED fires a best-effort notification email; a send failure
// is logged and never fails the request.
func (s *StatusService) SetStatus(ctx context.Context, appointmentID uint, newStatus, reason, actor, ip string) error {
	if !models.ValidStatus(newStatus) {
		return ErrInvalidStatus
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if models.IsTerminalStatus(appointment.Status) {
		return ErrTerminalStatus
	}
	if !models.CanTransition(appointment.Status, newStatus) {
		return ErrInvalidTransition
	}

	previous := appointment.Status
	now := time.Now()
	appointment.Status = newStatus
	switch newStatus {
	case models.StatusCompleted:
		appointment.CompletedAt = &now
	case models.StatusCancelled:
		if reason == "" {
			return ErrCancelReasonRequired
		}
		appointment.CancelReason = reason
		appointment.CancelledAt = &now
	}

	audit := &models.AppointmentAuditLog{
		Action:         models.AuditActionStatusChanged,
		PreviousStatus: previous,
		NewStatus:      newStatus,
		PerformedBy:    actor,
		Details:        reason,
		IPAddress:      ip,
	}
	if err := s.appointmentRepo.UpdateStatusWithAudit(ctx, appointment, audit); err != nil {
		if errors.Is(err, repositories.ErrStaleStatus) {
			return ErrStatusConflict
		}
		return err
	}

	if newStatus == models.StatusConfirmed && previous != models.StatusConfirmed {
		s.notifyConfirmed(appointment)
	}
	return nil
}

// notifyConfirmed dispatches the confirmation email outside the transaction.
// Fire-and-forget: the status change has already committed.
func (s *StatusService) notifyConfirmed(appointment *models.Appointment) {
	details := utils.ConfirmationDetails{
		PatientName: appointment.PatientName,
		DoctorName:  appointment.DoctorName,
		Date:        appointment.AppointmentDate,
		StartTime:   appointment.SlotStartTime,
		EndTime:     appointment.SlotEndTime,
	}
	to := appointment.PatientEmail
	go func() {
		if err := s.mailer.SendAppointmentConfirmed(to, details); err != nil {
			logger.L.Errorf("Failed to send confirmation email for appointment %d: %v", appointment.ID, err)
		}
	}()
}

// ListAppointments returns appointments matching the admin dashboard filters.
func (s *StatusService) ListAppointments(ctx context.Context, filters repositories.AppointmentFilters) ([]models.Appointment, error) {
	if filters.Status != "" && !models.ValidStatus(filters.Status) {
		return nil, ErrInvalidStatus
	}
	if filters.Date != "" {
		if _, err := utils.ParseCalendarDate(filters.Date); err != nil {
			return nil, err
		}
	}
	return s.appointmentRepo.List(ctx, filters)
}

// StatusCounts returns the appointment count per status bucket, with zeroes
// for empty buckets so dashboards always see all six.
func (s *StatusService) StatusCounts(ctx context.Context) (map[string]int64, error) {
	counts, err := s.appointmentRepo.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, status := range []string{
		models.StatusPending, models.StatusConfirmed, models.StatusCompleted,
		models.StatusCancelled, models.StatusNoShow, models.StatusExpired,
	} {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}

// AuditTrail returns the append-only transition history of an appointment.
func (s *StatusService) AuditTrail(ctx context.Context, appointmentID uint) ([]models.AppointmentAuditLog, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	entries, err := s.auditRepo.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}
	return entries, nil
}
