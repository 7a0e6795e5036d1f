package repositories

import (
	"ShifaCare/models"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrDuplicateSlot is returned when an insert collides with the partial
// unique index on (doctor_id, appointment_date, slot_number). It is the
// authoritative double-booking signal; any pre-insert availability check is
// best-effort only.
var ErrDuplicateSlot = errors.New("slot already booked")

// ErrStaleStatus is returned when a status update finds the row no longer in
// the status it was read at. The caller validated a transition against a
// snapshot that another writer has since replaced.
var ErrStaleStatus = errors.New("appointment status changed concurrently")

// AppointmentFilters narrows admin appointment listings. Zero values mean
// "no filter".
type AppointmentFilters struct {
	DoctorID string
	Date     string
	Status   string
}

// AppointmentRepository persists appointments and their audit trail. Every
// state change writes its audit row in the same transaction as the mutation.
type AppointmentRepository interface {
	CreateWithAudit(ctx context.Context, appointment *models.Appointment, audit *models.AppointmentAuditLog) error
	UpdateStatusWithAudit(ctx context.Context, appointment *models.Appointment, audit *models.AppointmentAuditLog) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	ListActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	List(ctx context.Context, filters AppointmentFilters) ([]models.Appointment, error)
	FindByIdentifier(ctx context.Context, cnic, email string) ([]models.Appointment, error)
	StatusCounts(ctx context.Context) (map[string]int64, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// CreateWithAudit inserts the appointment and its initial audit row in one
// transaction. A unique-index violation maps to ErrDuplicateSlot so callers
// can answer "slot no longer available" instead of a storage error.
func (r *appointmentRepository) CreateWithAudit(ctx context.Context, appointment *models.Appointment, audit *models.AppointmentAuditLog) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(appointment).Error; err != nil {
			return err
		}
		audit.AppointmentID = appointment.ID
		return tx.Create(audit).Error
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// UpdateStatusWithAudit persists a status change together with exactly one
// audit row; both succeed or both fail. The update is guarded on the status
// the caller read (audit.PreviousStatus), so a transition validated against a
// snapshot another writer has since replaced touches zero rows and returns
// ErrStaleStatus instead of overwriting the concurrent state.
func (r *appointmentRepository) UpdateStatusWithAudit(ctx context.Context, appointment *models.Appointment, audit *models.AppointmentAuditLog) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", appointment.ID, audit.PreviousStatus).
			Updates(map[string]interface{}{
				"status":        appointment.Status,
				"cancel_reason": appointment.CancelReason,
				"completed_at":  appointment.CompletedAt,
				"cancelled_at":  appointment.CancelledAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleStatus
		}
		audit.AppointmentID = appointment.ID
		return tx.Create(audit).Error
	})
	if err != nil {
		if errors.Is(err, ErrStaleStatus) {
			return ErrStaleStatus
		}
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, designation, specialization, slot_duration_mins")
		}).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	appointment.DoctorName = appointment.Doctor.Name
	return &appointment, nil
}

// ListActiveByDoctorDate returns every non-cancelled appointment for the
// doctor's calendar date. Cancelled rows are excluded so their slots show as
// free again.
func (r *appointmentRepository) ListActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND appointment_date = ? AND status <> ?", doctorID, date, models.StatusCancelled).
		Order("slot_number").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for date: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters AppointmentFilters) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, designation, specialization, slot_duration_mins")
		})
	if filters.DoctorID != "" {
		query = query.Where("doctor_id = ?", filters.DoctorID)
	}
	if filters.Date != "" {
		query = query.Where("appointment_date = ?", filters.Date)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date DESC, slot_number").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	for i := range appointments {
		appointments[i].DoctorName = appointments[i].Doctor.Name
	}
	return appointments, nil
}

// FindByIdentifier looks up a patient's appointments by CNIC or email. The
// identifier itself is the credential here; there is no patient login.
func (r *appointmentRepository) FindByIdentifier(ctx context.Context, cnic, email string) ([]models.Appointment, error) {
	query := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, designation, specialization, slot_duration_mins")
		})
	if cnic != "" {
		query = query.Where("patient_cnic = ?", cnic)
	} else {
		query = query.Where("patient_email = ?", email)
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date DESC, slot_number").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to find appointments by identifier: %w", err)
	}
	for i := range appointments {
		appointments[i].DoctorName = appointments[i].Doctor.Name
	}
	return appointments, nil
}

func (r *appointmentRepository) StatusCounts(ctx context.Context) (map[string]int64, error) {
	type bucket struct {
		Status string
		Count  int64
	}
	var buckets []bucket
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&buckets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments by status: %w", err)
	}

	counts := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		counts[b.Status] = b.Count
	}
	return counts, nil
}

func isDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key")
}
