package repositories

import (
	"ShifaCare/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// AuditLogRepository reads the append-only appointment audit trail. Writes
// happen inside AppointmentRepository transactions; nothing ever updates or
// deletes a row here.
type AuditLogRepository interface {
	ListByAppointment(ctx context.Context, appointmentID uint) ([]models.AppointmentAuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) ListByAppointment(ctx context.Context, appointmentID uint) ([]models.AppointmentAuditLog, error) {
	var entries []models.AppointmentAuditLog
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list audit log entries: %w", err)
	}
	return entries, nil
}
