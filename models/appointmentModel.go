package models

import (
	"time"
)

// Appointment status wire values
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusNoShow    = "NO_SHOW"
	StatusExpired   = "EXPIRED"
)

// ValidStatus reports whether s is one of the six defined status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow, StatusExpired:
		return true
	}
	return false
}

// IsTerminalStatus reports whether no further transitions are permitted out
// of s. Terminal states are immutable.
func IsTerminalStatus(s string) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow, StatusExpired:
		return true
	}
	return false
}

// CanTransition reports whether the status lifecycle permits from → to.
//
//	PENDING   → CONFIRMED | CANCELLED | NO_SHOW | EXPIRED
//	CONFIRMED → COMPLETED | CANCELLED | NO_SHOW
func CanTransition(from, to string) bool {
	allowed := map[string][]string{
		StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow, StatusExpired},
		StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	}
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Appointment model. The central conflict invariant — at most one
// non-cancelled appointment per (doctor_id, appointment_date, slot_number) —
// is enforced by a partial unique index created in database.InitDB, so a
// cancelled appointment frees its slot for re-booking.
type Appointment struct {
	ID              uint       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID        string     `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentDate string     `gorm:"column:appointment_date;not null;index" json:"appointment_date"` // "YYYY-MM-DD"
	SlotNumber      int        `gorm:"column:slot_number;not null" json:"slot_number"`
	SlotStartTime   string     `gorm:"column:slot_start_time;not null" json:"slot_start_time"` // "HH:MM"
	SlotEndTime     string     `gorm:"column:slot_end_time;not null" json:"slot_end_time"`     // "HH:MM"
	PatientName     string     `gorm:"column:patient_name;not null" json:"patient_name"`
	PatientCnic     string     `gorm:"column:patient_cnic;not null;index" json:"patient_cnic"`
	PatientPhone    string     `gorm:"column:patient_phone;not null" json:"patient_phone"`
	PatientEmail    string     `gorm:"column:patient_email;not null;index" json:"patient_email"`
	Status          string     `gorm:"column:status;check:status IN ('PENDING', 'CONFIRMED', 'COMPLETED', 'CANCELLED', 'NO_SHOW', 'EXPIRED');not null;index" json:"status"`
	Notes           string     `gorm:"column:notes" json:"notes"`
	CancelReason    string     `gorm:"column:cancel_reason" json:"cancel_reason"`
	IPAddress       string     `gorm:"column:ip_address" json:"-"`
	UserAgent       string     `gorm:"column:user_agent" json:"-"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	DoctorName      string     `gorm:"-" json:"doctor_name,omitempty"`
	Doctor          Doctor     `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// Audit log action labels
const (
	AuditActionCreated       = "CREATED"
	AuditActionStatusChanged = "STATUS_CHANGED"
	AuditActionCancelled     = "CANCELLED"
)

// AppointmentAuditLog is append-only; one row per state transition. Rows are
// never updated or deleted once written.
type AppointmentAuditLog struct {
	ID             uint        `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	AppointmentID  uint        `gorm:"column:appointment_id;not null;index" json:"appointment_id"`
	Action         string      `gorm:"column:action;not null" json:"action"`
	PreviousStatus string      `gorm:"column:previous_status" json:"previous_status"`
	NewStatus      string      `gorm:"column:new_status;not null" json:"new_status"`
	PerformedBy    string      `gorm:"column:performed_by;not null" json:"performed_by"`
	Details        string      `gorm:"column:details" json:"details"`
	IPAddress      string      `gorm:"column:ip_address" json:"-"`
	CreatedAt      time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointment    Appointment `gorm:"foreignKey:AppointmentID;references:ID" json:"-"`
}

func (AppointmentAuditLog) TableName() string {
	return "appointment_audit_log"
}
