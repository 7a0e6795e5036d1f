package models

import (
	"time"
)

// Doctor model
type Doctor struct {
	ID               string           `gorm:"primaryKey;column:id" json:"id"`
	Name             string           `gorm:"column:name;not null;index" json:"name"`
	Designation      string           `gorm:"column:designation;not null" json:"designation"`
	Specialization   string           `gorm:"column:specialization;not null;index" json:"specialization"`
	SlotDurationMins int              `gorm:"column:slot_duration_mins;not null;default:30" json:"slot_duration_mins"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ScheduleWindows  []ScheduleWindow `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Appointments     []Appointment    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// ScheduleWindow is one time window of a doctor's default weekly schedule.
// Weekday follows time.Weekday: 0 = Sunday .. 6 = Saturday. A doctor with no
// windows on a weekday is not bookable that day.
type ScheduleWindow struct {
	ID        uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID  string `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	Weekday   int    `gorm:"column:weekday;not null;check:weekday BETWEEN 0 AND 6" json:"weekday"`
	StartTime string `gorm:"column:start_time;not null" json:"start_time"` // "HH:MM"
	EndTime   string `gorm:"column:end_time;not null" json:"end_time"`     // "HH:MM"
	Doctor    Doctor `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (ScheduleWindow) TableName() string {
	return "schedule_window"
}

// Override type wire values
const (
	OverrideLeave          = "LEAVE"
	OverrideEmergencyBlock = "EMERGENCY_BLOCK"
	OverrideCustomHours    = "CUSTOM_HOURS"
)

// ValidOverrideType reports whether t is one of the defined override types.
func ValidOverrideType(t string) bool {
	return t == OverrideLeave || t == OverrideEmergencyBlock || t == OverrideCustomHours
}

// AvailabilityOverride is a per-doctor, per-date exception to the weekly
// schedule. At most one override exists per (doctor_id, date); the admin
// endpoint upserts, never deletes.
type AvailabilityOverride struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID      string    `gorm:"column:doctor_id;not null;uniqueIndex:idx_doctor_date" json:"doctor_id"`
	Date          string    `gorm:"column:date;not null;uniqueIndex:idx_doctor_date" json:"date"` // "YYYY-MM-DD"
	IsAvailable   bool      `gorm:"column:is_available;not null" json:"is_available"`
	OverrideType  string    `gorm:"column:override_type;check:override_type IN ('LEAVE', 'EMERGENCY_BLOCK', 'CUSTOM_HOURS');not null" json:"override_type"`
	Reason        string    `gorm:"column:reason" json:"reason"`
	CustomWindows string    `gorm:"column:custom_windows;type:text" json:"custom_windows"` // JSON [{"start_time","end_time"}], CUSTOM_HOURS only
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Doctor        Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (AvailabilityOverride) TableName() string {
	return "availability_override"
}

// TimeWindow is the JSON shape stored in AvailabilityOverride.CustomWindows
// and the payload shape for weekly schedule configuration.
type TimeWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
