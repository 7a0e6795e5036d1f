package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors surfaced to booking clients. Each precondition failure
// maps to exactly one of these messages.
var (
	ErrInvalidPatientName = errors.New("patient name must be 3-60 letters and spaces")
	ErrInvalidCnic        = errors.New("CNIC must match 12345-1234567-1 or 13 digits")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPhone       = errors.New("phone must be 7-15 digits with optional leading +")
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTimeWindow  = errors.New("time window must be HH:MM with start before end")
)

var (
	nameRegex      = regexp.MustCompile(`^[A-Za-z ]+$`)
	cnicRegex      = regexp.MustCompile(`^(\d{5}-\d{7}-\d|\d{13})$`)
	phoneRegex     = regexp.MustCompile(`^\+?\d{7,15}$`)
	clockTimeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// DateLayout is the calendar-date wire format. All date comparisons in the
// booking flow are on local calendar dates, never timestamps, to avoid
// off-by-one-day errors across timezones.
const DateLayout = "2006-01-02"

// BookingFields is the patient-supplied portion of a booking request.
type BookingFields struct {
	PatientName  string
	PatientCnic  string
	PatientEmail string
	PatientPhone string
}

// ValidateBookingFields validates the patient identity fields of a booking
// request using ozzo-validation. The first failing field's error is returned.
func ValidateBookingFields(f BookingFields) error {
	name := strings.TrimSpace(f.PatientName)
	if err := validation.Validate(name,
		validation.Required, validation.Length(3, 60), validation.Match(nameRegex)); err != nil {
		return ErrInvalidPatientName
	}
	if err := validation.Validate(f.PatientCnic,
		validation.Required, validation.Match(cnicRegex)); err != nil {
		return ErrInvalidCnic
	}
	if err := validation.Validate(f.PatientEmail,
		validation.Required, is.Email); err != nil {
		return ErrInvalidEmail
	}
	if err := validation.Validate(f.PatientPhone,
		validation.Required, validation.Match(phoneRegex)); err != nil {
		return ErrInvalidPhone
	}
	return nil
}

// NormalizeCnic reduces a CNIC to its canonical 13-digit form. Both accepted
// input forms (dashed and bare) normalize to the same value, so comparisons
// and lookups are insensitive to how the patient typed it.
func NormalizeCnic(cnic string) string {
	return strings.ReplaceAll(cnic, "-", "")
}

// ParseCalendarDate parses a YYYY-MM-DD string in the server's local timezone.
func ParseCalendarDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// IsPastDate reports whether date is strictly before today's local calendar
// date. Today itself is bookable.
func IsPastDate(date time.Time) bool {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return date.Before(today)
}

// ValidateClockTime checks an HH:MM string.
func ValidateClockTime(t string) error {
	if !clockTimeRegex.MatchString(t) {
		return ErrInvalidTimeWindow
	}
	return nil
}
