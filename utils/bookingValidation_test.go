package utils

import (
	"errors"
	"testing"
	"time"
)

func validFields() BookingFields {
	return BookingFields{
		PatientName:  "Ahmed Raza",
		PatientCnic:  "12345-1234567-1",
		PatientEmail: "ahmed@example.com",
		PatientPhone: "+923001234567",
	}
}

func TestValidateBookingFields_Accepted(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BookingFields)
	}{
		{"dashed cnic", func(f *BookingFields) { f.PatientCnic = "12345-1234567-1" }},
		{"bare 13-digit cnic", func(f *BookingFields) { f.PatientCnic = "1234512345671" }},
		{"phone without plus", func(f *BookingFields) { f.PatientPhone = "03001234567" }},
		{"minimal phone", func(f *BookingFields) { f.PatientPhone = "1234567" }},
		{"three letter name", func(f *BookingFields) { f.PatientName = "Ali" }},
		{"name with surrounding spaces", func(f *BookingFields) { f.PatientName = "  Ahmed Raza  " }},
	}
	for _, tc := range cases {
		f := validFields()
		tc.mutate(&f)
		if err := ValidateBookingFields(f); err != nil {
			t.Errorf("%s: expected valid, got %v", tc.name, err)
		}
	}
}

func TestValidateBookingFields_Rejected(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BookingFields)
		want   error
	}{
		{"empty name", func(f *BookingFields) { f.PatientName = "" }, ErrInvalidPatientName},
		{"two letter name", func(f *BookingFields) { f.PatientName = "Al" }, ErrInvalidPatientName},
		{"name with digits", func(f *BookingFields) { f.PatientName = "Ahmed 2nd" }, ErrInvalidPatientName},
		{"name over 60 chars", func(f *BookingFields) {
			long := make([]byte, 61)
			for i := range long {
				long[i] = 'a'
			}
			f.PatientName = string(long)
		}, ErrInvalidPatientName},
		{"short first cnic group", func(f *BookingFields) { f.PatientCnic = "1234-1234567-1" }, ErrInvalidCnic},
		{"twelve bare digits", func(f *BookingFields) { f.PatientCnic = "123451234567" }, ErrInvalidCnic},
		{"fourteen bare digits", func(f *BookingFields) { f.PatientCnic = "12345123456712" }, ErrInvalidCnic},
		{"cnic with letters", func(f *BookingFields) { f.PatientCnic = "1234a-1234567-1" }, ErrInvalidCnic},
		{"empty cnic", func(f *BookingFields) { f.PatientCnic = "" }, ErrInvalidCnic},
		{"email without at", func(f *BookingFields) { f.PatientEmail = "ahmed.example.com" }, ErrInvalidEmail},
		{"empty email", func(f *BookingFields) { f.PatientEmail = "" }, ErrInvalidEmail},
		{"six digit phone", func(f *BookingFields) { f.PatientPhone = "123456" }, ErrInvalidPhone},
		{"sixteen digit phone", func(f *BookingFields) { f.PatientPhone = "1234567890123456" }, ErrInvalidPhone},
		{"phone with dashes", func(f *BookingFields) { f.PatientPhone = "0300-1234567" }, ErrInvalidPhone},
	}
	for _, tc := range cases {
		f := validFields()
		tc.mutate(&f)
		if err := ValidateBookingFields(f); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestNormalizeCnic(t *testing.T) {
	if got := NormalizeCnic("12345-1234567-1"); got != "1234512345671" {
		t.Errorf("dashed form must normalize to bare digits, got %q", got)
	}
	if got := NormalizeCnic("1234512345671"); got != "1234512345671" {
		t.Errorf("bare form must be unchanged, got %q", got)
	}
}

func TestParseCalendarDate(t *testing.T) {
	parsed, err := ParseCalendarDate("2026-09-07")
	if err != nil {
		t.Fatalf("expected valid date, got %v", err)
	}
	if parsed.Year() != 2026 || parsed.Month() != time.September || parsed.Day() != 7 {
		t.Errorf("unexpected parse result: %v", parsed)
	}

	for _, bad := range []string{"07-09-2026", "2026/09/07", "2026-13-01", "2026-02-30", "tomorrow", ""} {
		if _, err := ParseCalendarDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("%q: expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestIsPastDate(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	if IsPastDate(today) {
		t.Error("today must be bookable")
	}
	if !IsPastDate(today.AddDate(0, 0, -1)) {
		t.Error("yesterday must be a past date")
	}
	if IsPastDate(today.AddDate(0, 0, 1)) {
		t.Error("tomorrow must not be a past date")
	}
}

func TestValidateClockTime(t *testing.T) {
	for _, good := range []string{"00:00", "09:30", "14:05", "23:59"} {
		if err := ValidateClockTime(good); err != nil {
			t.Errorf("%q: expected valid, got %v", good, err)
		}
	}
	for _, bad := range []string{"24:00", "9:30", "14:60", "14.30", "1430", ""} {
		if err := ValidateClockTime(bad); !errors.Is(err, ErrInvalidTimeWindow) {
			t.Errorf("%q: expected ErrInvalidTimeWindow, got %v", bad, err)
		}
	}
}
