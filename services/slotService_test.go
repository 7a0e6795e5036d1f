package services

import (
	"ShifaCare/models"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func setupSlotService() (*SlotService, *fakeDoctorRepo, *fakeAvailabilityRepo, *fakeAppointmentRepo) {
	doctorRepo := newFakeDoctorRepo()
	availabilityRepo := newFakeAvailabilityRepo()
	appointmentRepo := newFakeAppointmentRepo()
	svc := NewSlotService(doctorRepo, availabilityRepo, appointmentRepo)
	return svc, doctorRepo, availabilityRepo, appointmentRepo
}

func addMondayDoctor(doctorRepo *fakeDoctorRepo) {
	doctorRepo.doctors["dr-khan"] = models.Doctor{
		ID:               "dr-khan",
		Name:             "Dr Ayesha Khan",
		Designation:      "Consultant Cardiologist",
		SlotDurationMins: 30,
	}
	doctorRepo.windows["dr-khan"] = []models.ScheduleWindow{
		{DoctorID: "dr-khan", Weekday: int(time.Monday), StartTime: "09:00", EndTime: "10:00"},
	}
}

func TestGetAvailableSlots_ExpandsTemplateWindows(t *testing.T) {
	svc, doctorRepo, _, _ := setupSlotService()
	addMondayDoctor(doctorRepo)
	monday := nextDate(time.Monday)

	day, err := svc.GetAvailableSlots(context.Background(), "dr-khan", monday)
	if err != nil {
		t.Fatalf("GetAvailableSlots failed: %v", err)
	}
	if day.DoctorName != "Dr Ayesha Khan" {
		t.Errorf("expected doctor meta in result, got %q", day.DoctorName)
	}
	if len(day.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(day.Slots))
	}
	if day.Slots[0].SlotNumber != 1 || day.Slots[0].StartTime != "09:00" || day.Slots[0].EndTime != "09:30" {
		t.Errorf("unexpected first slot: %+v", day.Slots[0])
	}
	if day.Slots[1].SlotNumber != 2 || day.Slots[1].StartTime != "09:30" || day.Slots[1].EndTime != "10:00" {
		t.Errorf("unexpected second slot: %+v", day.Slots[1])
	}
}

func TestGetAvailableSlots_DoctorNotFound(t *testing.T) {
	svc, _, _, _ := setupSlotService()

	_, err := svc.GetAvailableSlots(context.Background(), "missing", nextDate(time.Monday))
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestGetAvailableSlots_NoWindowsForWeekday(t *testing.T) {
	svc, doctorRepo, _, _ := setupSlotService()
	addMondayDoctor(doctorRepo)

	_, err := svc.GetAvailableSlots(context.Background(), "dr-khan", nextDate(time.Tuesday))
	if !errors.Is(err, ErrDateNotBookable) {
		t.Fatalf("expected ErrDateNotBookable, got %v", err)
	}
}

func TestGetAvailableSlots_BlockedOverrideWins(t *testing.T) {
	svc, doctorRepo, availabilityRepo, _ := setupSlotService()
	addMondayDoctor(doctorRepo)
	monday := nextDate(time.Monday)

	for _, overrideType := range []string{models.OverrideLeave, models.OverrideEmergencyBlock} {
		availabilityRepo.overrides = map[string]models.AvailabilityOverride{}
		_ = availabilityRepo.Upsert(context.Background(), &models.AvailabilityOverride{
			DoctorID:     "dr-khan",
			Date:         monday,
			IsAvailable:  false,
			OverrideType: overrideType,
		})

		_, err := svc.GetAvailableSlots(context.Background(), "dr-khan", monday)
		if !errors.Is(err, ErrDateNotBookable) {
			t.Errorf("%s: expected ErrDateNotBookable, got %v", overrideType, err)
		}
	}
}

func TestGetAvailableSlots_CustomHoursReplaceTemplate(t *testing.T) {
	svc, doctorRepo, availabilityRepo, _ := setupSlotService()
	addMondayDoctor(doctorRepo)
	monday := nextDate(time.Monday)

	custom, _ := json.Marshal([]models.TimeWindow{{StartTime: "14:00", EndTime: "15:00"}})
	_ = availabilityRepo.Upsert(context.Background(), &models.AvailabilityOverride{
		DoctorID:      "dr-khan",
		Date:          monday,
		IsAvailable:   true,
		OverrideType:  models.OverrideCustomHours,
		CustomWindows: string(custom),
	})

	day, err := svc.GetAvailableSlots(context.Background(), "dr-khan", monday)
	if err != nil {
		t.Fatalf("GetAvailableSlots failed: %v", err)
	}
	if len(day.Slots) != 2 {
		t.Fatalf("expected 2 custom slots, got %d", len(day.Slots))
	}
	// Replaced, not merged: no 09:00 slot survives.
	for _, slot := range day.Slots {
		if slot.StartTime == "09:00" {
			t.Errorf("template window leaked into custom hours result: %+v", slot)
		}
	}
	if day.Slots[0].StartTime != "14:00" {
		t.Errorf("expected custom window start 14:00, got %s", day.Slots[0].StartTime)
	}
}

func TestGetAvailableSlots_MarksBookedSlots(t *testing.T) {
	svc, doctorRepo, _, appointmentRepo := setupSlotService()
	addMondayDoctor(doctorRepo)
	monday := nextDate(time.Monday)

	appointmentRepo.appointments[1] = models.Appointment{
		ID: 1, DoctorID: "dr-khan", AppointmentDate: monday, SlotNumber: 1, Status: models.StatusPending,
	}

	day, err := svc.GetAvailableSlots(context.Background(), "dr-khan", monday)
	if err != nil {
		t.Fatalf("GetAvailableSlots failed: %v", err)
	}
	if !day.Slots[0].IsBooked {
		t.Error("slot 1 should be booked")
	}
	if day.Slots[1].IsBooked {
		t.Error("slot 2 should be free")
	}
}

func TestGetAvailableSlots_CancelledAppointmentFreesSlot(t *testing.T) {
	svc, doctorRepo, _, appointmentRepo := setupSlotService()
	addMondayDoctor(doctorRepo)
	monday := nextDate(time.Monday)

	appointmentRepo.appointments[1] = models.Appointment{
		ID: 1, DoctorID: "dr-khan", AppointmentDate: monday, SlotNumber: 1, Status: models.StatusCancelled,
	}

	day, err := svc.GetAvailableSlots(context.Background(), "dr-khan", monday)
	if err != nil {
		t.Fatalf("GetAvailableSlots failed: %v", err)
	}
	if day.Slots[0].IsBooked {
		t.Error("cancelled appointment must free its slot")
	}
}

func TestGetAvailableSlots_StableNumbering(t *testing.T) {
	svc, doctorRepo, _, _ := setupSlotService()
	addMondayDoctor(doctorRepo)
	doctorRepo.windows["dr-khan"] = append(doctorRepo.windows["dr-khan"],
		models.ScheduleWindow{DoctorID: "dr-khan", Weekday: int(time.Monday), StartTime: "14:00", EndTime: "15:00"},
	)
	monday := nextDate(time.Monday)

	first, err := svc.GetAvailableSlots(context.Background(), "dr-khan", monday)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := svc.GetAvailableSlots(context.Background(), "dr-khan", monday)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if len(first.Slots) != len(second.Slots) {
		t.Fatalf("slot count changed between calls: %d vs %d", len(first.Slots), len(second.Slots))
	}
	for i := range first.Slots {
		if first.Slots[i] != second.Slots[i] {
			t.Errorf("slot %d differs between calls: %+v vs %+v", i, first.Slots[i], second.Slots[i])
		}
	}
	// Numbering runs sequentially across windows.
	if first.Slots[len(first.Slots)-1].SlotNumber != len(first.Slots) {
		t.Errorf("expected last slot number %d, got %d", len(first.Slots), first.Slots[len(first.Slots)-1].SlotNumber)
	}
}
