package services

import (
	"ShifaCare/models"
	"ShifaCare/repositories"
	"ShifaCare/utils"
	"context"
	"fmt"
	"sync"
	"time"
)

// In-memory fakes for the repository interfaces. They mirror the storage
// semantics the services rely on, including the partial-unique-index conflict
// behavior on appointment creation.

type fakeDoctorRepo struct {
	doctors map[string]models.Doctor
	windows map[string][]models.ScheduleWindow
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{
		doctors: make(map[string]models.Doctor),
		windows: make(map[string][]models.ScheduleWindow),
	}
}

func (r *fakeDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) Update(ctx context.Context, doctor *models.Doctor) error {
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	doctor, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	return &doctor, nil
}

func (r *fakeDoctorRepo) GetAll(ctx context.Context) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range r.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDoctorRepo) ReplaceSchedule(ctx context.Context, doctorID string, windows []models.ScheduleWindow) error {
	r.windows[doctorID] = windows
	return nil
}

func (r *fakeDoctorRepo) GetScheduleWindows(ctx context.Context, doctorID string, weekday int) ([]models.ScheduleWindow, error) {
	var out []models.ScheduleWindow
	for _, w := range r.windows[doctorID] {
		if w.Weekday == weekday {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeAvailabilityRepo struct {
	overrides map[string]models.AvailabilityOverride
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{overrides: make(map[string]models.AvailabilityOverride)}
}

func (r *fakeAvailabilityRepo) key(doctorID, date string) string {
	return doctorID + "|" + date
}

func (r *fakeAvailabilityRepo) Upsert(ctx context.Context, override *models.AvailabilityOverride) error {
	r.overrides[r.key(override.DoctorID, override.Date)] = *override
	return nil
}

func (r *fakeAvailabilityRepo) GetByDoctorAndDate(ctx context.Context, doctorID, date string) (*models.AvailabilityOverride, error) {
	override, ok := r.overrides[r.key(doctorID, date)]
	if !ok {
		return nil, nil
	}
	return &override, nil
}

func (r *fakeAvailabilityRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.AvailabilityOverride, error) {
	var out []models.AvailabilityOverride
	for _, o := range r.overrides {
		if o.DoctorID == doctorID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	mu             sync.Mutex
	nextID         uint
	appointments   map[uint]models.Appointment
	audits         []models.AppointmentAuditLog
	forceDuplicate bool
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{nextID: 1, appointments: make(map[uint]models.Appointment)}
}

func (r *fakeAppointmentRepo) CreateWithAudit(ctx context.Context, appointment *models.Appointment, audit *models.AppointmentAuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.forceDuplicate {
		return repositories.ErrDuplicateSlot
	}
	for _, existing := range r.appointments {
		if existing.DoctorID == appointment.DoctorID &&
			existing.AppointmentDate == appointment.AppointmentDate &&
			existing.SlotNumber == appointment.SlotNumber &&
			existing.Status != models.StatusCancelled {
			return repositories.ErrDuplicateSlot
		}
	}

	appointment.ID = r.nextID
	appointment.CreatedAt = time.Now()
	r.nextID++
	r.appointments[appointment.ID] = *appointment

	audit.AppointmentID = appointment.ID
	audit.CreatedAt = time.Now()
	r.audits = append(r.audits, *audit)
	return nil
}

func (r *fakeAppointmentRepo) UpdateStatusWithAudit(ctx context.Context, appointment *models.Appointment, audit *models.AppointmentAuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[appointment.ID]
	if !ok {
		return fmt.Errorf("appointment %d not found", appointment.ID)
	}
	if stored.Status != audit.PreviousStatus {
		return repositories.ErrStaleStatus
	}
	stored.Status = appointment.Status
	stored.CancelReason = appointment.CancelReason
	stored.CompletedAt = appointment.CompletedAt
	stored.CancelledAt = appointment.CancelledAt
	r.appointments[appointment.ID] = stored

	audit.AppointmentID = appointment.ID
	audit.CreatedAt = time.Now()
	r.audits = append(r.audits, *audit)
	return nil
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (r *fakeAppointmentRepo) ListActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.AppointmentDate == date && a.Status != models.StatusCancelled {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) List(ctx context.Context, filters repositories.AppointmentFilters) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, a := range r.appointments {
		if filters.DoctorID != "" && a.DoctorID != filters.DoctorID {
			continue
		}
		if filters.Date != "" && a.AppointmentDate != filters.Date {
			continue
		}
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindByIdentifier(ctx context.Context, cnic, email string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, a := range r.appointments {
		if cnic != "" && a.PatientCnic == cnic {
			out = append(out, a)
		} else if cnic == "" && email != "" && a.PatientEmail == email {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) StatusCounts(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[string]int64)
	for _, a := range r.appointments {
		counts[a.Status]++
	}
	return counts, nil
}

func (r *fakeAppointmentRepo) auditsFor(id uint) []models.AppointmentAuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.AppointmentAuditLog
	for _, entry := range r.audits {
		if entry.AppointmentID == id {
			out = append(out, entry)
		}
	}
	return out
}

// staleReadRepo serves a stale status from GetByID while writes still see the
// real row, reproducing a reader that validates against a snapshot another
// writer has since replaced.
type staleReadRepo struct {
	*fakeAppointmentRepo
	staleID     uint
	staleStatus string
}

func (r *staleReadRepo) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := r.fakeAppointmentRepo.GetByID(ctx, id)
	if err != nil || appointment == nil {
		return appointment, err
	}
	if appointment.ID == r.staleID {
		stale := *appointment
		stale.Status = r.staleStatus
		return &stale, nil
	}
	return appointment, nil
}

type fakeAuditRepo struct {
	appointments *fakeAppointmentRepo
}

func (r *fakeAuditRepo) ListByAppointment(ctx context.Context, appointmentID uint) ([]models.AppointmentAuditLog, error) {
	return r.appointments.auditsFor(appointmentID), nil
}

type sentMail struct {
	To      string
	Details utils.ConfirmationDetails
}

type fakeMailer struct {
	mu    sync.Mutex
	sends []sentMail
	err   error
	ch    chan sentMail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{ch: make(chan sentMail, 8)}
}

func (m *fakeMailer) SendAppointmentConfirmed(to string, details utils.ConfirmationDetails) error {
	m.mu.Lock()
	m.sends = append(m.sends, sentMail{To: to, Details: details})
	m.mu.Unlock()
	m.ch <- sentMail{To: to, Details: details}
	return m.err
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sends)
}

// nextDate returns the first future date (at least tomorrow) falling on the
// given weekday, in YYYY-MM-DD form.
func nextDate(weekday time.Weekday) string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(utils.DateLayout)
}
