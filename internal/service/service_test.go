package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/domain"
	"github.com/careledger/medrec/internal/domain/appointment"
	"github.com/careledger/medrec/internal/domain/doctor"
	"github.com/careledger/medrec/internal/domain/medicalrecord"
	"github.com/careledger/medrec/internal/domain/patient"
	"github.com/careledger/medrec/internal/storage/filestore"
	"github.com/careledger/medrec/pkg/metrics"
)

type noopAuditRepo struct{}

func (noopAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error { return nil }

type testEnv struct {
	patients     *PatientService
	doctors      *DoctorService
	appointments *AppointmentService
	records      *MedicalRecordService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	log := zap.NewNop()

	patientRepo, err := filestore.NewPatientRepository(dir, log)
	if err != nil {
		t.Fatalf("patient repo: %v", err)
	}
	doctorRepo, err := filestore.NewDoctorRepository(dir, log)
	if err != nil {
		t.Fatalf("doctor repo: %v", err)
	}
	appointmentRepo, err := filestore.NewAppointmentRepository(dir, log)
	if err != nil {
		t.Fatalf("appointment repo: %v", err)
	}
	recordRepo, err := filestore.NewMedicalRecordRepository(dir, log)
	if err != nil {
		t.Fatalf("medical record repo: %v", err)
	}

	m := metrics.NewCollector("test", prometheus.NewRegistry())
	auditSvc := NewAuditService(noopAuditRepo{}, m, log)
	t.Cleanup(auditSvc.Shutdown)

	return &testEnv{
		patients:     NewPatientService(patientRepo, auditSvc, m, log),
		doctors:      NewDoctorService(doctorRepo, auditSvc, m, log),
		appointments: NewAppointmentService(appointmentRepo, patientRepo, doctorRepo, auditSvc, m, log),
		records:      NewMedicalRecordService(recordRepo, patientRepo, auditSvc, m, log),
	}
}

func (e *testEnv) seedPatient(t *testing.T) *patient.Patient {
	t.Helper()
	p, err := e.patients.CreatePatient(context.Background(), &patient.CreatePatientCommand{
		FullName:           "Ada Lovelace",
		Age:                40,
		Gender:             "F",
		ContactInformation: "555-0100",
		Address:            "12 Main St",
		EmergencyContact:   "555-0101",
	}, RequestMeta{})
	if err != nil {
		t.Fatalf("seeding patient: %v", err)
	}
	return p
}

func (e *testEnv) seedDoctor(t *testing.T) *doctor.Doctor {
	t.Helper()
	d, err := e.doctors.CreateDoctor(context.Background(), &doctor.CreateDoctorCommand{
		FullName:           "Dr. John Snow",
		Specialty:          "Cardiology",
		YearsOfExperience:  12,
		ContactInformation: "555-0199",
	}, RequestMeta{})
	if err != nil {
		t.Fatalf("seeding doctor: %v", err)
	}
	return d
}

func TestCreatePatientValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.patients.CreatePatient(ctx, &patient.CreatePatientCommand{
		FullName: "   ",
		Age:      -1,
	}, RequestMeta{})

	var validErr *ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if len(validErr.Fields) != 2 {
		t.Fatalf("expected both fields reported, got %v", validErr.Fields)
	}
}

func TestUpdatePatientRejectsEmptyName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedPatient(t)

	empty := ""
	_, err := env.patients.UpdatePatient(ctx, p.ID, &patient.UpdatePatientCommand{FullName: &empty}, RequestMeta{})
	var validErr *ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestListPatientsClampsPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedPatient(t)

	// Out-of-range inputs fall back to page 1 / size 10 instead of erroring.
	list, err := env.patients.ListPatients(ctx, &patient.ListPatientsQuery{Page: 0, PageSize: 500})
	if err != nil {
		t.Fatalf("ListPatients: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d patients, want 1", len(list))
	}
}

func TestScheduleAppointmentChecksReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	slot := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)

	d := env.seedDoctor(t)

	_, err := env.appointments.ScheduleAppointment(ctx, &appointment.CreateAppointmentCommand{
		PatientID: 99, DoctorID: d.ID, DateTime: slot, Status: appointment.StatusScheduled,
	}, RequestMeta{})
	if !errors.Is(err, patient.ErrPatientNotFound) {
		t.Fatalf("unknown patient: got %v, want ErrPatientNotFound", err)
	}

	p := env.seedPatient(t)
	_, err = env.appointments.ScheduleAppointment(ctx, &appointment.CreateAppointmentCommand{
		PatientID: p.ID, DoctorID: 99, DateTime: slot, Status: appointment.StatusScheduled,
	}, RequestMeta{})
	if !errors.Is(err, doctor.ErrDoctorNotFound) {
		t.Fatalf("unknown doctor: got %v, want ErrDoctorNotFound", err)
	}
}

func TestScheduleAppointmentRejectsInvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.appointments.ScheduleAppointment(ctx, &appointment.CreateAppointmentCommand{
		PatientID: 1, DoctorID: 1, DateTime: time.Now(), Status: "Pending",
	}, RequestMeta{})
	if !errors.Is(err, appointment.ErrInvalidStatus) {
		t.Fatalf("got %v, want ErrInvalidStatus", err)
	}
}

func TestScheduleAppointmentRejectsDoubleBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	slot := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)

	p := env.seedPatient(t)
	d := env.seedDoctor(t)

	if _, err := env.appointments.ScheduleAppointment(ctx, &appointment.CreateAppointmentCommand{
		PatientID: p.ID, DoctorID: d.ID, DateTime: slot, Status: appointment.StatusScheduled,
	}, RequestMeta{}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := env.appointments.ScheduleAppointment(ctx, &appointment.CreateAppointmentCommand{
		PatientID: p.ID, DoctorID: d.ID, DateTime: slot, Status: appointment.StatusScheduled,
	}, RequestMeta{})
	if !errors.Is(err, appointment.ErrAppointmentConflict) {
		t.Fatalf("double booking: got %v, want ErrAppointmentConflict", err)
	}
}

func TestUpdateAppointmentRevalidatesMovedSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	slot := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	otherSlot := slot.Add(time.Hour)

	p := env.seedPatient(t)
	d := env.seedDoctor(t)

	a, err := env.appointments.ScheduleAppointment(ctx, &appointment.CreateAppointmentCommand{
		PatientID: p.ID, DoctorID: d.ID, DateTime: slot, Status: appointment.StatusScheduled,
	}, RequestMeta{})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	b, err := env.appointments.ScheduleAppointment(ctx, &appointment.CreateAppointmentCommand{
		PatientID: p.ID, DoctorID: d.ID, DateTime: otherSlot, Status: appointment.StatusScheduled,
	}, RequestMeta{})
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	_, err = env.appointments.UpdateAppointment(ctx, b.ID, &appointment.UpdateAppointmentCommand{
		DoctorID: &d.ID, DateTime: &slot,
	}, RequestMeta{})
	if !errors.Is(err, appointment.ErrAppointmentConflict) {
		t.Fatalf("moving onto taken slot: got %v, want ErrAppointmentConflict", err)
	}

	// Re-submitting an appointment's own slot is not a conflict.
	if _, err := env.appointments.UpdateAppointment(ctx, a.ID, &appointment.UpdateAppointmentCommand{
		DoctorID: &d.ID, DateTime: &slot,
	}, RequestMeta{}); err != nil {
		t.Fatalf("updating own slot: %v", err)
	}
}

func TestCreateRecordRequiresLivePatient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.records.CreateRecord(ctx, &medicalrecord.CreateRecordCommand{
		PatientID:     42,
		Diagnosis:     "Hypertension",
		TreatmentDate: time.Now(),
	}, RequestMeta{})
	if !errors.Is(err, patient.ErrPatientNotFound) {
		t.Fatalf("got %v, want ErrPatientNotFound", err)
	}
}

func TestUpdateRecordRevalidatesPatientReference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.seedPatient(t)
	rec, err := env.records.CreateRecord(ctx, &medicalrecord.CreateRecordCommand{
		PatientID:     p.ID,
		Diagnosis:     "Hypertension",
		TreatmentDate: time.Now(),
	}, RequestMeta{})
	if err != nil {
		t.Fatalf("creating record: %v", err)
	}

	missing := int64(42)
	_, err = env.records.UpdateRecord(ctx, rec.ID, &medicalrecord.UpdateRecordCommand{PatientID: &missing}, RequestMeta{})
	if !errors.Is(err, patient.ErrPatientNotFound) {
		t.Fatalf("got %v, want ErrPatientNotFound", err)
	}
}

func TestDeletedPatientCannotBeReferenced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.seedPatient(t)
	d := env.seedDoctor(t)
	if err := env.patients.DeletePatient(ctx, p.ID, RequestMeta{}); err != nil {
		t.Fatalf("deleting patient: %v", err)
	}

	_, err := env.appointments.ScheduleAppointment(ctx, &appointment.CreateAppointmentCommand{
		PatientID: p.ID, DoctorID: d.ID, DateTime: time.Now(), Status: appointment.StatusScheduled,
	}, RequestMeta{})
	if !errors.Is(err, patient.ErrPatientNotFound) {
		t.Fatalf("got %v, want ErrPatientNotFound", err)
	}
}
