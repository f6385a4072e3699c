package filestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/domain/appointment"
	"github.com/careledger/medrec/internal/domain/doctor"
	"github.com/careledger/medrec/internal/domain/patient"
)

func newPatientRepo(t *testing.T, dir string) *PatientRepository {
	t.Helper()
	repo, err := NewPatientRepository(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewPatientRepository: %v", err)
	}
	return repo
}

func seedPatient(t *testing.T, repo *PatientRepository, name string) *patient.Patient {
	t.Helper()
	p, err := repo.Create(context.Background(), &patient.CreatePatientCommand{
		FullName:           name,
		Age:                40,
		Gender:             "F",
		ContactInformation: "555-0100",
		Address:            "12 Main St",
		EmergencyContact:   "555-0101",
	})
	if err != nil {
		t.Fatalf("creating patient %q: %v", name, err)
	}
	return p
}

func TestPatientIDsAreSequentialAndNeverReused(t *testing.T) {
	dir := t.TempDir()
	repo := newPatientRepo(t, dir)
	ctx := context.Background()

	first := seedPatient(t, repo, "Ada Lovelace")
	second := seedPatient(t, repo, "Grace Hopper")
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}

	if err := repo.Delete(ctx, second.ID); err != nil {
		t.Fatalf("deleting patient: %v", err)
	}

	third := seedPatient(t, repo, "Mary Seacole")
	if third.ID != 3 {
		t.Fatalf("deleted id was reused: got %d, want 3", third.ID)
	}
}

func TestIDGeneratorSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	repo := newPatientRepo(t, dir)
	ctx := context.Background()

	p := seedPatient(t, repo, "Ada Lovelace")
	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("deleting patient: %v", err)
	}

	reopened := newPatientRepo(t, dir)
	next := seedPatient(t, reopened, "Grace Hopper")
	if next.ID != 2 {
		t.Fatalf("id generator reset after reopen: got %d, want 2", next.ID)
	}
}

func TestSoftDeletedPatientIsInvisible(t *testing.T) {
	dir := t.TempDir()
	repo := newPatientRepo(t, dir)
	ctx := context.Background()

	p := seedPatient(t, repo, "Ada Lovelace")
	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("deleting patient: %v", err)
	}

	if _, err := repo.GetByID(ctx, p.ID); !errors.Is(err, patient.ErrPatientNotFound) {
		t.Fatalf("GetByID after delete: got %v, want ErrPatientNotFound", err)
	}

	list, err := repo.List(ctx, &patient.ListPatientsQuery{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("deleted patient still listed: %d results", len(list))
	}

	// The tombstone persists to disk: reopening must not resurrect it.
	reopened := newPatientRepo(t, dir)
	if _, err := reopened.GetByID(ctx, p.ID); !errors.Is(err, patient.ErrPatientNotFound) {
		t.Fatalf("GetByID after reopen: got %v, want ErrPatientNotFound", err)
	}
}

func TestDeleteIsNotIdempotent(t *testing.T) {
	repo := newPatientRepo(t, t.TempDir())
	ctx := context.Background()

	p := seedPatient(t, repo, "Ada Lovelace")
	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := repo.Delete(ctx, p.ID); !errors.Is(err, patient.ErrPatientNotFound) {
		t.Fatalf("second delete: got %v, want ErrPatientNotFound", err)
	}
}

func TestPaginationCoversAllRowsWithoutOverlap(t *testing.T) {
	repo := newPatientRepo(t, t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three", "Four", "Five"} {
		seedPatient(t, repo, name)
	}

	seen := map[int64]bool{}
	for page := 1; page <= 3; page++ {
		list, err := repo.List(ctx, &patient.ListPatientsQuery{Page: page, PageSize: 2})
		if err != nil {
			t.Fatalf("List page %d: %v", page, err)
		}
		for _, p := range list {
			if seen[p.ID] {
				t.Fatalf("patient %d returned on more than one page", p.ID)
			}
			seen[p.ID] = true
		}
	}
	if len(seen) != 5 {
		t.Fatalf("pagination covered %d of 5 patients", len(seen))
	}

	empty, err := repo.List(ctx, &patient.ListPatientsQuery{Page: 4, PageSize: 2})
	if err != nil {
		t.Fatalf("List past end: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("page past the data returned %d rows, want 0", len(empty))
	}
}

func TestListFiltersByNameSubstring(t *testing.T) {
	repo := newPatientRepo(t, t.TempDir())
	ctx := context.Background()

	seedPatient(t, repo, "Ada Lovelace")
	seedPatient(t, repo, "Grace Hopper")

	list, err := repo.List(ctx, &patient.ListPatientsQuery{Name: "love", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].FullName != "Ada Lovelace" {
		t.Fatalf("name filter returned %d results", len(list))
	}
}

func TestPartialUpdatePreservesUntouchedFields(t *testing.T) {
	repo := newPatientRepo(t, t.TempDir())
	ctx := context.Background()

	p := seedPatient(t, repo, "Ada Lovelace")

	newAge := 41
	updated, err := repo.Update(ctx, p.ID, &patient.UpdatePatientCommand{Age: &newAge})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Age != 41 {
		t.Errorf("age not updated: got %d", updated.Age)
	}
	if updated.FullName != "Ada Lovelace" {
		t.Errorf("full_name was clobbered: got %q", updated.FullName)
	}
	if updated.Address != "12 Main St" {
		t.Errorf("address was clobbered: got %q", updated.Address)
	}
	if updated.DateUpdated == nil {
		t.Error("date_updated not stamped on update")
	}
	if updated.DateCreated.IsZero() {
		t.Error("date_created lost on update")
	}
}

func newAppointmentRepo(t *testing.T, dir string) *AppointmentRepository {
	t.Helper()
	repo, err := NewAppointmentRepository(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewAppointmentRepository: %v", err)
	}
	return repo
}

func TestAppointmentCreateRejectsDoubleBooking(t *testing.T) {
	repo := newAppointmentRepo(t, t.TempDir())
	ctx := context.Background()
	slot := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)

	if _, err := repo.Create(ctx, &appointment.CreateAppointmentCommand{
		PatientID: 1, DoctorID: 1, DateTime: slot, Status: appointment.StatusScheduled,
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := repo.Create(ctx, &appointment.CreateAppointmentCommand{
		PatientID: 2, DoctorID: 1, DateTime: slot, Status: appointment.StatusScheduled,
	})
	if !errors.Is(err, appointment.ErrAppointmentConflict) {
		t.Fatalf("double booking: got %v, want ErrAppointmentConflict", err)
	}

	// A different doctor in the same slot is fine.
	if _, err := repo.Create(ctx, &appointment.CreateAppointmentCommand{
		PatientID: 2, DoctorID: 2, DateTime: slot, Status: appointment.StatusScheduled,
	}); err != nil {
		t.Fatalf("other doctor, same slot: %v", err)
	}
}

func TestDeletedAppointmentFreesTheSlot(t *testing.T) {
	repo := newAppointmentRepo(t, t.TempDir())
	ctx := context.Background()
	slot := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)

	a, err := repo.Create(ctx, &appointment.CreateAppointmentCommand{
		PatientID: 1, DoctorID: 1, DateTime: slot, Status: appointment.StatusScheduled,
	})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("deleting booking: %v", err)
	}

	if _, err := repo.Create(ctx, &appointment.CreateAppointmentCommand{
		PatientID: 2, DoctorID: 1, DateTime: slot, Status: appointment.StatusScheduled,
	}); err != nil {
		t.Fatalf("rebooking freed slot: %v", err)
	}
}

func TestAppointmentUpdateConflictExcludesSelf(t *testing.T) {
	repo := newAppointmentRepo(t, t.TempDir())
	ctx := context.Background()
	slot := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	otherSlot := slot.Add(time.Hour)

	a, err := repo.Create(ctx, &appointment.CreateAppointmentCommand{
		PatientID: 1, DoctorID: 1, DateTime: slot, Status: appointment.StatusScheduled,
	})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	b, err := repo.Create(ctx, &appointment.CreateAppointmentCommand{
		PatientID: 2, DoctorID: 1, DateTime: otherSlot, Status: appointment.StatusScheduled,
	})
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	// Updating an appointment without moving it must not conflict with
	// itself.
	done := appointment.StatusCompleted
	if _, err := repo.Update(ctx, a.ID, &appointment.UpdateAppointmentCommand{Status: &done}); err != nil {
		t.Fatalf("status-only update: %v", err)
	}

	// Moving b onto a's slot must conflict.
	_, err = repo.Update(ctx, b.ID, &appointment.UpdateAppointmentCommand{DateTime: &slot})
	if !errors.Is(err, appointment.ErrAppointmentConflict) {
		t.Fatalf("moving onto taken slot: got %v, want ErrAppointmentConflict", err)
	}
}

func TestGetByDoctorAndTime(t *testing.T) {
	repo := newAppointmentRepo(t, t.TempDir())
	ctx := context.Background()
	slot := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)

	a, err := repo.Create(ctx, &appointment.CreateAppointmentCommand{
		PatientID: 1, DoctorID: 7, DateTime: slot, Status: appointment.StatusScheduled,
	})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	found, err := repo.GetByDoctorAndTime(ctx, 7, slot)
	if err != nil {
		t.Fatalf("GetByDoctorAndTime: %v", err)
	}
	if found.ID != a.ID {
		t.Fatalf("got appointment %d, want %d", found.ID, a.ID)
	}

	if _, err := repo.GetByDoctorAndTime(ctx, 7, slot.Add(time.Minute)); !errors.Is(err, appointment.ErrAppointmentNotFound) {
		t.Fatalf("free slot: got %v, want ErrAppointmentNotFound", err)
	}
}

func TestAppointmentListFiltersByStatus(t *testing.T) {
	repo := newAppointmentRepo(t, t.TempDir())
	ctx := context.Background()
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	if _, err := repo.Create(ctx, &appointment.CreateAppointmentCommand{
		PatientID: 1, DoctorID: 1, DateTime: base, Status: appointment.StatusScheduled,
	}); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := repo.Create(ctx, &appointment.CreateAppointmentCommand{
		PatientID: 1, DoctorID: 1, DateTime: base.Add(time.Hour), Status: appointment.StatusCompleted,
	}); err != nil {
		t.Fatalf("booking: %v", err)
	}

	done := appointment.StatusCompleted
	list, err := repo.List(ctx, &appointment.ListAppointmentsQuery{Status: &done, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Status != appointment.StatusCompleted {
		t.Fatalf("status filter returned %d results", len(list))
	}
}

func TestDoctorRepositoryRoundTrip(t *testing.T) {
	repo, err := NewDoctorRepository(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewDoctorRepository: %v", err)
	}
	ctx := context.Background()

	d, err := repo.Create(ctx, &doctor.CreateDoctorCommand{
		FullName:           "Dr. John Snow",
		Specialty:          "Epidemiology",
		YearsOfExperience:  12,
		ContactInformation: "555-0199",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Specialty != "Epidemiology" {
		t.Fatalf("specialty: got %q", got.Specialty)
	}

	list, err := repo.List(ctx, &doctor.ListDoctorsQuery{Specialty: "epidem", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("specialty filter returned %d results", len(list))
	}
}
