package filestore

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/domain/appointment"
)

type AppointmentRepository struct {
	s *store[appointment.Appointment, *appointment.Appointment]
}

func NewAppointmentRepository(dataDir string, log *zap.Logger) (*AppointmentRepository, error) {
	s, err := open[appointment.Appointment](filepath.Join(dataDir, "appointments.json"), log)
	if err != nil {
		return nil, err
	}
	return &AppointmentRepository{s: s}, nil
}

// Create rejects a booking whose (doctor_id, date_time) pair is already
// taken by a live appointment. The check runs under the store lock
// together with the insert, so concurrent creates cannot both succeed.
func (r *AppointmentRepository) Create(ctx context.Context, cmd *appointment.CreateAppointmentCommand) (*appointment.Appointment, error) {
	a := &appointment.Appointment{
		PatientID: cmd.PatientID,
		DoctorID:  cmd.DoctorID,
		DateTime:  cmd.DateTime,
		Status:    cmd.Status,
	}
	err := r.s.insert(a, func(other *appointment.Appointment) bool {
		return other.DoctorID == a.DoctorID && other.DateTime.Equal(a.DateTime)
	})
	if errors.Is(err, errConflict) {
		return nil, appointment.ErrAppointmentConflict
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*appointment.Appointment, error) {
	a, ok := r.s.getByID(id)
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return a, nil
}

func (r *AppointmentRepository) List(ctx context.Context, q *appointment.ListAppointmentsQuery) ([]*appointment.Appointment, error) {
	var match func(*appointment.Appointment) bool
	if q.Status != nil {
		match = func(a *appointment.Appointment) bool {
			return a.Status == *q.Status
		}
	}
	return paginate(r.s.list(match), q.Page, q.PageSize), nil
}

func (r *AppointmentRepository) Update(ctx context.Context, id int64, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	a, err := r.s.update(id, func(a *appointment.Appointment) {
		if cmd.PatientID != nil {
			a.PatientID = *cmd.PatientID
		}
		if cmd.DoctorID != nil {
			a.DoctorID = *cmd.DoctorID
		}
		if cmd.DateTime != nil {
			a.DateTime = *cmd.DateTime
		}
		if cmd.Status != nil {
			a.Status = *cmd.Status
		}
	}, func(updated, other *appointment.Appointment) bool {
		return other.DoctorID == updated.DoctorID && other.DateTime.Equal(updated.DateTime)
	})
	switch {
	case errors.Is(err, errNotFound):
		return nil, appointment.ErrAppointmentNotFound
	case errors.Is(err, errConflict):
		return nil, appointment.ErrAppointmentConflict
	}
	return a, err
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	if err := r.s.softDelete(id); err != nil {
		if errors.Is(err, errNotFound) {
			return appointment.ErrAppointmentNotFound
		}
		return err
	}
	return nil
}

func (r *AppointmentRepository) GetByDoctorAndTime(ctx context.Context, doctorID int64, at time.Time) (*appointment.Appointment, error) {
	booked := r.s.list(func(a *appointment.Appointment) bool {
		return a.DoctorID == doctorID && a.DateTime.Equal(at)
	})
	if len(booked) == 0 {
		return nil, appointment.ErrAppointmentNotFound
	}
	return booked[0], nil
}
