package appointment

import (
	"context"
	"time"
)

type Repository interface {
	// Create persists a new appointment. The uniqueness of the live
	// (doctor_id, date_time) pair is enforced inside the same critical
	// section as the insert; a collision returns ErrAppointmentConflict.
	Create(ctx context.Context, cmd *CreateAppointmentCommand) (*Appointment, error)

	GetByID(ctx context.Context, id int64) (*Appointment, error)
	List(ctx context.Context, q *ListAppointmentsQuery) ([]*Appointment, error)

	// Update applies the supplied fields. If the resulting (doctor_id,
	// date_time) collides with a different live appointment it returns
	// ErrAppointmentConflict without persisting anything.
	Update(ctx context.Context, id int64, cmd *UpdateAppointmentCommand) (*Appointment, error)

	Delete(ctx context.Context, id int64) error

	// GetByDoctorAndTime finds the live appointment occupying a doctor's
	// slot. Returns ErrAppointmentNotFound when the slot is free.
	GetByDoctorAndTime(ctx context.Context, doctorID int64, at time.Time) (*Appointment, error)
}
