package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("Appointment not found")
	ErrAppointmentConflict = errors.New("Doctor is already booked at this time")
	ErrInvalidStatus       = errors.New("invalid appointment status")
)
