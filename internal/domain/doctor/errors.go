package doctor

import "errors"

var ErrDoctorNotFound = errors.New("Doctor not found")
