package patient

import "errors"

var ErrPatientNotFound = errors.New("Patient not found")
