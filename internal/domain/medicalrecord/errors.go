package medicalrecord

import "errors"

var ErrRecordNotFound = errors.New("Medical record not found")
