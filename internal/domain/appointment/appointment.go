package appointment

import (
	"time"

	"github.com/careledger/medrec/internal/domain"
)

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	domain.Audit `gorm:"embedded"`

	PatientID int64     `json:"patient_id" gorm:"column:patient_id;not null;index"`
	DoctorID  int64     `json:"doctor_id" gorm:"column:doctor_id;not null;index"`
	DateTime  time.Time `json:"date_time" gorm:"column:date_time;not null;index"`
	Status    Status    `json:"status" gorm:"column:status;type:varchar(20);not null"`
}

func (Appointment) TableName() string {
	return "clinical.appointments"
}

type CreateAppointmentCommand struct {
	PatientID int64
	DoctorID  int64
	DateTime  time.Time
	Status    Status
}

type UpdateAppointmentCommand struct {
	PatientID *int64
	DoctorID  *int64
	DateTime  *time.Time
	Status    *Status
}

type ListAppointmentsQuery struct {
	Status   *Status // Exact match
	Page     int
	PageSize int
}
