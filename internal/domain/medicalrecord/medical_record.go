package medicalrecord

import (
	"time"

	"github.com/careledger/medrec/internal/domain"
)

type MedicalRecord struct {
	domain.Audit `gorm:"embedded"`

	PatientID     int64     `json:"patient_id" gorm:"column:patient_id;not null;index"`
	Diagnosis     string    `json:"diagnosis" gorm:"column:diagnosis;type:text;not null"`
	Prescriptions string    `json:"prescriptions" gorm:"column:prescriptions;type:text"`
	TreatmentDate time.Time `json:"treatment_date" gorm:"column:treatment_date;not null;index"`
	DoctorNotes   string    `json:"doctor_notes" gorm:"column:doctor_notes;type:text"`
}

func (MedicalRecord) TableName() string {
	return "clinical.medical_records"
}

type CreateRecordCommand struct {
	PatientID     int64
	Diagnosis     string
	Prescriptions string
	TreatmentDate time.Time
	DoctorNotes   string
}

type UpdateRecordCommand struct {
	PatientID     *int64
	Diagnosis     *string
	Prescriptions *string
	TreatmentDate *time.Time
	DoctorNotes   *string
}

type ListRecordsQuery struct {
	PatientID *int64 // Exact match
	Page      int
	PageSize  int
}
