package patient

import (
	"github.com/careledger/medrec/internal/domain"
)

type Patient struct {
	domain.Audit `gorm:"embedded"`

	FullName           string `json:"full_name" gorm:"column:full_name;type:varchar(200);not null"`
	Age                int    `json:"age" gorm:"column:age;not null"`
	Gender             string `json:"gender" gorm:"column:gender;type:varchar(20)"`
	ContactInformation string `json:"contact_information" gorm:"column:contact_information;type:varchar(255)"`
	Address            string `json:"address" gorm:"column:address;type:text"`
	EmergencyContact   string `json:"emergency_contact" gorm:"column:emergency_contact;type:varchar(255)"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

type CreatePatientCommand struct {
	FullName           string
	Age                int
	Gender             string
	ContactInformation string
	Address            string
	EmergencyContact   string
}

// UpdatePatientCommand applies only the fields that are set; nil fields
// leave the stored value untouched.
type UpdatePatientCommand struct {
	FullName           *string
	Age                *int
	Gender             *string
	ContactInformation *string
	Address            *string
	EmergencyContact   *string
}

// ListPatientsQuery defines filtering and pagination for patient list queries.
type ListPatientsQuery struct {
	Name     string // Case-insensitive substring match on full name
	Page     int
	PageSize int
}
