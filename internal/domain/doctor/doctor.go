package doctor

import (
	"github.com/careledger/medrec/internal/domain"
)

type Doctor struct {
	domain.Audit `gorm:"embedded"`

	FullName           string `json:"full_name" gorm:"column:full_name;type:varchar(200);not null"`
	Specialty          string `json:"specialty" gorm:"column:specialty;type:varchar(100);not null;index"`
	YearsOfExperience  int    `json:"years_of_experience" gorm:"column:years_of_experience;not null"`
	ContactInformation string `json:"contact_information" gorm:"column:contact_information;type:varchar(255)"`
}

func (Doctor) TableName() string {
	return "clinical.doctors"
}

type CreateDoctorCommand struct {
	FullName           string
	Specialty          string
	YearsOfExperience  int
	ContactInformation string
}

type UpdateDoctorCommand struct {
	FullName           *string
	Specialty          *string
	YearsOfExperience  *int
	ContactInformation *string
}

type ListDoctorsQuery struct {
	Specialty string // Case-insensitive substring match
	Page      int
	PageSize  int
}
