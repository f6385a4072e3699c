package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/careledger/medrec/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, cmd *patient.CreatePatientCommand) (*patient.Patient, error) {
	p := &patient.Patient{
		FullName:           cmd.FullName,
		Age:                cmd.Age,
		Gender:             cmd.Gender,
		ContactInformation: cmd.ContactInformation,
		Address:            cmd.Address,
		EmergencyContact:   cmd.EmergencyContact,
	}
	p.DateCreated = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("creating patient: %w", err)
	}
	return p, nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*patient.Patient, error) {
	var p patient.Patient
	err := live(r.db.WithContext(ctx)).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching patient: %w", err)
	}
	return &p, nil
}

func (r *PatientRepository) List(ctx context.Context, q *patient.ListPatientsQuery) ([]*patient.Patient, error) {
	query := live(r.db.WithContext(ctx).Model(&patient.Patient{}))
	if q.Name != "" {
		query = query.Where("full_name ILIKE ?", "%"+q.Name+"%")
	}

	var patients []*patient.Patient
	err := query.Order("id ASC").
		Offset(offset(q.Page, q.PageSize)).
		Limit(q.PageSize).
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, id int64, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	var updated *patient.Patient
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p patient.Patient
		if err := live(tx).First(&p, id).Error; err != nil {
			return err
		}

		if cmd.FullName != nil {
			p.FullName = *cmd.FullName
		}
		if cmd.Age != nil {
			p.Age = *cmd.Age
		}
		if cmd.Gender != nil {
			p.Gender = *cmd.Gender
		}
		if cmd.ContactInformation != nil {
			p.ContactInformation = *cmd.ContactInformation
		}
		if cmd.Address != nil {
			p.Address = *cmd.Address
		}
		if cmd.EmergencyContact != nil {
			p.EmergencyContact = *cmd.EmergencyContact
		}

		now := time.Now().UTC()
		p.DateUpdated = &now

		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		updated = &p
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating patient: %w", err)
	}
	return updated, nil
}

func (r *PatientRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("id = ? AND date_deleted IS NULL", id).
		Update("date_deleted", time.Now().UTC())
	if res.Error != nil {
		return fmt.Errorf("deleting patient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return patient.ErrPatientNotFound
	}
	return nil
}
