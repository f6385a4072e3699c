package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/careledger/medrec/internal/domain/doctor"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) Create(ctx context.Context, cmd *doctor.CreateDoctorCommand) (*doctor.Doctor, error) {
	d := &doctor.Doctor{
		FullName:           cmd.FullName,
		Specialty:          cmd.Specialty,
		YearsOfExperience:  cmd.YearsOfExperience,
		ContactInformation: cmd.ContactInformation,
	}
	d.DateCreated = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, fmt.Errorf("creating doctor: %w", err)
	}
	return d, nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id int64) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := live(r.db.WithContext(ctx)).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching doctor: %w", err)
	}
	return &d, nil
}

func (r *DoctorRepository) List(ctx context.Context, q *doctor.ListDoctorsQuery) ([]*doctor.Doctor, error) {
	query := live(r.db.WithContext(ctx).Model(&doctor.Doctor{}))
	if q.Specialty != "" {
		query = query.Where("specialty ILIKE ?", "%"+q.Specialty+"%")
	}

	var doctors []*doctor.Doctor
	err := query.Order("id ASC").
		Offset(offset(q.Page, q.PageSize)).
		Limit(q.PageSize).
		Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}
	return doctors, nil
}

func (r *DoctorRepository) Update(ctx context.Context, id int64, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	var updated *doctor.Doctor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d doctor.Doctor
		if err := live(tx).First(&d, id).Error; err != nil {
			return err
		}

		if cmd.FullName != nil {
			d.FullName = *cmd.FullName
		}
		if cmd.Specialty != nil {
			d.Specialty = *cmd.Specialty
		}
		if cmd.YearsOfExperience != nil {
			d.YearsOfExperience = *cmd.YearsOfExperience
		}
		if cmd.ContactInformation != nil {
			d.ContactInformation = *cmd.ContactInformation
		}

		now := time.Now().UTC()
		d.DateUpdated = &now

		if err := tx.Save(&d).Error; err != nil {
			return err
		}
		updated = &d
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating doctor: %w", err)
	}
	return updated, nil
}

func (r *DoctorRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&doctor.Doctor{}).
		Where("id = ? AND date_deleted IS NULL", id).
		Update("date_deleted", time.Now().UTC())
	if res.Error != nil {
		return fmt.Errorf("deleting doctor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return doctor.ErrDoctorNotFound
	}
	return nil
}
