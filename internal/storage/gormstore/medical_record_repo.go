package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/careledger/medrec/internal/domain/medicalrecord"
)

type MedicalRecordRepository struct {
	db *gorm.DB
}

func NewMedicalRecordRepository(db *gorm.DB) *MedicalRecordRepository {
	return &MedicalRecordRepository{db: db}
}

func (r *MedicalRecordRepository) Create(ctx context.Context, cmd *medicalrecord.CreateRecordCommand) (*medicalrecord.MedicalRecord, error) {
	rec := &medicalrecord.MedicalRecord{
		PatientID:     cmd.PatientID,
		Diagnosis:     cmd.Diagnosis,
		Prescriptions: cmd.Prescriptions,
		TreatmentDate: cmd.TreatmentDate,
		DoctorNotes:   cmd.DoctorNotes,
	}
	rec.DateCreated = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("creating medical record: %w", err)
	}
	return rec, nil
}

func (r *MedicalRecordRepository) GetByID(ctx context.Context, id int64) (*medicalrecord.MedicalRecord, error) {
	var rec medicalrecord.MedicalRecord
	err := live(r.db.WithContext(ctx)).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, medicalrecord.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching medical record: %w", err)
	}
	return &rec, nil
}

func (r *MedicalRecordRepository) List(ctx context.Context, q *medicalrecord.ListRecordsQuery) ([]*medicalrecord.MedicalRecord, error) {
	query := live(r.db.WithContext(ctx).Model(&medicalrecord.MedicalRecord{}))
	if q.PatientID != nil {
		query = query.Where("patient_id = ?", *q.PatientID)
	}

	var records []*medicalrecord.MedicalRecord
	err := query.Order("id ASC").
		Offset(offset(q.Page, q.PageSize)).
		Limit(q.PageSize).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing medical records: %w", err)
	}
	return records, nil
}

func (r *MedicalRecordRepository) Update(ctx context.Context, id int64, cmd *medicalrecord.UpdateRecordCommand) (*medicalrecord.MedicalRecord, error) {
	var updated *medicalrecord.MedicalRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec medicalrecord.MedicalRecord
		if err := live(tx).First(&rec, id).Error; err != nil {
			return err
		}

		if cmd.PatientID != nil {
			rec.PatientID = *cmd.PatientID
		}
		if cmd.Diagnosis != nil {
			rec.Diagnosis = *cmd.Diagnosis
		}
		if cmd.Prescriptions != nil {
			rec.Prescriptions = *cmd.Prescriptions
		}
		if cmd.TreatmentDate != nil {
			rec.TreatmentDate = *cmd.TreatmentDate
		}
		if cmd.DoctorNotes != nil {
			rec.DoctorNotes = *cmd.DoctorNotes
		}

		now := time.Now().UTC()
		rec.DateUpdated = &now

		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		updated = &rec
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, medicalrecord.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating medical record: %w", err)
	}
	return updated, nil
}

func (r *MedicalRecordRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&medicalrecord.MedicalRecord{}).
		Where("id = ? AND date_deleted IS NULL", id).
		Update("date_deleted", time.Now().UTC())
	if res.Error != nil {
		return fmt.Errorf("deleting medical record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return medicalrecord.ErrRecordNotFound
	}
	return nil
}
