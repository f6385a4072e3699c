package filestore

import (
	"context"
	"errors"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/domain/medicalrecord"
)

type MedicalRecordRepository struct {
	s *store[medicalrecord.MedicalRecord, *medicalrecord.MedicalRecord]
}

func NewMedicalRecordRepository(dataDir string, log *zap.Logger) (*MedicalRecordRepository, error) {
	s, err := open[medicalrecord.MedicalRecord](filepath.Join(dataDir, "medical_records.json"), log)
	if err != nil {
		return nil, err
	}
	return &MedicalRecordRepository{s: s}, nil
}

func (r *MedicalRecordRepository) Create(ctx context.Context, cmd *medicalrecord.CreateRecordCommand) (*medicalrecord.MedicalRecord, error) {
	rec := &medicalrecord.MedicalRecord{
		PatientID:     cmd.PatientID,
		Diagnosis:     cmd.Diagnosis,
		Prescriptions: cmd.Prescriptions,
		TreatmentDate: cmd.TreatmentDate,
		DoctorNotes:   cmd.DoctorNotes,
	}
	if err := r.s.insert(rec, nil); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *MedicalRecordRepository) GetByID(ctx context.Context, id int64) (*medicalrecord.MedicalRecord, error) {
	rec, ok := r.s.getByID(id)
	if !ok {
		return nil, medicalrecord.ErrRecordNotFound
	}
	return rec, nil
}

func (r *MedicalRecordRepository) List(ctx context.Context, q *medicalrecord.ListRecordsQuery) ([]*medicalrecord.MedicalRecord, error) {
	var match func(*medicalrecord.MedicalRecord) bool
	if q.PatientID != nil {
		match = func(rec *medicalrecord.MedicalRecord) bool {
			return rec.PatientID == *q.PatientID
		}
	}
	return paginate(r.s.list(match), q.Page, q.PageSize), nil
}

func (r *MedicalRecordRepository) Update(ctx context.Context, id int64, cmd *medicalrecord.UpdateRecordCommand) (*medicalrecord.MedicalRecord, error) {
	rec, err := r.s.update(id, func(rec *medicalrecord.MedicalRecord) {
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
	}, nil)
	if errors.Is(err, errNotFound) {
		return nil, medicalrecord.ErrRecordNotFound
	}
	return rec, err
}

func (r *MedicalRecordRepository) Delete(ctx context.Context, id int64) error {
	if err := r.s.softDelete(id); err != nil {
		if errors.Is(err, errNotFound) {
			return medicalrecord.ErrRecordNotFound
		}
		return err
	}
	return nil
}
