package filestore

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/domain/patient"
)

type PatientRepository struct {
	s *store[patient.Patient, *patient.Patient]
}

func NewPatientRepository(dataDir string, log *zap.Logger) (*PatientRepository, error) {
	s, err := open[patient.Patient](filepath.Join(dataDir, "patients.json"), log)
	if err != nil {
		return nil, err
	}
	return &PatientRepository{s: s}, nil
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
	if err := r.s.insert(p, nil); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*patient.Patient, error) {
	p, ok := r.s.getByID(id)
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

func (r *PatientRepository) List(ctx context.Context, q *patient.ListPatientsQuery) ([]*patient.Patient, error) {
	var match func(*patient.Patient) bool
	if q.Name != "" {
		name := strings.ToLower(q.Name)
		match = func(p *patient.Patient) bool {
			return strings.Contains(strings.ToLower(p.FullName), name)
		}
	}
	return paginate(r.s.list(match), q.Page, q.PageSize), nil
}

func (r *PatientRepository) Update(ctx context.Context, id int64, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	p, err := r.s.update(id, func(p *patient.Patient) {
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
	}, nil)
	if errors.Is(err, errNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	return p, err
}

func (r *PatientRepository) Delete(ctx context.Context, id int64) error {
	if err := r.s.softDelete(id); err != nil {
		if errors.Is(err, errNotFound) {
			return patient.ErrPatientNotFound
		}
		return err
	}
	return nil
}
