package filestore

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/domain/doctor"
)

type DoctorRepository struct {
	s *store[doctor.Doctor, *doctor.Doctor]
}

func NewDoctorRepository(dataDir string, log *zap.Logger) (*DoctorRepository, error) {
	s, err := open[doctor.Doctor](filepath.Join(dataDir, "doctors.json"), log)
	if err != nil {
		return nil, err
	}
	return &DoctorRepository{s: s}, nil
}

func (r *DoctorRepository) Create(ctx context.Context, cmd *doctor.CreateDoctorCommand) (*doctor.Doctor, error) {
	d := &doctor.Doctor{
		FullName:           cmd.FullName,
		Specialty:          cmd.Specialty,
		YearsOfExperience:  cmd.YearsOfExperience,
		ContactInformation: cmd.ContactInformation,
	}
	if err := r.s.insert(d, nil); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id int64) (*doctor.Doctor, error) {
	d, ok := r.s.getByID(id)
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	return d, nil
}

func (r *DoctorRepository) List(ctx context.Context, q *doctor.ListDoctorsQuery) ([]*doctor.Doctor, error) {
	var match func(*doctor.Doctor) bool
	if q.Specialty != "" {
		specialty := strings.ToLower(q.Specialty)
		match = func(d *doctor.Doctor) bool {
			return strings.Contains(strings.ToLower(d.Specialty), specialty)
		}
	}
	return paginate(r.s.list(match), q.Page, q.PageSize), nil
}

func (r *DoctorRepository) Update(ctx context.Context, id int64, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	d, err := r.s.update(id, func(d *doctor.Doctor) {
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
	}, nil)
	if errors.Is(err, errNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	return d, err
}

func (r *DoctorRepository) Delete(ctx context.Context, id int64) error {
	if err := r.s.softDelete(id); err != nil {
		if errors.Is(err, errNotFound) {
			return doctor.ErrDoctorNotFound
		}
		return err
	}
	return nil
}
