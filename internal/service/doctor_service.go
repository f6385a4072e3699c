package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/domain/doctor"
	"github.com/careledger/medrec/pkg/metrics"
)

type DoctorService struct {
	repo     doctor.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewDoctorService(repo doctor.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *DoctorService {
	return &DoctorService{
		repo:     repo,
		auditSvc: auditSvc,
		metrics:  m,
		log:      log,
	}
}

func (s *DoctorService) CreateDoctor(ctx context.Context, cmd *doctor.CreateDoctorCommand, meta RequestMeta) (*doctor.Doctor, error) {
	var errs []string
	if strings.TrimSpace(cmd.FullName) == "" {
		errs = append(errs, "full_name is required")
	}
	if strings.TrimSpace(cmd.Specialty) == "" {
		errs = append(errs, "specialty is required")
	}
	if cmd.YearsOfExperience < 0 {
		errs = append(errs, "years_of_experience cannot be negative")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	d, err := s.repo.Create(ctx, cmd)
	if err != nil {
		s.log.Error("failed to create doctor", zap.Error(err))
		return nil, err
	}

	s.metrics.DoctorsCreatedTotal.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "doctor",
		ResourceID:   d.ID,
		RequestID:    meta.RequestID,
		IPAddress:    meta.IP,
	})

	s.log.Info("doctor created", zap.Int64("doctor_id", d.ID))
	return d, nil
}

func (s *DoctorService) GetDoctor(ctx context.Context, id int64) (*doctor.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) ListDoctors(ctx context.Context, q *doctor.ListDoctorsQuery) ([]*doctor.Doctor, error) {
	clampPage(&q.Page, &q.PageSize)
	return s.repo.List(ctx, q)
}

func (s *DoctorService) UpdateDoctor(ctx context.Context, id int64, cmd *doctor.UpdateDoctorCommand, meta RequestMeta) (*doctor.Doctor, error) {
	if cmd.YearsOfExperience != nil && *cmd.YearsOfExperience < 0 {
		return nil, &ValidationError{Fields: []string{"years_of_experience cannot be negative"}}
	}

	d, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "doctor",
		ResourceID:   id,
		RequestID:    meta.RequestID,
		IPAddress:    meta.IP,
	})
	return d, nil
}

func (s *DoctorService) DeleteDoctor(ctx context.Context, id int64, meta RequestMeta) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "doctor",
		ResourceID:   id,
		RequestID:    meta.RequestID,
		IPAddress:    meta.IP,
	})
	return nil
}
