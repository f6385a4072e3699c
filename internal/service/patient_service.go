package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/domain/patient"
	"github.com/careledger/medrec/pkg/metrics"
)

type PatientService struct {
	repo     patient.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewPatientService(repo patient.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *PatientService {
	return &PatientService{
		repo:     repo,
		auditSvc: auditSvc,
		metrics:  m,
		log:      log,
	}
}

func (s *PatientService) CreatePatient(ctx context.Context, cmd *patient.CreatePatientCommand, meta RequestMeta) (*patient.Patient, error) {
	var errs []string
	if strings.TrimSpace(cmd.FullName) == "" {
		errs = append(errs, "full_name is required")
	}
	if cmd.Age < 0 {
		errs = append(errs, "age cannot be negative")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	p, err := s.repo.Create(ctx, cmd)
	if err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, err
	}

	s.metrics.PatientsCreatedTotal.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "patient",
		ResourceID:   p.ID,
		RequestID:    meta.RequestID,
		IPAddress:    meta.IP,
	})

	s.log.Info("patient created", zap.Int64("patient_id", p.ID))
	return p, nil
}

func (s *PatientService) GetPatient(ctx context.Context, id int64) (*patient.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) ListPatients(ctx context.Context, q *patient.ListPatientsQuery) ([]*patient.Patient, error) {
	clampPage(&q.Page, &q.PageSize)
	return s.repo.List(ctx, q)
}

func (s *PatientService) UpdatePatient(ctx context.Context, id int64, cmd *patient.UpdatePatientCommand, meta RequestMeta) (*patient.Patient, error) {
	if cmd.Age != nil && *cmd.Age < 0 {
		return nil, &ValidationError{Fields: []string{"age cannot be negative"}}
	}
	if cmd.FullName != nil && strings.TrimSpace(*cmd.FullName) == "" {
		return nil, &ValidationError{Fields: []string{"full_name cannot be empty"}}
	}

	p, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "patient",
		ResourceID:   id,
		RequestID:    meta.RequestID,
		IPAddress:    meta.IP,
	})
	return p, nil
}

func (s *PatientService) DeletePatient(ctx context.Context, id int64, meta RequestMeta) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "patient",
		ResourceID:   id,
		RequestID:    meta.RequestID,
		IPAddress:    meta.IP,
	})
	return nil
}

// clampPage normalizes pagination inputs to page >= 1 and a page size
// within [1,100], defaulting to 10.
func clampPage(page, pageSize *int) {
	if *page <= 0 {
		*page = 1
	}
	if *pageSize <= 0 || *pageSize > 100 {
		*pageSize = 10
	}
}
