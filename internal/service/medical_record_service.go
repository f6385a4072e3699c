package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/domain/medicalrecord"
	"github.com/careledger/medrec/internal/domain/patient"
	"github.com/careledger/medrec/pkg/metrics"
)

type MedicalRecordService struct {
	repo        medicalrecord.Repository
	patientRepo patient.Repository
	auditSvc    *AuditService
	metrics     *metrics.Collector
	log         *zap.Logger
}

func NewMedicalRecordService(
	repo medicalrecord.Repository,
	patientRepo patient.Repository,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *MedicalRecordService {
	return &MedicalRecordService{
		repo:        repo,
		patientRepo: patientRepo,
		auditSvc:    auditSvc,
		metrics:     m,
		log:         log,
	}
}

func (s *MedicalRecordService) CreateRecord(ctx context.Context, cmd *medicalrecord.CreateRecordCommand, meta RequestMeta) (*medicalrecord.MedicalRecord, error) {
	if strings.TrimSpace(cmd.Diagnosis) == "" {
		return nil, &ValidationError{Fields: []string{"diagnosis is required"}}
	}

	if _, err := s.patientRepo.GetByID(ctx, cmd.PatientID); err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}

	rec, err := s.repo.Create(ctx, cmd)
	if err != nil {
		s.log.Error("failed to create medical record", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordsCreatedTotal.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "medical_record",
		ResourceID:   rec.ID,
		RequestID:    meta.RequestID,
		IPAddress:    meta.IP,
	})

	s.log.Info("medical record created",
		zap.Int64("record_id", rec.ID),
		zap.Int64("patient_id", rec.PatientID),
	)
	return rec, nil
}

func (s *MedicalRecordService) GetRecord(ctx context.Context, id int64) (*medicalrecord.MedicalRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MedicalRecordService) ListRecords(ctx context.Context, q *medicalrecord.ListRecordsQuery) ([]*medicalrecord.MedicalRecord, error) {
	clampPage(&q.Page, &q.PageSize)
	return s.repo.List(ctx, q)
}

func (s *MedicalRecordService) UpdateRecord(ctx context.Context, id int64, cmd *medicalrecord.UpdateRecordCommand, meta RequestMeta) (*medicalrecord.MedicalRecord, error) {
	if cmd.PatientID != nil {
		if _, err := s.patientRepo.GetByID(ctx, *cmd.PatientID); err != nil {
			return nil, fmt.Errorf("verifying patient: %w", err)
		}
	}

	rec, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "medical_record",
		ResourceID:   id,
		RequestID:    meta.RequestID,
		IPAddress:    meta.IP,
	})
	return rec, nil
}

func (s *MedicalRecordService) DeleteRecord(ctx context.Context, id int64, meta RequestMeta) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "medical_record",
		ResourceID:   id,
		RequestID:    meta.RequestID,
		IPAddress:    meta.IP,
	})
	return nil
}
