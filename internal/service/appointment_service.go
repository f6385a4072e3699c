package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/domain/appointment"
	"github.com/careledger/medrec/internal/domain/doctor"
	"github.com/careledger/medrec/internal/domain/patient"
	"github.com/careledger/medrec/pkg/metrics"
)

type AppointmentService struct {
	repo        appointment.Repository
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
	auditSvc    *AuditService
	metrics     *metrics.Collector
	log         *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	patientRepo patient.Repository,
	doctorRepo doctor.Repository,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		auditSvc:    auditSvc,
		metrics:     m,
		log:         log,
	}
}

// ScheduleAppointment validates that the referenced patient and doctor
// are live and the doctor's slot is free, then creates the booking. The
// repository re-checks the slot inside its own critical section, so a
// conflict sneaking in between the pre-check and the insert still fails.
func (s *AppointmentService) ScheduleAppointment(ctx context.Context, cmd *appointment.CreateAppointmentCommand, meta RequestMeta) (*appointment.Appointment, error) {
	if !cmd.Status.IsValid() {
		return nil, appointment.ErrInvalidStatus
	}

	if _, err := s.patientRepo.GetByID(ctx, cmd.PatientID); err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}
	if _, err := s.doctorRepo.GetByID(ctx, cmd.DoctorID); err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}

	if _, err := s.repo.GetByDoctorAndTime(ctx, cmd.DoctorID, cmd.DateTime); err == nil {
		s.metrics.SchedulingConflictsTotal.Inc()
		return nil, appointment.ErrAppointmentConflict
	} else if !errors.Is(err, appointment.ErrAppointmentNotFound) {
		return nil, fmt.Errorf("checking conflicts: %w", err)
	}

	a, err := s.repo.Create(ctx, cmd)
	if errors.Is(err, appointment.ErrAppointmentConflict) {
		s.metrics.SchedulingConflictsTotal.Inc()
		return nil, err
	}
	if err != nil {
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, err
	}

	s.metrics.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "appointment",
		ResourceID:   a.ID,
		RequestID:    meta.RequestID,
		IPAddress:    meta.IP,
	})

	s.log.Info("appointment scheduled",
		zap.Int64("appointment_id", a.ID),
		zap.Int64("doctor_id", a.DoctorID),
		zap.Time("date_time", a.DateTime),
	)
	return a, nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id int64) (*appointment.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) ListAppointments(ctx context.Context, q *appointment.ListAppointmentsQuery) ([]*appointment.Appointment, error) {
	clampPage(&q.Page, &q.PageSize)
	return s.repo.List(ctx, q)
}

// UpdateAppointment re-validates only the fields being changed: a
// supplied patient_id or doctor_id must resolve to a live record, and a
// supplied (doctor_id, date_time) pair must not collide with a different
// live appointment.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id int64, cmd *appointment.UpdateAppointmentCommand, meta RequestMeta) (*appointment.Appointment, error) {
	if cmd.Status != nil && !cmd.Status.IsValid() {
		return nil, appointment.ErrInvalidStatus
	}

	if cmd.PatientID != nil {
		if _, err := s.patientRepo.GetByID(ctx, *cmd.PatientID); err != nil {
			return nil, fmt.Errorf("verifying patient: %w", err)
		}
	}
	if cmd.DoctorID != nil {
		if _, err := s.doctorRepo.GetByID(ctx, *cmd.DoctorID); err != nil {
			return nil, fmt.Errorf("verifying doctor: %w", err)
		}
	}
	if cmd.DoctorID != nil && cmd.DateTime != nil {
		booked, err := s.repo.GetByDoctorAndTime(ctx, *cmd.DoctorID, *cmd.DateTime)
		if err == nil && booked.ID != id {
			s.metrics.SchedulingConflictsTotal.Inc()
			return nil, appointment.ErrAppointmentConflict
		}
		if err != nil && !errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, fmt.Errorf("checking conflicts: %w", err)
		}
	}

	a, err := s.repo.Update(ctx, id, cmd)
	if errors.Is(err, appointment.ErrAppointmentConflict) {
		s.metrics.SchedulingConflictsTotal.Inc()
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   id,
		RequestID:    meta.RequestID,
		IPAddress:    meta.IP,
	})
	return a, nil
}

func (s *AppointmentService) DeleteAppointment(ctx context.Context, id int64, meta RequestMeta) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "appointment",
		ResourceID:   id,
		RequestID:    meta.RequestID,
		IPAddress:    meta.IP,
	})
	return nil
}
