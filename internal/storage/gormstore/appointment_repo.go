package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/careledger/medrec/internal/domain/appointment"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create relies on the partial unique index over live (doctor_id,
// date_time) rows, so double-booking is rejected by the database even
// under concurrent requests.
func (r *AppointmentRepository) Create(ctx context.Context, cmd *appointment.CreateAppointmentCommand) (*appointment.Appointment, error) {
	a := &appointment.Appointment{
		PatientID: cmd.PatientID,
		DoctorID:  cmd.DoctorID,
		DateTime:  cmd.DateTime,
		Status:    cmd.Status,
	}
	a.DateCreated = time.Now().UTC()

	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, appointment.ErrAppointmentConflict
	}
	if err != nil {
		return nil, fmt.Errorf("creating appointment: %w", err)
	}
	return a, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := live(r.db.WithContext(ctx)).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	return &a, nil
}

func (r *AppointmentRepository) List(ctx context.Context, q *appointment.ListAppointmentsQuery) ([]*appointment.Appointment, error) {
	query := live(r.db.WithContext(ctx).Model(&appointment.Appointment{}))
	if q.Status != nil {
		query = query.Where("status = ?", *q.Status)
	}

	var appointments []*appointment.Appointment
	err := query.Order("id ASC").
		Offset(offset(q.Page, q.PageSize)).
		Limit(q.PageSize).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, id int64, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	var updated *appointment.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a appointment.Appointment
		if err := live(tx).First(&a, id).Error; err != nil {
			return err
		}

		if cmd.PatientID != nil {
			a.PatientID = *cmd.PatientID
		}
		if cmd.DoctorID != nil {
			a.DoctorID = *cmd.DoctorID
		}
		if cmd.DateTime != nil {
			a.DateTime = *cmd.DateTime
		}
		if cmd.Status != nil {
			a.Status = *cmd.Status
		}

		now := time.Now().UTC()
		a.DateUpdated = &now

		if err := tx.Save(&a).Error; err != nil {
			return err
		}
		updated = &a
		return nil
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, appointment.ErrAppointmentNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, appointment.ErrAppointmentConflict
	}
	if err != nil {
		return nil, fmt.Errorf("updating appointment: %w", err)
	}
	return updated, nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ? AND date_deleted IS NULL", id).
		Update("date_deleted", time.Now().UTC())
	if res.Error != nil {
		return fmt.Errorf("deleting appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) GetByDoctorAndTime(ctx context.Context, doctorID int64, at time.Time) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := live(r.db.WithContext(ctx)).
		Where("doctor_id = ? AND date_time = ?", doctorID, at).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching appointment by slot: %w", err)
	}
	return &a, nil
}
