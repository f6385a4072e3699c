package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/careledger/medrec/internal/config"
	"github.com/careledger/medrec/internal/domain"
	"github.com/careledger/medrec/internal/domain/appointment"
	"github.com/careledger/medrec/internal/domain/doctor"
	"github.com/careledger/medrec/internal/domain/medicalrecord"
	"github.com/careledger/medrec/internal/domain/patient"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
		// Needed so a unique-index violation surfaces as
		// gorm.ErrDuplicatedKey instead of a raw pg error.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"clinical", "audit"} // logical namespace
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&patient.Patient{},
		&doctor.Doctor{},
		&appointment.Appointment{},
		&medicalrecord.MedicalRecord{},
		&domain.AuditLog{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// The scheduling invariant: one live appointment per doctor per
		// instant. Soft-deleted rows are excluded so a freed slot can be
		// rebooked.
		{
			name:  "idx_appointments_doctor_slot",
			query: `CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_doctor_slot ON clinical.appointments (doctor_id, date_time) WHERE date_deleted IS NULL`,
		},
		{
			name:  "idx_patients_full_name",
			query: `CREATE INDEX IF NOT EXISTS idx_patients_full_name ON clinical.patients (lower(full_name)) WHERE date_deleted IS NULL`,
		},
		{
			name:  "idx_medical_records_patient",
			query: `CREATE INDEX IF NOT EXISTS idx_medical_records_patient ON clinical.medical_records (patient_id) WHERE date_deleted IS NULL`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
