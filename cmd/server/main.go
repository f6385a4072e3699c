package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/config"
	"github.com/careledger/medrec/internal/domain/appointment"
	"github.com/careledger/medrec/internal/domain/doctor"
	"github.com/careledger/medrec/internal/domain/medicalrecord"
	"github.com/careledger/medrec/internal/domain/patient"
	v1 "github.com/careledger/medrec/internal/handler/v1"
	"github.com/careledger/medrec/internal/middleware"
	"github.com/careledger/medrec/internal/service"
	"github.com/careledger/medrec/internal/storage/filestore"
	"github.com/careledger/medrec/internal/storage/gormstore"
	"github.com/careledger/medrec/pkg/database"
	"github.com/careledger/medrec/pkg/logger"
	"github.com/careledger/medrec/pkg/metrics"
	"github.com/careledger/medrec/pkg/session"
	"github.com/careledger/medrec/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Error("loading configuration", zap.Error(err))
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		zap.NewExample().Error("initializing logger", zap.Error(err))
		return err
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		log.Error("initializing tracer", zap.Error(err))
		return err
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("shutting down tracer", zap.Error(err))
		}
	}()

	collector := metrics.NewCollector(cfg.App.Name, prometheus.DefaultRegisterer)

	repos, err := buildRepositories(cfg, log)
	if err != nil {
		log.Error("initializing storage", zap.Error(err))
		return err
	}

	auditSvc := service.NewAuditService(repos.audit, collector, log)
	defer auditSvc.Shutdown()

	patientSvc := service.NewPatientService(repos.patients, auditSvc, collector, log)
	doctorSvc := service.NewDoctorService(repos.doctors, auditSvc, collector, log)
	appointmentSvc := service.NewAppointmentService(repos.appointments, repos.patients, repos.doctors, auditSvc, collector, log)
	recordSvc := service.NewMedicalRecordService(repos.records, repos.patients, auditSvc, collector, log)

	sessions := session.NewMinter(cfg.Session)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.Metrics(collector),
		middleware.CORS(cfg.CORS),
	)

	v1.RegisterRoutes(router, v1.RouterDeps{
		Patients:       v1.NewPatientHandler(patientSvc, sessions),
		Doctors:        v1.NewDoctorHandler(doctorSvc, sessions),
		Appointments:   v1.NewAppointmentHandler(appointmentSvc, sessions),
		MedicalRecords: v1.NewMedicalRecordHandler(recordSvc, sessions),
		ServiceName:    cfg.App.Name,
		Version:        cfg.App.Version,
		StorageBackend: cfg.Storage.Backend,
	})
	router.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
		return err
	case sig := <-quit:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}

// repositories holds the backend-agnostic repository set the services
// are built on. Both backends satisfy the same interfaces, so the
// choice is invisible past this point.
type repositories struct {
	patients     patient.Repository
	doctors      doctor.Repository
	appointments appointment.Repository
	records      medicalrecord.Repository
	audit        service.AuditRepository
}

func buildRepositories(cfg *config.Config, log *zap.Logger) (*repositories, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, log); err != nil {
			return nil, err
		}
		return &repositories{
			patients:     gormstore.NewPatientRepository(db),
			doctors:      gormstore.NewDoctorRepository(db),
			appointments: gormstore.NewAppointmentRepository(db),
			records:      gormstore.NewMedicalRecordRepository(db),
			audit:        gormstore.NewAuditRepository(db),
		}, nil

	default:
		patients, err := filestore.NewPatientRepository(cfg.Storage.DataDir, log)
		if err != nil {
			return nil, err
		}
		doctors, err := filestore.NewDoctorRepository(cfg.Storage.DataDir, log)
		if err != nil {
			return nil, err
		}
		appointments, err := filestore.NewAppointmentRepository(cfg.Storage.DataDir, log)
		if err != nil {
			return nil, err
		}
		records, err := filestore.NewMedicalRecordRepository(cfg.Storage.DataDir, log)
		if err != nil {
			return nil, err
		}
		audit, err := filestore.NewAuditRepository(cfg.Storage.DataDir, log)
		if err != nil {
			return nil, err
		}
		return &repositories{
			patients:     patients,
			doctors:      doctors,
			appointments: appointments,
			records:      records,
			audit:        audit,
		}, nil
	}
}
