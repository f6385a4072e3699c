package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouterDeps bundles the handlers the route table needs so main only
// wires things once.
type RouterDeps struct {
	Patients       *PatientHandler
	Doctors        *DoctorHandler
	Appointments   *AppointmentHandler
	MedicalRecords *MedicalRecordHandler

	ServiceName    string
	Version        string
	StorageBackend string
}

func RegisterRoutes(r *gin.Engine, deps RouterDeps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, MessageResponse{
			Message: "Welcome to the Patient Medical Record Management System",
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.ServiceName,
			"version": deps.Version,
			"storage": deps.StorageBackend,
		})
	})

	patients := r.Group("/patients")
	{
		patients.POST("", deps.Patients.Create)
		patients.GET("/:patient_id", deps.Patients.Get)
		patients.GET("", deps.Patients.List)
		patients.PUT("/:patient_id", deps.Patients.Update)
		patients.DELETE("/:patient_id", deps.Patients.Delete)
	}

	doctors := r.Group("/doctors")
	{
		doctors.POST("", deps.Doctors.Create)
		doctors.GET("/:doctor_id", deps.Doctors.Get)
		doctors.GET("", deps.Doctors.List)
		doctors.PUT("/:doctor_id", deps.Doctors.Update)
		doctors.DELETE("/:doctor_id", deps.Doctors.Delete)
	}

	appointments := r.Group("/appointments")
	{
		appointments.POST("", deps.Appointments.Create)
		appointments.GET("/:appointment_id", deps.Appointments.Get)
		appointments.GET("", deps.Appointments.List)
		appointments.PUT("/:appointment_id", deps.Appointments.Update)
		appointments.DELETE("/:appointment_id", deps.Appointments.Delete)
	}

	records := r.Group("/medical-records")
	{
		records.POST("", deps.MedicalRecords.Create)
		records.GET("/:record_id", deps.MedicalRecords.Get)
		records.GET("", deps.MedicalRecords.List)
		records.PUT("/:record_id", deps.MedicalRecords.Update)
		records.DELETE("/:record_id", deps.MedicalRecords.Delete)
	}
}
