package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careledger/medrec/internal/domain/appointment"
	"github.com/careledger/medrec/internal/service"
	"github.com/careledger/medrec/pkg/session"
)

type AppointmentHandler struct {
	svc      *service.AppointmentService
	sessions *session.Minter
}

func NewAppointmentHandler(svc *service.AppointmentService, sessions *session.Minter) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, sessions: sessions}
}

type createAppointmentRequest struct {
	PatientID int64     `json:"patient_id" binding:"required"`
	DoctorID  int64     `json:"doctor_id" binding:"required"`
	DateTime  time.Time `json:"date_time" binding:"required"`
	Status    string    `json:"status" binding:"required"`
}

type updateAppointmentRequest struct {
	PatientID *int64     `json:"patient_id"`
	DoctorID  *int64     `json:"doctor_id"`
	DateTime  *time.Time `json:"date_time"`
	Status    *string    `json:"status"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.svc.ScheduleAppointment(c.Request.Context(), &appointment.CreateAppointmentCommand{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		DateTime:  req.DateTime,
		Status:    appointment.Status(req.Status),
	}, requestMeta(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	setSessionCookie(c, h.sessions, "appointment", a.ID)
	c.JSON(http.StatusOK, a)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "appointment_id")
	if !ok {
		return
	}

	a, err := h.svc.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	q := &appointment.ListAppointmentsQuery{Page: page, PageSize: pageSize}
	if raw := c.Query("status"); raw != "" {
		status := appointment.Status(raw)
		if !status.IsValid() {
			respondError(c, http.StatusBadRequest, appointment.ErrInvalidStatus.Error())
			return
		}
		q.Status = &status
	}

	appointments, err := h.svc.ListAppointments(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "appointment_id")
	if !ok {
		return
	}

	var req updateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &appointment.UpdateAppointmentCommand{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		DateTime:  req.DateTime,
	}
	if req.Status != nil {
		status := appointment.Status(*req.Status)
		cmd.Status = &status
	}

	a, err := h.svc.UpdateAppointment(c.Request.Context(), id, cmd, requestMeta(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "appointment_id")
	if !ok {
		return
	}

	if err := h.svc.DeleteAppointment(c.Request.Context(), id, requestMeta(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Appointment deleted successfully"})
}
