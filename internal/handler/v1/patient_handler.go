package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careledger/medrec/internal/domain/patient"
	"github.com/careledger/medrec/internal/service"
	"github.com/careledger/medrec/pkg/session"
)

type PatientHandler struct {
	svc      *service.PatientService
	sessions *session.Minter
}

func NewPatientHandler(svc *service.PatientService, sessions *session.Minter) *PatientHandler {
	return &PatientHandler{svc: svc, sessions: sessions}
}

type createPatientRequest struct {
	FullName           string `json:"full_name" binding:"required"`
	Age                int    `json:"age" binding:"gte=0"`
	Gender             string `json:"gender" binding:"required"`
	ContactInformation string `json:"contact_information" binding:"required"`
	Address            string `json:"address" binding:"required"`
	EmergencyContact   string `json:"emergency_contact" binding:"required"`
}

type updatePatientRequest struct {
	FullName           *string `json:"full_name"`
	Age                *int    `json:"age"`
	Gender             *string `json:"gender"`
	ContactInformation *string `json:"contact_information"`
	Address            *string `json:"address"`
	EmergencyContact   *string `json:"emergency_contact"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.CreatePatient(c.Request.Context(), &patient.CreatePatientCommand{
		FullName:           req.FullName,
		Age:                req.Age,
		Gender:             req.Gender,
		ContactInformation: req.ContactInformation,
		Address:            req.Address,
		EmergencyContact:   req.EmergencyContact,
	}, requestMeta(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	setSessionCookie(c, h.sessions, "patient", p.ID)
	c.JSON(http.StatusOK, p)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "patient_id")
	if !ok {
		return
	}

	p, err := h.svc.GetPatient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PatientHandler) List(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	patients, err := h.svc.ListPatients(c.Request.Context(), &patient.ListPatientsQuery{
		Name:     c.Query("name"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "patient_id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.UpdatePatient(c.Request.Context(), id, &patient.UpdatePatientCommand{
		FullName:           req.FullName,
		Age:                req.Age,
		Gender:             req.Gender,
		ContactInformation: req.ContactInformation,
		Address:            req.Address,
		EmergencyContact:   req.EmergencyContact,
	}, requestMeta(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "patient_id")
	if !ok {
		return
	}

	if err := h.svc.DeletePatient(c.Request.Context(), id, requestMeta(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Patient deleted successfully"})
}
