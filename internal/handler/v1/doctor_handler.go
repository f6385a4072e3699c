package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careledger/medrec/internal/domain/doctor"
	"github.com/careledger/medrec/internal/service"
	"github.com/careledger/medrec/pkg/session"
)

type DoctorHandler struct {
	svc      *service.DoctorService
	sessions *session.Minter
}

func NewDoctorHandler(svc *service.DoctorService, sessions *session.Minter) *DoctorHandler {
	return &DoctorHandler{svc: svc, sessions: sessions}
}

type createDoctorRequest struct {
	FullName           string `json:"full_name" binding:"required"`
	Specialty          string `json:"specialty" binding:"required"`
	YearsOfExperience  int    `json:"years_of_experience" binding:"gte=0"`
	ContactInformation string `json:"contact_information" binding:"required"`
}

type updateDoctorRequest struct {
	FullName           *string `json:"full_name"`
	Specialty          *string `json:"specialty"`
	YearsOfExperience  *int    `json:"years_of_experience"`
	ContactInformation *string `json:"contact_information"`
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req createDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.CreateDoctor(c.Request.Context(), &doctor.CreateDoctorCommand{
		FullName:           req.FullName,
		Specialty:          req.Specialty,
		YearsOfExperience:  req.YearsOfExperience,
		ContactInformation: req.ContactInformation,
	}, requestMeta(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	setSessionCookie(c, h.sessions, "doctor", d.ID)
	c.JSON(http.StatusOK, d)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "doctor_id")
	if !ok {
		return
	}

	d, err := h.svc.GetDoctor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DoctorHandler) List(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	doctors, err := h.svc.ListDoctors(c.Request.Context(), &doctor.ListDoctorsQuery{
		Specialty: c.Query("specialty"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "doctor_id")
	if !ok {
		return
	}

	var req updateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.UpdateDoctor(c.Request.Context(), id, &doctor.UpdateDoctorCommand{
		FullName:           req.FullName,
		Specialty:          req.Specialty,
		YearsOfExperience:  req.YearsOfExperience,
		ContactInformation: req.ContactInformation,
	}, requestMeta(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "doctor_id")
	if !ok {
		return
	}

	if err := h.svc.DeleteDoctor(c.Request.Context(), id, requestMeta(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Doctor deleted successfully"})
}
