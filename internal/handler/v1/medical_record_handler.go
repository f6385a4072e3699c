package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careledger/medrec/internal/domain/medicalrecord"
	"github.com/careledger/medrec/internal/service"
	"github.com/careledger/medrec/pkg/session"
)

type MedicalRecordHandler struct {
	svc      *service.MedicalRecordService
	sessions *session.Minter
}

func NewMedicalRecordHandler(svc *service.MedicalRecordService, sessions *session.Minter) *MedicalRecordHandler {
	return &MedicalRecordHandler{svc: svc, sessions: sessions}
}

type createRecordRequest struct {
	PatientID     int64     `json:"patient_id" binding:"required"`
	Diagnosis     string    `json:"diagnosis" binding:"required"`
	Prescriptions string    `json:"prescriptions"`
	TreatmentDate time.Time `json:"treatment_date" binding:"required"`
	DoctorNotes   string    `json:"doctor_notes"`
}

type updateRecordRequest struct {
	PatientID     *int64     `json:"patient_id"`
	Diagnosis     *string    `json:"diagnosis"`
	Prescriptions *string    `json:"prescriptions"`
	TreatmentDate *time.Time `json:"treatment_date"`
	DoctorNotes   *string    `json:"doctor_notes"`
}

func (h *MedicalRecordHandler) Create(c *gin.Context) {
	var req createRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.svc.CreateRecord(c.Request.Context(), &medicalrecord.CreateRecordCommand{
		PatientID:     req.PatientID,
		Diagnosis:     req.Diagnosis,
		Prescriptions: req.Prescriptions,
		TreatmentDate: req.TreatmentDate,
		DoctorNotes:   req.DoctorNotes,
	}, requestMeta(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	setSessionCookie(c, h.sessions, "medical_record", rec.ID)
	c.JSON(http.StatusOK, rec)
}

func (h *MedicalRecordHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "record_id")
	if !ok {
		return
	}

	rec, err := h.svc.GetRecord(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *MedicalRecordHandler) List(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	q := &medicalrecord.ListRecordsQuery{Page: page, PageSize: pageSize}
	if c.Query("patient_id") != "" {
		patientID, ok := parseQueryInt(c, "patient_id", 0)
		if !ok {
			return
		}
		id64 := int64(patientID)
		q.PatientID = &id64
	}

	records, err := h.svc.ListRecords(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *MedicalRecordHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "record_id")
	if !ok {
		return
	}

	var req updateRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.svc.UpdateRecord(c.Request.Context(), id, &medicalrecord.UpdateRecordCommand{
		PatientID:     req.PatientID,
		Diagnosis:     req.Diagnosis,
		Prescriptions: req.Prescriptions,
		TreatmentDate: req.TreatmentDate,
		DoctorNotes:   req.DoctorNotes,
	}, requestMeta(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *MedicalRecordHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "record_id")
	if !ok {
		return
	}

	if err := h.svc.DeleteRecord(c.Request.Context(), id, requestMeta(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Medical record deleted successfully"})
}
