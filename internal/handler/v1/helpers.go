package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careledger/medrec/internal/domain/appointment"
	"github.com/careledger/medrec/internal/domain/doctor"
	"github.com/careledger/medrec/internal/domain/medicalrecord"
	"github.com/careledger/medrec/internal/domain/patient"
	"github.com/careledger/medrec/internal/middleware"
	"github.com/careledger/medrec/internal/service"
	"github.com/careledger/medrec/pkg/session"
)

// ErrorResponse matches the {"detail": ...} body shape every failure
// returns, including the generic 500.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, detail string) {
	c.JSON(status, ErrorResponse{Detail: detail})
}

// respondServiceError maps the error taxonomy onto HTTP statuses:
// missing targets and unresolved references are 404, conflicts and bad
// input are 400, anything unrecognized is a generic 500.
func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		respondError(c, http.StatusBadRequest, validErr.Error())
		return
	}

	for _, sentinel := range []error{
		patient.ErrPatientNotFound,
		doctor.ErrDoctorNotFound,
		appointment.ErrAppointmentNotFound,
		medicalrecord.ErrRecordNotFound,
	} {
		if errors.Is(err, sentinel) {
			respondError(c, http.StatusNotFound, sentinel.Error())
			return
		}
	}

	switch {
	case errors.Is(err, appointment.ErrAppointmentConflict):
		respondError(c, http.StatusBadRequest, appointment.ErrAppointmentConflict.Error())
	case errors.Is(err, appointment.ErrInvalidStatus):
		respondError(c, http.StatusBadRequest, appointment.ErrInvalidStatus.Error())
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid "+param+": must be a positive integer")
		return 0, false
	}
	return id, true
}

// parsePagination reads page (default 1) and page_size (default 10,
// capped at 100) query parameters.
func parsePagination(c *gin.Context) (page, pageSize int, ok bool) {
	page, ok = parseQueryInt(c, "page", 1)
	if !ok {
		return 0, 0, false
	}
	pageSize, ok = parseQueryInt(c, "page_size", 10)
	if !ok {
		return 0, 0, false
	}

	if page < 1 {
		respondError(c, http.StatusBadRequest, "page must be >= 1")
		return 0, 0, false
	}
	if pageSize < 1 || pageSize > 100 {
		respondError(c, http.StatusBadRequest, "page_size must be between 1 and 100")
		return 0, 0, false
	}
	return page, pageSize, true
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return defaultVal, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, key+" must be an integer")
		return 0, false
	}
	return v, true
}

func requestMeta(c *gin.Context) service.RequestMeta {
	return service.RequestMeta{
		RequestID: middleware.GetRequestID(c),
		IP:        c.ClientIP(),
	}
}

const sessionCookieName = "session_id"

// setSessionCookie issues the compatibility cookie after a successful
// create. A minting failure is not worth failing the request over.
func setSessionCookie(c *gin.Context, minter *session.Minter, resourceType string, id int64) {
	token, err := minter.Mint(resourceType, id)
	if err != nil {
		return
	}
	c.SetCookie(sessionCookieName, token, int(minter.TTL().Seconds()), "/", "", false, true)
}
