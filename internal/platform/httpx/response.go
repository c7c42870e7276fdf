package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tutorcast/internal/platform/errors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondAppError maps the application's sentinel errors onto HTTP statuses.
func RespondAppError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, apperrors.ErrUnknownSession):
		RespondError(c, http.StatusNotFound, "unknown_session", err)
	case errors.Is(err, apperrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrUnitNotClickable):
		RespondError(c, http.StatusConflict, "unit_not_clickable", err)
	case errors.Is(err, apperrors.ErrNoActiveUnit):
		RespondError(c, http.StatusConflict, "no_active_unit", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
