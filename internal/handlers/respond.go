package handlers

import (
	"errors"
	"net/http"
	"strings"

	"Dayflow/internal/dto"
	"Dayflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func writeError(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.ErrorResponse{Message: message, Data: data})
}

// bindError turns a ShouldBindJSON failure into the envelope: binding-tag
// violations become a 422 with a field→reason map, anything else (broken
// JSON, wrong types) a plain 400.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
		writeError(c, http.StatusUnprocessableEntity, "Unprocessable Content", fields)
		return
	}
	writeError(c, http.StatusBadRequest, "Invalid request body", nil)
}

// serviceError maps the service error taxonomy onto HTTP statuses.
func serviceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(c, http.StatusUnprocessableEntity, "Unprocessable Content",
			map[string]string{verr.Field: verr.Reason})
	case errors.Is(err, service.ErrTasklistNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrStepNotFound):
		writeError(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(c, http.StatusBadRequest, "Incorrect email or password", nil)
	case errors.Is(err, service.ErrEmailTaken):
		writeError(c, http.StatusBadRequest, "Email has already registered", nil)
	default:
		writeError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
