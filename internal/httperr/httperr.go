package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code      string            `json:"error_code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Conflicts any               `json:"conflicts,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Resolve maps a use case error to its HTTP status and body. ok is false for
// errors outside the known taxonomy; those are answered with a 500.
func Resolve(err error) (status int, body HTTPError, ok bool) {
	if ve, is := AsValidation(err); is {
		return http.StatusUnprocessableEntity, HTTPError{
			Code:    "validation_error",
			Message: "Invalid input.",
			Fields:  ve.Fields,
		}, true
	}

	if ce, is := AsConflict(err); is {
		return http.StatusConflict, HTTPError{
			Code:      ce.Error(),
			Message:   "The template overlaps slots already assigned to the doctor.",
			Conflicts: ce.Details,
		}, true
	}

	var nf NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, HTTPError{
			Code:    nf.Error(),
			Message: "Resource not found.",
		}, true
	}

	if IsSlotUnavailable(err) {
		return http.StatusConflict, HTTPError{
			Code:    CodeSlotUnavailable,
			Message: "The requested slot is not available.",
		}, true
	}

	var be BusinessError
	if errors.As(err, &be) {
		return http.StatusBadRequest, HTTPError{
			Code:    be.Code,
			Message: be.Code,
		}, true
	}

	return http.StatusInternalServerError, HTTPError{
		Code:    "internal_error",
		Message: "Unexpected error.",
	}, false
}
