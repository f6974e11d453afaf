// Package response owns the JSON envelopes the API writes and the mapping
// from domain errors to HTTP statuses.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/repository"
	"github.com/fcabl/league-service/internal/service"
)

// ErrorPayload is the body of every non-2xx response.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// rule maps one sentinel to a status. Order matters: the first match wins, so
// narrower sentinels that wrap broader ones come first.
type rule struct {
	target      error
	status      int
	code        string
	showMessage bool
}

var rules = []rule{
	{service.ErrResultRecorded, http.StatusConflict, "conflict", true},
	{repository.ErrNotFound, http.StatusNotFound, "not_found", false},
	{repository.ErrAlreadyExists, http.StatusConflict, "already_exists", false},
	{repository.ErrConflict, http.StatusConflict, "conflict", false},
	// synthesis inputs the services could not guard against up front
	{league.ErrEmptyRoster, http.StatusUnprocessableEntity, "unprocessable", true},
	{league.ErrNegativeScore, http.StatusUnprocessableEntity, "unprocessable", true},
}

// MapError picks the status and envelope for err. Unknown errors become a
// bare 500 so internals never leak to clients.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}
	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}
	for _, r := range rules {
		if !errors.Is(err, r.target) {
			continue
		}
		p := ErrorPayload{Error: r.code}
		if r.showMessage {
			p.Message = err.Error()
		}
		return r.status, p
	}
	return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
}

// WriteError writes the mapped envelope and aborts the remaining handlers.
// 5xx causes are attached to the gin context so the request logger sees them.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
