package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/repository"
	"github.com/fcabl/league-service/internal/service"
	"github.com/fcabl/league-service/pkg/response"
)

// fakeInvalid mimics service aggregated validation error to test mapping without reaching into internals.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

func TestMapError(t *testing.T) {
	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
	}{
		{"invalid_input", &fakeInvalid{fe: []service.FieldError{{Field: "name", Message: "bad"}}}, http.StatusBadRequest, "invalid_input"},
		{"not_found", repository.ErrNotFound, http.StatusNotFound, "not_found"},
		{"wrapped not_found", fmt.Errorf("get team: %w", repository.ErrNotFound), http.StatusNotFound, "not_found"},
		{"already_exists", repository.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"conflict", repository.ErrConflict, http.StatusConflict, "conflict"},
		{"result recorded", service.ErrResultRecorded, http.StatusConflict, "conflict"},
		{"empty roster", league.ErrEmptyRoster, http.StatusUnprocessableEntity, "unprocessable"},
		{"negative score", league.ErrNegativeScore, http.StatusUnprocessableEntity, "unprocessable"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, payload.Error)
			if tc.wantErr == "invalid_input" {
				assert.NotEmpty(t, payload.FieldErrors)
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	code, payload := response.MapError(nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", payload.Error)
}

func TestMapError_MessageOnlyForSafeErrors(t *testing.T) {
	_, p := response.MapError(fmt.Errorf("load: %w", league.ErrEmptyRoster))
	assert.Contains(t, p.Message, "empty roster")

	_, p = response.MapError(fmt.Errorf("pg: %w", repository.ErrConflict))
	assert.Empty(t, p.Message)

	_, p = response.MapError(errors.New("dial tcp 10.0.0.3:5432: refused"))
	assert.Empty(t, p.Message)
}

func TestWriteError_RecordsServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.WriteError(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, c.IsAborted())
	require.Len(t, c.Errors, 1)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	response.WriteError(c, repository.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, c.Errors)
}
