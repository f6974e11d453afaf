package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/repository"
	"github.com/fcabl/league-service/internal/service"
	"github.com/fcabl/league-service/pkg/response"
)

// pathID parses a uuid path parameter. On failure the response is already written.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.WriteError(c, service.InvalidFields(service.FieldError{Field: name, Message: "must be a valid uuid"}))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body; parse details stay internal.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return false
	}
	return true
}

// pageQuery reads limit/offset; garbage falls back to defaults in the repository.
func pageQuery(c *gin.Context) repository.Page {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return repository.Page{Limit: limit, Offset: offset}
}
