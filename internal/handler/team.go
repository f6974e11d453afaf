package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fcabl/league-service/internal/service"
	"github.com/fcabl/league-service/pkg/response"
)

type TeamHandler struct {
	svc service.TeamService
}

func NewTeamHandler(svc service.TeamService) *TeamHandler { return &TeamHandler{svc: svc} }

func (h *TeamHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/teams")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		// Use a stable wildcard name (team_id) so nested routes (players, games) can reuse it without Gin conflicts.
		g.GET("/:team_id", h.getByID)
		g.PUT("/:team_id", h.update)
		g.DELETE("/:team_id", h.delete)
		g.GET("/:team_id/stats", h.stats)
		g.GET("/:team_id/detail", h.detail)
	}
	r.GET("/standings", h.standings)
}

type teamRequest struct {
	Name string `json:"name"`
}

func (h *TeamHandler) create(c *gin.Context) {
	var req teamRequest
	if !bindJSON(c, &req) {
		return
	}
	team, err := h.svc.CreateTeam(c.Request.Context(), req.Name)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, team)
}

func (h *TeamHandler) update(c *gin.Context) {
	id, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	var req teamRequest
	if !bindJSON(c, &req) {
		return
	}
	team, err := h.svc.UpdateTeam(c.Request.Context(), id, req.Name)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *TeamHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	if err := h.svc.DeleteTeam(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TeamHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	team, err := h.svc.GetTeam(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *TeamHandler) list(c *gin.Context) {
	teams, err := h.svc.ListTeams(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, teams)
}

func (h *TeamHandler) stats(c *gin.Context) {
	id, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	stats, err := h.svc.GetTeamStats(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, stats)
}

func (h *TeamHandler) detail(c *gin.Context) {
	id, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	detail, err := h.svc.GetTeamDetail(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, detail)
}

func (h *TeamHandler) standings(c *gin.Context) {
	rows, err := h.svc.Standings(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, rows)
}
