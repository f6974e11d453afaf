package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/service"
	"github.com/fcabl/league-service/pkg/response"
)

type PlayerHandler struct {
	svc service.PlayerService
}

func NewPlayerHandler(svc service.PlayerService) *PlayerHandler { return &PlayerHandler{svc: svc} }

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/players")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/active", h.active)
		g.GET("/free-agents", h.freeAgents)
		g.GET("/:id", h.getByID)
		g.DELETE("/:id", h.delete)
		g.PATCH("/:id/team", h.assignTeam)
		g.PATCH("/:id/registration", h.updateRegistration)
	}
	r.GET("/teams/:team_id/players", h.roster)
}

type createPlayerRequest struct {
	UserID             uuid.UUID  `json:"userId"`
	TeamID             *uuid.UUID `json:"teamId"`
	JerseyNumber       *int       `json:"jerseyNumber"`
	PointsPerGame      float64    `json:"pointsPerGame"`
	RegistrationFeeDue *float64   `json:"registrationFeeDue"`
}

// A null or missing teamId releases the player.
type assignTeamRequest struct {
	TeamID *uuid.UUID `json:"teamId"`
}

type registrationRequest struct {
	RegistrationFeeDue *float64 `json:"registrationFeeDue"`
	ClearFee           bool     `json:"clearFee"`
	IsFullyRegistered  *bool    `json:"isFullyRegistered"`
	IsActive           *bool    `json:"isActive"`
	JerseyNumber       *int     `json:"jerseyNumber"`
	PointsPerGame      *float64 `json:"pointsPerGame"`
}

func (h *PlayerHandler) create(c *gin.Context) {
	var req createPlayerRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.CreatePlayer(c.Request.Context(), service.NewPlayer{
		UserID:             req.UserID,
		TeamID:             req.TeamID,
		JerseyNumber:       req.JerseyNumber,
		PointsPerGame:      req.PointsPerGame,
		RegistrationFeeDue: req.RegistrationFeeDue,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, p)
}

func (h *PlayerHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetPlayer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}

func (h *PlayerHandler) list(c *gin.Context) {
	players, err := h.svc.ListPlayers(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, players)
}

func (h *PlayerHandler) active(c *gin.Context) {
	players, err := h.svc.ListActivePlayers(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, players)
}

func (h *PlayerHandler) freeAgents(c *gin.Context) {
	players, err := h.svc.ListFreeAgents(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, players)
}

func (h *PlayerHandler) roster(c *gin.Context) {
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	players, err := h.svc.ListRoster(c.Request.Context(), teamID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, players)
}

func (h *PlayerHandler) assignTeam(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req assignTeamRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.AssignTeam(c.Request.Context(), id, req.TeamID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}

func (h *PlayerHandler) updateRegistration(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req registrationRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.UpdateRegistration(c.Request.Context(), id, service.RegistrationUpdate(req))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}

func (h *PlayerHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePlayer(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
