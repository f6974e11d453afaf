package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/service"
	"github.com/fcabl/league-service/pkg/response"
)

type GameHandler struct {
	svc service.GameService
}

func NewGameHandler(svc service.GameService) *GameHandler { return &GameHandler{svc: svc} }

func (h *GameHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/games")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/recent", h.recent)
		g.GET("/upcoming", h.upcoming)
		g.GET("/:id", h.getByID)
		g.DELETE("/:id", h.delete)
		g.PATCH("/:id/time", h.reschedule)
		g.PUT("/:id/result", h.recordResult)
	}
	r.GET("/teams/:team_id/games", h.teamSchedule)
}

type createGameRequest struct {
	HomeTeamID uuid.UUID `json:"homeTeamId"`
	AwayTeamID uuid.UUID `json:"awayTeamId"`
	GameTime   time.Time `json:"gameTime"` // RFC3339
}

type rescheduleRequest struct {
	GameTime time.Time `json:"gameTime"`
}

type resultRequest struct {
	HomeScore *int               `json:"homeScore"`
	AwayScore *int               `json:"awayScore"`
	Details   *model.GameDetails `json:"details"`
}

func (h *GameHandler) create(c *gin.Context) {
	var req createGameRequest
	if !bindJSON(c, &req) {
		return
	}
	game, err := h.svc.CreateGame(c.Request.Context(), req.HomeTeamID, req.AwayTeamID, req.GameTime)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, game)
}

func (h *GameHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	game, err := h.svc.GetGame(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

func (h *GameHandler) list(c *gin.Context) {
	games, err := h.svc.ListGames(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, games)
}

func (h *GameHandler) recent(c *gin.Context) {
	games, err := h.svc.RecentGames(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, games)
}

func (h *GameHandler) upcoming(c *gin.Context) {
	games, err := h.svc.UpcomingGames(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, games)
}

func (h *GameHandler) teamSchedule(c *gin.Context) {
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	games, err := h.svc.ListTeamSchedule(c.Request.Context(), teamID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, games)
}

func (h *GameHandler) reschedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req rescheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	game, err := h.svc.RescheduleGame(c.Request.Context(), id, req.GameTime)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

func (h *GameHandler) recordResult(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req resultRequest
	if !bindJSON(c, &req) {
		return
	}
	// Scores are pointers so a missing score is told apart from a zero.
	var missing []service.FieldError
	if req.HomeScore == nil {
		missing = append(missing, service.FieldError{Field: "home_score", Message: "is required"})
	}
	if req.AwayScore == nil {
		missing = append(missing, service.FieldError{Field: "away_score", Message: "is required"})
	}
	if len(missing) > 0 {
		response.WriteError(c, service.InvalidFields(missing...))
		return
	}
	game, err := h.svc.RecordResult(c.Request.Context(), id, service.ResultSubmission{
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
		Details:   req.Details,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

func (h *GameHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteGame(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
