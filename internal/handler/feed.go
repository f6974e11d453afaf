package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fcabl/league-service/internal/service"
	"github.com/fcabl/league-service/pkg/response"
)

// FeedHandler serves the read-only views the frontend renders directly:
// the home page feed and the flat legacy schedule/player lists.
type FeedHandler struct {
	svc service.GameService
}

func NewFeedHandler(svc service.GameService) *FeedHandler { return &FeedHandler{svc: svc} }

func (h *FeedHandler) Register(r *gin.RouterGroup) {
	r.GET("/home", h.home)
	legacy := r.Group("/legacy")
	{
		legacy.GET("/games", h.flatGames)
		legacy.GET("/players", h.flatPlayers)
	}
}

func (h *FeedHandler) home(c *gin.Context) {
	feed, err := h.svc.HomeFeed(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, feed)
}

func (h *FeedHandler) flatGames(c *gin.Context) {
	games, err := h.svc.FlatSchedule(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, games)
}

func (h *FeedHandler) flatPlayers(c *gin.Context) {
	players, err := h.svc.FlatPlayers(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, players)
}
