package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fcabl/league-service/internal/service"
)

// APIV1Prefix is the base path shared by handlers and tests.
const APIV1Prefix = "/api/v1"

// Services is the use-case layer the routes call into. A nil entry is fine as
// long as none of its routes are hit, which keeps health-only tests short.
type Services struct {
	Teams    service.TeamService
	Users    service.UserService
	Players  service.PlayerService
	Games    service.GameService
	Payments service.PaymentService
}

// Register mounts the health checks at the root and under the versioned prefix, then
// every resource group.
func Register(r *gin.Engine, storage Pinger, svc Services) {
	checks := NewHealthHandler(storage)
	r.GET("/live", checks.Liveness)
	r.GET("/ready", checks.Readiness)

	api := r.Group(APIV1Prefix)
	health := api.Group("/health")
	health.GET("/live", checks.Liveness)
	health.GET("/ready", checks.Readiness)

	NewTeamHandler(svc.Teams).Register(api)
	NewUserHandler(svc.Users).Register(api)
	NewPlayerHandler(svc.Players).Register(api)
	NewGameHandler(svc.Games).Register(api)
	NewFeedHandler(svc.Games).Register(api)
	NewPaymentHandler(svc.Payments).Register(api)
}
