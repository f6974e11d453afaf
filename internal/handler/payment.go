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

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler { return &PaymentHandler{svc: svc} }

func (h *PaymentHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/payments")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/with-players", h.listWithPlayers)
		g.GET("/:id", h.getByID)
		g.GET("/:id/with-player", h.getWithPlayer)
		g.PATCH("/:id/status", h.updateStatus)
		g.DELETE("/:id", h.delete)
	}
	r.GET("/players/:id/payments", h.byPlayer)
	r.GET("/players/:id/payment-summary", h.summary)
}

// Amount is a pointer so a missing amount is reported rather than read as zero.
type createPaymentRequest struct {
	PlayerID    uuid.UUID           `json:"playerId"`
	StripeID    string              `json:"stripeId"`
	Amount      *float64            `json:"amount"`
	Status      model.PaymentStatus `json:"status"`
	PaymentDate *time.Time          `json:"paymentDate"`
}

type paymentStatusRequest struct {
	Status model.PaymentStatus `json:"status"`
}

func (h *PaymentHandler) create(c *gin.Context) {
	var req createPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Amount == nil {
		response.WriteError(c, service.InvalidFields(service.FieldError{Field: "amount", Message: "is required"}))
		return
	}
	in := service.NewPayment{PlayerID: req.PlayerID, StripeID: req.StripeID, Amount: *req.Amount, Status: req.Status}
	if req.PaymentDate != nil {
		in.PaymentDate = *req.PaymentDate
	}
	p, err := h.svc.CreatePayment(c.Request.Context(), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, p)
}

// list takes an optional ?status= filter.
func (h *PaymentHandler) list(c *gin.Context) {
	var (
		payments []model.Payment
		err      error
	)
	if status, ok := c.GetQuery("status"); ok {
		payments, err = h.svc.ListPaymentsByStatus(c.Request.Context(), model.PaymentStatus(status))
	} else {
		payments, err = h.svc.ListPayments(c.Request.Context())
	}
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, payments)
}

func (h *PaymentHandler) listWithPlayers(c *gin.Context) {
	payments, err := h.svc.ListPaymentsWithPlayers(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, payments)
}

func (h *PaymentHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}

func (h *PaymentHandler) getWithPlayer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetPaymentWithPlayer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}

func (h *PaymentHandler) updateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req paymentStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.UpdatePaymentStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, p)
}

func (h *PaymentHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePayment(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PaymentHandler) byPlayer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	payments, err := h.svc.ListPaymentsByPlayer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, payments)
}

func (h *PaymentHandler) summary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s, err := h.svc.PlayerPaymentSummary(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, s)
}
