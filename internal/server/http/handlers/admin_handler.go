package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/print4me/pipeline/internal/adapter/payments"
	domainErrors "github.com/print4me/pipeline/internal/domain/errors"
	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/domain/repository"
	"github.com/print4me/pipeline/internal/server/http/dto"
	"github.com/print4me/pipeline/internal/usecase"
)

// AdminHandler manages the operator's order pipeline endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// List handles GET /api/admin/orders.
func (h *AdminHandler) List(c *gin.Context) {
	var query dto.AdminOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Kind: "invalid_query"})
		return
	}

	filter := repository.OrderListFilter{
		Query:  query.Query,
		Offset: (query.Page - 1) * query.Limit,
		Limit:  query.Limit,
	}
	if query.Status != "" {
		s := model.OrderStatus(query.Status)
		filter.Status = &s
	}

	orders, total, err := h.facade.AdminOrders(c.Request.Context(), filter)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := dto.AdminOrdersResponse{
		Orders: make([]dto.OrderResponse, 0, len(orders)),
		Total:  total,
		Page:   query.Page,
		Limit:  query.Limit,
	}
	for _, o := range orders {
		response.Orders = append(response.Orders, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/admin/orders/:id.
func (h *AdminHandler) Get(c *gin.Context) {
	orderID := c.Param("id")

	order, events, err := h.facade.AdminOrderWithEvents(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found", Kind: "not_found"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrderWithEvents(*order, events))
}

// Transition handles PATCH /api/admin/orders/:id/status.
func (h *AdminHandler) Transition(c *gin.Context) {
	actorID := CurrentUserID(c)
	orderID := c.Param("id")

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Kind: "invalid_payload"})
		return
	}

	order, _, err := h.facade.TransitionOrder(c.Request.Context(), actorID, orderID, usecase.TransitionInput{
		To:             model.OrderStatus(req.ToStatus),
		Message:        req.Message,
		TrackingNumber: req.TrackingNumber,
		LabelURL:       req.LabelURL,
		FailureReason:  req.FailureReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found", Kind: "not_found"})
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown status", Kind: "invalid_status"})
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "transition is not allowed from the order's current status", Kind: "invalid_transition"})
		case errors.Is(err, domainErrors.ErrMissingFailureReason):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "failure_reason is required for FAILED", Kind: "missing_failure_reason"})
		case errors.Is(err, domainErrors.ErrTransitionConflict):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "order changed concurrently, retry", Kind: "conflict"})
		case errors.Is(err, payments.ErrRefundRejected):
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "payment provider rejected the refund", Kind: "refund_rejected"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}
