package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/print4me/pipeline/internal/domain/errors"
	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/server/http/dto"
	"github.com/print4me/pipeline/internal/usecase"
)

// OrderHandler manages customer order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Kind: "invalid_payload"})
		return
	}

	order, _, err := h.facade.CreateOrder(c.Request.Context(), userID, usecase.CreateOrderInput{
		PrinterProfileID:  req.PrinterProfileID,
		MaterialProfileID: req.MaterialProfileID,
		LayerHeightMM:     req.LayerHeightMM,
		InfillPercent:     req.InfillPercent,
		Supports:          req.Supports,
		Quantity:          req.Quantity,
		Notes:             req.Notes,
		STLFilename:       req.STLFilename,
		STLFileSizeBytes:  req.STLFileSizeBytes,
		CheckoutSessionID: req.CheckoutSessionID,
		ShippingAddress:   req.ShippingAddress,
	})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)

	var status *model.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := model.OrderStatus(raw)
		status = &s
	}

	orders, err := h.facade.Orders(c.Request.Context(), userID, status)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown status", Kind: "invalid_status"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID := c.Param("id")

	order, events, err := h.facade.OrderWithEvents(c.Request.Context(), userID, orderID)
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

// Quote handles POST /api/orders/:id/quote.
func (h *OrderHandler) Quote(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID := c.Param("id")

	order, err := h.facade.QuoteOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found", Kind: "not_found"})
		case errors.Is(err, domainErrors.ErrOrderNotQuotable):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "order is not quotable in its current status", Kind: "not_quotable"})
		case errors.Is(err, domainErrors.ErrTransitionConflict):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "order changed concurrently, retry", Kind: "conflict"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}
