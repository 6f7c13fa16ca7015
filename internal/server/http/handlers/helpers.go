package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/server/http/dto"
	"github.com/print4me/pipeline/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	allowed := order.Status.AllowedNext()
	next := make([]string, 0, len(allowed))
	for _, s := range allowed {
		next = append(next, string(s))
	}

	return dto.OrderResponse{
		ID:                order.ID,
		Status:            string(order.Status),
		StatusLabel:       order.Status.Label(),
		StatusColor:       order.Status.ColorClass(),
		AllowedNext:       next,
		PrinterProfileID:  order.PrinterProfileID,
		MaterialProfileID: order.MaterialProfileID,
		LayerHeightMM:     order.LayerHeightMM,
		InfillPercent:     order.InfillPercent,
		Supports:          order.Supports,
		Quantity:          order.Quantity,
		Notes:             order.Notes,
		STLFilename:       order.STLFilename,
		STLFileSizeBytes:  order.STLFileSizeBytes,
		QuoteCurrency:     order.QuoteCurrency,
		QuoteTotalCents:   order.QuoteTotalCents,
		QuoteBreakdown:    order.QuoteBreakdown,
		PaidAt:            order.PaidAt,
		ShippingAddress:   order.ShippingAddress,
		TrackingNumber:    order.TrackingNumber,
		LabelURL:          order.LabelURL,
		FailureReason:     order.FailureReason,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

func toEventResponse(event model.OrderEvent) dto.EventResponse {
	var from *string
	if event.FromStatus != nil {
		s := string(*event.FromStatus)
		from = &s
	}
	return dto.EventResponse{
		FromStatus:  from,
		ToStatus:    string(event.ToStatus),
		Message:     event.Message,
		ActorUserID: event.ActorUserID,
		CreatedAt:   event.CreatedAt,
	}
}

func toOrderWithEvents(order model.Order, events []model.OrderEvent) dto.OrderWithEventsResponse {
	timeline := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		timeline = append(timeline, toEventResponse(e))
	}
	return dto.OrderWithEventsResponse{
		Order:  toOrderResponse(order),
		Events: timeline,
	}
}
