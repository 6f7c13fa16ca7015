package dto

import (
	"time"

	"github.com/print4me/pipeline/internal/domain/model"
)

// CreateOrderRequest describes a new print job submission.
type CreateOrderRequest struct {
	PrinterProfileID  *string                `json:"printer_profile_id"`
	MaterialProfileID *string                `json:"material_profile_id"`
	LayerHeightMM     float64                `json:"layer_height_mm" binding:"omitempty,gt=0,lte=1"`
	InfillPercent     int                    `json:"infill_percent" binding:"omitempty,gte=0,lte=100"`
	Supports          bool                   `json:"supports"`
	Quantity          int                    `json:"quantity" binding:"omitempty,gte=1,lte=100"`
	Notes             *string                `json:"notes"`
	STLFilename       *string                `json:"stl_filename"`
	STLFileSizeBytes  *int64                 `json:"stl_file_size_bytes" binding:"omitempty,gte=0"`
	CheckoutSessionID *string                `json:"checkout_session_id"`
	ShippingAddress   *model.ShippingAddress `json:"shipping_address"`
}

// OrderResponse is the external representation of an order.
type OrderResponse struct {
	ID                string                 `json:"id"`
	Status            string                 `json:"status"`
	StatusLabel       string                 `json:"status_label"`
	StatusColor       string                 `json:"status_color"`
	AllowedNext       []string               `json:"allowed_next_statuses"`
	PrinterProfileID  *string                `json:"printer_profile_id,omitempty"`
	MaterialProfileID *string                `json:"material_profile_id,omitempty"`
	LayerHeightMM     float64                `json:"layer_height_mm"`
	InfillPercent     int                    `json:"infill_percent"`
	Supports          bool                   `json:"supports"`
	Quantity          int                    `json:"quantity"`
	Notes             *string                `json:"notes,omitempty"`
	STLFilename       *string                `json:"stl_filename,omitempty"`
	STLFileSizeBytes  *int64                 `json:"stl_file_size_bytes,omitempty"`
	QuoteCurrency     string                 `json:"quote_currency"`
	QuoteTotalCents   *int64                 `json:"quote_total_cents,omitempty"`
	QuoteBreakdown    *model.QuoteBreakdown  `json:"quote_breakdown,omitempty"`
	PaidAt            *time.Time             `json:"paid_at,omitempty"`
	ShippingAddress   *model.ShippingAddress `json:"shipping_address,omitempty"`
	TrackingNumber    *string                `json:"tracking_number,omitempty"`
	LabelURL          *string                `json:"label_url,omitempty"`
	FailureReason     *string                `json:"failure_reason,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// EventResponse describes one entry of an order's audit timeline.
type EventResponse struct {
	FromStatus  *string   `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	Message     *string   `json:"message,omitempty"`
	ActorUserID *int64    `json:"actor_user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderWithEventsResponse bundles an order with its timeline.
type OrderWithEventsResponse struct {
	Order  OrderResponse   `json:"order"`
	Events []EventResponse `json:"events"`
}

// AdminOrdersQuery captures list filters for the operator view.
type AdminOrdersQuery struct {
	Status string `form:"status" binding:"omitempty,orderstatus"`
	Query  string `form:"q"`
	Page   int    `form:"page,default=1" binding:"gte=1"`
	Limit  int    `form:"limit,default=20" binding:"gte=1,lte=100"`
}

// AdminOrdersResponse is a paginated operator listing.
type AdminOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}
