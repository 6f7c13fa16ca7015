package model

import "time"

// ShippingAddress is the structured destination stored with an order.
type ShippingAddress struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Order describes a single print job moving through the pipeline.
type Order struct {
	ID                string
	UserID            int64
	Status            OrderStatus
	PrinterProfileID  *string
	MaterialProfileID *string
	LayerHeightMM     float64
	InfillPercent     int
	Supports          bool
	Quantity          int
	Notes             *string
	STLFilename       *string
	STLFileSizeBytes  *int64
	QuoteCurrency     string
	QuoteTotalCents   *int64
	QuoteBreakdown    *QuoteBreakdown
	SlicerEstimate    *SlicerEstimate
	PricingConstants  *PricingConstants
	CheckoutSessionID *string
	PaymentIntentID   *string
	PaidAt            *time.Time
	ShippingAddress   *ShippingAddress
	TrackingNumber    *string
	LabelURL          *string
	FailureReason     *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
