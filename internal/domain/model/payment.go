package model

// PaymentSessionStatus describes checkout session state at the payment provider.
type PaymentSessionStatus string

const (
	PaymentSessionPending PaymentSessionStatus = "pending"
	PaymentSessionPaid    PaymentSessionStatus = "paid"
	PaymentSessionExpired PaymentSessionStatus = "expired"
)

// PaymentSession mirrors the provider's view of one checkout session.
type PaymentSession struct {
	SessionID       string
	Status          PaymentSessionStatus
	PaymentIntentID string
	AmountCents     int64
}
