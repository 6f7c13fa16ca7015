package model

import "time"

// QuoteData carries the pricing artifacts persisted together with the
// NEW -> QUOTED transition.
type QuoteData struct {
	Estimate   SlicerEstimate
	Constants  PricingConstants
	Breakdown  QuoteBreakdown
	TotalCents int64
	Currency   string
}

// TransitionRequest describes one requested status change. The current status
// is intentionally absent: the mutator always re-reads it from the datastore
// and never trusts client-echoed state.
type TransitionRequest struct {
	OrderID         string
	To              OrderStatus
	Message         *string
	TrackingNumber  *string
	LabelURL        *string
	FailureReason   *string
	PaymentIntentID *string
	ActorUserID     *int64
	Quote           *QuoteData
}

// TransitionEffects lists the field updates implied by one transition beyond
// the status column itself. Nil fields are left untouched.
type TransitionEffects struct {
	PaidAt          *time.Time
	TrackingNumber  *string
	LabelURL        *string
	FailureReason   *string
	PaymentIntentID *string
}

// ComputeEffects decides the auxiliary field updates for a validated
// transition. paid_at is stamped only on the first entry into PAID; an
// already-set timestamp is never changed. failure_reason is written only when
// entering FAILED.
func ComputeEffects(order *Order, req TransitionRequest, now time.Time) TransitionEffects {
	effects := TransitionEffects{
		TrackingNumber:  req.TrackingNumber,
		LabelURL:        req.LabelURL,
		PaymentIntentID: req.PaymentIntentID,
	}
	if req.To == StatusPaid && order.PaidAt == nil {
		paidAt := now
		effects.PaidAt = &paidAt
	}
	if req.To == StatusFailed {
		effects.FailureReason = req.FailureReason
	}
	return effects
}
