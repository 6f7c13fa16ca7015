package dto

// TransitionRequest describes an operator's status change payload. The order's
// current status is deliberately absent: the server resolves it from storage.
type TransitionRequest struct {
	ToStatus       string  `json:"to_status" binding:"required"`
	Message        *string `json:"message"`
	TrackingNumber *string `json:"tracking_number"`
	LabelURL       *string `json:"label_url"`
	FailureReason  *string `json:"failure_reason"`
}

// ErrorResponse carries a machine-readable rejection.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
