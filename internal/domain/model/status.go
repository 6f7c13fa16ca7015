package model

// OrderStatus describes the print order lifecycle stage.
type OrderStatus string

const (
	StatusNew             OrderStatus = "NEW"
	StatusQuoted          OrderStatus = "QUOTED"
	StatusPaid            OrderStatus = "PAID"
	StatusSlicing         OrderStatus = "SLICING"
	StatusReadyToPrint    OrderStatus = "READY_TO_PRINT"
	StatusPrinting        OrderStatus = "PRINTING"
	StatusPrintDone       OrderStatus = "PRINT_DONE"
	StatusWaitingDelivery OrderStatus = "WAITING_DELIVERY"
	StatusOutForDelivery  OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered       OrderStatus = "DELIVERED"
	StatusFailed          OrderStatus = "FAILED"
	StatusRefunded        OrderStatus = "REFUNDED"
)

// AllStatuses lists every member of the closed status set.
var AllStatuses = []OrderStatus{
	StatusNew,
	StatusQuoted,
	StatusPaid,
	StatusSlicing,
	StatusReadyToPrint,
	StatusPrinting,
	StatusPrintDone,
	StatusWaitingDelivery,
	StatusOutForDelivery,
	StatusDelivered,
	StatusFailed,
	StatusRefunded,
}

// forwardTransitions declares the happy-path edges of the workflow graph.
// FAILED is deliberately absent here: it is reachable from every non-terminal
// status but offered to operators as a separate action with a mandatory reason.
// REFUNDED is reachable only from PAID. Terminal statuses have no edges.
var forwardTransitions = map[OrderStatus][]OrderStatus{
	StatusNew:             {StatusQuoted},
	StatusQuoted:          {StatusPaid},
	StatusPaid:            {StatusSlicing, StatusRefunded},
	StatusSlicing:         {StatusReadyToPrint},
	StatusReadyToPrint:    {StatusPrinting},
	StatusPrinting:        {StatusPrintDone},
	StatusPrintDone:       {StatusWaitingDelivery},
	StatusWaitingDelivery: {StatusOutForDelivery},
	StatusOutForDelivery:  {StatusDelivered},
	StatusDelivered:       {},
	StatusFailed:          {},
	StatusRefunded:        {},
}

var statusLabels = map[OrderStatus]string{
	StatusNew:             "New",
	StatusQuoted:          "Quoted",
	StatusPaid:            "Paid",
	StatusSlicing:         "Slicing",
	StatusReadyToPrint:    "Ready to Print",
	StatusPrinting:        "Printing",
	StatusPrintDone:       "Print Done",
	StatusWaitingDelivery: "Waiting Delivery",
	StatusOutForDelivery:  "Out for Delivery",
	StatusDelivered:       "Delivered",
	StatusFailed:          "Failed",
	StatusRefunded:        "Refunded",
}

var statusColors = map[OrderStatus]string{
	StatusNew:             "bg-gray-500",
	StatusQuoted:          "bg-blue-500",
	StatusPaid:            "bg-indigo-600",
	StatusSlicing:         "bg-yellow-500",
	StatusReadyToPrint:    "bg-orange-500",
	StatusPrinting:        "bg-amber-600",
	StatusPrintDone:       "bg-lime-600",
	StatusWaitingDelivery: "bg-cyan-600",
	StatusOutForDelivery:  "bg-teal-600",
	StatusDelivered:       "bg-green-600",
	StatusFailed:          "bg-red-600",
	StatusRefunded:        "bg-rose-500",
}

// Valid reports whether s belongs to the closed status set.
func (s OrderStatus) Valid() bool {
	_, ok := forwardTransitions[s]
	return ok
}

// Terminal reports whether s has no outgoing transitions.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusRefunded
}

// Label returns the human-readable display name for s.
func (s OrderStatus) Label() string {
	return statusLabels[s]
}

// ColorClass returns the badge color class used by admin UIs.
func (s OrderStatus) ColorClass() string {
	return statusColors[s]
}

// ForwardNext returns the happy-path statuses reachable from s, the list an
// operator is offered as regular next steps.
func (s OrderStatus) ForwardNext() []OrderStatus {
	next := forwardTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// AllowedNext returns every status legally reachable from s, including the
// FAILED catch-all for non-terminal statuses.
func (s OrderStatus) AllowedNext() []OrderStatus {
	if !s.Valid() || s.Terminal() {
		return nil
	}
	out := s.ForwardNext()
	return append(out, StatusFailed)
}

// ValidTransition reports whether the workflow graph contains the edge
// from -> to. Pure lookup, no side effects.
func ValidTransition(from, to OrderStatus) bool {
	for _, s := range from.AllowedNext() {
		if s == to {
			return true
		}
	}
	return false
}
