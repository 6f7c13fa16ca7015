package model

// SlicerEstimate holds print effort figures, either from a slicer run or from
// the file-size heuristic.
type SlicerEstimate struct {
	GramsUsed        float64  `json:"grams_used"`
	PrintTimeSeconds int64    `json:"print_time_seconds"`
	Layers           *int     `json:"layers"`
	FilamentLengthMM *float64 `json:"filament_length_mm"`
}

// PricingConstants is the snapshot of rates used to compute a quote. Stored
// with the order so the quote stays immutable when rates change later.
type PricingConstants struct {
	FilamentEURPerKg        float64 `json:"filament_eur_per_kg"`
	FilamentEURPerG         float64 `json:"filament_eur_per_g"`
	EnergyEURPerKWh         float64 `json:"energy_eur_per_kwh"`
	PrinterAvgKW            float64 `json:"printer_avg_kw"`
	MachineEURPerHour       float64 `json:"machine_eur_per_hour"`
	OverheadFixedEUR        float64 `json:"overhead_fixed_eur"`
	RiskMultiplier          float64 `json:"risk_multiplier"`
	ProfitMultiplier        float64 `json:"profit_multiplier"`
	MaterialWasteMultiplier float64 `json:"material_waste_multiplier"`
}

// QuoteBreakdown itemizes one computed quote.
type QuoteBreakdown struct {
	GramsUsed        float64 `json:"grams_used"`
	PrintTimeSeconds int64   `json:"print_time_seconds"`
	PrintTimeHours   float64 `json:"print_time_hours"`
	MaterialCostEUR  float64 `json:"material_cost_eur"`
	MachineCostEUR   float64 `json:"machine_cost_eur"`
	EnergyCostEUR    float64 `json:"energy_cost_eur"`
	OverheadEUR      float64 `json:"overhead_eur"`
	SubtotalEUR      float64 `json:"subtotal_eur"`
	RiskFeeEUR       float64 `json:"risk_fee_eur"`
	ProfitFeeEUR     float64 `json:"profit_fee_eur"`
	TotalEUR         float64 `json:"total_eur"`
	TotalCents       int64   `json:"total_cents"`
	Quantity         int     `json:"quantity"`
	PerUnitTotalEUR  float64 `json:"per_unit_total_eur"`
	GrandTotalEUR    float64 `json:"grand_total_eur"`
	GrandTotalCents  int64   `json:"grand_total_cents"`
}
