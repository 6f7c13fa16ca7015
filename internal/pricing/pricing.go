// Package pricing computes print quotes from slicer estimates: filament,
// machine time and energy costs plus overhead, risk and profit fees.
package pricing

import (
	"math"

	"github.com/print4me/pipeline/internal/domain/model"
)

// DefaultConstants hold the fallback rates when no profile overrides apply.
// Filament baseline: 6 kg / EUR 59 = EUR 9.83/kg.
var DefaultConstants = model.PricingConstants{
	FilamentEURPerKg:        9.83,
	FilamentEURPerG:         0.00983,
	EnergyEURPerKWh:         0.35,
	PrinterAvgKW:            0.12,
	MachineEURPerHour:       4.0,
	OverheadFixedEUR:        1.5,
	RiskMultiplier:          0.1,
	ProfitMultiplier:        0.2,
	MaterialWasteMultiplier: 0.15,
}

// BuildConstants snapshots pricing constants from the given profiles on top of
// the defaults. The snapshot is stored with the order so the quote stays
// immutable when rates change later.
func BuildConstants(material *model.MaterialProfile, printer *model.PrinterProfile) model.PricingConstants {
	constants := DefaultConstants
	if material != nil {
		constants.FilamentEURPerKg = material.FilamentEURPerKg
		constants.MaterialWasteMultiplier = material.WasteMultiplier
	}
	constants.FilamentEURPerG = constants.FilamentEURPerKg / 1000
	if printer != nil {
		constants.PrinterAvgKW = printer.AvgKW
		constants.MachineEURPerHour = printer.MachineEURPerHour
	}
	return constants
}

// ComputeQuote derives a full price breakdown from an estimate:
//
//	material = grams x (1 + waste) x eur_per_g
//	machine  = hours x machine_eur_per_hour
//	energy   = hours x printer_avg_kw x energy_eur_per_kwh
//	subtotal = material + machine + energy + overhead
//	total    = subtotal x (1 + risk + profit)
func ComputeQuote(estimate model.SlicerEstimate, constants model.PricingConstants, quantity int) model.QuoteBreakdown {
	if quantity < 1 {
		quantity = 1
	}

	materialCost := estimate.GramsUsed * (1 + constants.MaterialWasteMultiplier) * constants.FilamentEURPerG
	hours := float64(estimate.PrintTimeSeconds) / 3600
	machineCost := hours * constants.MachineEURPerHour
	energyCost := hours * constants.PrinterAvgKW * constants.EnergyEURPerKWh

	subtotal := materialCost + machineCost + energyCost + constants.OverheadFixedEUR
	riskFee := subtotal * constants.RiskMultiplier
	profitFee := subtotal * constants.ProfitMultiplier

	total := round2(subtotal + riskFee + profitFee)
	totalCents := int64(math.Round(total * 100))

	grandTotal := round2(total * float64(quantity))
	grandTotalCents := int64(math.Round(grandTotal * 100))

	return model.QuoteBreakdown{
		GramsUsed:        estimate.GramsUsed,
		PrintTimeSeconds: estimate.PrintTimeSeconds,
		PrintTimeHours:   round2(hours),
		MaterialCostEUR:  round2(materialCost),
		MachineCostEUR:   round2(machineCost),
		EnergyCostEUR:    round2(energyCost),
		OverheadEUR:      round2(constants.OverheadFixedEUR),
		SubtotalEUR:      round2(subtotal),
		RiskFeeEUR:       round2(riskFee),
		ProfitFeeEUR:     round2(profitFee),
		TotalEUR:         total,
		TotalCents:       totalCents,
		Quantity:         quantity,
		PerUnitTotalEUR:  total,
		GrandTotalEUR:    grandTotal,
		GrandTotalCents:  grandTotalCents,
	}
}

// EstimateFromFileSize produces a conservative estimate when no slicer run is
// available. Heuristic: 1 MB of STL prints roughly 30 g at 20% infill and
// 0.2 mm layers, with a 5 g floor and about 3 minutes per gram.
func EstimateFromFileSize(fileSizeBytes int64, layerHeightMM float64, infillPercent int) model.SlicerEstimate {
	if layerHeightMM <= 0 {
		layerHeightMM = 0.2
	}
	if infillPercent <= 0 {
		infillPercent = 20
	}

	fileSizeMB := float64(fileSizeBytes) / (1024 * 1024)
	infillFactor := float64(infillPercent) / 20
	layerFactor := 0.2 / layerHeightMM

	grams := math.Max(5, fileSizeMB*30*infillFactor)
	seconds := int64(math.Round(grams * 180 * layerFactor))

	return model.SlicerEstimate{
		GramsUsed:        round2(grams),
		PrintTimeSeconds: seconds,
	}
}

func round2(n float64) float64 {
	return math.Round(n*100) / 100
}
