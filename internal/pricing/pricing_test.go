package pricing

import (
	"math"
	"testing"

	"github.com/print4me/pipeline/internal/domain/model"
)

func TestComputeQuoteWithDefaults(t *testing.T) {
	estimate := model.SlicerEstimate{GramsUsed: 30, PrintTimeSeconds: 5400}

	breakdown := ComputeQuote(estimate, DefaultConstants, 1)

	if breakdown.MaterialCostEUR != 0.34 {
		t.Errorf("material cost = %v, want 0.34", breakdown.MaterialCostEUR)
	}
	if breakdown.MachineCostEUR != 6.0 {
		t.Errorf("machine cost = %v, want 6.0", breakdown.MachineCostEUR)
	}
	if breakdown.EnergyCostEUR != 0.06 {
		t.Errorf("energy cost = %v, want 0.06", breakdown.EnergyCostEUR)
	}
	if breakdown.SubtotalEUR != 7.9 {
		t.Errorf("subtotal = %v, want 7.9", breakdown.SubtotalEUR)
	}
	if breakdown.TotalEUR != 10.27 {
		t.Errorf("total = %v, want 10.27", breakdown.TotalEUR)
	}
	if breakdown.TotalCents != 1027 {
		t.Errorf("total cents = %d, want 1027", breakdown.TotalCents)
	}
	if breakdown.GrandTotalCents != breakdown.TotalCents {
		t.Errorf("grand total %d should equal per-unit total for quantity 1", breakdown.GrandTotalCents)
	}
}

func TestComputeQuoteMultipliesByQuantity(t *testing.T) {
	estimate := model.SlicerEstimate{GramsUsed: 30, PrintTimeSeconds: 5400}

	breakdown := ComputeQuote(estimate, DefaultConstants, 3)

	if breakdown.Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", breakdown.Quantity)
	}
	if breakdown.PerUnitTotalEUR != breakdown.TotalEUR {
		t.Errorf("per-unit total %v differs from total %v", breakdown.PerUnitTotalEUR, breakdown.TotalEUR)
	}
	want := int64(math.Round(breakdown.TotalEUR * 3 * 100))
	if breakdown.GrandTotalCents != want {
		t.Errorf("grand total cents = %d, want %d", breakdown.GrandTotalCents, want)
	}
}

func TestComputeQuoteQuantityFloor(t *testing.T) {
	estimate := model.SlicerEstimate{GramsUsed: 10, PrintTimeSeconds: 1800}
	breakdown := ComputeQuote(estimate, DefaultConstants, 0)
	if breakdown.Quantity != 1 {
		t.Errorf("quantity = %d, want floor of 1", breakdown.Quantity)
	}
}

func TestEstimateFromFileSizeFloor(t *testing.T) {
	estimate := EstimateFromFileSize(1024, 0.2, 20)
	if estimate.GramsUsed != 5 {
		t.Errorf("grams = %v, want 5 g floor", estimate.GramsUsed)
	}
	if estimate.PrintTimeSeconds != 900 {
		t.Errorf("seconds = %d, want 900", estimate.PrintTimeSeconds)
	}
}

func TestEstimateFromFileSizeScales(t *testing.T) {
	estimate := EstimateFromFileSize(2*1024*1024, 0.2, 20)
	if estimate.GramsUsed != 60 {
		t.Errorf("grams = %v, want 60", estimate.GramsUsed)
	}
	if estimate.PrintTimeSeconds != 10800 {
		t.Errorf("seconds = %d, want 10800", estimate.PrintTimeSeconds)
	}

	finer := EstimateFromFileSize(2*1024*1024, 0.1, 20)
	if finer.PrintTimeSeconds != 21600 {
		t.Errorf("finer layers should double print time, got %d", finer.PrintTimeSeconds)
	}

	denser := EstimateFromFileSize(2*1024*1024, 0.2, 40)
	if denser.GramsUsed != 120 {
		t.Errorf("doubling infill should double grams, got %v", denser.GramsUsed)
	}
}

func TestEstimateFromFileSizeDefaults(t *testing.T) {
	a := EstimateFromFileSize(1024*1024, 0, 0)
	b := EstimateFromFileSize(1024*1024, 0.2, 20)
	if a != b {
		t.Errorf("zero settings should fall back to defaults: %v vs %v", a, b)
	}
}

func TestBuildConstantsOverrides(t *testing.T) {
	material := &model.MaterialProfile{FilamentEURPerKg: 25, WasteMultiplier: 0.1}
	printer := &model.PrinterProfile{AvgKW: 0.3, MachineEURPerHour: 6}

	constants := BuildConstants(material, printer)

	if constants.FilamentEURPerKg != 25 {
		t.Errorf("filament per kg = %v, want 25", constants.FilamentEURPerKg)
	}
	if constants.FilamentEURPerG != 0.025 {
		t.Errorf("filament per g = %v, want 0.025", constants.FilamentEURPerG)
	}
	if constants.MaterialWasteMultiplier != 0.1 {
		t.Errorf("waste = %v, want 0.1", constants.MaterialWasteMultiplier)
	}
	if constants.PrinterAvgKW != 0.3 || constants.MachineEURPerHour != 6 {
		t.Errorf("printer overrides not applied: %+v", constants)
	}
	if constants.EnergyEURPerKWh != DefaultConstants.EnergyEURPerKWh {
		t.Errorf("energy rate should stay at default, got %v", constants.EnergyEURPerKWh)
	}
}

func TestBuildConstantsNilProfiles(t *testing.T) {
	constants := BuildConstants(nil, nil)
	if constants.FilamentEURPerKg != DefaultConstants.FilamentEURPerKg {
		t.Errorf("filament per kg = %v, want default", constants.FilamentEURPerKg)
	}
	if math.Abs(constants.FilamentEURPerG-DefaultConstants.FilamentEURPerG) > 1e-9 {
		t.Errorf("filament per g = %v, want default", constants.FilamentEURPerG)
	}
	if constants.MachineEURPerHour != DefaultConstants.MachineEURPerHour {
		t.Errorf("machine rate = %v, want default", constants.MachineEURPerHour)
	}
	if constants.MaterialWasteMultiplier != DefaultConstants.MaterialWasteMultiplier {
		t.Errorf("waste = %v, want default", constants.MaterialWasteMultiplier)
	}
}
