package model

import "time"

// PrinterProfile describes one printer class used for machine-time pricing
// and build-volume checks.
type PrinterProfile struct {
	ID                string
	Name              string
	Description       *string
	MachineEURPerHour float64
	AvgKW             float64
	BuildVolumeXMM    float64
	BuildVolumeYMM    float64
	BuildVolumeZMM    float64
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MaterialProfile describes a filament option and its pricing inputs.
type MaterialProfile struct {
	ID               string
	Name             string
	Description      *string
	Color            string
	FilamentEURPerKg float64
	WasteMultiplier  float64
	DensityGPerCM3   float64
	NozzleTempC      int
	BedTempC         int
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
