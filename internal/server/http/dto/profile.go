package dto

// PrinterProfileResponse describes a printer option shown to customers.
type PrinterProfileResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	MachineEURPerHour float64 `json:"machine_eur_per_hour"`
	BuildVolumeXMM    float64 `json:"build_volume_x_mm"`
	BuildVolumeYMM    float64 `json:"build_volume_y_mm"`
	BuildVolumeZMM    float64 `json:"build_volume_z_mm"`
}

// MaterialProfileResponse describes a filament option shown to customers.
type MaterialProfileResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	Color            string  `json:"color"`
	FilamentEURPerKg float64 `json:"filament_eur_per_kg"`
	NozzleTempC      int     `json:"nozzle_temp_c"`
	BedTempC         int     `json:"bed_temp_c"`
}

// ProfilesResponse bundles both catalogs.
type ProfilesResponse struct {
	Printers  []PrinterProfileResponse  `json:"printers"`
	Materials []MaterialProfileResponse `json:"materials"`
}
