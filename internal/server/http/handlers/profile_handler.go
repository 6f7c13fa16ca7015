package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/server/http/dto"
)

// ProfileHandler serves the printer and material catalogs.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// List handles GET /api/profiles.
func (h *ProfileHandler) List(c *gin.Context) {
	printers, materials, err := h.facade.Profiles(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := dto.ProfilesResponse{
		Printers:  make([]dto.PrinterProfileResponse, 0, len(printers)),
		Materials: make([]dto.MaterialProfileResponse, 0, len(materials)),
	}
	for _, p := range printers {
		response.Printers = append(response.Printers, toPrinterResponse(p))
	}
	for _, m := range materials {
		response.Materials = append(response.Materials, toMaterialResponse(m))
	}

	c.JSON(http.StatusOK, response)
}

func toPrinterResponse(p model.PrinterProfile) dto.PrinterProfileResponse {
	return dto.PrinterProfileResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		MachineEURPerHour: p.MachineEURPerHour,
		BuildVolumeXMM:    p.BuildVolumeXMM,
		BuildVolumeYMM:    p.BuildVolumeYMM,
		BuildVolumeZMM:    p.BuildVolumeZMM,
	}
}

func toMaterialResponse(m model.MaterialProfile) dto.MaterialProfileResponse {
	return dto.MaterialProfileResponse{
		ID:               m.ID,
		Name:             m.Name,
		Description:      m.Description,
		Color:            m.Color,
		FilamentEURPerKg: m.FilamentEURPerKg,
		NozzleTempC:      m.NozzleTempC,
		BedTempC:         m.BedTempC,
	}
}
