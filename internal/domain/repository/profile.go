package repository

import (
	"context"

	"github.com/print4me/pipeline/internal/domain/model"
)

// ProfileRepository reads printer and material profiles used for pricing.
type ProfileRepository interface {
	ListActivePrinters(ctx context.Context) ([]model.PrinterProfile, error)
	ListActiveMaterials(ctx context.Context) ([]model.MaterialProfile, error)
	GetPrinter(ctx context.Context, id string) (*model.PrinterProfile, error)
	GetMaterial(ctx context.Context, id string) (*model.MaterialProfile, error)
}
