package usecase

import (
	"context"

	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/domain/repository"
)

// ProfileUseCase lists the printer and material options offered to customers.
type ProfileUseCase struct {
	profiles repository.ProfileRepository
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(profiles repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profiles: profiles}
}

// List returns active printer and material profiles.
func (u *ProfileUseCase) List(ctx context.Context) ([]model.PrinterProfile, []model.MaterialProfile, error) {
	printers, err := u.profiles.ListActivePrinters(ctx)
	if err != nil {
		return nil, nil, err
	}
	materials, err := u.profiles.ListActiveMaterials(ctx)
	if err != nil {
		return nil, nil, err
	}
	return printers, materials, nil
}
