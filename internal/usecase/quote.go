package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/print4me/pipeline/internal/domain/errors"
	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/domain/repository"
	"github.com/print4me/pipeline/internal/pricing"
)

// defaultSTLSizeBytes stands in when the customer never reported a file size.
const defaultSTLSizeBytes = 1024 * 1024

// QuoteUseCase computes a quote for a NEW order and advances it to QUOTED
// through the workflow engine.
type QuoteUseCase struct {
	orders   repository.OrderRepository
	profiles repository.ProfileRepository
	workflow *WorkflowUseCase
}

// NewQuoteUseCase constructs QuoteUseCase.
func NewQuoteUseCase(orders repository.OrderRepository, profiles repository.ProfileRepository, workflow *WorkflowUseCase) *QuoteUseCase {
	return &QuoteUseCase{orders: orders, profiles: profiles, workflow: workflow}
}

// Quote estimates print effort from the STL file size, snapshots pricing
// constants from the order's profiles and stores the breakdown together with
// the NEW -> QUOTED transition.
func (u *QuoteUseCase) Quote(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	order, err := u.orders.GetByUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.StatusNew {
		return nil, domainErrors.ErrOrderNotQuotable
	}

	fileSize := int64(defaultSTLSizeBytes)
	if order.STLFileSizeBytes != nil && *order.STLFileSizeBytes > 0 {
		fileSize = *order.STLFileSizeBytes
	}
	estimate := pricing.EstimateFromFileSize(fileSize, order.LayerHeightMM, order.InfillPercent)

	material, err := u.materialFor(ctx, order)
	if err != nil {
		return nil, err
	}
	printer, err := u.printerFor(ctx, order)
	if err != nil {
		return nil, err
	}

	constants := pricing.BuildConstants(material, printer)
	breakdown := pricing.ComputeQuote(estimate, constants, order.Quantity)

	message := "Quote computed"
	updated, _, err := u.workflow.Transition(ctx, model.TransitionRequest{
		OrderID:     orderID,
		To:          model.StatusQuoted,
		Message:     &message,
		ActorUserID: &userID,
		Quote: &model.QuoteData{
			Estimate:   estimate,
			Constants:  constants,
			Breakdown:  breakdown,
			TotalCents: breakdown.GrandTotalCents,
			Currency:   order.QuoteCurrency,
		},
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// A missing profile falls back to default constants rather than failing the
// quote, matching how absent profiles are priced elsewhere in the system.
func (u *QuoteUseCase) materialFor(ctx context.Context, order *model.Order) (*model.MaterialProfile, error) {
	if order.MaterialProfileID == nil {
		return nil, nil
	}
	material, err := u.profiles.GetMaterial(ctx, *order.MaterialProfileID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return material, nil
}

func (u *QuoteUseCase) printerFor(ctx context.Context, order *model.Order) (*model.PrinterProfile, error) {
	if order.PrinterProfileID == nil {
		return nil, nil
	}
	printer, err := u.profiles.GetPrinter(ctx, *order.PrinterProfileID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return printer, nil
}
