package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-seed-api/internal/validators"
	"github.com/MKhiriev/go-seed-api/models"
)

// ItemValidationService checks item payloads before handing them to the
// wrapped ItemService.
type ItemValidationService struct {
	inner     ItemService
	validator validators.Validator
}

func NewItemValidationService() ItemServiceWrapper {
	return &ItemValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *ItemValidationService) Create(ctx context.Context, item models.Item) (models.Item, error) {
	if err := v.validator.Validate(ctx, item); err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Create(ctx, item)
}

func (v *ItemValidationService) GetByID(ctx context.Context, id string) (models.Item, error) {
	return v.inner.GetByID(ctx, id)
}

func (v *ItemValidationService) GetAll(ctx context.Context) ([]models.Item, error) {
	return v.inner.GetAll(ctx)
}

func (v *ItemValidationService) Update(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	if err := v.validator.Validate(ctx, patch); err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Update(ctx, id, patch)
}

func (v *ItemValidationService) Delete(ctx context.Context, id string) error {
	return v.inner.Delete(ctx, id)
}

func (v *ItemValidationService) Wrap(wrapped ItemService) ItemService {
	v.inner = wrapped
	return v
}
