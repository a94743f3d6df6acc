package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/internal/store"
	"github.com/MKhiriev/go-seed-api/models"
)

type itemService struct {
	itemRepository store.ItemRepository

	logger *logger.Logger
}

// NewItemService constructs the pass-through ItemService.
func NewItemService(itemRepository store.ItemRepository, logger *logger.Logger) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		logger:         logger,
	}
}

func (s *itemService) Create(ctx context.Context, item models.Item) (models.Item, error) {
	item.ID = ""

	created, err := s.itemRepository.Create(ctx, item)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemService.Create").Msg("item creation ended with error")
		return models.Item{}, fmt.Errorf("item creation ended with error: %w", err)
	}

	return created, nil
}

func (s *itemService) GetByID(ctx context.Context, id string) (models.Item, error) {
	item, found, err := s.itemRepository.GetByID(ctx, id)
	if err != nil {
		return models.Item{}, fmt.Errorf("error getting item: %w", err)
	}
	if !found {
		return models.Item{}, ErrNotFound
	}

	return item, nil
}

func (s *itemService) GetAll(ctx context.Context) ([]models.Item, error) {
	items, err := s.itemRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}

	return items, nil
}

func (s *itemService) Update(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	updated, found, err := s.itemRepository.Update(ctx, id, patch)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemService.Update").Msg("item update ended with error")
		return models.Item{}, fmt.Errorf("item update ended with error: %w", err)
	}
	if !found {
		return models.Item{}, ErrNotFound
	}

	return updated, nil
}

func (s *itemService) Delete(ctx context.Context, id string) error {
	deleted, err := s.itemRepository.Delete(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemService.Delete").Msg("item deletion ended with error")
		return fmt.Errorf("item deletion ended with error: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	return nil
}
