package store

import (
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/models"
)

// NewItemRepository constructs an [ItemRepository] backed by documents.
// Items need nothing beyond the generic gateway.
func NewItemRepository(documents DocumentStore, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return NewGateway[models.Item, models.ItemPatch](documents, ItemCollection)
}
