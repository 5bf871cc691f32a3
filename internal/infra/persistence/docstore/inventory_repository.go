package docstore

import (
	"context"

	"hive/internal/domain/entity"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/errors"
)

type inventoryRepository struct {
	store service.DocumentStore
}

// NewInventoryRepository creates an inventory repository over the document store.
func NewInventoryRepository(store service.DocumentStore) repository.InventoryRepository {
	return &inventoryRepository{store: store}
}

func (r *inventoryRepository) SaveInventoryRecord(ctx context.Context, record *entity.InventoryRecord) error {
	return errors.Wrap(r.store.Put(ctx, service.CollectionInventory, record.Key(), record), "save inventory record")
}

func (r *inventoryRepository) FindInventoryRecord(ctx context.Context, storeID, itemID string) (*entity.InventoryRecord, error) {
	var record entity.InventoryRecord
	key := entity.InventoryKey(storeID, itemID)
	if err := r.store.Get(ctx, service.CollectionInventory, key, &record); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return nil, repository.ErrInventoryNotFound
		}

		return nil, errors.Wrap(err, "find inventory record")
	}

	return &record, nil
}

func (r *inventoryRepository) ListInventoryByStore(ctx context.Context, storeID string) ([]*entity.InventoryRecord, error) {
	var records []*entity.InventoryRecord
	filter := service.Filter{"store_id": storeID}
	if err := r.store.Query(ctx, service.CollectionInventory, filter, &records); err != nil {
		return nil, errors.Wrap(err, "list inventory by store")
	}

	return records, nil
}
