package docstore

import (
	"context"

	"hive/internal/domain/entity"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/errors"
)

type catalogRepository struct {
	store service.DocumentStore
}

// NewCatalogRepository creates a menu-item repository over the document store.
func NewCatalogRepository(store service.DocumentStore) repository.CatalogRepository {
	return &catalogRepository{store: store}
}

func (r *catalogRepository) SaveMenuItem(ctx context.Context, item *entity.MenuItem) error {
	return errors.Wrap(r.store.Put(ctx, service.CollectionMenuItems, item.ID, item), "save menu item")
}

func (r *catalogRepository) FindMenuItemByID(ctx context.Context, id string) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.store.Get(ctx, service.CollectionMenuItems, id, &item); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return nil, repository.ErrMenuItemNotFound
		}

		return nil, errors.Wrap(err, "find menu item")
	}

	return &item, nil
}

func (r *catalogRepository) ListMenuItems(ctx context.Context) ([]*entity.MenuItem, error) {
	var items []*entity.MenuItem
	if err := r.store.Query(ctx, service.CollectionMenuItems, nil, &items); err != nil {
		return nil, errors.Wrap(err, "list menu items")
	}

	return items, nil
}
