package docstore

import (
	"context"

	"hive/internal/domain/entity"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/errors"
)

type storeRepository struct {
	store service.DocumentStore
}

// NewStoreRepository creates a branch repository over the document store.
func NewStoreRepository(store service.DocumentStore) repository.StoreRepository {
	return &storeRepository{store: store}
}

func (r *storeRepository) SaveStore(ctx context.Context, branch *entity.Store) error {
	return errors.Wrap(r.store.Put(ctx, service.CollectionStores, branch.ID, branch), "save store")
}

func (r *storeRepository) FindStoreByID(ctx context.Context, id string) (*entity.Store, error) {
	var branch entity.Store
	if err := r.store.Get(ctx, service.CollectionStores, id, &branch); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "find store")
	}

	return &branch, nil
}

func (r *storeRepository) ListStores(ctx context.Context) ([]*entity.Store, error) {
	var stores []*entity.Store
	if err := r.store.Query(ctx, service.CollectionStores, nil, &stores); err != nil {
		return nil, errors.Wrap(err, "list stores")
	}

	return stores, nil
}
