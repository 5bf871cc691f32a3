package docstore

import (
	"context"

	"hive/internal/domain/entity"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/errors"
)

type customerRepository struct {
	store service.DocumentStore
}

// NewCustomerRepository creates a customer repository over the document store.
func NewCustomerRepository(store service.DocumentStore) repository.CustomerRepository {
	return &customerRepository{store: store}
}

func (r *customerRepository) SaveCustomer(ctx context.Context, customer *entity.Customer) error {
	return errors.Wrap(r.store.Put(ctx, service.CollectionCustomers, customer.ID, customer), "save customer")
}

func (r *customerRepository) FindCustomerByID(ctx context.Context, id string) (*entity.Customer, error) {
	var customer entity.Customer
	if err := r.store.Get(ctx, service.CollectionCustomers, id, &customer); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "find customer")
	}

	return &customer, nil
}

func (r *customerRepository) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	var customers []*entity.Customer
	if err := r.store.Query(ctx, service.CollectionCustomers, nil, &customers); err != nil {
		return nil, errors.Wrap(err, "list customers")
	}

	return customers, nil
}
