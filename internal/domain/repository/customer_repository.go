// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"hive/internal/domain/entity"
	"hive/internal/errors"
)

// Domain-specific errors for customer persistence.
var (
	// ErrCustomerNotFound is returned when a customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
)

// CustomerRepository defines the persistence operations for loyalty members.
type CustomerRepository interface {
	// SaveCustomer persists a customer, replacing any previous version.
	SaveCustomer(ctx context.Context, customer *entity.Customer) error

	// FindCustomerByID retrieves a customer by id.
	// Returns ErrCustomerNotFound if the customer does not exist.
	FindCustomerByID(ctx context.Context, id string) (*entity.Customer, error)

	// ListCustomers retrieves every barrier-visible customer.
	ListCustomers(ctx context.Context) ([]*entity.Customer, error)
}
