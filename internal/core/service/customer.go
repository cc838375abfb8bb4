package service

import (
	"context"

	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/port"
)

type CustomerService struct {
	store port.SnapshotStore
}

func NewCustomerService(store port.SnapshotStore) *CustomerService {
	return &CustomerService{store: store}
}

// ListCustomers returns customer records in insertion order.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Customers, nil
}
