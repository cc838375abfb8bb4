package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/port/mock"
	"go.uber.org/mock/gomock"
)

func TestCustomerService_ListCustomers(t *testing.T) {
	t.Run("returns stored customers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock.NewMockSnapshotStore(ctrl)
		svc := NewCustomerService(store)

		store.EXPECT().Load(gomock.Any()).Return(&domain.Snapshot{
			Customers: []domain.Customer{
				{ID: "c1", Name: "John Doe", Email: "john@example.com", TotalOrders: 2},
				{ID: "c2", Name: "Jane Doe", Email: "jane@example.com", TotalOrders: 1},
			},
		}, nil)

		customers, err := svc.ListCustomers(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(customers) != 2 || customers[0].ID != "c1" {
			t.Fatal("unexpected customers")
		}
	})

	t.Run("store error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock.NewMockSnapshotStore(ctrl)
		svc := NewCustomerService(store)

		store.EXPECT().Load(gomock.Any()).Return(nil, errors.New("disk gone"))

		if _, err := svc.ListCustomers(context.Background()); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
