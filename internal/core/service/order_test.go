package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/dto"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/port/mock"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/serviceerrors"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/utils"
	"go.uber.org/mock/gomock"
)

func setupOrderService(t *testing.T) (*OrderService, *mock.MockSnapshotStore, *mock.MockCachePort[IdempotencyEntry[domain.Order]]) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockSnapshotStore(ctrl)
	cache := mock.NewMockCachePort[IdempotencyEntry[domain.Order]](ctrl)
	idempotency := NewIdempotencyService[domain.Order](cache, 15*time.Minute, 50*time.Millisecond, 500*time.Millisecond)
	svc := NewOrderService(store, idempotency)
	return svc, store, cache
}

func orderRequestFixture() *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		Items: []dto.OrderItem{
			{Title: "Hookah Set", UnitPrice: 10.00, Currency: "USD", Quantity: 2},
			{Title: "Coals", UnitPrice: 5.00, Quantity: 1},
		},
		Customer: dto.OrderCustomer{Name: "John Doe", Email: "john@example.com"},
	}
}

func TestOrderService_ListOrders(t *testing.T) {
	svc, store, _ := setupOrderService(t)
	store.EXPECT().Load(gomock.Any()).Return(&domain.Snapshot{
		Orders: []domain.Order{{ID: "o2"}, {ID: "o1"}},
	}, nil)

	orders, err := svc.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(orders) != 2 || orders[0].ID != "o2" {
		t.Fatal("expected orders newest first")
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	t.Run("records order, customer and event in one write", func(t *testing.T) {
		svc, store, _ := setupOrderService(t)
		snapshot := &domain.Snapshot{}
		expectUpdate(store, snapshot)

		order, err := svc.PlaceOrder(context.Background(), "", orderRequestFixture())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if int64(order.Total) != 2500 {
			t.Fatalf("expected total 2500 cents, got %d", order.Total)
		}
		if order.Items[1].Currency != "USD" {
			t.Fatalf("expected default currency, got %q", order.Items[1].Currency)
		}

		if len(snapshot.Orders) != 1 {
			t.Fatalf("expected 1 order persisted, got %d", len(snapshot.Orders))
		}
		if len(snapshot.Customers) != 1 || snapshot.Customers[0].TotalOrders != 1 {
			t.Fatal("expected customer upserted with 1 order")
		}
		if len(snapshot.Events) != 1 {
			t.Fatalf("expected 1 event record, got %d", len(snapshot.Events))
		}

		var event domain.OrderCreatedEvent
		if err := json.Unmarshal(snapshot.Events[0].Payload, &event); err != nil {
			t.Fatalf("event payload is not valid JSON: %v", err)
		}
		if event.OrderID != order.ID || event.CustomerEmail != "john@example.com" {
			t.Fatal("unexpected event payload")
		}
		if event.Total != 25.00 {
			t.Fatalf("expected event total 25.00, got %v", event.Total)
		}
	})

	t.Run("returning customer is incremented, not duplicated", func(t *testing.T) {
		svc, store, _ := setupOrderService(t)
		snapshot := &domain.Snapshot{Customers: []domain.Customer{
			{ID: "c1", Name: "John Doe", Email: "john@example.com", TotalOrders: 3},
		}}
		expectUpdate(store, snapshot)

		_, err := svc.PlaceOrder(context.Background(), "", orderRequestFixture())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(snapshot.Customers) != 1 {
			t.Fatalf("expected 1 customer, got %d", len(snapshot.Customers))
		}
		if snapshot.Customers[0].TotalOrders != 4 {
			t.Fatalf("expected 4 orders, got %d", snapshot.Customers[0].TotalOrders)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		svc, _, _ := setupOrderService(t)

		req := &dto.CreateOrderRequest{
			Items:    []dto.OrderItem{{Title: "Coals", UnitPrice: 5, Quantity: 0}},
			Customer: dto.OrderCustomer{Name: " ", Email: ""},
		}

		_, err := svc.PlaceOrder(context.Background(), "", req)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		var svcErr *serviceerrors.ServiceError
		if !errors.As(err, &svcErr) || len(svcErr.Fields) != 3 {
			t.Fatalf("expected 3 field errors, got %v", err)
		}
	})

	t.Run("empty items", func(t *testing.T) {
		svc, _, _ := setupOrderService(t)

		req := &dto.CreateOrderRequest{
			Customer: dto.OrderCustomer{Name: "John Doe", Email: "john@example.com"},
		}

		_, err := svc.PlaceOrder(context.Background(), "", req)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("items limit", func(t *testing.T) {
		svc, _, _ := setupOrderService(t)

		req := orderRequestFixture()
		req.Items = make([]dto.OrderItem, ORDER_MAX_ITEMS+1)
		for i := range req.Items {
			req.Items[i] = dto.OrderItem{Title: "Coals", UnitPrice: 5, Quantity: 1}
		}

		_, err := svc.PlaceOrder(context.Background(), "", req)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindUnprocessableEntity) {
			t.Fatalf("expected unprocessable-entity error, got %v", err)
		}
	})

	t.Run("store error", func(t *testing.T) {
		svc, store, _ := setupOrderService(t)
		store.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("write failed"))

		_, err := svc.PlaceOrder(context.Background(), "", orderRequestFixture())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestOrderService_PlaceOrder_Idempotency(t *testing.T) {
	t.Run("first request claims and completes", func(t *testing.T) {
		svc, store, cache := setupOrderService(t)
		expectUpdate(store, &domain.Snapshot{})

		cache.EXPECT().SetNX(gomock.Any(), "key-1", gomock.Any(), gomock.Any()).Return(true, nil)
		cache.EXPECT().
			Set(gomock.Any(), "key-1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, entry *IdempotencyEntry[domain.Order], _ time.Duration) error {
				if entry.Status != IdempotencyCompleted || entry.Result == nil {
					t.Fatal("expected completed entry with result")
				}
				return nil
			})

		order, err := svc.PlaceOrder(context.Background(), "key-1", orderRequestFixture())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if order == nil {
			t.Fatal("expected order, got nil")
		}
	})

	t.Run("replay returns the stored order without touching the store", func(t *testing.T) {
		svc, _, cache := setupOrderService(t)

		req := orderRequestFixture()
		stored := &domain.Order{ID: "o1", Total: domain.NewAmountFromCents(2500)}

		cache.EXPECT().SetNX(gomock.Any(), "key-1", gomock.Any(), gomock.Any()).Return(false, nil)
		cache.EXPECT().Get(gomock.Any(), "key-1").Return(&IdempotencyEntry[domain.Order]{
			Status:      IdempotencyCompleted,
			PayloadHash: utils.HashJSON(req),
			Result:      stored,
		}, nil)

		order, err := svc.PlaceOrder(context.Background(), "key-1", req)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if order.ID != "o1" {
			t.Fatalf("expected the stored order, got %q", order.ID)
		}
	})

	t.Run("same key with a different payload is rejected", func(t *testing.T) {
		svc, _, cache := setupOrderService(t)

		cache.EXPECT().SetNX(gomock.Any(), "key-1", gomock.Any(), gomock.Any()).Return(false, nil)
		cache.EXPECT().Get(gomock.Any(), "key-1").Return(&IdempotencyEntry[domain.Order]{
			Status:      IdempotencyCompleted,
			PayloadHash: "some-other-hash",
		}, nil)

		_, err := svc.PlaceOrder(context.Background(), "key-1", orderRequestFixture())
		if !serviceerrors.IsOfKind(err, serviceerrors.KindUnprocessableEntity) {
			t.Fatalf("expected unprocessable-entity error, got %v", err)
		}
	})

	t.Run("failed order releases the claim", func(t *testing.T) {
		svc, store, cache := setupOrderService(t)
		store.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("write failed"))

		cache.EXPECT().SetNX(gomock.Any(), "key-1", gomock.Any(), gomock.Any()).Return(true, nil)
		cache.EXPECT().Del(gomock.Any(), "key-1").Return(nil)

		_, err := svc.PlaceOrder(context.Background(), "key-1", orderRequestFixture())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
