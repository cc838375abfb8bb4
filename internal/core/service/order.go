package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/dto"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/logger"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/port"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/serviceerrors"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/utils"
)

const (
	ORDER_MAX_ITEMS = 100

	defaultCurrency = "USD"
)

type OrderService struct {
	store       port.SnapshotStore
	idempotency *IdempotencyService[domain.Order]
}

func NewOrderService(store port.SnapshotStore, idempotency *IdempotencyService[domain.Order]) *OrderService {
	return &OrderService{store: store, idempotency: idempotency}
}

// ListOrders returns every order, most recent first.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Orders, nil
}

func validateOrderRequest(request *dto.CreateOrderRequest) []serviceerrors.FieldError {
	var fields []serviceerrors.FieldError
	if len(request.Items) == 0 {
		fields = append(fields, serviceerrors.FieldError{Field: "items", Reason: "must contain at least one line item"})
	}
	for _, item := range request.Items {
		if item.Quantity <= 0 {
			fields = append(fields, serviceerrors.FieldError{Field: "items.quantity", Reason: "must be a positive integer"})
			break
		}
	}
	if strings.TrimSpace(request.Customer.Name) == "" {
		fields = append(fields, serviceerrors.FieldError{Field: "customer.name", Reason: "must not be empty"})
	}
	if strings.TrimSpace(request.Customer.Email) == "" {
		fields = append(fields, serviceerrors.FieldError{Field: "customer.email", Reason: "must not be empty"})
	}
	return fields
}

func buildLineItems(dtoItems []dto.OrderItem) []domain.LineItem {
	items := make([]domain.LineItem, len(dtoItems))
	for i, item := range dtoItems {
		currency := item.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		items[i] = *domain.NewLineItem(item.Title, domain.NewAmountFromFloat(item.UnitPrice), currency, item.Quantity)
	}
	return items
}

// processOrder records the order, the customer aggregate and the
// order.created event record in a single snapshot write, so no reader
// can see one without the others.
func (s *OrderService) processOrder(ctx context.Context, request *dto.CreateOrderRequest) (*domain.Order, error) {
	if len(request.Items) > ORDER_MAX_ITEMS {
		return nil, serviceerrors.NewUnprocessableEntityError("order items limit exceeded")
	}
	if fields := validateOrderRequest(request); len(fields) > 0 {
		return nil, serviceerrors.NewValidationError(fields)
	}

	order := domain.NewOrder(request.Customer.Name, buildLineItems(request.Items))

	err := s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		snapshot.InsertOrder(*order)
		snapshot.UpsertCustomer(request.Customer.Name, request.Customer.Email)

		event := domain.NewOrderCreatedEvent(order, request.Customer.Email)
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		snapshot.AppendEvent(event, payload)
		return nil
	})
	if err != nil {
		logger.Error(ctx, "order: place failed", err, map[string]any{
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info(ctx, "Order placed", map[string]any{
		"order_id": order.ID,
		"total":    order.Total.Float64(),
	})
	return order, nil
}

func (s *OrderService) PlaceOrder(ctx context.Context, idempotencyKey string, request *dto.CreateOrderRequest) (*domain.Order, error) {
	if idempotencyKey == "" {
		return s.processOrder(ctx, request)
	}

	payloadHash := utils.HashJSON(request)

	existing, err := s.idempotency.Claim(ctx, idempotencyKey, payloadHash)
	if err != nil {
		logger.Error(ctx, "idempotency: claim failed", err, map[string]any{
			"idempotency_key": idempotencyKey,
		})
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	order, err := s.processOrder(ctx, request)
	if err != nil {
		s.idempotency.Release(ctx, idempotencyKey)
		return nil, err
	}

	s.idempotency.Complete(ctx, idempotencyKey, payloadHash, order)

	return order, nil
}
