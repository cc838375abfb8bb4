package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/serviceerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	path := filepath.Join(t.TempDir(), "db.json")
	return NewStore(path), path
}

func TestStore_LoadMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Products)
	assert.Empty(t, snapshot.Orders)
	assert.Empty(t, snapshot.Customers)
	assert.Empty(t, snapshot.Events)
}

func TestStore_UpdateRoundtrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	err := store.Update(ctx, func(snapshot *domain.Snapshot) error {
		snapshot.Products = append(snapshot.Products, domain.Product{
			ID:    "p1",
			Name:  "Hookah Set",
			Price: domain.NewAmountFromCents(8999),
			Stock: 4,
			Image: "/images/products/set.png",
		})
		snapshot.InsertOrder(domain.Order{
			ID:           "o1",
			CustomerName: "John Doe",
			Date:         date,
			Total:        domain.NewAmountFromCents(2500),
			Items: []domain.LineItem{
				{Title: "Hookah Set", UnitPrice: domain.NewAmountFromCents(1000), Currency: "USD", Quantity: 2},
				{Title: "Coals", UnitPrice: domain.NewAmountFromCents(500), Currency: "USD", Quantity: 1},
			},
		})
		snapshot.UpsertCustomer("John Doe", "john@example.com")
		snapshot.AppendEvent(&domain.OrderCreatedEvent{OrderID: "o1"}, []byte(`{"order_id":"o1"}`))
		return nil
	})
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	require.Len(t, loaded.Products, 1)
	assert.Equal(t, domain.ID("p1"), loaded.Products[0].ID)
	assert.Equal(t, int64(8999), int64(loaded.Products[0].Price))

	require.Len(t, loaded.Orders, 1)
	assert.Equal(t, "John Doe", loaded.Orders[0].CustomerName)
	assert.Equal(t, int64(2500), int64(loaded.Orders[0].Total))
	require.Len(t, loaded.Orders[0].Items, 2)
	assert.Equal(t, int64(1000), int64(loaded.Orders[0].Items[0].UnitPrice))
	assert.True(t, loaded.Orders[0].Date.Equal(date))

	require.Len(t, loaded.Customers, 1)
	assert.Equal(t, 1, loaded.Customers[0].TotalOrders)

	require.Len(t, loaded.Events, 1)
	assert.Equal(t, "order.created", loaded.Events[0].Name)
	assert.JSONEq(t, `{"order_id":"o1"}`, string(loaded.Events[0].Payload))
}

func TestStore_DocumentFormat(t *testing.T) {
	store, path := newTestStore(t)

	err := store.Update(context.Background(), func(snapshot *domain.Snapshot) error {
		snapshot.Products = append(snapshot.Products, domain.Product{
			ID:    "p1",
			Name:  "Hookah Set",
			Price: domain.NewAmountFromCents(8999),
		})
		snapshot.InsertOrder(domain.Order{ID: "o1", CustomerName: "John Doe", Total: domain.NewAmountFromCents(2500)})
		snapshot.UpsertCustomer("John Doe", "john@example.com")
		return nil
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// pretty-printed, with decimal amounts and the storefront's field names
	assert.Contains(t, string(data), "\n  \"products\"")
	var doc struct {
		Products []map[string]any `json:"products"`
		Orders   []map[string]any `json:"orders"`
		Customers []map[string]any `json:"customers"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 89.99, doc.Products[0]["price"])
	assert.Equal(t, "John Doe", doc.Orders[0]["customerName"])
	assert.Equal(t, float64(1), doc.Customers[0]["totalOrders"])
}

func TestStore_LoadCorruptFile(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.Load(context.Background())
	assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindStorageUnavailable), "got %v", err)
}

func TestStore_UpdateAbortsOnCallbackError(t *testing.T) {
	store, path := newTestStore(t)

	err := store.Update(context.Background(), func(snapshot *domain.Snapshot) error {
		snapshot.Products = append(snapshot.Products, domain.Product{ID: "p1"})
		return errors.New("change of heart")
	})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "expected no file to be written")
}

func TestStore_OutboxFetchAndDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.Update(ctx, func(snapshot *domain.Snapshot) error {
		for i := 0; i < 3; i++ {
			snapshot.AppendEvent(&domain.OrderCreatedEvent{}, []byte(`{}`))
		}
		return nil
	})
	require.NoError(t, err)

	entries, err := store.FetchPending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "order.created", entries[0].EventName)
	assert.Equal(t, "order", entries[0].EntityName)

	require.NoError(t, store.Delete(ctx, entries[0].ID))

	remaining, err := store.FetchPending(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)

	err = store.Delete(ctx, entries[0].ID)
	assert.True(t, serviceerrors.IsOfKind(err, serviceerrors.KindNotFound), "got %v", err)
}

func TestStore_Ping(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Ping(context.Background()))

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	assert.Error(t, store.Ping(context.Background()))
}
