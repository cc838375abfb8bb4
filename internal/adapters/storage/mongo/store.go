// Package mongo persists the store snapshot as one replaced document,
// for deployments that want the state off the local disk. The
// observable contract is the same as the file driver's.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/config"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/outbox"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/storage/document"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/port"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionName = "snapshot"
	snapshotID     = "storefront"
)

func NewConnection(cfg config.MongoConfig) (*mongo.Client, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(cfg.Timeout).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if client == nil {
		return nil
	}

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	return nil
}

type snapshotDoc struct {
	ID       string                    `bson:"_id"`
	Snapshot document.SnapshotDocument `bson:"snapshot"`
}

type Store struct {
	mu         sync.Mutex
	collection *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(collectionName)}
}

var (
	_ port.SnapshotStore = (*Store)(nil)
	_ outbox.Repository  = (*Store)(nil)
)

func (s *Store) read(ctx context.Context) (*domain.Snapshot, error) {
	var doc snapshotDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &domain.Snapshot{}, nil
		}
		return nil, serviceerrors.NewStorageUnavailableError("reading snapshot document", err)
	}
	return doc.Snapshot.ToDomain(), nil
}

func (s *Store) write(ctx context.Context, snapshot *domain.Snapshot) error {
	doc := snapshotDoc{ID: snapshotID, Snapshot: *document.ToSnapshotDocument(snapshot)}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": snapshotID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return serviceerrors.NewStorageUnavailableError("replacing snapshot document", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	return s.read(ctx)
}

// Update serializes read-modify-write sequences with a process-local
// lock; the store assumes a single writing process, same as the file
// driver.
func (s *Store) Update(ctx context.Context, fn func(snapshot *domain.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.read(ctx)
	if err != nil {
		return err
	}
	if err := fn(snapshot); err != nil {
		return err
	}
	return s.write(ctx, snapshot)
}

func (s *Store) FetchPending(ctx context.Context, limit int) ([]outbox.Entry, error) {
	snapshot, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	n := len(snapshot.Events)
	if n > limit {
		n = limit
	}
	entries := make([]outbox.Entry, n)
	for i := 0; i < n; i++ {
		record := snapshot.Events[i]
		entries[i] = outbox.Entry{
			ID:         string(record.ID),
			EventName:  record.Name,
			EntityName: record.Entity,
			EventData:  record.Payload,
		}
	}
	return entries, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.Update(ctx, func(snapshot *domain.Snapshot) error {
		for i := range snapshot.Events {
			if snapshot.Events[i].ID == domain.ID(id) {
				snapshot.Events = append(snapshot.Events[:i], snapshot.Events[i+1:]...)
				return nil
			}
		}
		return serviceerrors.NewNotFoundError("event record not found")
	})
}
