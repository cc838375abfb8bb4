package port

import (
	"context"

	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// SnapshotStore persists the whole store state as one durable
// document. Update runs the given mutation against a freshly loaded
// snapshot and writes the result back; implementations hold a lock for
// the duration so concurrent read-modify-write sequences cannot lose
// updates. Returning an error from fn aborts the write.
type SnapshotStore interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Update(ctx context.Context, fn func(snapshot *domain.Snapshot) error) error
}
