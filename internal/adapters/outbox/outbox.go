package outbox

import "context"

type Entry struct {
	ID         string
	EventName  string
	EntityName string
	EventData  []byte
}

// Repository drains event records that were persisted alongside the
// entity change that produced them. Records are inserted by the ledger
// itself as part of its snapshot write, so there is no Insert here.
//
//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
type Repository interface {
	FetchPending(ctx context.Context, limit int) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}
