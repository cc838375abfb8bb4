// Package file persists the store snapshot as a single pretty-printed
// JSON document, rewritten in full on every mutation.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/outbox"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/storage/document"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/port"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/serviceerrors"
)

type Store struct {
	mu   sync.RWMutex
	path string
}

// NewStore returns a store rooted at path. The value also implements
// outbox.Repository over the same file, sharing one lock, so draining
// events never races a snapshot write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

var (
	_ port.SnapshotStore = (*Store)(nil)
	_ outbox.Repository  = (*Store)(nil)
)

func (s *Store) read() (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// A store that was never written reads as empty.
		if errors.Is(err, os.ErrNotExist) {
			return &domain.Snapshot{}, nil
		}
		return nil, serviceerrors.NewStorageUnavailableError("reading store file", err)
	}

	var doc document.SnapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, serviceerrors.NewStorageUnavailableError("parsing store file", err)
	}

	return doc.ToDomain(), nil
}

// write replaces the document via a temp file and rename, so a failed
// write never leaves a truncated store behind.
func (s *Store) write(snapshot *domain.Snapshot) error {
	data, err := json.MarshalIndent(document.ToSnapshotDocument(snapshot), "", "  ")
	if err != nil {
		return serviceerrors.NewStorageUnavailableError("encoding store document", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return serviceerrors.NewStorageUnavailableError("creating temp store file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return serviceerrors.NewStorageUnavailableError("writing store file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return serviceerrors.NewStorageUnavailableError("closing store file", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return serviceerrors.NewStorageUnavailableError("replacing store file", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read()
}

// Update holds the write lock for the whole read-modify-write
// sequence; concurrent updates are serialized rather than allowed to
// overwrite each other.
func (s *Store) Update(ctx context.Context, fn func(snapshot *domain.Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(snapshot); err != nil {
		return err
	}
	return s.write(snapshot)
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

// Ping reports whether the store file is usable, for health checks.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.Load(ctx)
	return err
}
