package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Store is the persistent reminder collection. List returns rows in the order
// they were first inserted; Upsert keeps a row's original position.
type Store interface {
	Upsert(ctx context.Context, in Reminder) error
	Get(ctx context.Context, id string) (Reminder, error)
	List(ctx context.Context, filter ReminderListFilter) ([]Reminder, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Close() error
}
