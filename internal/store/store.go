// Package store persists complaint records keyed by acknowledgement number.
package store

import (
	"context"
	"errors"

	"github.com/a3tai/ncrp-intake/internal/complaint"
)

var (
	// ErrDuplicate is returned when a record with the same acknowledgement
	// number is already stored.
	ErrDuplicate = errors.New("acknowledgement number already exists")
	// ErrMissingKey is returned when a record has no acknowledgement number.
	ErrMissingKey = errors.New("acknowledgement number is required")
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
)

// Store is the complaint record store. Records are written once and removed
// only by id.
type Store interface {
	Save(ctx context.Context, rec complaint.Record) (int64, error)
	ListAll(ctx context.Context) ([]complaint.Record, error)
	Get(ctx context.Context, id int64) (complaint.Record, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	Close() error
}
