// Package store persists record collections for the development server.
//
// Two backends implement the same Store interface: a bbolt key/value
// file (default) and a sqlite database. Both are selected at runtime by
// the serve command, so a single build exercises either. Collections
// are keyed as "bucket/collection"; records inside a collection are
// keyed by id.
package store

import (
	"errors"
	"fmt"

	"github.com/inovacc/kollect/internal/kinto"
)

// ErrNotFound is returned when a record id does not exist in the
// collection.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations used by the dev server.
type Store interface {
	Ping() error
	Close() error

	// SaveRecord inserts or replaces a record in a collection.
	SaveRecord(collection string, rec kinto.Record) error

	// GetRecord returns the record with the given id, or ErrNotFound.
	GetRecord(collection, id string) (kinto.Record, error)

	// DeleteRecord removes and returns the record, or ErrNotFound.
	DeleteRecord(collection, id string) (kinto.Record, error)

	// ListRecords returns all records of a collection in unspecified
	// order; sorting and pagination happen in the handler layer.
	ListRecords(collection string) ([]kinto.Record, error)
}

// Backend names a store implementation.
type Backend string

const (
	BackendBolt   Backend = "bolt"
	BackendSQLite Backend = "sqlite"
)

// Open creates a store of the given backend at path.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendBolt:
		return NewBolt(path)
	case BackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
