package inmem

import (
	"context"

	"github.com/hashicorp/go-memdb"

	"github.com/dandigam/village-health-hub-sub001/internal/session"
)

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"entries": {
			Name: "entries",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Key"},
				},
			},
		},
	},
}

type entry struct {
	Key   string
	Value string
}

// Driver represents the in-memory session storage driver built using hashicorp/go-memdb.
// Sessions kept by this driver do not survive process restarts; it exists for tests and for
// running the console with an intentionally volatile session.
// All three record entries are written and erased inside a single transaction.
type Driver struct {
	db *memdb.MemDB
}

var _ session.Storage = (*Driver)(nil)

// New creates a new empty in-memory session storage driver
func New() *Driver {
	return &Driver{}
}

// Initialize creates the underlying memdb instance
func (driver *Driver) Initialize(_ context.Context) error {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return err
	}
	driver.db = db
	return nil
}

// Load reads the currently persisted record. Absent entries are returned as empty strings.
func (driver *Driver) Load(_ context.Context) (*session.Record, error) {
	txn := driver.db.Txn(false)

	record := &session.Record{}
	for _, key := range []string{session.RecordKeyToken, session.RecordKeySubject, session.RecordKeyExpiresAt} {
		obj, err := txn.First("entries", "id", key)
		if err != nil {
			return nil, err
		}
		if obj == nil {
			continue
		}
		value := obj.(*entry).Value
		switch key {
		case session.RecordKeyToken:
			record.Token = value
		case session.RecordKeySubject:
			record.Subject = value
		case session.RecordKeyExpiresAt:
			record.ExpiresAt = value
		}
	}
	return record, nil
}

// Store persists all three entries of the given record inside a single transaction
func (driver *Driver) Store(_ context.Context, record *session.Record) error {
	txn := driver.db.Txn(true)
	defer txn.Abort()

	entries := []*entry{
		{Key: session.RecordKeyToken, Value: record.Token},
		{Key: session.RecordKeySubject, Value: record.Subject},
		{Key: session.RecordKeyExpiresAt, Value: record.ExpiresAt},
	}
	for _, cur := range entries {
		if err := txn.Insert("entries", cur); err != nil {
			return err
		}
	}

	txn.Commit()
	return nil
}

// Erase removes every persisted entry inside a single transaction
func (driver *Driver) Erase(_ context.Context) error {
	txn := driver.db.Txn(true)
	defer txn.Abort()

	for _, key := range []string{session.RecordKeyToken, session.RecordKeySubject, session.RecordKeyExpiresAt} {
		if _, err := txn.DeleteAll("entries", "id", key); err != nil {
			return err
		}
	}

	txn.Commit()
	return nil
}

// Close discards the underlying memdb instance
func (driver *Driver) Close() {
	driver.db = nil
}
