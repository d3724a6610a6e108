package session

import "context"

// Record entry keys as they appear in durable storage
const (
	RecordKeyToken     = "token"
	RecordKeySubject   = "subject"
	RecordKeyExpiresAt = "expires_at"
)

// Record represents the raw persisted session entries: the bearer token, the JSON-serialized
// subject and the ISO-8601 expiry timestamp. Entries may be individually absent; a record is
// only usable if all three are present.
type Record struct {
	Token     string
	Subject   string
	ExpiresAt string
}

// Complete reports whether all three entries are present
func (record *Record) Complete() bool {
	return record.Token != "" && record.Subject != "" && record.ExpiresAt != ""
}

// Empty reports whether no entry is present at all
func (record *Record) Empty() bool {
	return record.Token == "" && record.Subject == "" && record.ExpiresAt == ""
}

// Storage defines the persisted session record API.
// Implementations have to store and erase all three entries together; the Store relies on this
// to treat any partial record it still encounters as invalid.
type Storage interface {
	// Initialize initializes the storage driver (i.e. opens a database connection)
	Initialize(ctx context.Context) error

	// Load reads the currently persisted record. Absent entries are returned as empty strings.
	Load(ctx context.Context) (*Record, error)

	// Store persists all three entries of the given record together, replacing any previous ones
	Store(ctx context.Context, record *Record) error

	// Erase removes every persisted entry. Erasing an empty storage is a no-op.
	Erase(ctx context.Context) error

	// Close closes the storage driver (i.e. closes a database connection)
	Close()
}
