package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/dandigam/village-health-hub-sub001/internal/session"
)

// Driver represents the file-backed session storage driver. It persists the session record as a
// single JSON document on the local filesystem so a session survives process restarts.
// Writes go through a temporary file and a rename, so the record is replaced as a whole and a
// crash mid-write cannot leave a half-updated record behind.
type Driver struct {
	mtx  sync.Mutex
	path string
}

var _ session.Storage = (*Driver)(nil)

// New creates a new file-backed session storage driver persisting to the given path
func New(path string) *Driver {
	return &Driver{
		path: path,
	}
}

type persistedRecord struct {
	Token     string `json:"token"`
	Subject   string `json:"subject"`
	ExpiresAt string `json:"expires_at"`
}

// Initialize creates the parent directory of the record file if it does not exist yet
func (driver *Driver) Initialize(_ context.Context) error {
	dir := filepath.Dir(driver.path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o700)
}

// Load reads the currently persisted record. Absent entries are returned as empty strings.
func (driver *Driver) Load(_ context.Context) (*session.Record, error) {
	driver.mtx.Lock()
	defer driver.mtx.Unlock()

	raw, err := os.ReadFile(driver.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &session.Record{}, nil
		}
		return nil, err
	}

	persisted := new(persistedRecord)
	if err := json.Unmarshal(raw, persisted); err != nil {
		// An unreadable record file is equivalent to a partial record; the store discards it
		return &session.Record{}, nil
	}
	return &session.Record{
		Token:     persisted.Token,
		Subject:   persisted.Subject,
		ExpiresAt: persisted.ExpiresAt,
	}, nil
}

// Store persists all three entries of the given record together, replacing any previous ones
func (driver *Driver) Store(_ context.Context, record *session.Record) error {
	driver.mtx.Lock()
	defer driver.mtx.Unlock()

	raw, err := json.Marshal(&persistedRecord{
		Token:     record.Token,
		Subject:   record.Subject,
		ExpiresAt: record.ExpiresAt,
	})
	if err != nil {
		return err
	}

	tmp := driver.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, driver.path)
}

// Erase removes the persisted record file. Erasing an empty storage is a no-op.
func (driver *Driver) Erase(_ context.Context) error {
	driver.mtx.Lock()
	defer driver.mtx.Unlock()

	if err := os.Remove(driver.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Close is a no-op for the file-backed driver
func (driver *Driver) Close() {}
