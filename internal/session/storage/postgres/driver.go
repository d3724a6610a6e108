package postgres

import (
	"context"
	"embed"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/dandigam/village-health-hub-sub001/internal/session"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Driver represents the PostgreSQL session storage driver implementation. It persists the record
// entries in a key/value table so multiple console instances of a camp site can share one
// durable session store. All three entries are written and erased inside a single transaction.
type Driver struct {
	dsn string
	db  *pgxpool.Pool
}

var _ session.Storage = (*Driver)(nil)

// New creates a new empty PostgreSQL session storage driver.
// Use Initialize to open the database connection.
func New(dsn string) *Driver {
	return &Driver{
		dsn: dsn,
	}
}

// Initialize opens the database connection and migrates the database
func (driver *Driver) Initialize(ctx context.Context) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, driver.dsn)
	if err != nil {
		return err
	}
	defer migrator.Close()
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	pool, err := pgxpool.Connect(ctx, driver.dsn)
	if err != nil {
		return err
	}
	driver.db = pool
	return nil
}

// Load reads the currently persisted record. Absent entries are returned as empty strings.
func (driver *Driver) Load(ctx context.Context) (*session.Record, error) {
	sql, vals, err := squirrel.Select("entry_key", "entry_value").From("session_entries").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := driver.db.Query(ctx, sql, vals...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	record := &session.Record{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		switch key {
		case session.RecordKeyToken:
			record.Token = value
		case session.RecordKeySubject:
			record.Subject = value
		case session.RecordKeyExpiresAt:
			record.ExpiresAt = value
		}
	}
	return record, rows.Err()
}

// Store persists all three entries of the given record inside a single transaction
func (driver *Driver) Store(ctx context.Context, record *session.Record) error {
	tx, err := driver.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	entries := map[string]string{
		session.RecordKeyToken:     record.Token,
		session.RecordKeySubject:   record.Subject,
		session.RecordKeyExpiresAt: record.ExpiresAt,
	}
	for key, value := range entries {
		query := "INSERT INTO session_entries (entry_key, entry_value) VALUES ($1, $2) " +
			"ON CONFLICT (entry_key) DO UPDATE SET entry_value = excluded.entry_value"
		if _, err := tx.Exec(ctx, query, key, value); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Erase removes every persisted entry
func (driver *Driver) Erase(ctx context.Context) error {
	_, err := driver.db.Exec(ctx, "DELETE FROM session_entries")
	return err
}

// Close closes the database connection
func (driver *Driver) Close() {
	driver.db.Close()
	driver.db = nil
}
