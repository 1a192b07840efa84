package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"hestia-ledger-api/pkg/addr"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteSlotStore implements SlotStore on SQLite. WAL mode, single writer:
// SQLite's one-writer rule is exactly the sequential-execution guarantee the
// ledger expects from its host.
type SQLiteSlotStore struct {
	db *sql.DB
}

// NewSQLiteSlotStore opens (or creates) the slot database at dbPath.
func NewSQLiteSlotStore(dbPath string) (*SQLiteSlotStore, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports 1 writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSlotTable(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteSlotStore] Initialized with database: %s", dbPath)
	return &SQLiteSlotStore{db: db}, nil
}

func createSlotTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS slots (
		address TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		data BLOB NOT NULL,
		version INTEGER NOT NULL DEFAULT 1
	);
	CREATE INDEX IF NOT EXISTS idx_slots_kind ON slots(kind);
	`
	_, err := db.Exec(query)
	return err
}

// View runs fn with a read-only snapshot.
func (s *SQLiteSlotStore) View(ctx context.Context, fn func(ReadTx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer tx.Rollback()

	return fn(&sqliteTx{ctx: ctx, tx: tx})
}

// Update runs fn inside one transaction; a non-nil error rolls back every
// staged write.
func (s *SQLiteSlotStore) Update(ctx context.Context, fn func(Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&sqliteTx{ctx: ctx, tx: tx}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteSlotStore) Close() error {
	return s.db.Close()
}

type sqliteTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *sqliteTx) Get(a addr.Address) (*Slot, error) {
	var slot Slot
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT kind, data, version FROM slots WHERE address = ?`, string(a),
	).Scan(&slot.Kind, &slot.Data, &slot.Version)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}
	return &slot, nil
}

func (t *sqliteTx) Put(a addr.Address, kind string, data []byte) error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO slots (address, kind, data, version)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(address) DO UPDATE SET
			kind = excluded.kind,
			data = excluded.data,
			version = slots.version + 1`,
		string(a), kind, data)
	if err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

func (t *sqliteTx) Delete(a addr.Address) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM slots WHERE address = ?`, string(a))
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}

// Ensure SQLiteSlotStore implements SlotStore
var _ SlotStore = (*SQLiteSlotStore)(nil)
