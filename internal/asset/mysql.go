package asset

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/pkg/apierror"
)

// MySQLTransferService implements TransferService over a MySQL balance table.
// Both legs of a transfer run in one SQL transaction with the payer row
// locked, so a transfer either fully applies or not at all.
type MySQLTransferService struct {
	db *sql.DB
}

// NewMySQLTransferService creates a transfer service on an open MySQL handle
// and ensures the balance table exists.
func NewMySQLTransferService(db *sql.DB) (*MySQLTransferService, error) {
	query := `
	CREATE TABLE IF NOT EXISTS asset_accounts (
		currency CHAR(64) NOT NULL,
		owner CHAR(64) NOT NULL,
		balance BIGINT UNSIGNED NOT NULL DEFAULT 0,
		PRIMARY KEY (currency, owner)
	)`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create asset_accounts table: %w", err)
	}

	log.Println("[MySQLTransferService] Initialized")
	return &MySQLTransferService{db: db}, nil
}

// Transfer moves amount between two accounts in the given currency.
func (s *MySQLTransferService) Transfer(ctx context.Context, currency, from, to model.Identity, amount uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transfer transaction: %w", err)
	}
	defer tx.Rollback()

	var balance uint64
	err = tx.QueryRowContext(ctx,
		`SELECT balance FROM asset_accounts WHERE currency = ? AND owner = ? FOR UPDATE`,
		string(currency), string(from),
	).Scan(&balance)
	if err == sql.ErrNoRows {
		return apierror.CurrencyMismatch(
			fmt.Sprintf("payer holds no account in currency %s", currency))
	}
	if err != nil {
		return fmt.Errorf("failed to read payer balance: %w", err)
	}

	if balance < amount {
		return apierror.InsufficientFunds(
			fmt.Sprintf("balance %d cannot cover transfer of %d", balance, amount))
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE asset_accounts SET balance = balance - ? WHERE currency = ? AND owner = ?`,
		amount, string(currency), string(from))
	if err != nil {
		return fmt.Errorf("failed to debit payer: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO asset_accounts (currency, owner, balance)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE balance = balance + VALUES(balance)`,
		string(currency), string(to), amount)
	if err != nil {
		return fmt.Errorf("failed to credit payee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}
	return nil
}

// Ensure MySQLTransferService implements TransferService
var _ TransferService = (*MySQLTransferService)(nil)
