package asset

import (
	"context"

	"hestia-ledger-api/internal/model"
)

// TransferService moves value between asset accounts. Accounts are addressed
// by (currency identity, owner identity). The ledger core treats this as an
// external collaborator: it only ever asks for one transfer per operation and
// surfaces the service's typed failures verbatim.
type TransferService interface {
	// Transfer moves amount from the payer's account to the payee's account
	// in the given currency. Fails with CURRENCY_MISMATCH when the payer
	// holds no account in that currency, and INSUFFICIENT_FUNDS when the
	// balance cannot cover the amount.
	Transfer(ctx context.Context, currency, from, to model.Identity, amount uint64) error
}
