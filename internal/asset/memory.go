package asset

import (
	"context"
	"fmt"
	"sync"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/pkg/apierror"
)

// MemoryTransferService is an in-memory TransferService for tests and for
// running without an asset database.
type MemoryTransferService struct {
	mu       sync.Mutex
	balances map[string]uint64
}

// NewMemoryTransferService creates an empty in-memory transfer service.
func NewMemoryTransferService() *MemoryTransferService {
	return &MemoryTransferService{balances: make(map[string]uint64)}
}

func accountKey(currency, owner model.Identity) string {
	return string(currency) + "/" + string(owner)
}

// Fund opens (or tops up) an account. Test setup only; real funding is the
// external faucet's concern.
func (s *MemoryTransferService) Fund(currency, owner model.Identity, amount uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[accountKey(currency, owner)] += amount
}

// Balance reads an account balance.
func (s *MemoryTransferService) Balance(currency, owner model.Identity) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[accountKey(currency, owner)]
}

// Transfer moves amount between two accounts in the given currency.
func (s *MemoryTransferService) Transfer(ctx context.Context, currency, from, to model.Identity, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fromKey := accountKey(currency, from)
	balance, ok := s.balances[fromKey]
	if !ok {
		return apierror.CurrencyMismatch(
			fmt.Sprintf("payer holds no account in currency %s", currency))
	}
	if balance < amount {
		return apierror.InsufficientFunds(
			fmt.Sprintf("balance %d cannot cover transfer of %d", balance, amount))
	}

	s.balances[fromKey] = balance - amount
	s.balances[accountKey(currency, to)] += amount
	return nil
}

// Ensure MemoryTransferService implements TransferService
var _ TransferService = (*MemoryTransferService)(nil)
