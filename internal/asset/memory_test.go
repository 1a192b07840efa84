package asset

import (
	"context"
	"testing"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usd   = model.Identity("currency-usd")
	payer = model.Identity("payer")
	payee = model.Identity("payee")
)

func TestMemoryTransfer(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTransferService()
	s.Fund(usd, payer, 100)

	require.NoError(t, s.Transfer(ctx, usd, payer, payee, 40))
	assert.Equal(t, uint64(60), s.Balance(usd, payer))
	assert.Equal(t, uint64(40), s.Balance(usd, payee))

	t.Run("insufficient funds", func(t *testing.T) {
		err := s.Transfer(ctx, usd, payer, payee, 61)
		require.Error(t, err)
		assert.Equal(t, apierror.CodeInsufficientFunds, apierror.CodeOf(err))
		assert.Equal(t, uint64(60), s.Balance(usd, payer), "failed transfer moves nothing")
		assert.Equal(t, uint64(40), s.Balance(usd, payee))
	})

	t.Run("no account in currency", func(t *testing.T) {
		err := s.Transfer(ctx, model.Identity("currency-eur"), payer, payee, 1)
		require.Error(t, err)
		assert.Equal(t, apierror.CodeCurrencyMismatch, apierror.CodeOf(err))
	})

	t.Run("exact balance drains the account", func(t *testing.T) {
		require.NoError(t, s.Transfer(ctx, usd, payer, payee, 60))
		assert.Equal(t, uint64(0), s.Balance(usd, payer))
		assert.Equal(t, uint64(100), s.Balance(usd, payee))
	})
}
