package service

import (
	"context"
	"strings"
	"testing"

	"hestia-ledger-api/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T) *TokenService {
	t.Helper()
	c := cache.NewMemoryCache()
	t.Cleanup(func() { c.Close() })
	return NewTokenService(c)
}

func TestTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTokenService(t)

	token, err := s.GenerateToken(ctx, adminID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, TokenPrefix))

	data, err := s.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, adminID, data.Signer)

	require.NoError(t, s.RefreshToken(ctx, token))

	require.NoError(t, s.RevokeToken(ctx, token))
	_, err = s.ValidateToken(ctx, token)
	require.Error(t, err)
}

func TestValidateTokenRejections(t *testing.T) {
	ctx := context.Background()
	s := newTokenService(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"wrong prefix", "xx_deadbeef"},
		{"unknown token", TokenPrefix + "0000000000000000000000000000000000000000000000000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateToken(ctx, tt.token)
			require.Error(t, err)
		})
	}
}

func TestGenerateTokenRejectsMalformedSigner(t *testing.T) {
	ctx := context.Background()
	s := newTokenService(t)

	_, err := s.GenerateToken(ctx, "not-a-valid-identity")
	require.Error(t, err)
}
