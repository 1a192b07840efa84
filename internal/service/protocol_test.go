package service

import (
	"context"
	"testing"

	"hestia-ledger-api/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolInit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	protocol, err := env.protocols.Init(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, protocol.Owner)
	assert.False(t, protocol.Locked)

	t.Run("second init fails", func(t *testing.T) {
		_, err := env.protocols.Init(ctx, strangerID)
		require.Error(t, err)
		assert.Equal(t, apierror.CodeAlreadyInitialized, apierror.CodeOf(err))
	})

	t.Run("owner survives a read", func(t *testing.T) {
		got, err := env.protocols.GetProtocol(ctx)
		require.NoError(t, err)
		assert.Equal(t, ownerID, got.Owner)
	})
}

func TestProtocolToggleLock(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.protocols.Init(ctx, ownerID)
	require.NoError(t, err)

	t.Run("non-owner cannot toggle", func(t *testing.T) {
		_, err := env.protocols.ToggleLock(ctx, strangerID)
		require.Error(t, err)
		assert.Equal(t, apierror.CodeUnauthorized, apierror.CodeOf(err))
	})

	protocol, err := env.protocols.ToggleLock(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, protocol.Locked)

	t.Run("lock blocks tenant mutations", func(t *testing.T) {
		_, _, err := env.restaurants.Initialize(ctx, adminID, CreateRestaurantArgs{
			ID: 1, Name: "Blocked", Symbol: "BLK", Currency: currencyID, URL: "https://x.example",
		})
		require.Error(t, err)
		assert.Equal(t, apierror.CodeLocked, apierror.CodeOf(err))
	})

	t.Run("toggle back unlocks", func(t *testing.T) {
		protocol, err := env.protocols.ToggleLock(ctx, ownerID)
		require.NoError(t, err)
		assert.False(t, protocol.Locked)

		_, _, err = env.restaurants.Initialize(ctx, adminID, CreateRestaurantArgs{
			ID: 1, Name: "Unblocked", Symbol: "UBK", Currency: currencyID, URL: "https://x.example",
		})
		require.NoError(t, err)
	})
}

func TestAddAdmin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.protocols.Init(ctx, ownerID)
	require.NoError(t, err)

	tests := []struct {
		name     string
		signer   string
		username string
		wantCode string
	}{
		{name: "owner adds admin", signer: "owner", username: "alice"},
		{name: "duplicate active admin", signer: "owner", username: "alice2", wantCode: apierror.CodeAlreadyExists},
		{name: "non-owner rejected", signer: "stranger", username: "mallory", wantCode: apierror.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer := ownerID
			if tt.signer == "stranger" {
				signer = strangerID
			}
			profile, err := env.protocols.AddAdmin(ctx, signer, adminID, tt.username)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apierror.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, profile.Username)
			assert.True(t, profile.Active)
			assert.Equal(t, fixedNow.Unix(), profile.CreatedAt)
		})
	}

	t.Run("username too long", func(t *testing.T) {
		_, err := env.protocols.AddAdmin(ctx, ownerID, strangerID, "this-username-is-well-over-thirty-two-characters")
		require.Error(t, err)
	})
}

func TestRemoveAdmin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.protocols.Init(ctx, ownerID)
	require.NoError(t, err)
	_, err = env.protocols.AddAdmin(ctx, ownerID, adminID, "alice")
	require.NoError(t, err)

	t.Run("owner cannot be removed", func(t *testing.T) {
		err := env.protocols.RemoveAdmin(ctx, ownerID, ownerID)
		require.Error(t, err)
		assert.Equal(t, apierror.CodeUnauthorized, apierror.CodeOf(err))
	})

	t.Run("deactivates the profile", func(t *testing.T) {
		require.NoError(t, env.protocols.RemoveAdmin(ctx, ownerID, adminID))

		// Removed twice is not found: the profile exists but is inactive.
		err := env.protocols.RemoveAdmin(ctx, ownerID, adminID)
		require.Error(t, err)
		assert.Equal(t, apierror.CodeNotFound, apierror.CodeOf(err))
	})

	t.Run("reactivation through AddAdmin", func(t *testing.T) {
		profile, err := env.protocols.AddAdmin(ctx, ownerID, adminID, "alice-again")
		require.NoError(t, err)
		assert.True(t, profile.Active)
		assert.Equal(t, "alice-again", profile.Username)
	})

	t.Run("unknown identity", func(t *testing.T) {
		err := env.protocols.RemoveAdmin(ctx, ownerID, strangerID)
		require.Error(t, err)
		assert.Equal(t, apierror.CodeNotFound, apierror.CodeOf(err))
	})
}
