package service

import (
	"context"
	"testing"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryUpsert(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	address, err := env.initRestaurant(ctx)
	require.NoError(t, err)

	t.Run("create", func(t *testing.T) {
		item, err := env.inventory.Upsert(ctx, adminID, address, UpsertInventoryArgs{
			SKU:         10,
			Category:    uint8(model.InventoryFood),
			Name:        "tomatoes",
			Description: "roma",
			Price:       3,
			Stock:       40,
		})
		require.NoError(t, err)
		assert.True(t, item.Initialized)
		assert.Equal(t, fixedNow.Unix(), item.LastOrder)
		assert.Equal(t, uint64(40), item.Stock)
	})

	t.Run("create over occupied slot", func(t *testing.T) {
		_, err := env.inventory.Upsert(ctx, adminID, address, UpsertInventoryArgs{
			SKU: 10, Category: uint8(model.InventoryFood), Name: "tomatoes", Stock: 1,
		})
		require.Error(t, err)
		assert.Equal(t, apierror.CodeAlreadyExists, apierror.CodeOf(err))
	})

	t.Run("update overwrites fields, keeps last_order", func(t *testing.T) {
		item, err := env.inventory.Upsert(ctx, adminID, address, UpsertInventoryArgs{
			SKU:         10,
			Category:    uint8(model.InventoryBeverages),
			Name:        "tomato juice",
			Price:       5,
			Stock:       12,
			Initialized: true,
		})
		require.NoError(t, err)
		assert.Equal(t, model.InventoryBeverages, item.Category)
		assert.Equal(t, uint64(12), item.Stock)
		assert.Equal(t, fixedNow.Unix(), item.LastOrder)
	})

	t.Run("update of an empty slot", func(t *testing.T) {
		_, err := env.inventory.Upsert(ctx, adminID, address, UpsertInventoryArgs{
			SKU: 11, Category: uint8(model.InventoryFood), Name: "ghost", Initialized: true,
		})
		require.Error(t, err)
		assert.Equal(t, apierror.CodeNotFound, apierror.CodeOf(err))
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		_, err := env.inventory.Upsert(ctx, strangerID, address, UpsertInventoryArgs{
			SKU: 12, Category: uint8(model.InventoryFood), Name: "nope",
		})
		require.Error(t, err)
		assert.Equal(t, apierror.CodeUnauthorized, apierror.CodeOf(err))
	})

	t.Run("bad category", func(t *testing.T) {
		_, err := env.inventory.Upsert(ctx, adminID, address, UpsertInventoryArgs{
			SKU: 13, Category: 42, Name: "weird",
		})
		require.Error(t, err)
	})
}

func TestInventoryRemove(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	address, err := env.initRestaurant(ctx)
	require.NoError(t, err)

	_, err = env.inventory.Upsert(ctx, adminID, address, UpsertInventoryArgs{
		SKU: 20, Category: uint8(model.InventoryEquipment), Name: "grinder", Stock: 1,
	})
	require.NoError(t, err)

	require.NoError(t, env.inventory.Remove(ctx, adminID, address, 20))

	t.Run("gone after removal", func(t *testing.T) {
		_, err := env.inventory.GetItem(ctx, address, 20)
		require.Error(t, err)
		assert.Equal(t, apierror.CodeNotFound, apierror.CodeOf(err))
	})

	t.Run("removing again fails", func(t *testing.T) {
		err := env.inventory.Remove(ctx, adminID, address, 20)
		require.Error(t, err)
		assert.Equal(t, apierror.CodeNotFound, apierror.CodeOf(err))
	})

	t.Run("slot reusable after removal", func(t *testing.T) {
		_, err := env.inventory.Upsert(ctx, adminID, address, UpsertInventoryArgs{
			SKU: 20, Category: uint8(model.InventoryEquipment), Name: "grinder v2", Stock: 2,
		})
		require.NoError(t, err)
	})
}
