package service

import (
	"context"
	"testing"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeRestaurant(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.protocols.Init(ctx, ownerID)
	require.NoError(t, err)

	restaurant, address, err := env.restaurants.Initialize(ctx, adminID, CreateRestaurantArgs{
		ID:       7,
		Type:     uint8(model.RestaurantFoodtruck),
		Name:     "Street Beans",
		Symbol:   "SB",
		Currency: currencyID,
		URL:      "https://beans.example",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, address)
	assert.Equal(t, adminID, restaurant.Owner)
	assert.Equal(t, uint64(0), restaurant.CustomerCount)

	t.Run("address is rederivable", func(t *testing.T) {
		derived, _ := model.RestaurantAddress(adminID)
		assert.Equal(t, derived, address)
	})

	t.Run("creator receives an admin profile", func(t *testing.T) {
		// The fresh admin can immediately run tenant-scoped operations.
		_, err := env.inventory.Upsert(ctx, adminID, address, UpsertInventoryArgs{
			SKU: 1, Category: uint8(model.InventoryFood), Name: "beans", Stock: 5,
		})
		require.NoError(t, err)
	})

	t.Run("one restaurant per admin identity", func(t *testing.T) {
		_, _, err := env.restaurants.Initialize(ctx, adminID, CreateRestaurantArgs{
			ID: 8, Name: "Second", Symbol: "2ND", Currency: currencyID, URL: "https://x.example",
		})
		require.Error(t, err)
		assert.Equal(t, apierror.CodeAlreadyExists, apierror.CodeOf(err))
	})

	t.Run("read back", func(t *testing.T) {
		got, err := env.restaurants.GetRestaurant(ctx, address)
		require.NoError(t, err)
		assert.Equal(t, "Street Beans", got.Name)
		assert.Equal(t, model.RestaurantFoodtruck, got.Type)
	})
}

func TestInitializeRestaurantValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	_, err := env.protocols.Init(ctx, ownerID)
	require.NoError(t, err)

	valid := CreateRestaurantArgs{
		ID: 1, Type: uint8(model.RestaurantCafe), Name: "Cafe", Symbol: "C",
		Currency: currencyID, URL: "https://c.example",
	}

	tests := []struct {
		name   string
		mutate func(*CreateRestaurantArgs)
	}{
		{"empty name", func(a *CreateRestaurantArgs) { a.Name = "" }},
		{"name too long", func(a *CreateRestaurantArgs) { a.Name = "an-extremely-long-restaurant-name-over-limit" }},
		{"empty symbol", func(a *CreateRestaurantArgs) { a.Symbol = "" }},
		{"symbol too long", func(a *CreateRestaurantArgs) { a.Symbol = "TOOLONGSYM" }},
		{"empty url", func(a *CreateRestaurantArgs) { a.URL = "" }},
		{"bad type", func(a *CreateRestaurantArgs) { a.Type = 99 }},
		{"bad currency", func(a *CreateRestaurantArgs) { a.Currency = "not-hex" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := valid
			tt.mutate(&args)
			_, _, err := env.restaurants.Initialize(ctx, adminID, args)
			require.Error(t, err)
		})
	}
}

func TestEmployeeRoster(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	address, err := env.initRestaurant(ctx)
	require.NoError(t, err)

	employee, err := env.restaurants.AddEmployee(ctx, adminID, address, AddEmployeeArgs{
		Wallet:   walletID,
		Role:     uint8(model.RoleTeamMember),
		Username: "bob",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeamMember, employee.Role)
	assert.Equal(t, address, employee.Restaurant)
	assert.True(t, employee.Initialized)

	t.Run("duplicate wallet", func(t *testing.T) {
		_, err := env.restaurants.AddEmployee(ctx, adminID, address, AddEmployeeArgs{
			Wallet: walletID, Role: uint8(model.RoleTeamLeader), Username: "bob2",
		})
		require.Error(t, err)
		assert.Equal(t, apierror.CodeAlreadyExists, apierror.CodeOf(err))
	})

	t.Run("non-admin cannot hire", func(t *testing.T) {
		_, err := env.restaurants.AddEmployee(ctx, strangerID, address, AddEmployeeArgs{
			Wallet: strangerID, Role: uint8(model.RoleTeamMember), Username: "eve",
		})
		require.Error(t, err)
		assert.Equal(t, apierror.CodeUnauthorized, apierror.CodeOf(err))
	})

	t.Run("promote", func(t *testing.T) {
		promoted, err := env.restaurants.PromoteEmployee(ctx, adminID, address, walletID, uint8(model.RoleManager))
		require.NoError(t, err)
		assert.Equal(t, model.RoleManager, promoted.Role)
	})

	t.Run("promote unknown wallet", func(t *testing.T) {
		_, err := env.restaurants.PromoteEmployee(ctx, adminID, address, strangerID, uint8(model.RoleManager))
		require.Error(t, err)
		assert.Equal(t, apierror.CodeNotFound, apierror.CodeOf(err))
	})

	t.Run("remove frees the slot", func(t *testing.T) {
		require.NoError(t, env.restaurants.RemoveEmployee(ctx, adminID, address, walletID))

		err := env.restaurants.RemoveEmployee(ctx, adminID, address, walletID)
		require.Error(t, err)
		assert.Equal(t, apierror.CodeNotFound, apierror.CodeOf(err))

		// A removed wallet can be hired again.
		_, err = env.restaurants.AddEmployee(ctx, adminID, address, AddEmployeeArgs{
			Wallet: walletID, Role: uint8(model.RoleTeamMember), Username: "bob",
		})
		require.NoError(t, err)
	})
}
