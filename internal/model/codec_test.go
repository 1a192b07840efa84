package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolRoundTrip(t *testing.T) {
	p := &Protocol{Owner: Identity("ab"), Locked: true, Bump: 254}
	got, err := DecodeProtocol(p.Encode())
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestAdminProfileRoundTrip(t *testing.T) {
	a := &AdminProfile{Username: "alice", CreatedAt: 1700000000, Active: true, Bump: 255}
	got, err := DecodeAdminProfile(a.Encode())
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestRestaurantRoundTrip(t *testing.T) {
	r := &Restaurant{
		ID:            7,
		Type:          RestaurantCafe,
		Owner:         Identity("owner"),
		Name:          "Hestia Cafe",
		Symbol:        "HST",
		Currency:      Identity("currency"),
		URL:           "https://hestia.example",
		CustomerCount: 12,
		Bump:          253,
	}
	got, err := DecodeRestaurant(r.Encode())
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestEmployeeRoundTrip(t *testing.T) {
	e := &Employee{
		Wallet:      Identity("wallet"),
		Restaurant:  "restaurant-address",
		Role:        RoleManager,
		Username:    "bob",
		Initialized: true,
		Bump:        252,
	}
	got, err := DecodeEmployee(e.Encode())
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestInventoryItemRoundTrip(t *testing.T) {
	it := &InventoryItem{
		SKU:         10,
		Category:    InventoryBeverages,
		Name:        "beans",
		Description: "dark roast",
		Price:       3,
		Stock:       40,
		LastOrder:   1700000000,
		Initialized: true,
		Bump:        251,
	}
	got, err := DecodeInventoryItem(it.Encode())
	require.NoError(t, err)
	assert.Equal(t, it, got)
}

func TestMenuItemRoundTrip(t *testing.T) {
	m := &MenuItem{
		SKU:         100,
		Category:    MenuBeverage,
		Name:        "espresso",
		Price:       4,
		Description: "double shot",
		Ingredients: []uint64{1, 2, 3},
		Active:      true,
		Bump:        250,
	}
	got, err := DecodeMenuItem(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestCustomerRoundTrip(t *testing.T) {
	c := &Customer{Initialized: true, Bump: 249}
	got, err := DecodeCustomer(c.Encode())
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestOrderRoundTrip(t *testing.T) {
	updated := int64(1700000100)

	tests := []struct {
		name  string
		order *Order
	}{
		{
			name: "fresh order without updated_at",
			order: &Order{
				OrderID:      1,
				Customer:     Identity("customer"),
				CustomerName: "carol",
				Items:        []uint64{100, 100},
				Total:        8,
				Status:       OrderPlaced,
				CreatedAt:    1700000000,
				Bump:         248,
			},
		},
		{
			name: "transitioned order with updated_at",
			order: &Order{
				OrderID:   2,
				Customer:  Identity("customer"),
				Items:     []uint64{100},
				Total:     4,
				Status:    OrderFulfilled,
				CreatedAt: 1700000000,
				UpdatedAt: &updated,
				Bump:      247,
			},
		},
		{
			name: "empty item list",
			order: &Order{
				OrderID:   3,
				Customer:  Identity("customer"),
				Items:     []uint64{},
				Status:    OrderCancelled,
				CreatedAt: 1700000000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeOrder(tt.order.Encode())
			require.NoError(t, err)
			assert.Equal(t, tt.order, got)
		})
	}
}

func TestDecodeRejectsBadRecords(t *testing.T) {
	valid := (&Protocol{Owner: Identity("ab"), Bump: 1}).Encode()

	t.Run("empty", func(t *testing.T) {
		_, err := DecodeProtocol(nil)
		require.Error(t, err)
	})

	t.Run("wrong layout version", func(t *testing.T) {
		bad := append([]byte{}, valid...)
		bad[0] = 9
		_, err := DecodeProtocol(bad)
		require.Error(t, err)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := DecodeProtocol(valid[:len(valid)-1])
		require.Error(t, err)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := DecodeProtocol(append(append([]byte{}, valid...), 0xFF))
		require.Error(t, err)
	})

	t.Run("cross-entity decode fails", func(t *testing.T) {
		// Same layout version byte, different shape: the reader runs out of
		// data or leaves a remainder.
		order := (&Order{OrderID: 1, Customer: Identity("c"), CreatedAt: 1}).Encode()
		_, err := DecodeCustomer(order)
		require.Error(t, err)
	})
}

func TestDerivedAddressesAreDistinct(t *testing.T) {
	restaurant, _ := RestaurantAddress(Identity("aa"))

	inv, _ := InventoryAddress(restaurant, 1)
	menu, _ := MenuItemAddress(restaurant, 1)
	assert.NotEqual(t, inv, menu, "tags separate entity kinds sharing key material")

	other, _ := InventoryAddress(restaurant, 2)
	assert.NotEqual(t, inv, other)

	elsewhere, _ := InventoryAddress("other-restaurant", 1)
	assert.NotEqual(t, inv, elsewhere)

	again, _ := InventoryAddress(restaurant, 1)
	assert.Equal(t, inv, again, "derivation is deterministic")
}
