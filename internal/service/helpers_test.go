package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hestia-ledger-api/internal/asset"
	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/internal/repository"
	"hestia-ledger-api/pkg/addr"
)

// testID builds a well-formed identity from a single repeated byte.
func testID(b byte) model.Identity {
	return model.Identity(strings.Repeat(fmt.Sprintf("%02x", b), 32))
}

var (
	ownerID    = testID(0x01)
	adminID    = testID(0x02)
	customerID = testID(0x03)
	walletID   = testID(0x04)
	currencyID = testID(0x05)
	strangerID = testID(0x06)
)

var fixedNow = time.Unix(1700000000, 0)

func fixedClock() time.Time { return fixedNow }

// testEnv wires every service against the in-memory slot store, the in-memory
// transfer service, and a fixed clock.
type testEnv struct {
	store       *repository.MemorySlotStore
	transfers   *asset.MemoryTransferService
	protocols   *ProtocolService
	restaurants *RestaurantService
	inventory   *InventoryService
	menu        *MenuService
	orders      *OrderService
}

func newTestEnv() *testEnv {
	store := repository.NewMemorySlotStore()
	transfers := asset.NewMemoryTransferService()
	return &testEnv{
		store:       store,
		transfers:   transfers,
		protocols:   NewProtocolService(store, fixedClock),
		restaurants: NewRestaurantService(store, fixedClock),
		inventory:   NewInventoryService(store, fixedClock),
		menu:        NewMenuService(store),
		orders:      NewOrderService(store, transfers, fixedClock),
	}
}

// initRestaurant initializes the protocol under ownerID and creates a
// restaurant owned by adminID, returning its address.
func (e *testEnv) initRestaurant(ctx context.Context) (addr.Address, error) {
	if _, err := e.protocols.Init(ctx, ownerID); err != nil {
		return "", err
	}
	_, address, err := e.restaurants.Initialize(ctx, adminID, CreateRestaurantArgs{
		ID:       1,
		Type:     uint8(model.RestaurantCafe),
		Name:     "Hestia Cafe",
		Symbol:   "HST",
		Currency: currencyID,
		URL:      "https://hestia.example",
	})
	return address, err
}

// stockAndMenu seeds one inventory SKU and one active menu item priced at
// price, referencing that SKU as its only ingredient.
func (e *testEnv) stockAndMenu(ctx context.Context, restaurant addr.Address, invSKU, menuSKU, price, stock uint64) error {
	if _, err := e.inventory.Upsert(ctx, adminID, restaurant, UpsertInventoryArgs{
		SKU:      invSKU,
		Category: uint8(model.InventoryFood),
		Name:     "beans",
		Price:    2,
		Stock:    stock,
	}); err != nil {
		return err
	}
	if _, err := e.menu.AddItem(ctx, adminID, restaurant, MenuItemArgs{
		SKU:         menuSKU,
		Category:    uint8(model.MenuBeverage),
		Name:        "espresso",
		Price:       price,
		Ingredients: []uint64{invSKU},
	}); err != nil {
		return err
	}
	_, err := e.menu.ToggleItem(ctx, adminID, restaurant, menuSKU, true)
	return err
}
