package service

import (
	"context"
	"fmt"
	"log"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/internal/repository"
	"hestia-ledger-api/pkg/addr"
	"hestia-ledger-api/pkg/apierror"
)

// MenuItemArgs are the caller-supplied fields of a menu item.
type MenuItemArgs struct {
	SKU         uint64   `json:"sku"`
	Category    uint8    `json:"category"`
	Name        string   `json:"name"`
	Price       uint64   `json:"price"`
	Description string   `json:"description"`
	Ingredients []uint64 `json:"ingredients"`
}

// MenuService manages the customer-facing menu catalog of a restaurant.
type MenuService struct {
	store repository.SlotStore
}

// NewMenuService creates a new menu service.
func NewMenuService(store repository.SlotStore) *MenuService {
	return &MenuService{store: store}
}

func validateMenuArgs(args MenuItemArgs) (model.MenuCategory, error) {
	category, ok := model.ParseMenuCategory(args.Category)
	if !ok {
		return 0, apierror.ValidationError("unrecognized menu category")
	}
	if args.Name == "" || len(args.Name) > maxItemNameLen {
		return 0, apierror.ValidationError("name must be 1-32 characters")
	}
	if len(args.Description) > maxItemDescriptionLen {
		return 0, apierror.ValidationError("description must be at most 128 characters")
	}
	return category, nil
}

// requireIngredients verifies every listed ingredient SKU exists in the same
// restaurant's inventory.
func requireIngredients(tx repository.ReadTx, restaurant addr.Address, ingredients []uint64) error {
	for _, sku := range ingredients {
		item, err := getInventoryItem(tx, restaurant, sku)
		if err != nil {
			return err
		}
		if item == nil {
			return apierror.UnknownIngredient(
				fmt.Sprintf("ingredient %d does not exist in inventory", sku))
		}
	}
	return nil
}

// AddItem creates a menu item. Restaurant admin only; new items start
// inactive until toggled onto the menu.
func (s *MenuService) AddItem(ctx context.Context, signer model.Identity, restaurant addr.Address, args MenuItemArgs) (*model.MenuItem, error) {
	category, err := validateMenuArgs(args)
	if err != nil {
		return nil, err
	}

	var item *model.MenuItem
	err = s.store.Update(ctx, func(tx repository.Tx) error {
		if err := requireUnlocked(tx); err != nil {
			return err
		}
		if _, err := requireRestaurantAdmin(tx, signer, restaurant); err != nil {
			return err
		}
		if err := requireIngredients(tx, restaurant, args.Ingredients); err != nil {
			return err
		}

		ma, bump := model.MenuItemAddress(restaurant, args.SKU)
		slot, err := tx.Get(ma)
		if err != nil {
			return apierror.InternalError(err.Error())
		}
		if slot != nil {
			return apierror.AlreadyExists(fmt.Sprintf("menu item %d already exists", args.SKU))
		}

		item = &model.MenuItem{
			SKU:         args.SKU,
			Category:    category,
			Name:        args.Name,
			Price:       args.Price,
			Description: args.Description,
			Ingredients: args.Ingredients,
			Active:      false,
			Bump:        bump,
		}
		return tx.Put(ma, model.TagMenuItem, item.Encode())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[MenuService] Menu item added, sku=%d name=%q restaurant=%s", args.SKU, args.Name, restaurant)
	return item, nil
}

// UpdateItem overwrites a menu item's mutable fields, keeping its activation
// state. Restaurant admin only.
func (s *MenuService) UpdateItem(ctx context.Context, signer model.Identity, restaurant addr.Address, sku uint64, args MenuItemArgs) (*model.MenuItem, error) {
	category, err := validateMenuArgs(args)
	if err != nil {
		return nil, err
	}

	var item *model.MenuItem
	err = s.store.Update(ctx, func(tx repository.Tx) error {
		if err := requireUnlocked(tx); err != nil {
			return err
		}
		if _, err := requireRestaurantAdmin(tx, signer, restaurant); err != nil {
			return err
		}
		if err := requireIngredients(tx, restaurant, args.Ingredients); err != nil {
			return err
		}

		existing, err := getMenuItem(tx, restaurant, sku)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierror.NotFound(fmt.Sprintf("menu item %d does not exist", sku))
		}

		existing.Category = category
		existing.Name = args.Name
		existing.Price = args.Price
		existing.Description = args.Description
		existing.Ingredients = args.Ingredients
		item = existing

		ma, _ := model.MenuItemAddress(restaurant, sku)
		return tx.Put(ma, model.TagMenuItem, existing.Encode())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[MenuService] Menu item updated, sku=%d restaurant=%s", sku, restaurant)
	return item, nil
}

// ToggleItem sets a menu item's active flag to the requested state.
// Restaurant admin only; setting the current state again is a no-op.
func (s *MenuService) ToggleItem(ctx context.Context, signer model.Identity, restaurant addr.Address, sku uint64, active bool) (*model.MenuItem, error) {
	var item *model.MenuItem
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		if err := requireUnlocked(tx); err != nil {
			return err
		}
		if _, err := requireRestaurantAdmin(tx, signer, restaurant); err != nil {
			return err
		}

		existing, err := getMenuItem(tx, restaurant, sku)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierror.NotFound(fmt.Sprintf("menu item %d does not exist", sku))
		}

		existing.Active = active
		item = existing

		ma, _ := model.MenuItemAddress(restaurant, sku)
		return tx.Put(ma, model.TagMenuItem, existing.Encode())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[MenuService] Menu item toggled, sku=%d active=%v restaurant=%s", sku, active, restaurant)
	return item, nil
}

// GetItem reads a menu item.
func (s *MenuService) GetItem(ctx context.Context, restaurant addr.Address, sku uint64) (*model.MenuItem, error) {
	var item *model.MenuItem
	err := s.store.View(ctx, func(tx repository.ReadTx) error {
		m, err := getMenuItem(tx, restaurant, sku)
		if err != nil {
			return err
		}
		if m == nil {
			return apierror.NotFound(fmt.Sprintf("menu item %d does not exist", sku))
		}
		item = m
		return nil
	})
	return item, err
}

// getMenuItem loads a menu item record, or nil if absent.
func getMenuItem(tx repository.ReadTx, restaurant addr.Address, sku uint64) (*model.MenuItem, error) {
	ma, _ := model.MenuItemAddress(restaurant, sku)
	slot, err := tx.Get(ma)
	if err != nil {
		return nil, apierror.InternalError(err.Error())
	}
	if slot == nil {
		return nil, nil
	}
	item, err := model.DecodeMenuItem(slot.Data)
	if err != nil {
		return nil, corruptRecord(model.TagMenuItem, err)
	}
	return item, nil
}
