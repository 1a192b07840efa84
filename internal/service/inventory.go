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

const (
	maxItemNameLen        = 32
	maxItemDescriptionLen = 128
)

// UpsertInventoryArgs are the caller-supplied fields of a stock record. The
// Initialized flag is the explicit create/update discriminator: false means
// create, true means update. The caller declares intent instead of the
// service probing for existence, so a slot left in a transient state cannot
// silently flip a create into an update.
type UpsertInventoryArgs struct {
	SKU         uint64 `json:"sku"`
	Category    uint8  `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       uint64 `json:"price"`
	Stock       uint64 `json:"stock"`
	Initialized bool   `json:"initialized"`
}

// InventoryService manages per-SKU stock records scoped to a restaurant.
type InventoryService struct {
	store repository.SlotStore
	now   Clock
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(store repository.SlotStore, now Clock) *InventoryService {
	return &InventoryService{store: store, now: orSystemClock(now)}
}

// Upsert creates or updates a stock record, per args.Initialized. Restaurant
// admin only.
func (s *InventoryService) Upsert(ctx context.Context, signer model.Identity, restaurant addr.Address, args UpsertInventoryArgs) (*model.InventoryItem, error) {
	category, ok := model.ParseInventoryCategory(args.Category)
	if !ok {
		return nil, apierror.ValidationError("unrecognized inventory category")
	}
	if args.Name == "" || len(args.Name) > maxItemNameLen {
		return nil, apierror.ValidationError("name must be 1-32 characters")
	}
	if len(args.Description) > maxItemDescriptionLen {
		return nil, apierror.ValidationError("description must be at most 128 characters")
	}

	var item *model.InventoryItem
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		if err := requireUnlocked(tx); err != nil {
			return err
		}
		if _, err := requireRestaurantAdmin(tx, signer, restaurant); err != nil {
			return err
		}

		ia, bump := model.InventoryAddress(restaurant, args.SKU)
		slot, err := tx.Get(ia)
		if err != nil {
			return apierror.InternalError(err.Error())
		}

		if !args.Initialized {
			// Create
			if slot != nil {
				return apierror.AlreadyExists(fmt.Sprintf("inventory item %d already exists", args.SKU))
			}
			item = &model.InventoryItem{
				SKU:         args.SKU,
				Category:    category,
				Name:        args.Name,
				Description: args.Description,
				Price:       args.Price,
				Stock:       args.Stock,
				LastOrder:   s.now().Unix(),
				Initialized: true,
				Bump:        bump,
			}
			return tx.Put(ia, model.TagInventory, item.Encode())
		}

		// Update
		if slot == nil {
			return apierror.NotFound(fmt.Sprintf("inventory item %d does not exist", args.SKU))
		}
		existing, err := model.DecodeInventoryItem(slot.Data)
		if err != nil {
			return corruptRecord(model.TagInventory, err)
		}

		existing.Category = category
		existing.Name = args.Name
		existing.Description = args.Description
		existing.Price = args.Price
		existing.Stock = args.Stock
		item = existing
		return tx.Put(ia, model.TagInventory, existing.Encode())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[InventoryService] Item upserted, sku=%d stock=%d restaurant=%s", args.SKU, args.Stock, restaurant)
	return item, nil
}

// Remove deletes a stock record. Restaurant admin only.
func (s *InventoryService) Remove(ctx context.Context, signer model.Identity, restaurant addr.Address, sku uint64) error {
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		if err := requireUnlocked(tx); err != nil {
			return err
		}
		if _, err := requireRestaurantAdmin(tx, signer, restaurant); err != nil {
			return err
		}

		ia, _ := model.InventoryAddress(restaurant, sku)
		slot, err := tx.Get(ia)
		if err != nil {
			return apierror.InternalError(err.Error())
		}
		if slot == nil {
			return apierror.NotFound(fmt.Sprintf("inventory item %d does not exist", sku))
		}
		return tx.Delete(ia)
	})
	if err != nil {
		return err
	}

	log.Printf("[InventoryService] Item removed, sku=%d restaurant=%s", sku, restaurant)
	return nil
}

// GetItem reads a stock record.
func (s *InventoryService) GetItem(ctx context.Context, restaurant addr.Address, sku uint64) (*model.InventoryItem, error) {
	var item *model.InventoryItem
	err := s.store.View(ctx, func(tx repository.ReadTx) error {
		i, err := getInventoryItem(tx, restaurant, sku)
		if err != nil {
			return err
		}
		if i == nil {
			return apierror.NotFound(fmt.Sprintf("inventory item %d does not exist", sku))
		}
		item = i
		return nil
	})
	return item, err
}

// getInventoryItem loads a stock record, or nil if absent.
func getInventoryItem(tx repository.ReadTx, restaurant addr.Address, sku uint64) (*model.InventoryItem, error) {
	ia, _ := model.InventoryAddress(restaurant, sku)
	slot, err := tx.Get(ia)
	if err != nil {
		return nil, apierror.InternalError(err.Error())
	}
	if slot == nil {
		return nil, nil
	}
	item, err := model.DecodeInventoryItem(slot.Data)
	if err != nil {
		return nil, corruptRecord(model.TagInventory, err)
	}
	return item, nil
}

// deductIngredients consumes one unit of every ingredient of every ordered
// menu item. Demand is aggregated per SKU first so a shortfall is detected
// before anything is staged; a shortfall fails the whole fulfillment with
// INSUFFICIENT_STOCK, never a silent clamp.
func deductIngredients(tx repository.Tx, restaurant addr.Address, menuItems []*model.MenuItem, nowUnix int64) error {
	demand := make(map[uint64]uint64)
	order := make([]uint64, 0, len(menuItems))
	for _, m := range menuItems {
		for _, sku := range m.Ingredients {
			if _, seen := demand[sku]; !seen {
				order = append(order, sku)
			}
			demand[sku]++
		}
	}

	for _, sku := range order {
		item, err := getInventoryItem(tx, restaurant, sku)
		if err != nil {
			return err
		}
		if item == nil || item.Stock < demand[sku] {
			return apierror.InsufficientStock(
				fmt.Sprintf("inventory item %d cannot cover %d units", sku, demand[sku]))
		}

		item.Stock -= demand[sku]
		item.LastOrder = nowUnix
		ia, _ := model.InventoryAddress(restaurant, sku)
		if err := tx.Put(ia, model.TagInventory, item.Encode()); err != nil {
			return err
		}
	}
	return nil
}
