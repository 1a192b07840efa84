package service

import (
	"context"
	"fmt"
	"log"

	"hestia-ledger-api/internal/asset"
	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/internal/repository"
	"hestia-ledger-api/pkg/addr"
	"hestia-ledger-api/pkg/apierror"
)

// InstructionTransfer is the only instruction allowed to accompany a
// place-order call: the settlement transfer itself.
const InstructionTransfer = "transfer"

const maxCustomerNameLen = 32

// PlaceOrderArgs are the caller-supplied fields of a new order. Instructions
// declares the instruction bundle enclosing the call so the engine can verify
// nothing beyond the expected transfer rides along.
type PlaceOrderArgs struct {
	OrderID      uint64         `json:"order_id"`
	Customer     model.Identity `json:"customer"`
	CustomerName string         `json:"customer_name"`
	Items        []uint64       `json:"items"`
	Total        uint64         `json:"total"`
	Instructions []string       `json:"instructions"`
}

// OrderService manages customer orders and their settlement. Every operation
// runs inside one store update: either every sub-step commits together or the
// whole call is a no-op.
type OrderService struct {
	store     repository.SlotStore
	transfers asset.TransferService
	now       Clock
}

// NewOrderService creates a new order service.
// Returns nil if transfers is nil (required dependency).
func NewOrderService(store repository.SlotStore, transfers asset.TransferService, now Clock) *OrderService {
	if transfers == nil {
		return nil
	}
	return &OrderService{store: store, transfers: transfers, now: orSystemClock(now)}
}

// inspectInstructions rejects any instruction beyond the single expected
// settlement transfer. This is the guard against an injected instruction
// siphoning funds inside the same call.
func inspectInstructions(instructions []string) error {
	transfers := 0
	for _, ins := range instructions {
		if ins != InstructionTransfer {
			return apierror.UnexpectedInstruction(
				fmt.Sprintf("unexpected instruction %q accompanies this call", ins))
		}
		transfers++
	}
	if transfers > 1 {
		return apierror.UnexpectedInstruction("more than one transfer accompanies this call")
	}
	return nil
}

// PlaceOrder creates an order and settles it in one atomic step. The signer
// must be the ordering customer; the payment moves from the customer's asset
// account to the restaurant's in the restaurant's recorded currency. Any
// failure aborts the whole call with no partial writes.
func (s *OrderService) PlaceOrder(ctx context.Context, signer model.Identity, restaurant addr.Address, args PlaceOrderArgs) (*model.Order, error) {
	if signer != args.Customer {
		return nil, apierror.Unauthorized("the signer must be the ordering customer")
	}
	if err := args.Customer.Validate(); err != nil {
		return nil, apierror.BadRequest(err.Error())
	}
	if len(args.Items) == 0 {
		return nil, apierror.ValidationError("an order must reference at least one menu item")
	}
	if len(args.CustomerName) > maxCustomerNameLen {
		return nil, apierror.ValidationError("customer name must be at most 32 characters")
	}
	if err := inspectInstructions(args.Instructions); err != nil {
		return nil, err
	}

	var order *model.Order
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		if err := requireUnlocked(tx); err != nil {
			return err
		}

		r, err := getRestaurant(tx, restaurant)
		if err != nil {
			return err
		}

		// Resolve every referenced menu item and recompute the total from
		// stored prices, never from the client's view of them.
		var total uint64
		for _, sku := range args.Items {
			item, err := getMenuItem(tx, restaurant, sku)
			if err != nil {
				return err
			}
			if item == nil {
				return apierror.UnknownMenuItem(fmt.Sprintf("menu item %d does not exist", sku))
			}
			if !item.Active {
				return apierror.MenuItemInactive(fmt.Sprintf("menu item %d is not active", sku))
			}
			total += item.Price
		}
		if total != args.Total {
			return apierror.TotalMismatch(
				fmt.Sprintf("order total %d does not match menu price sum %d", args.Total, total))
		}

		oa, obump := model.OrderAddress(restaurant, args.OrderID, args.Customer)
		slot, err := tx.Get(oa)
		if err != nil {
			return apierror.InternalError(err.Error())
		}
		if slot != nil {
			return apierror.AlreadyExists(fmt.Sprintf("order %d already exists", args.OrderID))
		}

		// Lazily create the customer profile on first order.
		ca, cbump := model.CustomerAddress(restaurant, args.Customer)
		customerSlot, err := tx.Get(ca)
		if err != nil {
			return apierror.InternalError(err.Error())
		}
		if customerSlot == nil {
			customer := &model.Customer{Initialized: true, Bump: cbump}
			if err := tx.Put(ca, model.TagCustomer, customer.Encode()); err != nil {
				return err
			}
			r.CustomerCount++
			if err := tx.Put(restaurant, model.TagRestaurant, r.Encode()); err != nil {
				return err
			}
		}

		// Settlement. A transfer failure rolls back every staged write above.
		if err := s.transfers.Transfer(ctx, r.Currency, args.Customer, r.Owner, total); err != nil {
			return err
		}

		order = &model.Order{
			OrderID:      args.OrderID,
			Customer:     args.Customer,
			CustomerName: args.CustomerName,
			Items:        args.Items,
			Total:        total,
			Status:       model.OrderPlaced,
			CreatedAt:    s.now().Unix(),
			Bump:         obump,
		}
		return tx.Put(oa, model.TagOrder, order.Encode())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[OrderService] Order placed, id=%d total=%d customer=%s restaurant=%s",
		args.OrderID, order.Total, args.Customer, restaurant)
	return order, nil
}

// UpdateOrder transitions an order out of Placed. The signer must be the
// restaurant admin or an employee ranked above TeamMember. Fulfilling an
// order deducts every ingredient of every ordered item from inventory; a
// shortfall aborts the whole transition.
func (s *OrderService) UpdateOrder(ctx context.Context, signer model.Identity, restaurant addr.Address, orderID uint64, customer model.Identity, newStatus uint8) (*model.Order, error) {
	status, ok := model.ParseOrderStatus(newStatus)
	if !ok {
		return nil, apierror.ValidationError("unrecognized order status")
	}
	if status == model.OrderPlaced {
		return nil, apierror.InvalidTransition("an order cannot transition back to placed")
	}

	var order *model.Order
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		if err := requireUnlocked(tx); err != nil {
			return err
		}

		r, err := getRestaurant(tx, restaurant)
		if err != nil {
			return err
		}
		if signer != r.Owner {
			employee, err := getEmployee(tx, restaurant, signer)
			if err != nil {
				return err
			}
			if employee == nil || employee.Role == model.RoleTeamMember {
				return apierror.Unauthorized("")
			}
		}

		o, err := getOrder(tx, restaurant, orderID, customer)
		if err != nil {
			return err
		}
		if o == nil {
			return apierror.NotFound(fmt.Sprintf("order %d does not exist", orderID))
		}
		if o.Status.Terminal() {
			return apierror.InvalidTransition(
				fmt.Sprintf("order %d is already %s", orderID, o.Status))
		}

		nowUnix := s.now().Unix()
		if status == model.OrderFulfilled {
			menuItems := make([]*model.MenuItem, 0, len(o.Items))
			for _, sku := range o.Items {
				item, err := getMenuItem(tx, restaurant, sku)
				if err != nil {
					return err
				}
				if item == nil {
					return apierror.UnknownMenuItem(fmt.Sprintf("menu item %d does not exist", sku))
				}
				menuItems = append(menuItems, item)
			}
			if err := deductIngredients(tx, restaurant, menuItems, nowUnix); err != nil {
				return err
			}
		}

		o.Status = status
		o.UpdatedAt = &nowUnix
		order = o

		oa, _ := model.OrderAddress(restaurant, orderID, customer)
		return tx.Put(oa, model.TagOrder, o.Encode())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[OrderService] Order updated, id=%d status=%s restaurant=%s", orderID, status, restaurant)
	return order, nil
}

// CancelOrder cancels a placed order. The signer must be the order's customer
// or the restaurant admin.
func (s *OrderService) CancelOrder(ctx context.Context, signer model.Identity, restaurant addr.Address, orderID uint64, customer model.Identity) (*model.Order, error) {
	var order *model.Order
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		if err := requireUnlocked(tx); err != nil {
			return err
		}

		r, err := getRestaurant(tx, restaurant)
		if err != nil {
			return err
		}

		o, err := getOrder(tx, restaurant, orderID, customer)
		if err != nil {
			return err
		}
		if o == nil {
			return apierror.NotFound(fmt.Sprintf("order %d does not exist", orderID))
		}
		if signer != o.Customer && signer != r.Owner {
			return apierror.Unauthorized("")
		}
		if o.Status.Terminal() {
			return apierror.InvalidTransition(
				fmt.Sprintf("order %d is already %s", orderID, o.Status))
		}

		nowUnix := s.now().Unix()
		o.Status = model.OrderCancelled
		o.UpdatedAt = &nowUnix
		order = o

		oa, _ := model.OrderAddress(restaurant, orderID, customer)
		return tx.Put(oa, model.TagOrder, o.Encode())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[OrderService] Order cancelled, id=%d restaurant=%s", orderID, restaurant)
	return order, nil
}

// GetOrder reads an order record.
func (s *OrderService) GetOrder(ctx context.Context, restaurant addr.Address, orderID uint64, customer model.Identity) (*model.Order, error) {
	var order *model.Order
	err := s.store.View(ctx, func(tx repository.ReadTx) error {
		o, err := getOrder(tx, restaurant, orderID, customer)
		if err != nil {
			return err
		}
		if o == nil {
			return apierror.NotFound(fmt.Sprintf("order %d does not exist", orderID))
		}
		order = o
		return nil
	})
	return order, err
}

// getOrder loads an order record, or nil if absent.
func getOrder(tx repository.ReadTx, restaurant addr.Address, orderID uint64, customer model.Identity) (*model.Order, error) {
	oa, _ := model.OrderAddress(restaurant, orderID, customer)
	slot, err := tx.Get(oa)
	if err != nil {
		return nil, apierror.InternalError(err.Error())
	}
	if slot == nil {
		return nil, nil
	}
	order, err := model.DecodeOrder(slot.Data)
	if err != nil {
		return nil, corruptRecord(model.TagOrder, err)
	}
	return order, nil
}
