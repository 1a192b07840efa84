package service

import (
	"context"
	"log"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/internal/repository"
	"hestia-ledger-api/pkg/addr"
	"hestia-ledger-api/pkg/apierror"
)

const (
	maxRestaurantNameLen = 32
	maxSymbolLen         = 8
	maxURLLen            = 64
)

// CreateRestaurantArgs are the caller-supplied fields of a new tenant.
type CreateRestaurantArgs struct {
	ID       uint64         `json:"id"`
	Type     uint8          `json:"restaurant_type"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Currency model.Identity `json:"currency"`
	URL      string         `json:"url"`
}

// AddEmployeeArgs are the caller-supplied fields of a new staff record.
type AddEmployeeArgs struct {
	Wallet   model.Identity `json:"wallet"`
	Role     uint8          `json:"role"`
	Username string         `json:"username"`
}

// RestaurantService manages tenant records and their staff rosters.
type RestaurantService struct {
	store repository.SlotStore
	now   Clock
}

// NewRestaurantService creates a new restaurant service.
func NewRestaurantService(store repository.SlotStore, now Clock) *RestaurantService {
	return &RestaurantService{store: store, now: orSystemClock(now)}
}

func validateRestaurantArgs(args CreateRestaurantArgs) error {
	if args.Name == "" || len(args.Name) > maxRestaurantNameLen {
		return apierror.ValidationError("name must be 1-32 characters")
	}
	if args.Symbol == "" || len(args.Symbol) > maxSymbolLen {
		return apierror.ValidationError("symbol must be 1-8 characters")
	}
	if args.URL == "" || len(args.URL) > maxURLLen {
		return apierror.ValidationError("url must be 1-64 characters")
	}
	if _, ok := model.ParseRestaurantType(args.Type); !ok {
		return apierror.ValidationError("unrecognized restaurant type")
	}
	if err := args.Currency.Validate(); err != nil {
		return apierror.ValidationError("currency is not a well-formed asset identity")
	}
	return nil
}

// Initialize creates a tenant owned by the signer. The signer also receives
// an admin profile if one does not exist yet, so tenant-scoped authorization
// resolves without a separate enrollment step.
func (s *RestaurantService) Initialize(ctx context.Context, signer model.Identity, args CreateRestaurantArgs) (*model.Restaurant, addr.Address, error) {
	if err := signer.Validate(); err != nil {
		return nil, "", apierror.BadRequest(err.Error())
	}
	if err := validateRestaurantArgs(args); err != nil {
		return nil, "", err
	}

	var restaurant *model.Restaurant
	var address addr.Address
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		if err := requireUnlocked(tx); err != nil {
			return err
		}

		ra, rbump := model.RestaurantAddress(signer)
		slot, err := tx.Get(ra)
		if err != nil {
			return apierror.InternalError(err.Error())
		}
		if slot != nil {
			return apierror.AlreadyExists("a restaurant already exists for this admin identity")
		}

		restaurantType, _ := model.ParseRestaurantType(args.Type)
		restaurant = &model.Restaurant{
			ID:       args.ID,
			Type:     restaurantType,
			Owner:    signer,
			Name:     args.Name,
			Symbol:   args.Symbol,
			Currency: args.Currency,
			URL:      args.URL,
			Bump:     rbump,
		}
		address = ra
		if err := tx.Put(ra, model.TagRestaurant, restaurant.Encode()); err != nil {
			return err
		}

		aa, abump := model.AdminAddress(signer)
		adminSlot, err := tx.Get(aa)
		if err != nil {
			return apierror.InternalError(err.Error())
		}
		if adminSlot == nil {
			owner := &model.AdminProfile{
				Username:  "owner",
				CreatedAt: s.now().Unix(),
				Active:    true,
				Bump:      abump,
			}
			if err := tx.Put(aa, model.TagAdmin, owner.Encode()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	log.Printf("[RestaurantService] Restaurant created, name=%q symbol=%s address=%s", args.Name, args.Symbol, address)
	return restaurant, address, nil
}

// GetRestaurant reads a tenant record by derived address.
func (s *RestaurantService) GetRestaurant(ctx context.Context, restaurant addr.Address) (*model.Restaurant, error) {
	var out *model.Restaurant
	err := s.store.View(ctx, func(tx repository.ReadTx) error {
		r, err := getRestaurant(tx, restaurant)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	return out, err
}

// AddEmployee creates a staff record for (restaurant, wallet). Restaurant
// admin only.
func (s *RestaurantService) AddEmployee(ctx context.Context, signer model.Identity, restaurant addr.Address, args AddEmployeeArgs) (*model.Employee, error) {
	if err := args.Wallet.Validate(); err != nil {
		return nil, apierror.BadRequest(err.Error())
	}
	if args.Username == "" || len(args.Username) > maxUsernameLen {
		return nil, apierror.ValidationError("username must be 1-32 characters")
	}
	role, ok := model.ParseEmployeeRole(args.Role)
	if !ok {
		return nil, apierror.ValidationError("unrecognized employee role")
	}

	var employee *model.Employee
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		if err := requireUnlocked(tx); err != nil {
			return err
		}
		if _, err := requireRestaurantAdmin(tx, signer, restaurant); err != nil {
			return err
		}

		ea, bump := model.EmployeeAddress(restaurant, args.Wallet)
		slot, err := tx.Get(ea)
		if err != nil {
			return apierror.InternalError(err.Error())
		}
		if slot != nil {
			return apierror.AlreadyExists("an employee record already exists for this wallet")
		}

		employee = &model.Employee{
			Wallet:      args.Wallet,
			Restaurant:  restaurant,
			Role:        role,
			Username:    args.Username,
			Initialized: true,
			Bump:        bump,
		}
		return tx.Put(ea, model.TagEmployee, employee.Encode())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[RestaurantService] Employee added, username=%s role=%s restaurant=%s", args.Username, role, restaurant)
	return employee, nil
}

// PromoteEmployee changes an employee's role. Restaurant admin only.
func (s *RestaurantService) PromoteEmployee(ctx context.Context, signer model.Identity, restaurant addr.Address, wallet model.Identity, newRole uint8) (*model.Employee, error) {
	role, ok := model.ParseEmployeeRole(newRole)
	if !ok {
		return nil, apierror.ValidationError("unrecognized employee role")
	}

	var employee *model.Employee
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		if err := requireUnlocked(tx); err != nil {
			return err
		}
		if _, err := requireRestaurantAdmin(tx, signer, restaurant); err != nil {
			return err
		}

		e, err := getEmployee(tx, restaurant, wallet)
		if err != nil {
			return err
		}
		if e == nil {
			return apierror.NotFound("no employee record exists for this wallet")
		}

		e.Role = role
		employee = e

		ea, _ := model.EmployeeAddress(restaurant, wallet)
		return tx.Put(ea, model.TagEmployee, e.Encode())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[RestaurantService] Employee promoted, wallet=%s role=%s", wallet, role)
	return employee, nil
}

// RemoveEmployee deletes a staff record. Restaurant admin only.
func (s *RestaurantService) RemoveEmployee(ctx context.Context, signer model.Identity, restaurant addr.Address, wallet model.Identity) error {
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		if err := requireUnlocked(tx); err != nil {
			return err
		}
		if _, err := requireRestaurantAdmin(tx, signer, restaurant); err != nil {
			return err
		}

		e, err := getEmployee(tx, restaurant, wallet)
		if err != nil {
			return err
		}
		if e == nil {
			return apierror.NotFound("no employee record exists for this wallet")
		}

		ea, _ := model.EmployeeAddress(restaurant, wallet)
		return tx.Delete(ea)
	})
	if err != nil {
		return err
	}

	log.Printf("[RestaurantService] Employee removed, wallet=%s restaurant=%s", wallet, restaurant)
	return nil
}
