package service

import (
	"fmt"
	"time"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/internal/repository"
	"hestia-ledger-api/pkg/addr"
	"hestia-ledger-api/pkg/apierror"
)

// Clock supplies execution-time timestamps. Injected so tests run against a
// fixed instant.
type Clock func() time.Time

func orSystemClock(now Clock) Clock {
	if now == nil {
		return time.Now
	}
	return now
}

// getProtocol loads the protocol singleton, or nil if it was never
// initialized.
func getProtocol(tx repository.ReadTx) (*model.Protocol, error) {
	a, _ := model.ProtocolAddress()
	slot, err := tx.Get(a)
	if err != nil {
		return nil, apierror.InternalError(err.Error())
	}
	if slot == nil {
		return nil, nil
	}
	p, err := model.DecodeProtocol(slot.Data)
	if err != nil {
		return nil, corruptRecord(model.TagProtocol, err)
	}
	return p, nil
}

// requireUnlocked rejects tenant-mutating operations while the protocol lock
// is set.
func requireUnlocked(tx repository.ReadTx) error {
	p, err := getProtocol(tx)
	if err != nil {
		return err
	}
	if p != nil && p.Locked {
		return apierror.Locked()
	}
	return nil
}

// requireAdmin resolves the signer to an active admin profile.
func requireAdmin(tx repository.ReadTx, signer model.Identity) (*model.AdminProfile, error) {
	a, _ := model.AdminAddress(signer)
	slot, err := tx.Get(a)
	if err != nil {
		return nil, apierror.InternalError(err.Error())
	}
	if slot == nil {
		return nil, apierror.Unauthorized("")
	}
	profile, err := model.DecodeAdminProfile(slot.Data)
	if err != nil {
		return nil, corruptRecord(model.TagAdmin, err)
	}
	if !profile.Active {
		return nil, apierror.Unauthorized("")
	}
	return profile, nil
}

// getRestaurant loads a restaurant record by address, failing NOT_FOUND when
// the slot is empty.
func getRestaurant(tx repository.ReadTx, restaurant addr.Address) (*model.Restaurant, error) {
	slot, err := tx.Get(restaurant)
	if err != nil {
		return nil, apierror.InternalError(err.Error())
	}
	if slot == nil {
		return nil, apierror.NotFound("restaurant not found")
	}
	r, err := model.DecodeRestaurant(slot.Data)
	if err != nil {
		return nil, corruptRecord(model.TagRestaurant, err)
	}
	return r, nil
}

// requireRestaurantAdmin succeeds only when the signer holds an active admin
// profile and is the recorded owner of the restaurant. Authorization failure
// leaves all state untouched: it runs before any tenant data is staged.
func requireRestaurantAdmin(tx repository.ReadTx, signer model.Identity, restaurant addr.Address) (*model.Restaurant, error) {
	if _, err := requireAdmin(tx, signer); err != nil {
		return nil, err
	}
	r, err := getRestaurant(tx, restaurant)
	if err != nil {
		return nil, err
	}
	if r.Owner != signer {
		return nil, apierror.Unauthorized("")
	}
	return r, nil
}

// getEmployee loads an employee record for a (restaurant, wallet) pair, or
// nil if absent.
func getEmployee(tx repository.ReadTx, restaurant addr.Address, wallet model.Identity) (*model.Employee, error) {
	a, _ := model.EmployeeAddress(restaurant, wallet)
	slot, err := tx.Get(a)
	if err != nil {
		return nil, apierror.InternalError(err.Error())
	}
	if slot == nil {
		return nil, nil
	}
	e, err := model.DecodeEmployee(slot.Data)
	if err != nil {
		return nil, corruptRecord(model.TagEmployee, err)
	}
	return e, nil
}

func corruptRecord(kind string, err error) *apierror.Error {
	return apierror.InternalError(fmt.Sprintf("corrupt %s record: %v", kind, err))
}
