package service

import (
	"context"
	"log"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/internal/repository"
	"hestia-ledger-api/pkg/apierror"
)

const maxUsernameLen = 32

// ProtocolService owns the protocol singleton and the admin registry:
// genesis init, the emergency lock, and owner-only admin management.
type ProtocolService struct {
	store repository.SlotStore
	now   Clock
}

// NewProtocolService creates a new protocol service.
func NewProtocolService(store repository.SlotStore, now Clock) *ProtocolService {
	return &ProtocolService{store: store, now: orSystemClock(now)}
}

// Init creates the protocol singleton with the signer as owner, unlocked.
func (s *ProtocolService) Init(ctx context.Context, signer model.Identity) (*model.Protocol, error) {
	if err := signer.Validate(); err != nil {
		return nil, apierror.BadRequest(err.Error())
	}

	var protocol *model.Protocol
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		a, bump := model.ProtocolAddress()
		slot, err := tx.Get(a)
		if err != nil {
			return apierror.InternalError(err.Error())
		}
		if slot != nil {
			return apierror.AlreadyInitialized("")
		}

		protocol = &model.Protocol{Owner: signer, Locked: false, Bump: bump}
		return tx.Put(a, model.TagProtocol, protocol.Encode())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ProtocolService] Protocol initialized, owner=%s", signer)
	return protocol, nil
}

// ToggleLock flips the protocol lock. Owner only. The flag is visible to all
// tenant operations as soon as the update commits.
func (s *ProtocolService) ToggleLock(ctx context.Context, signer model.Identity) (*model.Protocol, error) {
	var protocol *model.Protocol
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		p, err := getProtocol(tx)
		if err != nil {
			return err
		}
		if p == nil {
			return apierror.NotFound("protocol not initialized")
		}
		if p.Owner != signer {
			return apierror.Unauthorized("")
		}

		p.Locked = !p.Locked
		protocol = p

		a, _ := model.ProtocolAddress()
		return tx.Put(a, model.TagProtocol, p.Encode())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ProtocolService] Protocol lock toggled, locked=%v", protocol.Locked)
	return protocol, nil
}

// AddAdmin creates (or reactivates) an admin profile for target. Owner only.
func (s *ProtocolService) AddAdmin(ctx context.Context, signer, target model.Identity, username string) (*model.AdminProfile, error) {
	if err := target.Validate(); err != nil {
		return nil, apierror.BadRequest(err.Error())
	}
	if username == "" || len(username) > maxUsernameLen {
		return nil, apierror.ValidationError("username must be 1-32 characters")
	}

	var profile *model.AdminProfile
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		p, err := getProtocol(tx)
		if err != nil {
			return err
		}
		if p == nil {
			return apierror.NotFound("protocol not initialized")
		}
		if p.Owner != signer {
			return apierror.Unauthorized("")
		}

		a, bump := model.AdminAddress(target)
		slot, err := tx.Get(a)
		if err != nil {
			return apierror.InternalError(err.Error())
		}
		if slot != nil {
			existing, err := model.DecodeAdminProfile(slot.Data)
			if err != nil {
				return corruptRecord(model.TagAdmin, err)
			}
			if existing.Active {
				return apierror.AlreadyExists("an active admin profile already exists for this identity")
			}
		}

		profile = &model.AdminProfile{
			Username:  username,
			CreatedAt: s.now().Unix(),
			Active:    true,
			Bump:      bump,
		}
		return tx.Put(a, model.TagAdmin, profile.Encode())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ProtocolService] Admin added, username=%s identity=%s", username, target)
	return profile, nil
}

// RemoveAdmin deactivates target's admin profile. Owner only; the owner
// cannot be removed.
func (s *ProtocolService) RemoveAdmin(ctx context.Context, signer, target model.Identity) error {
	err := s.store.Update(ctx, func(tx repository.Tx) error {
		p, err := getProtocol(tx)
		if err != nil {
			return err
		}
		if p == nil {
			return apierror.NotFound("protocol not initialized")
		}
		if p.Owner != signer {
			return apierror.Unauthorized("")
		}
		if target == p.Owner {
			return apierror.Unauthorized("the protocol owner cannot be removed")
		}

		a, _ := model.AdminAddress(target)
		slot, err := tx.Get(a)
		if err != nil {
			return apierror.InternalError(err.Error())
		}
		if slot == nil {
			return apierror.NotFound("no admin profile exists for this identity")
		}
		profile, err := model.DecodeAdminProfile(slot.Data)
		if err != nil {
			return corruptRecord(model.TagAdmin, err)
		}
		if !profile.Active {
			return apierror.NotFound("no active admin profile exists for this identity")
		}

		profile.Active = false
		return tx.Put(a, model.TagAdmin, profile.Encode())
	})
	if err != nil {
		return err
	}

	log.Printf("[ProtocolService] Admin removed, identity=%s", target)
	return nil
}

// GetProtocol reads the protocol singleton.
func (s *ProtocolService) GetProtocol(ctx context.Context) (*model.Protocol, error) {
	var protocol *model.Protocol
	err := s.store.View(ctx, func(tx repository.ReadTx) error {
		p, err := getProtocol(tx)
		if err != nil {
			return err
		}
		if p == nil {
			return apierror.NotFound("protocol not initialized")
		}
		protocol = p
		return nil
	})
	return protocol, err
}
