package registry

import (
	"fmt"

	"github.com/MixinNetwork/mixin/logger"
)

// The two privileged roles share one transfer protocol but never any
// state. The minter creates tokens, the creator curates metadata.
const (
	RoleMinter  = "minter"
	RoleCreator = "creator"
)

// ProposeOwnershipTransfer starts a two-phase handover of a role. Only
// the current owner may propose, a new proposal overwrites any prior
// pending one.
func (r *Registry) ProposeOwnershipTransfer(role, caller string, block BlockContext, newOwner string, expiry Expiration) error {
	if newOwner == "" {
		return fmt.Errorf("%w: empty new owner", ErrInvalidInput)
	}
	if expiry.IsExpired(block) {
		return fmt.Errorf("%w: proposal expires in the past", ErrExpired)
	}
	os, err := r.readRole(role)
	if err != nil {
		return err
	}
	if os.Owner == "" || os.Owner != caller {
		return fmt.Errorf("%w: %s is not the %s", ErrUnauthorized, caller, role)
	}
	os.PendingOwner = newOwner
	os.PendingExpiry = expiry
	err = r.store.WriteOwnership(role, os)
	if err != nil {
		return err
	}
	logger.Verbosef("registry.ProposeOwnershipTransfer(%s, %s -> %s)\n", role, caller, newOwner)
	return nil
}

// AcceptOwnershipTransfer completes the handover. A lapsed proposal is
// as good as absent and needs a fresh one.
func (r *Registry) AcceptOwnershipTransfer(role, caller string, block BlockContext) error {
	os, err := r.readRole(role)
	if err != nil {
		return err
	}
	if os.PendingOwner == "" {
		return fmt.Errorf("%w: no pending %s transfer", ErrNotFound, role)
	}
	if os.PendingOwner != caller {
		return fmt.Errorf("%w: %s is not the pending %s", ErrUnauthorized, caller, role)
	}
	if os.PendingExpiry.IsExpired(block) {
		return fmt.Errorf("%w: pending %s transfer", ErrExpired, role)
	}
	os.Owner = os.PendingOwner
	os.PendingOwner = ""
	os.PendingExpiry = NeverExpires()
	err = r.store.WriteOwnership(role, os)
	if err != nil {
		return err
	}
	logger.Verbosef("registry.AcceptOwnershipTransfer(%s, %s)\n", role, caller)
	return nil
}

// CancelOwnershipTransfer drops a pending proposal, a no-op when none
// is pending.
func (r *Registry) CancelOwnershipTransfer(role, caller string) error {
	os, err := r.readRole(role)
	if err != nil {
		return err
	}
	if os.Owner == "" || os.Owner != caller {
		return fmt.Errorf("%w: %s is not the %s", ErrUnauthorized, caller, role)
	}
	if os.PendingOwner == "" {
		return nil
	}
	os.PendingOwner = ""
	os.PendingExpiry = NeverExpires()
	return r.store.WriteOwnership(role, os)
}

// RenounceOwnership leaves the role without an owner, permanently as
// far as this protocol is concerned. Only allowed while no transfer is
// pending.
func (r *Registry) RenounceOwnership(role, caller string) error {
	os, err := r.readRole(role)
	if err != nil {
		return err
	}
	if os.Owner == "" || os.Owner != caller {
		return fmt.Errorf("%w: %s is not the %s", ErrUnauthorized, caller, role)
	}
	if os.PendingOwner != "" {
		return fmt.Errorf("%w: pending %s transfer in progress", ErrInvalidInput, role)
	}
	os.Owner = ""
	err = r.store.WriteOwnership(role, os)
	if err != nil {
		return err
	}
	logger.Verbosef("registry.RenounceOwnership(%s, %s)\n", role, caller)
	return nil
}

func (r *Registry) readRole(role string) (*Ownership, error) {
	if role != RoleMinter && role != RoleCreator {
		return nil, fmt.Errorf("%w: unknown role %s", ErrInvalidInput, role)
	}
	os, err := r.store.ReadOwnership(role)
	if err != nil {
		return nil, err
	}
	if os == nil {
		return nil, fmt.Errorf("%w: %s ownership", ErrNotFound, role)
	}
	return os, nil
}
