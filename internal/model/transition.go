package model

import (
	"errors"
	"fmt"
)

// OwnerEffect describes what a transaction does to a weapon's current owner.
type OwnerEffect int

// Owner effects.
const (
	OwnerUnchanged OwnerEffect = iota
	OwnerToReceiver
	OwnerCleared
)

func (e OwnerEffect) String() string {
	switch e {
	case OwnerUnchanged:
		return "unchanged"
	case OwnerToReceiver:
		return "receiver"
	case OwnerCleared:
		return "cleared"
	}
	return fmt.Sprintf("OwnerEffect(%d)", int(e))
}

// Transition is the effect of a transaction type on the weapon it references.
type Transition struct {
	Status WeaponStatus
	Owner  OwnerEffect
}

// ErrUnknownTransactionType is returned for a type outside the closed set.
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// TransitionFor maps a transaction type to the weapon state it produces.
// The switch covers the closed set of transaction types; a new type without a
// case here fails TestTransitionTableCoversAllTypes.
func TransitionFor(t TransactionType) (Transition, error) {
	switch t {
	case TransactionSale, TransactionDelivery, TransactionReception:
		return Transition{Status: WeaponStatusSold, Owner: OwnerToReceiver}, nil
	case TransactionReturn:
		return Transition{Status: WeaponStatusAvailable, Owner: OwnerCleared}, nil
	case TransactionRepair:
		return Transition{Status: WeaponStatusUnderRepair, Owner: OwnerUnchanged}, nil
	case TransactionReplacement:
		return Transition{Status: WeaponStatusAvailable, Owner: OwnerUnchanged}, nil
	case TransactionDestruction:
		return Transition{Status: WeaponStatusDestroyed, Owner: OwnerUnchanged}, nil
	case TransactionDonation:
		return Transition{Status: WeaponStatusDonated, Owner: OwnerToReceiver}, nil
	}
	return Transition{}, fmt.Errorf("%w: %q", ErrUnknownTransactionType, string(t))
}

// Apply returns w moved into the transition's state. A missing receiver leaves
// the weapon without an owner when the owner follows the receiver.
func (tr Transition) Apply(w Weapon, receiver *string) Weapon {
	w.Status = tr.Status
	switch tr.Owner {
	case OwnerToReceiver:
		if receiver != nil && *receiver != "" {
			id := *receiver
			w.CurrentOwnerID = &id
		} else {
			w.CurrentOwnerID = nil
		}
		w.CurrentOwnerName = ""
	case OwnerCleared:
		w.CurrentOwnerID = nil
		w.CurrentOwnerName = ""
	}
	return w
}

// TransitionPolicy decides whether a weapon's current status admits a transaction.
type TransitionPolicy string

// Transition policies.
const (
	// PolicyPermissive applies the transition table regardless of prior status.
	PolicyPermissive TransitionPolicy = "permissive"
	// PolicyStrict treats Destroyed as terminal.
	PolicyStrict TransitionPolicy = "strict"
)

// ErrIllegalTransition is returned when the policy rejects a transition.
var ErrIllegalTransition = errors.New("illegal weapon transition")

// Valid reports whether p is a known policy.
func (p TransitionPolicy) Valid() bool {
	return p == PolicyPermissive || p == PolicyStrict
}

// Check reports whether a weapon in status from may receive a transaction of type t.
func (p TransitionPolicy) Check(from WeaponStatus, t TransactionType) error {
	if p != PolicyStrict {
		return nil
	}
	if from == WeaponStatusDestroyed {
		return fmt.Errorf("%w: weapon is %s, cannot record %s", ErrIllegalTransition, from, t)
	}
	return nil
}
