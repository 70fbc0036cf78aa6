package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestTransitionTableCoversAllTypes(t *testing.T) {
	for _, tt := range TransactionTypes() {
		tr, err := TransitionFor(tt)
		require.NoError(t, err, "type %s has no transition", tt)
		assert.True(t, tr.Status.Valid(), "type %s maps to invalid status %q", tt, tr.Status)
	}
}

func TestTransitionFor(t *testing.T) {
	tests := []struct {
		typ    TransactionType
		status WeaponStatus
		owner  OwnerEffect
	}{
		{TransactionSale, WeaponStatusSold, OwnerToReceiver},
		{TransactionDelivery, WeaponStatusSold, OwnerToReceiver},
		{TransactionReception, WeaponStatusSold, OwnerToReceiver},
		{TransactionReturn, WeaponStatusAvailable, OwnerCleared},
		{TransactionRepair, WeaponStatusUnderRepair, OwnerUnchanged},
		{TransactionReplacement, WeaponStatusAvailable, OwnerUnchanged},
		{TransactionDestruction, WeaponStatusDestroyed, OwnerUnchanged},
		{TransactionDonation, WeaponStatusDonated, OwnerToReceiver},
	}

	for _, tt := range tests {
		got, err := TransitionFor(tt.typ)
		require.NoError(t, err)
		assert.Equal(t, tt.status, got.Status, "status for %s", tt.typ)
		assert.Equal(t, tt.owner, got.Owner, "owner effect for %s", tt.typ)
	}
}

func TestTransitionForUnknown(t *testing.T) {
	_, err := TransitionFor("Theft")
	assert.ErrorIs(t, err, ErrUnknownTransactionType)
	assert.False(t, TransactionType("").Valid())
}

func TestTransitionApplyOwner(t *testing.T) {
	start := Weapon{ID: "w1", Status: WeaponStatusAvailable, CurrentOwnerID: ptr("g-old"), CurrentOwnerName: "Old"}

	sale, _ := TransitionFor(TransactionSale)
	got := sale.Apply(start, ptr("g-new"))
	assert.Equal(t, WeaponStatusSold, got.Status)
	require.NotNil(t, got.CurrentOwnerID)
	assert.Equal(t, "g-new", *got.CurrentOwnerID)

	// Sale without a receiver leaves the weapon unowned.
	got = sale.Apply(start, nil)
	assert.Nil(t, got.CurrentOwnerID)

	ret, _ := TransitionFor(TransactionReturn)
	got = ret.Apply(start, ptr("ignored"))
	assert.Equal(t, WeaponStatusAvailable, got.Status)
	assert.Nil(t, got.CurrentOwnerID)

	for _, typ := range []TransactionType{TransactionRepair, TransactionReplacement, TransactionDestruction} {
		tr, _ := TransitionFor(typ)
		got = tr.Apply(start, ptr("ignored"))
		require.NotNil(t, got.CurrentOwnerID, typ)
		assert.Equal(t, "g-old", *got.CurrentOwnerID, typ)
		assert.Equal(t, "Old", got.CurrentOwnerName, typ)
	}

	// The input weapon is not modified.
	assert.Equal(t, WeaponStatusAvailable, start.Status)
	assert.Equal(t, "g-old", *start.CurrentOwnerID)
}

func TestTransitionPolicy(t *testing.T) {
	for _, typ := range TransactionTypes() {
		assert.NoError(t, PolicyPermissive.Check(WeaponStatusDestroyed, typ))
		assert.ErrorIs(t, PolicyStrict.Check(WeaponStatusDestroyed, typ), ErrIllegalTransition)
		assert.NoError(t, PolicyStrict.Check(WeaponStatusSold, typ))
	}
	assert.True(t, PolicyStrict.Valid())
	assert.False(t, TransitionPolicy("lenient").Valid())
}

func TestNewAssetRef(t *testing.T) {
	ref, err := NewAssetRef("w1", "")
	require.NoError(t, err)
	assert.Equal(t, WeaponRef("w1"), ref)

	ref, err = NewAssetRef("", "e1")
	require.NoError(t, err)
	assert.Equal(t, EquipmentRef("e1"), ref)

	ref, err = NewAssetRef("", "")
	require.NoError(t, err)
	assert.True(t, ref.IsZero())

	_, err = NewAssetRef("w1", "e1")
	assert.Error(t, err)
}

func TestEnumsValid(t *testing.T) {
	for _, c := range WeaponCategories() {
		assert.True(t, c.Valid())
	}
	for _, s := range WeaponStatuses() {
		assert.True(t, s.Valid())
	}
	assert.False(t, WeaponCategory("smallarms").Valid())
	assert.True(t, EquipmentCategoryOptics.Valid())
	assert.False(t, EquipmentCategory("Food").Valid())
	assert.True(t, EquipmentStatusRetired.Valid())
	assert.False(t, EquipmentStatus("Lost").Valid())
}
