package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/arsenal/internal/apperrors"
	"github.com/erazemk/arsenal/internal/model"
)

func TestListWeaponTypesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m4 := mustWeaponType(t, s, "M4A1", model.WeaponCategorySmallArms, "Colt")
	mustWeaponType(t, s, "Leopard 2A7", model.WeaponCategoryArmoredVehicles, "Krauss-Maffei Wegmann")
	mustWeaponType(t, s, "M16A4", model.WeaponCategorySmallArms, "Colt")
	mustWeapon(t, s, m4.ID, "SN-1")

	all, err := s.ListWeaponTypes(ctx, WeaponTypeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Leopard 2A7", all[0].Name)
	assert.Equal(t, "M16A4", all[1].Name)
	assert.Equal(t, "M4A1", all[2].Name)
	assert.Equal(t, 1, all[2].WeaponCount)

	small, err := s.ListWeaponTypes(ctx, WeaponTypeFilter{Category: model.WeaponCategorySmallArms})
	require.NoError(t, err)
	assert.Len(t, small, 2)

	byBrand, err := s.ListWeaponTypes(ctx, WeaponTypeFilter{Brand: "krauss"})
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	assert.Equal(t, "Leopard 2A7", byBrand[0].Name)
}

func TestGetWeaponType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	wt := mustWeaponType(t, s, "M4A1", model.WeaponCategorySmallArms, "Colt")

	got, err := s.GetWeaponType(ctx, wt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Colt", got.Brand)

	missing, err := s.GetWeaponType(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateWeaponDuplicateSerial(t *testing.T) {
	s := newTestStore(t)
	wt := mustWeaponType(t, s, "M4A1", model.WeaponCategorySmallArms, "Colt")
	mustWeapon(t, s, wt.ID, "SN-1")

	err := s.CreateWeapon(context.Background(), &model.Weapon{
		ID: uuid.NewString(), SerialNumber: "SN-1", WeaponTypeID: wt.ID,
		Status: model.WeaponStatusAvailable, CreatedAt: now(), UpdatedAt: now(),
	})
	assert.True(t, apperrors.Is(err, apperrors.KindConflict), "got %v", err)
}

func TestCreateWeaponUnknownType(t *testing.T) {
	s := newTestStore(t)

	err := s.CreateWeapon(context.Background(), &model.Weapon{
		ID: uuid.NewString(), SerialNumber: "SN-1", WeaponTypeID: "nope",
		Status: model.WeaponStatusAvailable, CreatedAt: now(), UpdatedAt: now(),
	})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound), "got %v", err)
}

func TestGetWeaponJoinsTypeAndAcquisitionDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	wt := mustWeaponType(t, s, "M4A1", model.WeaponCategorySmallArms, "Colt")
	acquired := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)

	w := &model.Weapon{
		ID: uuid.NewString(), SerialNumber: "SN-1", WeaponTypeID: wt.ID,
		Status: model.WeaponStatusAvailable, AcquisitionDate: &acquired, Notes: "crate 4",
		CreatedAt: now(), UpdatedAt: now(),
	}
	require.NoError(t, s.CreateWeapon(ctx, w))

	got, err := s.GetWeapon(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "M4A1", got.TypeName)
	assert.Equal(t, model.WeaponCategorySmallArms, got.TypeCategory)
	assert.Equal(t, "Colt", got.TypeBrand)
	assert.Equal(t, "crate 4", got.Notes)
	assert.Nil(t, got.CurrentOwnerID)
	require.NotNil(t, got.AcquisitionDate)
	assert.True(t, got.AcquisitionDate.Equal(acquired))

	missing, err := s.GetWeapon(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListWeaponsFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	g := mustGovernment(t, s, "Italy", "IT")
	rifle := mustWeaponType(t, s, "M4A1", model.WeaponCategorySmallArms, "Colt")
	tank := mustWeaponType(t, s, "Leopard 2A7", model.WeaponCategoryArmoredVehicles, "KMW")

	a := mustWeapon(t, s, rifle.ID, "M4-001")
	mustWeapon(t, s, rifle.ID, "M4-002")
	b := mustWeapon(t, s, tank.ID, "LEO-001")

	b.Status = model.WeaponStatusSold
	b.CurrentOwnerID = &g.ID
	require.NoError(t, s.UpdateWeaponState(ctx, b))

	all, err := s.ListWeapons(ctx, WeaponFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, b.ID, all[0].ID, "newest first")

	sold, err := s.ListWeapons(ctx, WeaponFilter{Status: model.WeaponStatusSold})
	require.NoError(t, err)
	require.Len(t, sold, 1)
	assert.Equal(t, "Italy", sold[0].CurrentOwnerName)

	owned, err := s.ListWeapons(ctx, WeaponFilter{OwnerID: g.ID})
	require.NoError(t, err)
	assert.Len(t, owned, 1)

	rifles, err := s.ListWeapons(ctx, WeaponFilter{Category: model.WeaponCategorySmallArms})
	require.NoError(t, err)
	assert.Len(t, rifles, 2)

	bySerial, err := s.ListWeapons(ctx, WeaponFilter{Query: "m4-001"})
	require.NoError(t, err)
	require.Len(t, bySerial, 1)
	assert.Equal(t, a.ID, bySerial[0].ID)

	byTypeName, err := s.ListWeapons(ctx, WeaponFilter{Query: "leopard"})
	require.NoError(t, err)
	assert.Len(t, byTypeName, 1)
}

func TestUpdateWeaponStateMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateWeaponState(context.Background(), &model.Weapon{ID: "nope", Status: model.WeaponStatusSold})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}
