package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/arsenal/internal/apperrors"
	"github.com/erazemk/arsenal/internal/model"
)

func TestCreateGovernmentValidation(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.svc.CreateGovernment(ctx, GovernmentInput{Name: "  ", CountryCode: "IT"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	var ae *apperrors.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "name")
	assert.Contains(t, ae.Fields, "contact_email")
	assert.NotContains(t, ae.Fields, "country_code")

	list, err := f.svc.ListGovernments(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateGovernmentNormalizes(t *testing.T) {
	f := newFixture(t, Options{})

	g, err := f.svc.CreateGovernment(context.Background(), GovernmentInput{
		Name: " Italy ", CountryCode: "it", ContactEmail: "difesa@it.example",
	})
	require.NoError(t, err)
	assert.Equal(t, "Italy", g.Name)
	assert.Equal(t, "IT", g.CountryCode)
	assert.NotEmpty(t, g.ID)
	assert.False(t, g.CreatedAt.IsZero())
}

func TestGetGovernmentDetail(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	us := f.government(t, "United States", "US")
	it := f.government(t, "Italy", "IT")
	wt := f.weaponType(t)

	for _, serial := range []string{"X-1", "X-2"} {
		w := f.weapon(t, wt.ID, serial)
		_, err := f.svc.CreateTransaction(ctx, TransactionInput{
			Type: model.TransactionSale, WeaponID: w.ID, FromID: us.ID, ToID: it.ID,
		})
		require.NoError(t, err)
	}
	for range 11 {
		_, err := f.svc.CreateTransaction(ctx, TransactionInput{Type: model.TransactionDelivery, ToID: it.ID})
		require.NoError(t, err)
	}

	detail, err := f.svc.GetGovernment(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Italy", detail.Name)
	assert.Len(t, detail.Weapons, 2)
	assert.Equal(t, 2, detail.WeaponsOwned)
	assert.Equal(t, 13, detail.TransactionsReceived)
	assert.Len(t, detail.ReceivedTransactions, receivedTransactionsLimit)

	_, err = f.svc.GetGovernment(ctx, "nope")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestUpdateGovernmentPartial(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	g := f.government(t, "Italy", "IT")

	phone := "+39 06 000"
	updated, err := f.svc.UpdateGovernment(ctx, g.ID, GovernmentUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Italy", updated.Name)
	assert.Equal(t, phone, updated.Phone)

	blank := ""
	_, err = f.svc.UpdateGovernment(ctx, g.ID, GovernmentUpdate{Name: &blank})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = f.svc.UpdateGovernment(ctx, "nope", GovernmentUpdate{Phone: &phone})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	detail, err := f.svc.GetGovernment(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Italy", detail.Name)
	assert.Equal(t, phone, detail.Phone)
}

func TestDeleteGovernment(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	g := f.government(t, "Italy", "IT")
	wt := f.weaponType(t)
	w := f.weapon(t, wt.ID, "X-1")
	_, err := f.svc.CreateTransaction(ctx, TransactionInput{Type: model.TransactionDonation, WeaponID: w.ID, ToID: g.ID})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteGovernment(ctx, g.ID))

	got := f.reload(t, w.ID)
	assert.Equal(t, model.WeaponStatusDonated, got.Status)
	assert.Nil(t, got.CurrentOwnerID)

	txs, err := f.svc.ListTransactions(ctx, TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Nil(t, txs[0].ToID)

	err = f.svc.DeleteGovernment(ctx, g.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}
