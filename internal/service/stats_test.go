package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/arsenal/internal/db"
	"github.com/erazemk/arsenal/internal/model"
	"github.com/erazemk/arsenal/internal/store"
)

func TestStatsEmpty(t *testing.T) {
	f := newFixture(t, Options{})

	stats, err := f.svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.Configured)
	assert.True(t, stats.TotalSalesValue.IsZero())
	assert.Equal(t, model.Counts{}, stats.Counts)
	assert.NotNil(t, stats.RecentTransactions)
	assert.Empty(t, stats.RecentTransactions)
	assert.Len(t, stats.WeaponsByStatus, len(model.WeaponStatuses()))
	assert.Len(t, stats.TransactionsByType, len(model.TransactionTypes()))
}

func TestStatsExactSalesSum(t *testing.T) {
	f := newFixture(t, Options{RecentLimit: 3})
	ctx := context.Background()
	g := f.government(t, "Italy", "IT")
	wt := f.weaponType(t)

	for i, v := range []string{"0.1", "0.2", "1999999.99", "5"} {
		w := f.weapon(t, wt.ID, "X-"+v)
		_, err := f.svc.CreateTransaction(ctx, TransactionInput{
			Type: model.TransactionSale, WeaponID: w.ID, ToID: g.ID, Value: dec(v),
			Timestamp: timePtr(time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC)),
		})
		require.NoError(t, err)
	}
	// Non-sale values and missing values do not count.
	_, err := f.svc.CreateTransaction(ctx, TransactionInput{Type: model.TransactionDonation, Value: dec("1000")})
	require.NoError(t, err)
	_, err = f.svc.CreateTransaction(ctx, TransactionInput{Type: model.TransactionSale})
	require.NoError(t, err)

	stats, err := f.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2000005.29", stats.TotalSalesValue.String())
	assert.Equal(t, model.Counts{Governments: 1, Weapons: 4, Transactions: 6}, stats.Counts)
	assert.Equal(t, 4, stats.WeaponsByStatus[model.WeaponStatusSold])
	assert.Equal(t, 0, stats.WeaponsByStatus[model.WeaponStatusAvailable])
	assert.Equal(t, 5, stats.TransactionsByType[model.TransactionSale])
	assert.Equal(t, 1, stats.TransactionsByType[model.TransactionDonation])

	require.Len(t, stats.RecentTransactions, 3)
	for i := 1; i < len(stats.RecentTransactions); i++ {
		assert.False(t, stats.RecentTransactions[i].Timestamp.After(stats.RecentTransactions[i-1].Timestamp))
	}
	assert.Equal(t, "Italy", stats.RecentTransactions[2].ToName)
}

func TestStatsUnavailableStore(t *testing.T) {
	st := store.New(db.NewTestDB(t))
	svc := New(brokenStore{st}, Options{})

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.False(t, stats.Configured)
	assert.True(t, stats.TotalSalesValue.IsZero())
}

func TestStatsSubQueryFailure(t *testing.T) {
	st := store.New(db.NewTestDB(t))
	svc := New(failingGroupStore{st}, Options{})

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.False(t, stats.Configured)
}

func TestStatsCachedUntilWrite(t *testing.T) {
	c := newMapCache()
	f := newFixture(t, Options{Cache: c, StatsTTL: time.Minute})
	ctx := context.Background()

	first, err := f.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Counts.Governments)
	_, cached, _ := c.Get(ctx, statsCacheKey)
	assert.True(t, cached)

	// A write made behind the service's back is not visible until the entry expires.
	require.NoError(t, f.store.CreateGovernment(ctx, &model.Government{
		ID: "g1", Name: "Italy", CountryCode: "IT", ContactEmail: "a@b.it",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}))
	second, err := f.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Counts.Governments)

	// Writes through the service drop the entry.
	f.government(t, "Germany", "DE")
	_, cached, _ = c.Get(ctx, statsCacheKey)
	assert.False(t, cached)

	third, err := f.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, third.Counts.Governments)
}

func TestStatsComputedBeforeWriteNotCached(t *testing.T) {
	ctx := context.Background()
	ps := newPausingStore(store.New(db.NewTestDB(t)))
	c := newMapCache()
	svc := New(ps, Options{Cache: c, StatsTTL: time.Minute})

	done := make(chan *model.Stats, 1)
	go func() {
		stats, _ := svc.GetStats(ctx)
		done <- stats
	}()

	<-ps.counted
	_, err := svc.CreateGovernment(ctx, GovernmentInput{
		Name: "Italy", CountryCode: "IT", ContactEmail: "difesa@it.example",
	})
	require.NoError(t, err)
	close(ps.resume)

	stale := <-done
	require.NotNil(t, stale)
	assert.Equal(t, 0, stale.Counts.Governments)
	_, cached, _ := c.Get(ctx, statsCacheKey)
	assert.False(t, cached)

	fresh, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Counts.Governments)
}

func TestStatsNotCachedWhenUnavailable(t *testing.T) {
	c := newMapCache()
	svc := New(brokenStore{store.New(db.NewTestDB(t))}, Options{Cache: c, StatsTTL: time.Minute})

	_, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	_, cached, _ := c.Get(context.Background(), statsCacheKey)
	assert.False(t, cached)
}

func timePtr(t time.Time) *time.Time { return &t }
