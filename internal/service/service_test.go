package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/erazemk/arsenal/internal/apperrors"
	"github.com/erazemk/arsenal/internal/db"
	"github.com/erazemk/arsenal/internal/model"
	"github.com/erazemk/arsenal/internal/store"
)

type fixture struct {
	svc   *Service
	store *store.Store
	db    *sql.DB
	logs  *observer.ObservedLogs
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	conn := db.NewTestDB(t)
	st := store.New(conn)
	core, logs := observer.New(zap.DebugLevel)
	opts.Logger = zap.New(core)
	return &fixture{svc: New(st, opts), store: st, db: conn, logs: logs}
}

func (f *fixture) government(t *testing.T, name, code string) *model.Government {
	t.Helper()
	g, err := f.svc.CreateGovernment(context.Background(), GovernmentInput{
		Name: name, CountryCode: code, ContactEmail: "defense@" + code + ".example",
	})
	require.NoError(t, err)
	return g
}

func (f *fixture) weaponType(t *testing.T) *model.WeaponType {
	t.Helper()
	wt, err := f.svc.CreateWeaponType(context.Background(), WeaponTypeInput{
		Name: "M4A1", Category: model.WeaponCategorySmallArms, Brand: "Colt",
	})
	require.NoError(t, err)
	return wt
}

func (f *fixture) weapon(t *testing.T, typeID, serial string) *model.Weapon {
	t.Helper()
	w, err := f.svc.CreateWeapon(context.Background(), WeaponInput{SerialNumber: serial, WeaponTypeID: typeID})
	require.NoError(t, err)
	return w
}

func (f *fixture) reload(t *testing.T, id string) *model.Weapon {
	t.Helper()
	w, err := f.store.GetWeapon(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, w)
	return w
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// mapCache is an in-memory cache.Cache.
type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes int
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string][]byte)} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	return b, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	c.deletes++
	return nil
}

// brokenStore fails every ping and aggregate.
type brokenStore struct {
	*store.Store
}

var errUnreachable = errors.New("database is locked")

func (brokenStore) Ping(context.Context) error { return errUnreachable }

func (brokenStore) Counts(context.Context) (model.Counts, error) {
	return model.Counts{}, errUnreachable
}

// failingGroupStore pings but fails one aggregate.
type failingGroupStore struct {
	*store.Store
}

func (failingGroupStore) TransactionsByType(context.Context) (map[model.TransactionType]int, error) {
	return nil, errUnreachable
}

// pausingStore holds the first Counts call after reading until resume is closed.
type pausingStore struct {
	*store.Store
	once    sync.Once
	counted chan struct{}
	resume  chan struct{}
}

func newPausingStore(st *store.Store) *pausingStore {
	return &pausingStore{Store: st, counted: make(chan struct{}), resume: make(chan struct{})}
}

func (s *pausingStore) Counts(ctx context.Context) (model.Counts, error) {
	c, err := s.Store.Counts(ctx)
	s.once.Do(func() {
		close(s.counted)
		<-s.resume
	})
	return c, err
}

func TestNewDefaults(t *testing.T) {
	svc := New(store.New(db.NewTestDB(t)), Options{})
	assert.Equal(t, model.PolicyPermissive, svc.policy)
	assert.Equal(t, 5, svc.recentLimit)
	assert.NotNil(t, svc.cache)
	assert.NotNil(t, svc.metrics)
	assert.NotNil(t, svc.log)
	assert.NoError(t, svc.Ping(context.Background()))
}

func TestStoreErrorKeepsClassification(t *testing.T) {
	err := storeError("listing weapons", errUnreachable)
	assert.True(t, apperrors.Is(err, apperrors.KindStore))
	assert.ErrorIs(t, err, errUnreachable)

	nf := apperrors.NotFound("weapon w1 not found")
	assert.Same(t, nf, storeError("getting weapon", nf))
}
