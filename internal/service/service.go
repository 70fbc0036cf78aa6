// Package service implements the registry's domain operations: input
// validation, the ledger-driven weapon state machine and dashboard statistics.
package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erazemk/arsenal/internal/apperrors"
	"github.com/erazemk/arsenal/internal/cache"
	"github.com/erazemk/arsenal/internal/metrics"
	"github.com/erazemk/arsenal/internal/model"
	"github.com/erazemk/arsenal/internal/store"
	"github.com/erazemk/arsenal/internal/validation"
)

// Store is the persistence the service depends on. *store.Store implements it.
type Store interface {
	Ping(ctx context.Context) error
	RunAtomic(ctx context.Context, fn func(store.Tx) error) error

	CreateGovernment(ctx context.Context, g *model.Government) error
	GetGovernment(ctx context.Context, id string) (*model.Government, error)
	ListGovernments(ctx context.Context) ([]model.Government, error)
	UpdateGovernment(ctx context.Context, g *model.Government) error
	DeleteGovernment(ctx context.Context, id string) error

	CreateWeaponType(ctx context.Context, wt *model.WeaponType) error
	GetWeaponType(ctx context.Context, id string) (*model.WeaponType, error)
	ListWeaponTypes(ctx context.Context, f store.WeaponTypeFilter) ([]model.WeaponType, error)

	CreateWeapon(ctx context.Context, w *model.Weapon) error
	GetWeapon(ctx context.Context, id string) (*model.Weapon, error)
	ListWeapons(ctx context.Context, f store.WeaponFilter) ([]model.Weapon, error)

	CreateEquipment(ctx context.Context, e *model.Equipment) error
	GetEquipment(ctx context.Context, id string) (*model.Equipment, error)
	ListEquipment(ctx context.Context, f store.EquipmentFilter) ([]model.Equipment, error)
	UpdateEquipment(ctx context.Context, e *model.Equipment) error

	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, f store.TransactionFilter) ([]model.Transaction, error)

	Counts(ctx context.Context) (model.Counts, error)
	WeaponsByStatus(ctx context.Context) (map[model.WeaponStatus]int, error)
	TransactionsByType(ctx context.Context) (map[model.TransactionType]int, error)
	SumTransactionValues(ctx context.Context, t model.TransactionType) (decimal.Decimal, error)
}

// Options configures a Service. Zero values select the defaults.
type Options struct {
	Cache       cache.Cache
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	Policy      model.TransitionPolicy
	StatsTTL    time.Duration
	RecentLimit int
}

// Service is the domain operations layer.
type Service struct {
	store    Store
	cache    cache.Cache
	metrics  *metrics.Metrics
	log      *zap.Logger
	validate *validation.Validator

	policy      model.TransitionPolicy
	statsTTL    time.Duration
	recentLimit int

	// statsGen counts stats invalidations. A computation that overlaps one
	// must not leave its result in the cache.
	statsGen atomic.Uint64

	now   func() time.Time
	newID func() string
}

// New returns a service backed by st.
func New(st Store, opts Options) *Service {
	s := &Service{
		store:       st,
		cache:       opts.Cache,
		metrics:     opts.Metrics,
		log:         opts.Logger,
		validate:    validation.New(),
		policy:      opts.Policy,
		statsTTL:    opts.StatsTTL,
		recentLimit: opts.RecentLimit,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
	if s.cache == nil {
		s.cache = cache.Nop{}
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.policy == "" {
		s.policy = model.PolicyPermissive
	}
	if s.recentLimit <= 0 {
		s.recentLimit = 5
	}
	return s
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// storeError passes classified errors through and wraps everything else as a
// store failure.
func storeError(message string, err error) error {
	var ae *apperrors.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperrors.Store(message, err)
}

// invalidateStats drops the cached dashboard after a write.
func (s *Service) invalidateStats(ctx context.Context) {
	s.statsGen.Add(1)
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.log.Warn("failed to invalidate stats cache", zap.Error(err))
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
