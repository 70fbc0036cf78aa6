package service

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/erazemk/arsenal/internal/model"
	"github.com/erazemk/arsenal/internal/store"
)

const statsCacheKey = "stats"

// GetStats returns the dashboard summary. When the store cannot be reached it
// returns Stats{Configured: false} and no error. The sub-queries run
// concurrently and are not taken from a single snapshot.
func (s *Service) GetStats(ctx context.Context) (*model.Stats, error) {
	if cached, ok := s.cachedStats(ctx); ok {
		return cached, nil
	}

	gen := s.statsGen.Load()
	stats, err := s.computeStats(ctx)
	if err != nil {
		s.log.Warn("stats unavailable", zap.Error(err))
		return &model.Stats{Configured: false}, nil
	}

	if s.statsTTL > 0 {
		s.storeStats(ctx, gen, stats)
	}
	return stats, nil
}

// storeStats caches stats computed at generation gen. Nothing stays cached if
// an invalidation ran before or during the Set.
func (s *Service) storeStats(ctx context.Context, gen uint64, stats *model.Stats) {
	if s.statsGen.Load() != gen {
		return
	}
	b, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, b, s.statsTTL); err != nil {
		s.log.Warn("failed to cache stats", zap.Error(err))
		return
	}
	if s.statsGen.Load() != gen {
		if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
			s.log.Warn("failed to drop stale stats", zap.Error(err))
		}
	}
}

func (s *Service) cachedStats(ctx context.Context) (*model.Stats, bool) {
	if s.statsTTL <= 0 {
		return nil, false
	}
	b, ok, err := s.cache.Get(ctx, statsCacheKey)
	if err != nil {
		s.log.Warn("failed to read stats cache", zap.Error(err))
		return nil, false
	}
	s.metrics.StatsCache(ok)
	if !ok {
		return nil, false
	}
	var stats model.Stats
	if err := json.Unmarshal(b, &stats); err != nil {
		s.log.Warn("discarding malformed cached stats", zap.Error(err))
		return nil, false
	}
	return &stats, true
}

func (s *Service) computeStats(ctx context.Context) (*model.Stats, error) {
	if err := s.store.Ping(ctx); err != nil {
		return nil, err
	}

	var (
		counts   model.Counts
		byStatus map[model.WeaponStatus]int
		byType   map[model.TransactionType]int
		sales    decimal.Decimal
		recent   []model.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.store.Counts(gctx)
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = s.store.WeaponsByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		byType, err = s.store.TransactionsByType(gctx)
		return err
	})
	g.Go(func() (err error) {
		sales, err = s.store.SumTransactionValues(gctx, model.TransactionSale)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.store.ListTransactions(gctx, store.TransactionFilter{Limit: uint64(s.recentLimit)})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &model.Stats{
		Configured:         true,
		Counts:             counts,
		WeaponsByStatus:    make(map[model.WeaponStatus]int),
		TransactionsByType: make(map[model.TransactionType]int),
		TotalSalesValue:    sales,
		RecentTransactions: recent,
	}
	for _, st := range model.WeaponStatuses() {
		stats.WeaponsByStatus[st] = byStatus[st]
	}
	for _, t := range model.TransactionTypes() {
		stats.TransactionsByType[t] = byType[t]
	}
	if stats.RecentTransactions == nil {
		stats.RecentTransactions = []model.Transaction{}
	}
	return stats, nil
}
