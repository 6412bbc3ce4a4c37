package market

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Supplier fetches markets from one platform.
type Supplier interface {
	Platform() Platform
	FetchMarkets(ctx context.Context, limit int) ([]Market, error)
}

// Aggregator merges the markets of several platforms. A platform that fails
// is logged and contributes nothing.
type Aggregator struct {
	suppliers []Supplier
	logger    *zap.Logger
}

func NewAggregator(logger *zap.Logger, suppliers ...Supplier) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{suppliers: suppliers, logger: logger}
}

// All fetches limit/len(suppliers) markets from each platform concurrently,
// flags promoted titles and returns at most limit markets by descending
// 24h volume.
func (a *Aggregator) All(ctx context.Context, limit int) []Market {
	if len(a.suppliers) == 0 || limit <= 0 {
		return nil
	}
	return a.merge(ctx, max(limit/len(a.suppliers), 1), limit)
}

// Trending is All with every platform asked for the full limit, so the
// merged list is ranked across platforms before the cap.
func (a *Aggregator) Trending(ctx context.Context, limit int) []Market {
	if len(a.suppliers) == 0 || limit <= 0 {
		return nil
	}
	return a.merge(ctx, limit, limit)
}

func (a *Aggregator) merge(ctx context.Context, perSupplier, limit int) []Market {
	results := make([][]Market, len(a.suppliers))
	var wg sync.WaitGroup
	for i, s := range a.suppliers {
		wg.Add(1)
		go func(i int, s Supplier) {
			defer wg.Done()
			markets, err := s.FetchMarkets(ctx, perSupplier)
			if err != nil {
				a.logger.Warn("market fetch failed",
					zap.String("platform", string(s.Platform())),
					zap.Error(err))
				return
			}
			a.logger.Debug("markets fetched",
				zap.String("platform", string(s.Platform())),
				zap.Int("count", len(markets)))
			results[i] = markets
		}(i, s)
	}
	wg.Wait()

	var all []Market
	for _, markets := range results {
		all = append(all, markets...)
	}
	for i := range all {
		if IsPromoted(all[i].Title) {
			all[i].Promoted = true
		}
	}

	SortByVolume(all)
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// PolymarketEvents supplies Polymarket events, each reduced to its primary
// market, instead of the raw market listing.
type PolymarketEvents struct {
	*PolymarketClient
}

func (e PolymarketEvents) FetchMarkets(ctx context.Context, limit int) ([]Market, error) {
	return e.FetchEvents(ctx, limit)
}

// SortByVolume orders markets by descending 24h volume, keeping input order
// on ties.
func SortByVolume(markets []Market) {
	sort.SliceStable(markets, func(i, j int) bool {
		return markets[i].Volume24h > markets[j].Volume24h
	})
}
