package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/julienpequegnot/polypulse/internal/article"
	"github.com/julienpequegnot/polypulse/internal/feed"
	"github.com/julienpequegnot/polypulse/internal/market"
	"github.com/julienpequegnot/polypulse/internal/match"
	"github.com/julienpequegnot/polypulse/internal/relevance"
	"github.com/julienpequegnot/polypulse/internal/source"
	"go.uber.org/zap"
)

func (w *workspace) timeout() time.Duration {
	return time.Duration(w.cfg.Fetch.TimeoutSeconds) * time.Second
}

func (w *workspace) marketSuppliers() []market.Supplier {
	var suppliers []market.Supplier
	if w.cfg.Markets.PolymarketURL != "" {
		suppliers = append(suppliers, market.NewPolymarketClient(w.cfg.Markets.PolymarketURL, w.cfg.Fetch.UserAgent, w.timeout()))
	}
	if w.cfg.Markets.KalshiURL != "" {
		suppliers = append(suppliers, market.NewKalshiClient(w.cfg.Markets.KalshiURL, w.cfg.Fetch.UserAgent, w.timeout()))
	}
	return suppliers
}

// trendingSuppliers swaps the Polymarket market listing for its events.
func (w *workspace) trendingSuppliers() []market.Supplier {
	var suppliers []market.Supplier
	for _, s := range w.marketSuppliers() {
		if poly, ok := s.(*market.PolymarketClient); ok {
			s = market.PolymarketEvents{PolymarketClient: poly}
		}
		suppliers = append(suppliers, s)
	}
	return suppliers
}

// syncMarkets pulls markets from every configured platform into the store.
func (w *workspace) syncMarkets(ctx context.Context) (int, error) {
	suppliers := w.marketSuppliers()
	if len(suppliers) == 0 {
		return 0, fmt.Errorf("no market platforms configured")
	}
	agg := market.NewAggregator(w.log, suppliers...)
	markets := agg.All(ctx, w.cfg.Markets.Limit)

	repo := market.NewRepository(w.db)
	saved := 0
	for _, m := range markets {
		if err := repo.Upsert(m); err != nil {
			w.log.Warn("failed to save market", zap.String("market", m.ID), zap.Error(err))
			continue
		}
		saved++
	}
	return saved, nil
}

// syncNews reads the feeds relevant to query and stores their articles. It
// returns the stored articles and how many of them were new.
func (w *workspace) syncNews(ctx context.Context, query string) ([]article.Article, int, error) {
	srcRepo := source.NewRepository(w.db)
	sources, err := srcRepo.List()
	if err != nil {
		return nil, 0, err
	}
	sources = feed.SelectSources(sources, query)
	if len(sources) == 0 {
		return nil, 0, nil
	}

	fetcher := feed.NewFetcher(w.timeout(), w.cfg.Fetch.UserAgent)
	agg := feed.NewAggregator(fetcher, w.log, w.cfg.Fetch.Concurrency, w.cfg.Fetch.NewsLimit)

	results := agg.Collect(ctx, sources, query)
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("  %s: error: %v\n", r.Source.Name, r.Err)
			continue
		}
		fmt.Printf("  %s: %d articles\n", r.Source.Name, len(r.Articles))
		srcRepo.UpdateLastFetched(r.Source.ID)
	}

	articles := feed.Merge(results, w.cfg.Fetch.NewsLimit)
	artRepo := article.NewRepository(w.db)

	var stored []article.Article
	added := 0
	for _, a := range articles {
		isNew, err := artRepo.Upsert(a)
		if err != nil {
			w.log.Warn("failed to save article", zap.String("article", a.ID), zap.Error(err))
			continue
		}
		if isNew {
			added++
		}
		stored = append(stored, a)
	}
	return stored, added, nil
}

// linkArticles replaces the stored matches of each article with the current
// best markets.
func (w *workspace) linkArticles(articles []article.Article, markets []market.Market) (int, error) {
	engine := relevance.New(w.cfg.Matching)
	repo := match.NewRepository(w.db)

	linked := 0
	for _, a := range articles {
		if err := repo.DeleteForArticle(a.ID); err != nil {
			return linked, err
		}
		for _, m := range engine.RelatedMarkets(a, markets) {
			if err := repo.Upsert(a.ID, m.Market.ID, m.Score); err != nil {
				return linked, err
			}
			linked++
		}
	}
	return linked, nil
}

func (w *workspace) activeMarkets() ([]market.Market, error) {
	return market.NewRepository(w.db).List(market.ListOptions{
		ActiveOnly: true,
		Limit:      w.cfg.Markets.Limit,
	})
}

// runPipeline is one full cycle: markets, news, then matching.
func (w *workspace) runPipeline(ctx context.Context, query string) error {
	fmt.Println("→ Fetching markets...")
	n, err := w.syncMarkets(ctx)
	if err != nil {
		return err
	}
	if total, err := market.NewRepository(w.db).Count(); err == nil {
		fmt.Printf("  Saved %d markets (%d stored)\n", n, total)
	}

	fmt.Println("→ Fetching news...")
	articles, added, err := w.syncNews(ctx, query)
	if err != nil {
		return err
	}
	fmt.Printf("  %d articles, %d new\n", len(articles), added)

	if len(articles) == 0 {
		fmt.Println("→ No articles to match")
		return nil
	}

	fmt.Println("→ Matching articles to markets...")
	markets, err := w.activeMarkets()
	if err != nil {
		return err
	}
	linked, err := w.linkArticles(articles, markets)
	if err != nil {
		return err
	}
	fmt.Printf("  Stored %d matches\n", linked)

	fmt.Println("→ Pipeline complete")
	return nil
}
