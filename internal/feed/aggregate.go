package feed

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/julienpequegnot/polypulse/internal/article"
	"github.com/julienpequegnot/polypulse/internal/source"
)

// DefaultNewsLimit caps the articles returned for one query.
const DefaultNewsLimit = 30

// ArticleFetcher is satisfied by *Fetcher.
type ArticleFetcher interface {
	Fetch(ctx context.Context, src source.Source, query string) ([]article.Article, error)
}

var (
	cryptoQuery = regexp.MustCompile(`(?i)crypto|bitcoin|eth|doge`)
	techQuery   = regexp.MustCompile(`(?i)tech|ai|apple|nvidia|software`)
)

// SelectSources picks the feeds worth reading for query. Crypto feeds are
// only read for crypto queries and tech feeds only for tech queries; an
// empty query reads everything.
func SelectSources(sources []source.Source, query string) []source.Source {
	if strings.TrimSpace(query) == "" {
		return sources
	}

	crypto := cryptoQuery.MatchString(query)
	tech := !crypto && techQuery.MatchString(query)

	var out []source.Source
	for _, s := range sources {
		switch s.Category {
		case "crypto":
			if crypto {
				out = append(out, s)
			}
		case "tech":
			if tech {
				out = append(out, s)
			}
		default:
			out = append(out, s)
		}
	}
	return out
}

// FilterByQuery keeps the articles of a generic feed that mention at least
// one query word longer than two characters. Search feeds are already
// filtered upstream and pass unchanged.
func FilterByQuery(src source.Source, articles []article.Article, query string) []article.Article {
	if src.IsQueryFeed() {
		return articles
	}

	var terms []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) > 2 {
			terms = append(terms, w)
		}
	}
	if len(terms) == 0 {
		return articles
	}

	var out []article.Article
	for _, a := range articles {
		title := strings.ToLower(a.Title)
		desc := strings.ToLower(a.Description)
		for _, t := range terms {
			if strings.Contains(title, t) || strings.Contains(desc, t) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// Aggregator reads many feeds concurrently.
type Aggregator struct {
	fetcher     ArticleFetcher
	logger      *zap.Logger
	concurrency int
	limit       int
}

// NewAggregator bounds parallel fetches by concurrency. A limit of zero or
// less keeps every article.
func NewAggregator(fetcher ArticleFetcher, logger *zap.Logger, concurrency, limit int) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{fetcher: fetcher, logger: logger, concurrency: concurrency, limit: limit}
}

// Result is the outcome of reading one feed.
type Result struct {
	Source   source.Source
	Articles []article.Article
	Err      error
}

// Collect fetches every source and reports per-feed results in source
// order. Failed feeds carry their error and no articles.
func (ag *Aggregator) Collect(ctx context.Context, sources []source.Source, query string) []Result {
	results := make([]Result, len(sources))

	var wg sync.WaitGroup
	sem := make(chan struct{}, ag.concurrency)

	for i, src := range sources {
		wg.Add(1)
		go func(i int, s source.Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i].Source = s
			articles, err := ag.fetcher.Fetch(ctx, s, query)
			if err != nil {
				ag.logger.Warn("feed fetch failed",
					zap.String("feed", s.Name),
					zap.String("url", s.URL),
					zap.Error(err))
				results[i].Err = err
				return
			}
			results[i].Articles = FilterByQuery(s, articles, query)
			ag.logger.Debug("feed fetched",
				zap.String("feed", s.Name),
				zap.Int("items", len(articles)),
				zap.Int("kept", len(results[i].Articles)))
		}(i, src)
	}
	wg.Wait()

	return results
}

// Aggregate merges the articles of every readable feed, drops duplicates,
// orders them newest first and applies the limit.
func (ag *Aggregator) Aggregate(ctx context.Context, sources []source.Source, query string) []article.Article {
	return Merge(ag.Collect(ctx, sources, query), ag.limit)
}

// Merge flattens per-feed results. The first occurrence of an article ID
// wins.
func Merge(results []Result, limit int) []article.Article {
	seen := make(map[string]bool)
	var all []article.Article
	for _, r := range results {
		for _, a := range r.Articles {
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			all = append(all, a)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}
