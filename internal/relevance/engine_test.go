package relevance

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julienpequegnot/polypulse/internal/article"
	"github.com/julienpequegnot/polypulse/internal/market"
)

const trumpTitle = "Will Trump win the 2024 election?"

func newsWith(id, title string, keywords ...string) article.Article {
	return article.Article{ID: id, Title: title, Keywords: keywords}
}

func marketsTitled(titles ...string) []market.Market {
	out := make([]market.Market, len(titles))
	for i, title := range titles {
		out[i] = market.Market{ID: fmt.Sprintf("m%d", i), Title: title}
	}
	return out
}

func TestScoreTrumpElectionScenario(t *testing.T) {
	e := New(DefaultConfig())
	keywords := []string{"Trump", "Election", "Polls"}

	b := e.Breakdown(keywords, trumpTitle, "")

	// candidate set: trump, win, 2024, election, "will trump"
	require.InDelta(t, 2.0/6.0, b.Similarity, 1e-9)
	require.InDelta(t, 0.5, b.Entity, 1e-9)
	require.Equal(t, []string{"Trump", "Election"}, b.EntityMatches)
	require.InDelta(t, 0.15, b.Phrase, 1e-9)
	require.Equal(t, []string{"Election"}, b.PhraseMatches)
	require.InDelta(t, 0.1, b.Topic, 1e-9)
	require.Equal(t, []string{"politics"}, b.Topics)
	require.Zero(t, b.NewsTitle)

	score := e.Score(keywords, trumpTitle, "")
	require.InDelta(t, 2.0/6.0+0.75, score, 1e-9)
	require.Greater(t, score, 1.0)

	require.Zero(t, e.Score(keywords, "Bitcoin price", ""))

	matches := e.RelatedMarkets(newsWith("n1", "Trump leads", keywords...), marketsTitled("Bitcoin price", trumpTitle))
	require.Len(t, matches, 1)
	require.Equal(t, trumpTitle, matches[0].Market.Title)
}

func TestEntityBonusNeedsOriginalCasing(t *testing.T) {
	e := New(DefaultConfig())

	upper := e.Breakdown([]string{"Trump", "Election", "Polls"}, trumpTitle, "")
	lower := e.Breakdown([]string{"trump", "election", "polls"}, trumpTitle, "")

	require.Zero(t, lower.Entity)
	require.InDelta(t, upper.Similarity, lower.Similarity, 1e-9)
	require.InDelta(t, upper.Phrase, lower.Phrase, 1e-9)
	require.Less(t, lower.Total(), upper.Total())
}

func TestEntityBonusStacks(t *testing.T) {
	e := New(DefaultConfig())

	b := e.Breakdown([]string{"Trump", "Biden", "Harris"}, "Trump vs Biden vs Harris debate", "")
	require.InDelta(t, 0.75, b.Entity, 1e-9)
}

func TestScoreEmptyKeywords(t *testing.T) {
	e := New(DefaultConfig())
	require.Zero(t, e.Score(nil, trumpTitle, "some description"))
}

func TestThresholdIsStrict(t *testing.T) {
	e := New(DefaultConfig())
	anchor := newsWith("n1", "anything", "abc")

	exact := marketsTitled("abc bcd cde def efg")
	require.InDelta(t, 0.2, e.Score(anchor.Keywords, exact[0].Title, ""), 1e-12)
	require.Empty(t, e.RelatedMarkets(anchor, exact))

	above := marketsTitled("abc bcd cde def")
	require.InDelta(t, 0.25, e.Score(anchor.Keywords, above[0].Title, ""), 1e-12)
	require.Len(t, e.RelatedMarkets(anchor, above), 1)
}

func TestRelatedMarketsRanking(t *testing.T) {
	e := New(DefaultConfig())
	anchor := newsWith("n1", "anything", "abc")

	// Jaccard scores 0.5, 1/3, 1.
	markets := marketsTitled("abc bcd", "abc bcd cde", "abc")
	matches := e.RelatedMarkets(anchor, markets)

	require.Len(t, matches, 3)
	require.Equal(t, "m2", matches[0].Market.ID)
	require.Equal(t, "m0", matches[1].Market.ID)
	require.Equal(t, "m1", matches[2].Market.ID)
	require.InDelta(t, 1.0, matches[0].Score, 1e-9)
	require.InDelta(t, 0.5, matches[1].Score, 1e-9)
	require.InDelta(t, 1.0/3.0, matches[2].Score, 1e-9)
}

func TestRelatedMarketsCapAndStableTies(t *testing.T) {
	e := New(DefaultConfig())
	anchor := newsWith("n1", "anything", "abc")

	titles := make([]string, 20)
	for i := range titles {
		titles[i] = "abc"
	}
	matches := e.RelatedMarkets(anchor, marketsTitled(titles...))

	require.Len(t, matches, 6)
	for i, m := range matches {
		require.Equal(t, fmt.Sprintf("m%d", i), m.Market.ID)
	}
}

func TestRelatedNewsCap(t *testing.T) {
	e := New(DefaultConfig())
	m := market.Market{ID: "m1", Title: "abc"}

	articles := make([]article.Article, 20)
	for i := range articles {
		articles[i] = newsWith(fmt.Sprintf("n%d", i), "abc", "abc")
	}
	matches := e.RelatedNews(m, articles)

	require.Len(t, matches, 10)
	require.Equal(t, "n0", matches[0].Article.ID)
	require.Equal(t, "n9", matches[9].Article.ID)
}

func TestRelatedNewsTitleBonus(t *testing.T) {
	m := market.Market{ID: "m1", Title: trumpTitle}
	// Similarity 1/6 on its own, below the threshold.
	a := newsWith("n1", "Trump rallies in Ohio", "rallies", "win")

	e := New(DefaultConfig())
	matches := e.RelatedNews(m, []article.Article{a})
	require.Len(t, matches, 1)
	require.InDelta(t, 1.0/6.0+0.2, matches[0].Score, 1e-9)

	b, ok := e.NewsBreakdown(m, nil, a)
	require.True(t, ok)
	require.InDelta(t, 0.2, b.NewsTitle, 1e-9)

	cfg := DefaultConfig()
	cfg.NewsTitleBonus = 0
	require.Empty(t, New(cfg).RelatedNews(m, []article.Article{a}))
}

func TestRelatedNewsSkipsArticlesWithoutKeywords(t *testing.T) {
	e := New(DefaultConfig())
	m := market.Market{ID: "m1", Title: trumpTitle}

	articles := []article.Article{
		newsWith("bare", "Trump wins the election"),
		newsWith("kw", "Trump wins the election", "Trump", "Election"),
	}
	matches := e.RelatedNews(m, articles)

	require.Len(t, matches, 1)
	require.Equal(t, "kw", matches[0].Article.ID)

	_, ok := e.NewsBreakdown(m, nil, articles[0])
	require.False(t, ok)
}

func TestDegenerateInputs(t *testing.T) {
	e := New(DefaultConfig())

	require.Empty(t, e.RelatedMarkets(newsWith("n1", trumpTitle), marketsTitled(trumpTitle)))
	require.Empty(t, e.RelatedMarkets(newsWith("n1", trumpTitle, "Trump"), nil))
	require.Empty(t, e.RelatedNews(market.Market{Title: trumpTitle}, nil))
	require.Empty(t, e.RelatedNews(market.Market{}, []article.Article{newsWith("n1", "x", "abc")}))
}

func TestRankingIsDeterministic(t *testing.T) {
	e := New(DefaultConfig())
	anchor := newsWith("n1", "Trump leads", "Trump", "Election", "Polls", "senate")
	markets := marketsTitled(trumpTitle, "Senate control after the election", "Trump approval rating", "Bitcoin price")

	first := e.RelatedMarkets(anchor, markets)
	require.NotEmpty(t, first)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, e.RelatedMarkets(anchor, markets))
	}
}

func TestEngineConcurrentUse(t *testing.T) {
	e := New(DefaultConfig())
	anchor := newsWith("n1", "Trump leads", "Trump", "Election", "Polls")
	markets := marketsTitled(trumpTitle, "Trump approval rating", "Bitcoin price")
	want := e.RelatedMarkets(anchor, markets)

	var wg sync.WaitGroup
	results := make([][]MarketMatch, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.RelatedMarkets(anchor, markets)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, want, got)
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Threshold = -1
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MarketsLimit = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.PhraseBonus = -0.1
	require.Error(t, cfg.Validate())
}
