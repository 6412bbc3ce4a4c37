// Package relevance links news articles to prediction markets by combining
// keyword overlap with entity, phrase and topic signals.
package relevance

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/julienpequegnot/polypulse/internal/article"
	"github.com/julienpequegnot/polypulse/internal/keyword"
	"github.com/julienpequegnot/polypulse/internal/market"
)

type topicGroup struct {
	name  string
	terms map[string]bool
}

func newTopicGroup(name string, terms ...string) topicGroup {
	g := topicGroup{name: name, terms: make(map[string]bool, len(terms))}
	for _, t := range terms {
		g.terms[t] = true
	}
	return g
}

var topicGroups = []topicGroup{
	newTopicGroup("politics", "election", "president", "congress", "senate", "vote", "biden", "trump", "republican", "democrat"),
	newTopicGroup("crypto", "bitcoin", "ethereum", "crypto", "btc", "eth", "blockchain", "defi", "nft"),
	newTopicGroup("sports", "nfl", "nba", "mlb", "soccer", "super bowl", "championship", "playoffs"),
	newTopicGroup("tech", "ai", "apple", "google", "microsoft", "tech", "software", "nvidia"),
	newTopicGroup("economics", "fed", "inflation", "gdp", "rate", "economy", "stock", "market", "recession"),
}

// Breakdown is the per-signal decomposition of a relevance score.
type Breakdown struct {
	Similarity float64
	Entity     float64
	Phrase     float64
	Topic      float64
	NewsTitle  float64

	EntityMatches []string
	PhraseMatches []string
	Topics        []string
}

// Total sums the signals. It is not clamped and may exceed 1.
func (b Breakdown) Total() float64 {
	return b.Similarity + b.Entity + b.Phrase + b.Topic + b.NewsTitle
}

type MarketMatch struct {
	Market market.Market
	Score  float64
}

type NewsMatch struct {
	Article article.Article
	Score   float64
}

// Engine scores and ranks candidates. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	cfg       Config
	extractor *keyword.Extractor
}

func New(cfg Config) *Engine {
	return NewWithExtractor(cfg, nil)
}

// NewWithExtractor uses x to extract candidate keywords. A nil extractor
// selects the default capitalization heuristic.
func NewWithExtractor(cfg Config, x *keyword.Extractor) *Engine {
	if x == nil {
		x = keyword.NewExtractor(nil)
	}
	return &Engine{cfg: cfg, extractor: x}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// CandidateKeywords returns the lowercased union of primary words and
// entities extracted from a candidate's title and description.
func (e *Engine) CandidateKeywords(title, description string) []string {
	ex := e.extractor.Extract(title+" "+description, e.cfg.CandidateKeywordLimit)
	out := make([]string, 0, len(ex.Primary)+len(ex.Entities))
	for _, k := range ex.Primary {
		out = append(out, strings.ToLower(k))
	}
	for _, k := range ex.Entities {
		out = append(out, strings.ToLower(k))
	}
	return out
}

// Score rates how relevant a candidate titled title is to a text carrying
// newsKeywords. newsKeywords must keep their original casing.
func (e *Engine) Score(newsKeywords []string, title, description string) float64 {
	return e.Breakdown(newsKeywords, title, description).Total()
}

func (e *Engine) Breakdown(newsKeywords []string, title, description string) Breakdown {
	candidate := e.CandidateKeywords(title, description)
	return e.breakdown(newsKeywords, candidate, title)
}

func (e *Engine) breakdown(newsKeywords, candidate []string, title string) Breakdown {
	var b Breakdown
	b.Similarity = keyword.Similarity(newsKeywords, candidate)

	lowerTitle := strings.ToLower(title)
	for _, k := range newsKeywords {
		lower := strings.ToLower(k)
		n := utf8.RuneCountInString(k)

		if n > e.cfg.EntityMinLen && startsUpper(k) && strings.Contains(lowerTitle, lower) {
			b.Entity += e.cfg.EntityBonus
			b.EntityMatches = append(b.EntityMatches, k)
		}
		if n > e.cfg.PhraseMinLen && strings.Contains(lowerTitle, lower) {
			b.Phrase += e.cfg.PhraseBonus
			b.PhraseMatches = append(b.PhraseMatches, k)
		}
	}

	newsSet := lowerSet(newsKeywords)
	candidateSet := lowerSet(candidate)
	for _, g := range topicGroups {
		if hasAny(newsSet, g.terms) && hasAny(candidateSet, g.terms) {
			b.Topic += e.cfg.TopicBonus
			b.Topics = append(b.Topics, g.name)
		}
	}
	return b
}

// RelatedMarkets ranks markets for one article. An article without keywords
// matches nothing.
func (e *Engine) RelatedMarkets(a article.Article, markets []market.Market) []MarketMatch {
	if !a.HasKeywords() {
		return nil
	}

	var matches []MarketMatch
	for _, m := range markets {
		score := e.Score(a.Keywords, m.Title, m.Description)
		if score > e.cfg.Threshold {
			matches = append(matches, MarketMatch{Market: m, Score: score})
		}
	}
	return rank(matches, func(m MarketMatch) float64 { return m.Score }, e.cfg.MarketsLimit)
}

// RelatedNews ranks articles for one market. Articles without keywords are
// skipped.
func (e *Engine) RelatedNews(m market.Market, articles []article.Article) []NewsMatch {
	candidate := e.CandidateKeywords(m.Title, m.Description)

	var matches []NewsMatch
	for _, a := range articles {
		b, ok := e.NewsBreakdown(m, candidate, a)
		if !ok {
			continue
		}
		if score := b.Total(); score > e.cfg.Threshold {
			matches = append(matches, NewsMatch{Article: a, Score: score})
		}
	}
	return rank(matches, func(n NewsMatch) float64 { return n.Score }, e.cfg.NewsLimit)
}

// NewsBreakdown scores article a against market m, including the bonus for
// article titles that mention a market keyword. candidate may be nil, in
// which case it is extracted from the market. It reports false when the
// article has no keywords.
func (e *Engine) NewsBreakdown(m market.Market, candidate []string, a article.Article) (Breakdown, bool) {
	if !a.HasKeywords() {
		return Breakdown{}, false
	}
	if candidate == nil {
		candidate = e.CandidateKeywords(m.Title, m.Description)
	}

	b := e.breakdown(a.Keywords, candidate, m.Title)

	newsTitle := strings.ToLower(a.Title)
	for _, k := range candidate {
		if utf8.RuneCountInString(k) > e.cfg.EntityMinLen && strings.Contains(newsTitle, k) {
			b.NewsTitle = e.cfg.NewsTitleBonus
			break
		}
	}
	return b, true
}

func rank[T any](items []T, score func(T) float64, limit int) []T {
	sort.SliceStable(items, func(i, j int) bool {
		return score(items[i]) > score(items[j])
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func lowerSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}

func hasAny(set, terms map[string]bool) bool {
	for t := range terms {
		if set[t] {
			return true
		}
	}
	return false
}
