package trend

import (
	"sort"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/julienpequegnot/polypulse/internal/article"
)

type Trend struct {
	Topic          string
	Count          int
	Score          float64
	RecentArticles []string
}

type entry struct {
	topics    []string
	timestamp time.Time
}

type Analyzer struct {
	articles map[string]entry
	now      func() time.Time
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		articles: make(map[string]entry),
		now:      time.Now,
	}
}

// Add records the topics of one article. Adding the same ID again replaces
// the earlier entry.
func (a *Analyzer) Add(id string, topics []string, publishedAt time.Time) {
	a.articles[id] = entry{topics: topics, timestamp: publishedAt}
}

// Trends scores every topic: recent mentions count double, and topics seen
// within the window get a boost that fades with the age of their newest
// article. Ties sort by topic name.
func (a *Analyzer) Trends(days int, limit int) []Trend {
	if days < 1 {
		days = 1
	}
	now := a.now()
	cutoff := now.AddDate(0, 0, -days)

	counts := make(map[string]int)
	recent := make(map[string][]string)
	newest := make(map[string]time.Time)

	ids := make([]string, 0, len(a.articles))
	for id := range a.articles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		e := a.articles[id]
		for _, topic := range dedupe(e.topics) {
			counts[topic]++
			if e.timestamp.After(cutoff) {
				recent[topic] = append(recent[topic], id)
			}
			if t, ok := newest[topic]; !ok || e.timestamp.After(t) {
				newest[topic] = e.timestamp
			}
		}
	}

	var trends []Trend
	for topic, count := range counts {
		boost := 1.0
		daysSince := now.Sub(newest[topic]).Hours() / 24
		if daysSince < float64(days) {
			boost = 1.0 + (float64(days)-daysSince)/float64(days)
		}

		trends = append(trends, Trend{
			Topic:          topic,
			Count:          count,
			Score:          (float64(len(recent[topic]))*2 + float64(count)) * boost,
			RecentArticles: recent[topic],
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Score != trends[j].Score {
			return trends[i].Score > trends[j].Score
		}
		return trends[i].Topic < trends[j].Topic
	})

	if limit > 0 && len(trends) > limit {
		trends = trends[:limit]
	}
	return trends
}

// CategoryTopics uses the article category as its only topic.
func CategoryTopics(a article.Article) []string {
	if a.Category == "" {
		return nil
	}
	return []string{a.Category}
}

// EntityTopics uses the capitalized keywords stored on the article.
func EntityTopics(a article.Article) []string {
	var topics []string
	for _, k := range a.Keywords {
		r, _ := utf8.DecodeRuneInString(k)
		if unicode.IsUpper(r) {
			topics = append(topics, k)
		}
	}
	return topics
}

// FromArticles builds an analyzer over articles using topicsOf.
func FromArticles(articles []article.Article, topicsOf func(article.Article) []string) *Analyzer {
	a := NewAnalyzer()
	for _, art := range articles {
		if topics := topicsOf(art); len(topics) > 0 {
			a.Add(art.ID, topics, art.PublishedAt)
		}
	}
	return a
}

func dedupe(topics []string) []string {
	seen := make(map[string]bool, len(topics))
	out := topics[:0:0]
	for _, t := range topics {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
