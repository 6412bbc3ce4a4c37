// Package feed reads RSS and Atom feeds into articles with precomputed
// keywords.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"github.com/julienpequegnot/polypulse/internal/article"
	"github.com/julienpequegnot/polypulse/internal/category"
	"github.com/julienpequegnot/polypulse/internal/keyword"
	"github.com/julienpequegnot/polypulse/internal/source"
)

// IngestKeywordLimit is the extraction limit used when an article is stored.
const IngestKeywordLimit = 10

var queryNonWord = regexp.MustCompile(`[^\w\s]`)

type Fetcher struct {
	parser *gofeed.Parser
	now    func() time.Time
}

func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: timeout}
	return &Fetcher{
		parser: parser,
		now:    time.Now,
	}
}

// FeedURL substitutes query into a search feed URL. A blank query falls
// back to the broad trending query. Other URLs are returned unchanged.
func FeedURL(rawURL, query string) string {
	if !strings.Contains(rawURL, source.QueryPlaceholder) {
		return rawURL
	}
	words := strings.Fields(queryNonWord.ReplaceAllString(query, " "))
	if len(words) == 0 {
		words = strings.Fields(TrendingQuery(""))
	}
	clean := strings.Join(words, "+")
	return strings.ReplaceAll(rawURL, source.QueryPlaceholder, clean)
}

// Fetch parses one feed. Items without a title or link are dropped.
func (f *Fetcher) Fetch(ctx context.Context, src source.Source, query string) ([]article.Article, error) {
	feed, err := f.parser.ParseURLWithContext(FeedURL(src.URL, query), ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", src.Name, err)
	}

	fetchedAt := f.now()
	var articles []article.Article
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		articles = append(articles, f.toArticle(src, item, fetchedAt))
	}
	return articles, nil
}

func (f *Fetcher) toArticle(src source.Source, item *gofeed.Item, fetchedAt time.Time) article.Article {
	a := article.Article{
		ID:        ArticleID(item.Link),
		Title:     strings.TrimSpace(item.Title),
		Link:      item.Link,
		Source:    src.Name,
		FetchedAt: fetchedAt,
	}
	if src.ID != 0 {
		id := src.ID
		a.FeedID = &id
	}

	switch {
	case item.PublishedParsed != nil:
		a.PublishedAt = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		a.PublishedAt = *item.UpdatedParsed
	default:
		a.PublishedAt = fetchedAt
	}

	raw := item.Description
	if raw == "" {
		raw = item.Content
	}
	a.Description = CleanSnippet(raw)

	a.ImageURL = imageURL(item)
	a.Category = string(category.Classify(a.Title, a.Description))
	a.Keywords = keyword.Extract(a.Title+" "+a.Description, IngestKeywordLimit).Keywords()
	return a
}

func imageURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" && strings.HasPrefix(enc.Type, "image") {
			return enc.URL
		}
	}
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	if src := FirstImage(item.Content); src != "" {
		return src
	}
	return FirstImage(item.Description)
}

// ArticleID derives a stable ID from the article link so refetching the same
// item updates it instead of duplicating it.
func ArticleID(link string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String()
}
