package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julienpequegnot/polypulse/internal/source"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Example News</title>
  <link>https://news.example.com</link>
  <item>
    <title>Trump leads new election poll</title>
    <link>https://news.example.com/a</link>
    <description>&lt;p&gt;Donald Trump &lt;b&gt;leads&lt;/b&gt; the polls&lt;/p&gt;</description>
    <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
    <enclosure url="https://img.example.com/a.jpg" type="image/jpeg" length="0"/>
  </item>
  <item>
    <title>Bitcoin slips</title>
    <link>https://news.example.com/b</link>
    <description>Crypto markets cool &lt;img src="https://img.example.com/b.png"&gt;</description>
  </item>
  <item>
    <title></title>
    <link>https://news.example.com/c</link>
  </item>
</channel>
</rss>`

func rssServer(t *testing.T, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testRSS))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchBuildsArticles(t *testing.T) {
	srv := rssServer(t, func(r *http.Request) {
		require.Equal(t, "polypulse-test", r.Header.Get("User-Agent"))
	})

	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	f := NewFetcher(5*time.Second, "polypulse-test")
	f.now = func() time.Time { return fixed }

	src := source.Source{ID: 7, URL: srv.URL + "/feed", Name: "Example News"}
	articles, err := f.Fetch(context.Background(), src, "")
	require.NoError(t, err)
	require.Len(t, articles, 2)

	a := articles[0]
	require.Equal(t, ArticleID("https://news.example.com/a"), a.ID)
	require.Equal(t, "Trump leads new election poll", a.Title)
	require.Equal(t, "Example News", a.Source)
	require.Equal(t, "Donald Trump leads the polls", a.Description)
	require.Equal(t, "https://img.example.com/a.jpg", a.ImageURL)
	require.Equal(t, "politics", a.Category)
	require.Equal(t, time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), a.PublishedAt.UTC())
	require.NotNil(t, a.FeedID)
	require.Equal(t, int64(7), *a.FeedID)

	require.Equal(t, []string{"Trump", "Donald Trump"}, a.Keywords[:2])
	require.Contains(t, a.Keywords, "election")
	require.NotContains(t, a.Keywords, "trump")

	b := articles[1]
	require.Equal(t, fixed, b.PublishedAt)
	require.Equal(t, "Crypto markets cool", b.Description)
	require.Equal(t, "https://img.example.com/b.png", b.ImageURL)
	require.Equal(t, "crypto", b.Category)
	require.True(t, b.HasKeywords())
}

func TestFetchSubstitutesQuery(t *testing.T) {
	srv := rssServer(t, func(r *http.Request) {
		require.Equal(t, "Trump s election", r.URL.Query().Get("q"))
	})

	f := NewFetcher(5*time.Second, "")
	src := source.Source{URL: srv.URL + "/rss/search?q={query}&hl=en-US", Name: "Google News"}
	articles, err := f.Fetch(context.Background(), src, "Trump's election!")
	require.NoError(t, err)
	require.Len(t, articles, 2)
	require.Nil(t, articles[0].FeedID)
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "")
	_, err := f.Fetch(context.Background(), source.Source{URL: srv.URL, Name: "dead"}, "")
	require.Error(t, err)
}

func TestFeedURL(t *testing.T) {
	require.Equal(t, "https://a.example.com/rss", FeedURL("https://a.example.com/rss", "ignored"))
	require.Equal(t,
		"https://news.google.com/rss/search?q=bitcoin+ETF+approval&hl=en-US",
		FeedURL("https://news.google.com/rss/search?q={query}&hl=en-US", "  bitcoin ETF-approval? "))
}

func TestFeedURLBlankQueryFallsBack(t *testing.T) {
	want := "https://news.google.com/rss/search?q=market+finance+crypto+politics&hl=en-US"
	require.Equal(t, want, FeedURL("https://news.google.com/rss/search?q={query}&hl=en-US", ""))
	require.Equal(t, want, FeedURL("https://news.google.com/rss/search?q={query}&hl=en-US", " ?! "))
}

func TestArticleIDIsStable(t *testing.T) {
	id := ArticleID("https://news.example.com/a")
	require.Equal(t, id, ArticleID("https://news.example.com/a"))
	require.NotEqual(t, id, ArticleID("https://news.example.com/b"))
	require.Len(t, id, 36)
}

func TestCleanSnippet(t *testing.T) {
	require.Empty(t, CleanSnippet(""))
	require.Equal(t, "plain text", CleanSnippet("  plain \n text "))
	require.Equal(t, "Fed holds rates & signals cuts",
		CleanSnippet(`<div><p>Fed holds <a href="x">rates</a> &amp; signals</p>  <p>cuts</p></div>`))

	long := make([]byte, MaxSnippetLen+50)
	for i := range long {
		long[i] = 'a'
	}
	got := []rune(CleanSnippet(string(long)))
	require.Len(t, got, MaxSnippetLen+1)
	require.Equal(t, '…', got[len(got)-1])
}

func TestFirstImage(t *testing.T) {
	require.Empty(t, FirstImage("no markup"))
	require.Equal(t, "https://img.example.com/1.png",
		FirstImage(`<p>x</p><img alt="a"><img src="https://img.example.com/1.png"><img src="2.png">`))
}
