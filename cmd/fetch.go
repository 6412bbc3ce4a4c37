package cmd

import (
	"context"
	"fmt"

	"github.com/julienpequegnot/polypulse/internal/category"
	"github.com/julienpequegnot/polypulse/internal/feed"
	"github.com/julienpequegnot/polypulse/internal/market"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch markets and news, then match them",
	Long: `Downloads markets from every configured platform and articles from the
registered feeds, stores both, and records the best market matches for
each article.

Search feeds are queried with --query, with keywords from --market, or with
the trending query for --category.`,
	RunE: runFetch,
}

var (
	fetchQuery       string
	fetchMarket      string
	fetchCategory    string
	fetchNewsOnly    bool
	fetchConcurrency int
)

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVarP(&fetchQuery, "query", "q", "", "Search query for news feeds")
	fetchCmd.Flags().StringVarP(&fetchMarket, "market", "m", "", "Build the news query from a stored market (id or slug)")
	fetchCmd.Flags().StringVar(&fetchCategory, "category", "", "Use the trending query for a category")
	fetchCmd.Flags().BoolVar(&fetchNewsOnly, "news-only", false, "Skip fetching markets")
	fetchCmd.Flags().IntVarP(&fetchConcurrency, "concurrency", "c", 0, "Number of concurrent feed fetches (0 = use config)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	if fetchConcurrency > 0 {
		w.cfg.Fetch.Concurrency = fetchConcurrency
	}

	query, err := newsQuery(w)
	if err != nil {
		return err
	}
	if query != "" {
		fmt.Printf("News query: %q\n", query)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !fetchNewsOnly {
		return w.runPipeline(ctx, query)
	}

	fmt.Println("→ Fetching news...")
	articles, added, err := w.syncNews(ctx, query)
	if err != nil {
		return err
	}
	fmt.Printf("\nTotal: %d articles, %d new\n", len(articles), added)
	return nil
}

func newsQuery(w *workspace) (string, error) {
	switch {
	case fetchQuery != "":
		return fetchQuery, nil
	case fetchMarket != "":
		m, err := market.NewRepository(w.db).Get(fetchMarket)
		if err != nil {
			return "", fmt.Errorf("market not found: %s", fetchMarket)
		}
		return feed.MarketQuery(m.Title), nil
	case fetchCategory != "":
		c, err := category.Parse(fetchCategory)
		if err != nil {
			return "", err
		}
		if c == "" {
			return feed.TrendingQuery("all"), nil
		}
		return feed.TrendingQuery(string(c)), nil
	}
	return "", nil
}
