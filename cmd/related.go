package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julienpequegnot/polypulse/internal/article"
	"github.com/julienpequegnot/polypulse/internal/feed"
	"github.com/julienpequegnot/polypulse/internal/keyword"
	"github.com/julienpequegnot/polypulse/internal/market"
	"github.com/julienpequegnot/polypulse/internal/relevance"
	"github.com/spf13/cobra"
)

var relatedCmd = &cobra.Command{
	Use:   "related <article-id|market-id>",
	Short: "Rank related markets for an article, or related news for a market",
	Long: `Scores the stored candidates against an article or a market and prints
the best matches. Nothing is written; use 'polypulse link' to persist
matches.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

var (
	relatedExplain bool
	relatedFetch   bool
	relatedPool    int
)

func init() {
	rootCmd.AddCommand(relatedCmd)
	relatedCmd.Flags().BoolVarP(&relatedExplain, "explain", "e", false, "Show the score breakdown of each match")
	relatedCmd.Flags().BoolVar(&relatedFetch, "fetch", false, "Search news feeds for the market before ranking")
	relatedCmd.Flags().IntVar(&relatedPool, "pool", 500, "Number of recent articles to consider for a market")
}

var (
	relatedHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	relatedScoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	relatedDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func runRelated(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	engine := relevance.New(w.cfg.Matching)
	id := args[0]

	m, err := market.NewRepository(w.db).Get(id)
	if err == nil {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return relatedNews(ctx, w, engine, m)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	a, err := article.NewRepository(w.db).Resolve(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no article or market found: %s", id)
		}
		return err
	}
	return relatedMarkets(w, engine, a)
}

func relatedMarkets(w *workspace, engine *relevance.Engine, a *article.Article) error {
	if !a.HasKeywords() {
		fmt.Println("Article has no keywords and cannot be matched.")
		return nil
	}

	markets, err := w.activeMarkets()
	if err != nil {
		return err
	}

	matches := engine.RelatedMarkets(*a, markets)
	fmt.Printf("\n%s %s\n\n", relatedHeaderStyle.Render("MARKETS FOR:"), a.Title)
	if len(matches) == 0 {
		fmt.Printf("No market scored above %.2f (%d candidates).\n", engine.Config().Threshold, len(markets))
		return nil
	}

	for i, mm := range matches {
		fmt.Printf("%2d. %s  %-5s  %s\n",
			i+1,
			relatedScoreStyle.Render(fmt.Sprintf("%.2f", mm.Score)),
			percent(mm.Market.YesPrice),
			mm.Market.Title)
		if relatedExplain {
			b := engine.Breakdown(a.Keywords, mm.Market.Title, mm.Market.Description)
			printBreakdown(b, keyword.Matching(mm.Market.Title+" "+mm.Market.Description, a.Title))
		}
	}
	fmt.Println()
	return nil
}

func relatedNews(ctx context.Context, w *workspace, engine *relevance.Engine, m *market.Market) error {
	if relatedFetch {
		query := feed.MarketQuery(m.Title)
		fmt.Printf("Searching news for %q...\n", query)
		if _, _, err := w.syncNews(ctx, query); err != nil {
			return err
		}
	}

	articles, err := article.NewRepository(w.db).List("", relatedPool, 0)
	if err != nil {
		return err
	}

	candidate := engine.CandidateKeywords(m.Title, m.Description)
	matches := engine.RelatedNews(*m, articles)
	fmt.Printf("\n%s %s\n\n", relatedHeaderStyle.Render("NEWS FOR:"), m.Title)
	if len(matches) == 0 {
		fmt.Printf("No article scored above %.2f (%d candidates).\n", engine.Config().Threshold, len(articles))
		return nil
	}

	for i, nm := range matches {
		fmt.Printf("%2d. %s  %s  %s\n",
			i+1,
			relatedScoreStyle.Render(fmt.Sprintf("%.2f", nm.Score)),
			relatedDimStyle.Render(shortID(nm.Article.ID)),
			nm.Article.Title)
		if relatedExplain {
			b, _ := engine.NewsBreakdown(*m, candidate, nm.Article)
			printBreakdown(b, keyword.Matching(nm.Article.Title+" "+nm.Article.Description, m.Title))
		}
	}
	fmt.Println()
	return nil
}

func printBreakdown(b relevance.Breakdown, matching []string) {
	parts := []string{fmt.Sprintf("similarity %.2f", b.Similarity)}
	if b.Entity > 0 {
		parts = append(parts, fmt.Sprintf("entity %.2f [%s]", b.Entity, strings.Join(b.EntityMatches, ", ")))
	}
	if b.Phrase > 0 {
		parts = append(parts, fmt.Sprintf("phrase %.2f [%s]", b.Phrase, strings.Join(b.PhraseMatches, ", ")))
	}
	if b.Topic > 0 {
		parts = append(parts, fmt.Sprintf("topic %.2f [%s]", b.Topic, strings.Join(b.Topics, ", ")))
	}
	if b.NewsTitle > 0 {
		parts = append(parts, fmt.Sprintf("title %.2f", b.NewsTitle))
	}
	fmt.Printf("      %s\n", relatedDimStyle.Render(strings.Join(parts, " + ")))
	if len(matching) > 0 {
		fmt.Printf("      %s %s\n", relatedDimStyle.Render("matching:"), strings.Join(matching, ", "))
	}
}
