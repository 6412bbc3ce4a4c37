package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julienpequegnot/polypulse/internal/article"
	"github.com/julienpequegnot/polypulse/internal/market"
	"github.com/julienpequegnot/polypulse/internal/match"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <article-id|market-id>",
	Short: "Show details of an article or market",
	Long: `Display an article or market together with the matches stored by the
last 'polypulse fetch' or 'polypulse link'. Article IDs may be abbreviated.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

var (
	showTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	showLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	showValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	showURLStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)
	showDivider    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(strings.Repeat("━", 70))
)

func runShow(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	id := args[0]
	matches := match.NewRepository(w.db)

	if m, err := market.NewRepository(w.db).Get(id); err == nil {
		showMarket(m)
		stored, err := matches.ForMarket(m.ID, w.cfg.Matching.NewsLimit)
		if err != nil {
			return err
		}
		articles := article.NewRepository(w.db)
		if len(stored) > 0 {
			fmt.Printf("\n%s\n", showLabelStyle.Render("MATCHED NEWS:"))
		}
		for _, s := range stored {
			a, err := articles.Get(s.ArticleID)
			if err != nil {
				continue
			}
			fmt.Printf("  %.2f  %s  %s\n", s.Score, shortID(a.ID), a.Title)
		}
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	a, err := article.NewRepository(w.db).Resolve(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no article or market found: %s", id)
		}
		return err
	}

	showArticle(a)
	stored, err := matches.ForArticle(a.ID)
	if err != nil {
		return err
	}
	markets := market.NewRepository(w.db)
	if len(stored) > 0 {
		fmt.Printf("\n%s\n", showLabelStyle.Render("MATCHED MARKETS:"))
	}
	for _, s := range stored {
		m, err := markets.Get(s.MarketID)
		if err != nil {
			continue
		}
		fmt.Printf("  %.2f  %-5s  %s\n", s.Score, percent(m.YesPrice), m.Title)
	}
	return nil
}

func showMarket(m *market.Market) {
	fmt.Println(showDivider)
	fmt.Println(showTitleStyle.Render(m.Title))
	fmt.Println(showDivider)

	fmt.Printf("%s %s\n", showLabelStyle.Render("Platform:"), showValueStyle.Render(string(m.Platform)))
	fmt.Printf("%s %s\n", showLabelStyle.Render("Category:"), showValueStyle.Render(m.Category))
	fmt.Printf("%s %s yes / %s no\n", showLabelStyle.Render("Price:"), percent(m.YesPrice), percent(m.NoPrice))
	fmt.Printf("%s %s  %s %s\n",
		showLabelStyle.Render("Volume 24h:"), compactNumber(m.Volume24h),
		showLabelStyle.Render("Liquidity:"), compactNumber(m.Liquidity))
	fmt.Printf("%s %s\n", showLabelStyle.Render("Ends:"), showValueStyle.Render(formatEndDate(m.EndDate)))
	if len(m.Tags) > 0 {
		fmt.Printf("%s %s\n", showLabelStyle.Render("Tags:"), strings.Join(m.Tags, ", "))
	}
	if m.Slug != "" && m.Platform == market.Polymarket {
		fmt.Printf("%s %s\n", showLabelStyle.Render("URL:"), showURLStyle.Render("https://polymarket.com/market/"+m.Slug))
	}

	if m.Description != "" {
		fmt.Printf("\n%s\n", showLabelStyle.Render("DESCRIPTION:"))
		fmt.Println(showValueStyle.Render(truncate(m.Description, 500)))
	}
}

func showArticle(a *article.Article) {
	fmt.Println(showDivider)
	fmt.Println(showTitleStyle.Render(a.Title))
	fmt.Println(showDivider)

	fmt.Printf("%s %s\n", showLabelStyle.Render("ID:"), showValueStyle.Render(a.ID))
	fmt.Printf("%s %s\n", showLabelStyle.Render("Source:"), showValueStyle.Render(a.Source))
	fmt.Printf("%s %s\n", showLabelStyle.Render("Category:"), showValueStyle.Render(a.Category))
	if !a.PublishedAt.IsZero() {
		fmt.Printf("%s %s\n", showLabelStyle.Render("Published:"), showValueStyle.Render(a.PublishedAt.Format("2006-01-02 15:04")))
	}
	fmt.Printf("%s %s\n", showLabelStyle.Render("URL:"), showURLStyle.Render(a.Link))
	if a.HasKeywords() {
		fmt.Printf("%s %s\n", showLabelStyle.Render("Keywords:"), strings.Join(a.Keywords, ", "))
	}

	if a.Description != "" {
		fmt.Printf("\n%s\n", showLabelStyle.Render("PREVIEW:"))
		fmt.Println(showValueStyle.Render(a.Description))
	}
}
