package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/julienpequegnot/polypulse/internal/category"
	"github.com/julienpequegnot/polypulse/internal/market"
	"github.com/spf13/cobra"
)

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "List stored markets by 24h volume",
	Long: `Lists markets saved by 'polypulse fetch', highest 24h volume first.
With --trending, reads live Polymarket events and Kalshi markets instead,
ranked together by 24h volume.`,
	RunE: runMarkets,
}

var (
	marketsLimit    int
	marketsCategory string
	marketsPlatform string
	marketsAll      bool
	marketsTrending bool
)

func init() {
	rootCmd.AddCommand(marketsCmd)
	marketsCmd.Flags().IntVarP(&marketsLimit, "limit", "l", 20, "Maximum markets to show")
	marketsCmd.Flags().StringVar(&marketsCategory, "category", "", "Filter by category")
	marketsCmd.Flags().StringVarP(&marketsPlatform, "platform", "p", "", "Filter by platform (polymarket, kalshi)")
	marketsCmd.Flags().BoolVar(&marketsAll, "all", false, "Include closed markets")
	marketsCmd.Flags().BoolVar(&marketsTrending, "trending", false, "Show live trending markets from every platform")
}

func runMarkets(cmd *cobra.Command, args []string) error {
	c, err := category.Parse(marketsCategory)
	if err != nil {
		return err
	}
	platform, ok := market.ParsePlatform(marketsPlatform)
	if !ok {
		return fmt.Errorf("unknown platform %q", marketsPlatform)
	}

	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	var markets []market.Market
	if marketsTrending {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		markets = market.NewAggregator(w.log, w.trendingSuppliers()...).Trending(ctx, marketsLimit)
		markets = filterMarkets(markets, c, platform)
	} else {
		markets, err = market.NewRepository(w.db).List(market.ListOptions{
			Category:   string(c),
			Platform:   platform,
			ActiveOnly: !marketsAll,
			Limit:      marketsLimit,
		})
		if err != nil {
			return err
		}
	}

	if len(markets) == 0 {
		fmt.Println("No markets found. Run 'polypulse fetch' first.")
		return nil
	}

	printMarkets(markets)
	return nil
}

func filterMarkets(markets []market.Market, c category.Category, p market.Platform) []market.Market {
	var out []market.Market
	for _, m := range markets {
		if c != "" && m.Category != string(c) {
			continue
		}
		if p != "" && m.Platform != p {
			continue
		}
		out = append(out, m)
	}
	return out
}

func printMarkets(markets []market.Market) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	priceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	volumeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	promotedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-10s  %-11s  %-5s  %-9s  %-12s  %s", "ID", "PLATFORM", "YES", "VOLUME", "CATEGORY", "TITLE")))
	fmt.Println(strings.Repeat("─", 110))

	for _, m := range markets {
		title := truncate(m.Title, 55)
		if m.Promoted {
			title = promotedStyle.Render("★ ") + title
		}
		fmt.Printf(" %s  %-11s  %s  %s  %-12s  %s\n",
			idStyle.Render(fmt.Sprintf("%-10s", truncate(m.ID, 10))),
			m.Platform,
			priceStyle.Render(fmt.Sprintf("%-5s", percent(m.YesPrice))),
			volumeStyle.Render(fmt.Sprintf("%-9s", compactNumber(m.Volume24h))),
			m.Category,
			title,
		)
	}

	fmt.Printf("\nShowing %d markets\n", len(markets))
}

func formatEndDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
