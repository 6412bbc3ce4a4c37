package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julienpequegnot/polypulse/internal/market"
	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Summarize market volume by platform and category",
	Long:  `Aggregates 24h volume and market counts over the stored markets.`,
	RunE:  runAnalytics,
}

var analyticsAll bool

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.Flags().BoolVar(&analyticsAll, "all", false, "Include closed markets")
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	markets, err := market.NewRepository(w.db).List(market.ListOptions{ActiveOnly: !analyticsAll})
	if err != nil {
		return err
	}
	if len(markets) == 0 {
		fmt.Println("No markets found. Run 'polypulse fetch' first.")
		return nil
	}

	s := market.Analytics(markets)

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	fmt.Printf("\n%s\n\n", titleStyle.Render("MARKET ANALYTICS"))
	fmt.Printf("Total 24h volume: %s across %d markets (%d active)\n\n",
		compactNumber(s.TotalVolume24h), len(markets), s.ActiveCount)

	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-14s  %-9s  %-6s", "PLATFORM", "VOLUME", "COUNT")))
	fmt.Println(strings.Repeat("─", 60))
	for _, p := range s.Platforms {
		fmt.Printf(" %-14s  %-9s  %-6d %s\n", p.Platform, compactNumber(p.Volume), p.Count,
			barStyle.Render(volumeBar(p.Volume, s.TotalVolume24h)))
	}

	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-14s  %-9s  %-6s", "CATEGORY", "VOLUME", "COUNT")))
	fmt.Println(strings.Repeat("─", 60))
	for _, c := range s.Categories {
		fmt.Printf(" %-14s  %-9s  %-6d %s\n", c.Category, compactNumber(c.Volume), c.Count,
			barStyle.Render(volumeBar(c.Volume, s.TotalVolume24h)))
	}

	fmt.Printf("\n%s\n", headerStyle.Render("TOP VOLUME"))
	for i, m := range s.TopVolume {
		fmt.Printf("%2d. %-9s %s\n", i+1, compactNumber(m.Volume24h), truncate(m.Title, 70))
	}
	fmt.Println()
	return nil
}

func volumeBar(v, total float64) string {
	if total <= 0 {
		return ""
	}
	return strings.Repeat("█", int(v/total*20))
}
