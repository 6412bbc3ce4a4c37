package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julienpequegnot/polypulse/internal/article"
	"github.com/julienpequegnot/polypulse/internal/trend"
	"github.com/spf13/cobra"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show trending news topics",
	Long: `Analyzes stored articles to find the categories, or with --entities the
named entities, that appear most often and most recently.`,
	RunE: runTrends,
}

var (
	trendsDays     int
	trendsLimit    int
	trendsEntities bool
)

func init() {
	rootCmd.AddCommand(trendsCmd)
	trendsCmd.Flags().IntVar(&trendsDays, "days", 7, "Time window in days")
	trendsCmd.Flags().IntVarP(&trendsLimit, "limit", "l", 10, "Maximum trends to show")
	trendsCmd.Flags().BoolVar(&trendsEntities, "entities", false, "Rank named entities instead of categories")
}

func runTrends(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	articles, err := article.NewRepository(w.db).List("", 1000, 0)
	if err != nil {
		return err
	}

	if len(articles) == 0 {
		fmt.Println("No articles found.")
		return nil
	}

	topicsOf := trend.CategoryTopics
	if trendsEntities {
		topicsOf = trend.EntityTopics
	}
	trends := trend.FromArticles(articles, topicsOf).Trends(trendsDays, trendsLimit)

	if len(trends) == 0 {
		fmt.Println("No trending topics found.")
		return nil
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	fmt.Printf("\n%s (last %d days)\n\n", titleStyle.Render("TRENDING TOPICS"), trendsDays)

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	maxScore := trends[0].Score

	for i, t := range trends {
		barWidth := int((t.Score / maxScore) * 20)

		fmt.Printf("%2d. %-20s %s %.1f (%d articles, %d recent)\n",
			i+1,
			truncate(t.Topic, 20),
			barStyle.Render(strings.Repeat("█", barWidth)),
			t.Score,
			t.Count,
			len(t.RecentArticles))
	}

	fmt.Println()
	return nil
}
