package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julienpequegnot/polypulse/internal/article"
	"github.com/julienpequegnot/polypulse/internal/category"
	"github.com/spf13/cobra"
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "List stored news articles",
	Long:  `List articles fetched from the registered feeds, newest first.`,
	RunE:  runNews,
}

var (
	newsTop      int
	newsCategory string
)

func init() {
	rootCmd.AddCommand(newsCmd)
	newsCmd.Flags().IntVarP(&newsTop, "top", "n", 20, "Number of articles to show")
	newsCmd.Flags().StringVar(&newsCategory, "category", "", "Filter by category")
}

func runNews(cmd *cobra.Command, args []string) error {
	c, err := category.Parse(newsCategory)
	if err != nil {
		return err
	}

	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	articles, err := article.NewRepository(w.db).List(string(c), newsTop, 0)
	if err != nil {
		return err
	}

	if len(articles) == 0 {
		fmt.Println("No articles found. Run 'polypulse fetch' to download news.")
		return nil
	}

	printArticles(articles)
	return nil
}

func printArticles(articles []article.Article) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sourceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-8s  %-16s  %-20s  %-12s  %s", "ID", "PUBLISHED", "SOURCE", "CATEGORY", "TITLE")))
	fmt.Println(strings.Repeat("─", 110))

	for _, a := range articles {
		date := "-"
		if !a.PublishedAt.IsZero() {
			date = a.PublishedAt.Format("2006-01-02 15:04")
		}

		fmt.Printf(" %s  %s  %s  %-12s  %s\n",
			idStyle.Render(shortID(a.ID)),
			dateStyle.Render(fmt.Sprintf("%-16s", date)),
			sourceStyle.Render(fmt.Sprintf("%-20s", truncate(a.Source, 20))),
			a.Category,
			truncate(a.Title, 50),
		)
	}

	fmt.Printf("\nShowing %d articles\n", len(articles))
}
