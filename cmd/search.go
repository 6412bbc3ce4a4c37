package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julienpequegnot/polypulse/internal/article"
	"github.com/julienpequegnot/polypulse/internal/market"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stored articles and markets",
	Long:  `Case-insensitive search across article and market titles and descriptions.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var searchLimit int

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 10, "Maximum results per kind")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	markets, err := market.NewRepository(w.db).Search(query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	articles, err := article.NewRepository(w.db).Search(query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(markets) == 0 && len(articles) == 0 {
		fmt.Printf("No results found for '%s'\n", query)
		return nil
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sourceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	snippetStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	fmt.Printf("\n%s '%s' (%d markets, %d articles)\n\n", titleStyle.Render("SEARCH:"), query, len(markets), len(articles))

	for _, m := range markets {
		fmt.Printf("%s %s\n", idStyle.Render(fmt.Sprintf("[%s]", truncate(m.ID, 12))), m.Title)
		fmt.Printf("    %s • %s yes • %s\n\n", sourceStyle.Render(string(m.Platform)), percent(m.YesPrice), compactNumber(m.Volume24h))
	}

	for _, a := range articles {
		fmt.Printf("%s %s\n", idStyle.Render(fmt.Sprintf("[%s]", shortID(a.ID))), a.Title)
		fmt.Printf("    %s\n", sourceStyle.Render(a.Source))
		if a.Description != "" {
			fmt.Printf("    %s\n", snippetStyle.Render(truncate(a.Description, 160)))
		}
		fmt.Println()
	}

	return nil
}
