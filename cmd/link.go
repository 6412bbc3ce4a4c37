package cmd

import (
	"fmt"

	"github.com/julienpequegnot/polypulse/internal/article"
	"github.com/julienpequegnot/polypulse/internal/match"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Recompute stored article to market matches",
	Long: `Scores recent articles against the active markets and replaces the
stored matches of each article with its current best markets.`,
	RunE: runLink,
}

var linkLimit int

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.Flags().IntVarP(&linkLimit, "limit", "l", 200, "Number of recent articles to relink")
}

func runLink(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	articles, err := article.NewRepository(w.db).List("", linkLimit, 0)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		fmt.Println("No articles found. Run 'polypulse fetch' first.")
		return nil
	}

	markets, err := w.activeMarkets()
	if err != nil {
		return err
	}
	if len(markets) == 0 {
		fmt.Println("No active markets found. Run 'polypulse fetch' first.")
		return nil
	}

	fmt.Printf("Matching %d articles against %d markets\n", len(articles), len(markets))

	linked, err := w.linkArticles(articles, markets)
	if err != nil {
		return err
	}

	total, err := match.NewRepository(w.db).Count()
	if err != nil {
		return err
	}
	fmt.Printf("\nStored %d matches (%d in total)\n", linked, total)
	return nil
}
