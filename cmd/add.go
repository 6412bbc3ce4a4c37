package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/julienpequegnot/polypulse/internal/config"
	"github.com/julienpequegnot/polypulse/internal/database"
	"github.com/julienpequegnot/polypulse/internal/source"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <feed-url>",
	Short: "Add an RSS feed to read news from",
	Long: `Add an RSS or Atom feed URL. A URL containing {query} is a search feed
and is queried with the current news query on every fetch.

Feeds in the crypto or tech category are only read for matching queries.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var (
	addName     string
	addCategory string
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "Custom name for the feed")
	addCmd.Flags().StringVar(&addCategory, "category", "general", "Feed category (general, crypto, tech)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	feedURL := args[0]

	if !strings.HasPrefix(feedURL, "http") {
		feedURL = "https://" + feedURL
	}

	// Braces in {query} are not valid URL characters; check the rest.
	parsed, err := url.Parse(strings.ReplaceAll(feedURL, source.QueryPlaceholder, "q"))
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s", args[0])
	}

	name := addName
	if name == "" {
		name = parsed.Host
	}

	db, err := database.New(config.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := source.NewRepository(db)
	src, err := repo.Add(feedURL, name, strings.ToLower(addCategory))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("feed already exists: %s", feedURL)
		}
		return err
	}

	fmt.Printf("Added: %s (ID: %d)\n", src.Name, src.ID)
	if src.IsQueryFeed() {
		fmt.Println("This is a search feed; it is queried with --query or --market.")
	}
	fmt.Println("\nRun 'polypulse fetch' to download news")

	return nil
}
