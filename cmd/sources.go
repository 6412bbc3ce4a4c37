package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julienpequegnot/polypulse/internal/config"
	"github.com/julienpequegnot/polypulse/internal/database"
	"github.com/julienpequegnot/polypulse/internal/source"
	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List news feeds",
	Long:  `Display all RSS feeds polypulse reads news from.`,
	RunE:  runSources,
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove <feed-id>",
	Short: "Stop reading a feed",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesRemove,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	db, err := database.New(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := source.NewRepository(db)
	sources, err := repo.List()
	if err != nil {
		return err
	}

	if len(sources) == 0 {
		fmt.Println("No feeds configured. Run 'polypulse init' or add one with 'polypulse add <url>'")
		return nil
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	urlStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-4s  %-20s  %-8s  %-16s  %s", "ID", "NAME", "CATEGORY", "LAST FETCHED", "URL")))
	fmt.Println(strings.Repeat("─", 100))

	for _, s := range sources {
		fetched := "never"
		if s.LastFetched != nil {
			fetched = s.LastFetched.Format("2006-01-02 15:04")
		}

		fmt.Printf(" %s  %s  %-8s  %-16s  %s\n",
			idStyle.Render(fmt.Sprintf("%-4d", s.ID)),
			nameStyle.Render(fmt.Sprintf("%-20s", truncate(s.Name, 20))),
			s.Category,
			fetched,
			urlStyle.Render(s.URL),
		)
	}

	return nil
}

func runSourcesRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid feed ID: %s", args[0])
	}

	db, err := database.New(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := source.NewRepository(db).Deactivate(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("feed not found: %d", id)
		}
		return err
	}

	fmt.Printf("Removed feed %d\n", id)
	return nil
}
