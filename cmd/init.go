package cmd

import (
	"fmt"
	"os"

	"github.com/julienpequegnot/polypulse/internal/config"
	"github.com/julienpequegnot/polypulse/internal/database"
	"github.com/julienpequegnot/polypulse/internal/source"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize polypulse configuration and database",
	Long: `Creates the ~/.polypulse directory with config.yaml and the SQLite
database, then registers the default news feeds.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := config.Dir()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Keep an existing config; only write defaults on first run.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Wrote config at %s/config.yaml\n", dir)

	db, err := database.New(config.DBPath())
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()
	fmt.Printf("Created database at %s\n", config.DBPath())

	repo := source.NewRepository(db)
	added := 0
	for _, f := range cfg.Feeds {
		ok, err := repo.Ensure(f.URL, f.Name, f.Category)
		if err != nil {
			return err
		}
		if ok {
			added++
		}
	}
	fmt.Printf("Registered %d feeds\n", added)

	fmt.Println("\nPolypulse initialized! Next steps:")
	fmt.Println("  polypulse fetch            Fetch markets and news")
	fmt.Println("  polypulse markets          Browse markets by volume")
	fmt.Println("  polypulse related <id>     Show news for a market or markets for an article")

	return nil
}
