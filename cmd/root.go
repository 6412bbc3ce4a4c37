package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "polypulse",
	Short: "Link breaking news to prediction markets",
	Long: `Polypulse pulls prediction markets from Polymarket and Kalshi,
reads news feeds, and scores which articles move which markets.

Pipeline: fetch → link → related`,
}

func init() {
	rootCmd.Version = "0.1.0"
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
