package cmd

import (
	"fmt"
	"strings"

	"github.com/julienpequegnot/polypulse/internal/category"
	"github.com/julienpequegnot/polypulse/internal/keyword"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Show the category and keywords extracted from text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

var (
	classifyTags  []string
	classifyLimit int
)

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringSliceVarP(&classifyTags, "tag", "t", nil, "Extra tags to classify with")
	classifyCmd.Flags().IntVarP(&classifyLimit, "limit", "l", 10, "Number of primary keywords")
}

func runClassify(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	ex := keyword.Extract(text, classifyLimit)

	fmt.Printf("Category:  %s\n", category.Classify(text, classifyTags...))
	fmt.Printf("Primary:   %s\n", strings.Join(ex.Primary, ", "))
	fmt.Printf("Secondary: %s\n", strings.Join(ex.Secondary, ", "))
	fmt.Printf("Entities:  %s\n", strings.Join(ex.Entities, ", "))
	fmt.Printf("Keywords:  %s\n", strings.Join(ex.Keywords(), ", "))
	return nil
}
