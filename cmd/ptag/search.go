package main

import (
	"fmt"
	"strings"

	"github.com/pathtags/ptag/internal/tag"
	"github.com/spf13/cobra"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Full-text search over paths and tags",
	Long: `Search tracked paths by words occurring in the path itself or in its tags.

The search runs against the SQLite cache, which is rebuilt automatically
when the JSONL source has changed since the last build.

Example:
  ptag search quarterly report`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	root := mustFindStore()
	db := mustOpenFreshDB(root)
	defer db.Close()

	results, err := db.SearchPaths(query, searchLimit)
	if err != nil {
		exitWithError(ExitDataError, "searching: %v", err)
	}

	if humanOutput {
		for _, e := range results {
			fmt.Printf("%s  [%s]\n", e.Path, strings.Join(e.Tags, ", "))
		}
	} else {
		if results == nil {
			results = []tag.Entry{}
		}
		outputJSON(SearchResponse{Query: query, Results: results})
	}
	return nil
}
