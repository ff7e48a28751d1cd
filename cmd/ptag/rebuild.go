package main

import (
	"fmt"
	"os"

	"github.com/pathtags/ptag/internal/config"
	"github.com/pathtags/ptag/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the SQLite cache from the JSONL source",
	Long: `Force a rebuild of the SQLite query cache from the JSONL files.

The cache is disposable and rebuilt automatically when stale; this command
exists for recovering from a deleted or damaged cache file.

Example:
  ptag rebuild`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResponse is the response for the rebuild command.
type RebuildResponse struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	root := mustFindStore()

	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitDataError, "creating cache directory: %v", err)
	}

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitDataError, "opening cache database: %v", err)
	}
	defer db.Close()

	n, err := db.RebuildFromJSONL(config.EntriesPath(root), config.TagDefsPath(root))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding cache: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt cache with %d entries\n", n)
	} else {
		outputJSON(RebuildResponse{Status: "rebuilt", Entries: n})
	}
	return nil
}
