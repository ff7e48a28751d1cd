package main

import (
	"fmt"

	"github.com/pathtags/ptag/internal/pathutil"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear <path>...",
	Short: "Remove all tags from paths",
	Long: `Remove every tag from the given paths, dropping them from the store.

Clearing an untracked path is a no-op.

Example:
  ptag clear ./notes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	paths, err := pathutil.ResolveAll(args)
	if err != nil {
		exitWithError(exitCodeFor(err), "invalid path: %v", err)
	}

	root := mustFindStore()
	idx := mustLoadIndex(root)

	for _, p := range paths {
		idx.ClearTags(p)
	}
	mustSaveIndex(root, idx)

	if humanOutput {
		fmt.Printf("Cleared %d path(s)\n", len(paths))
	} else {
		outputJSON(MutationResponse{Status: "cleared", Paths: paths})
	}
	return nil
}
