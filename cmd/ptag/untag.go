package main

import (
	"fmt"

	"github.com/pathtags/ptag/internal/pathutil"
	"github.com/pathtags/ptag/internal/tag"
	"github.com/spf13/cobra"
)

var untagCmdTags []string

func init() {
	untagCmd.Flags().StringSliceVar(&untagCmdTags, "tags", nil, "Tags to remove (comma-separated or repeated)")
	untagCmd.MarkFlagRequired("tags")
	rootCmd.AddCommand(untagCmd)
}

var untagCmd = &cobra.Command{
	Use:   "untag <path>... --tags <tag>,...",
	Short: "Remove tags from paths",
	Long: `Remove the given tags from the given paths.

Removing a tag a path doesn't carry is a no-op. A path whose last tag is
removed disappears from the store entirely.

Example:
  ptag untag ./notes --tags urgent`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUntag,
}

func runUntag(cmd *cobra.Command, args []string) error {
	paths, err := pathutil.ResolveAll(args)
	if err != nil {
		exitWithError(exitCodeFor(err), "invalid path: %v", err)
	}
	tags, err := tag.NormalizeAll(untagCmdTags)
	if err != nil {
		exitWithError(exitCodeFor(err), "invalid tag: %v", err)
	}
	if len(tags) == 0 {
		exitWithError(ExitError, "no tags given")
	}

	root := mustFindStore()
	idx := mustLoadIndex(root)

	for _, p := range paths {
		idx.RemoveTags(p, tags)
	}
	mustSaveIndex(root, idx)

	if humanOutput {
		fmt.Printf("Untagged %d path(s)\n", len(paths))
	} else {
		outputJSON(MutationResponse{Status: "untagged", Paths: paths, Tags: tags})
	}
	return nil
}
