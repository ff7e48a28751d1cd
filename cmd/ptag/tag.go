package main

import (
	"fmt"

	"github.com/pathtags/ptag/internal/pathutil"
	"github.com/pathtags/ptag/internal/tag"
	"github.com/spf13/cobra"
)

var tagCmdTags []string

func init() {
	tagCmd.Flags().StringSliceVar(&tagCmdTags, "tags", nil, "Tags to add (comma-separated or repeated)")
	tagCmd.MarkFlagRequired("tags")
	rootCmd.AddCommand(tagCmd)
}

var tagCmd = &cobra.Command{
	Use:   "tag <path>... --tags <tag>,...",
	Short: "Add tags to paths",
	Long: `Add the given tags to the given paths.

Every path and tag argument is validated before anything is written, so a
bad argument leaves the store untouched. Re-tagging an already-tagged path
is a no-op. Paths need not exist on disk; tags describe intent, not live
filesystem state.

Example:
  ptag tag ./notes ./inbox --tags work,urgent`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTag,
}

func runTag(cmd *cobra.Command, args []string) error {
	paths, err := pathutil.ResolveAll(args)
	if err != nil {
		exitWithError(exitCodeFor(err), "invalid path: %v", err)
	}
	tags, err := tag.NormalizeAll(tagCmdTags)
	if err != nil {
		exitWithError(exitCodeFor(err), "invalid tag: %v", err)
	}
	if len(tags) == 0 {
		exitWithError(ExitError, "no tags given")
	}

	root := mustFindStore()
	cfg := mustLoadConfig(root)
	idx := mustLoadIndex(root)

	for _, p := range paths {
		idx.AddTags(p, tags)
	}
	mustSaveIndex(root, idx)

	if cfg.WarnMissing {
		warnMissingPaths(paths)
	}

	if humanOutput {
		fmt.Printf("Tagged %d path(s) with %d tag(s)\n", len(paths), len(tags))
	} else {
		outputJSON(MutationResponse{Status: "tagged", Paths: paths, Tags: tags})
	}
	return nil
}
