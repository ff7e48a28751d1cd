package main

import (
	"github.com/pathtags/ptag/internal/pathutil"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [path...]",
	Short: "List tags on the given paths, or all tags",
	Long: `List every tag that occurs on any of the given paths (a union, unlike
'get', which intersects). With no paths, lists every tag in the store.

Untracked paths contribute nothing and are not an error.

Examples:
  ptag list
  ptag list ./notes ~/projects/x`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	paths, err := pathutil.ResolveAll(args)
	if err != nil {
		exitWithError(exitCodeFor(err), "invalid path: %v", err)
	}

	root := mustFindStore()
	idx := mustLoadIndex(root)

	tags := idx.ListTags(paths)

	if humanOutput {
		printLines(tags)
	} else {
		outputJSON(TagsResponse{Paths: paths, Tags: emptyNotNil(tags)})
	}
	return nil
}
