package main

import (
	"fmt"
	"strings"

	"github.com/pathtags/ptag/internal/tag"
	"github.com/spf13/cobra"
)

func init() {
	includeCmd.AddCommand(includeAddCmd)
	includeCmd.AddCommand(includeRemoveCmd)
	includeCmd.AddCommand(includeShowCmd)
	rootCmd.AddCommand(includeCmd)
}

var includeCmd = &cobra.Command{
	Use:   "include",
	Short: "Manage tag inclusion",
	Long: `Manage tag inclusion.

A tag that includes other tags also matches their paths in 'get' queries,
transitively. Inclusion cycles are rejected at query time.`,
}

var includeAddCmd = &cobra.Command{
	Use:   "add <tag> <included>...",
	Short: "Make a tag include other tags",
	Long: `Make a tag include the given tags.

Example:
  ptag include add work project-x project-y`,
	Args: cobra.MinimumNArgs(2),
	RunE: runIncludeAdd,
}

var includeRemoveCmd = &cobra.Command{
	Use:   "remove <tag> <included>...",
	Short: "Stop a tag from including other tags",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runIncludeRemove,
}

var includeShowCmd = &cobra.Command{
	Use:   "show <tag>",
	Short: "Show the tags a tag includes",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncludeShow,
}

// normalizeIncludeArgs validates the parent tag and its include list,
// rejecting self-inclusion before any state is touched.
func normalizeIncludeArgs(args []string) (string, []string, error) {
	tags, err := tag.NormalizeAll(args)
	if err != nil {
		return "", nil, err
	}
	parent, included := tags[0], tags[1:]
	for _, inc := range included {
		if inc == parent {
			return "", nil, tag.ErrSelfInclude
		}
	}
	return parent, included, nil
}

func runIncludeAdd(cmd *cobra.Command, args []string) error {
	parent, included, err := normalizeIncludeArgs(args)
	if err != nil {
		exitWithError(exitCodeFor(err), "invalid include: %v", err)
	}
	if len(included) == 0 {
		exitWithError(ExitError, "nothing to include (arguments collapsed to the tag itself)")
	}

	root := mustFindStore()
	idx := mustLoadIndex(root)

	idx.AddIncludes(parent, included)

	// Reject additions that would close a cycle before persisting them.
	if _, err := idx.Get([]string{parent}); err != nil {
		exitWithError(exitCodeFor(err), "rejecting include: %v", err)
	}
	mustSaveIndex(root, idx)

	if humanOutput {
		fmt.Printf("%s now includes %s\n", parent, strings.Join(included, ", "))
	} else {
		outputJSON(IncludeResponse{Status: "added", Tag: parent, Includes: idx.IncludesOf(parent)})
	}
	return nil
}

func runIncludeRemove(cmd *cobra.Command, args []string) error {
	parent, included, err := normalizeIncludeArgs(args)
	if err != nil {
		exitWithError(exitCodeFor(err), "invalid include: %v", err)
	}

	root := mustFindStore()
	idx := mustLoadIndex(root)

	idx.RemoveIncludes(parent, included)
	mustSaveIndex(root, idx)

	if humanOutput {
		fmt.Printf("%s no longer includes %s\n", parent, strings.Join(included, ", "))
	} else {
		outputJSON(IncludeResponse{Status: "removed", Tag: parent, Includes: emptyNotNil(idx.IncludesOf(parent))})
	}
	return nil
}

func runIncludeShow(cmd *cobra.Command, args []string) error {
	name := tag.Normalize(args[0])
	if err := tag.ValidateName(name); err != nil {
		exitWithError(exitCodeFor(err), "invalid tag: %v", err)
	}

	root := mustFindStore()
	idx := mustLoadIndex(root)

	includes := idx.IncludesOf(name)
	if humanOutput {
		printLines(includes)
	} else {
		outputJSON(IncludeResponse{Tag: name, Includes: emptyNotNil(includes)})
	}
	return nil
}
