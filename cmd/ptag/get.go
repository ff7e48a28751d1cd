package main

import (
	"github.com/pathtags/ptag/internal/tag"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <tag>...",
	Short: "Get paths carrying every given tag",
	Long: `Get the paths that carry all of the given tags.

With one tag this is a plain lookup; with several it is the intersection.
A tag's paths include those of any tags it includes (see 'ptag include').
Unknown tags match nothing; nothing is printed when no path qualifies.

Example:
  ptag get work urgent`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	tags, err := tag.NormalizeAll(args)
	if err != nil {
		exitWithError(exitCodeFor(err), "invalid tag: %v", err)
	}

	root := mustFindStore()
	idx := mustLoadIndex(root)

	paths, err := idx.Get(tags)
	if err != nil {
		exitWithError(exitCodeFor(err), "querying: %v", err)
	}

	if humanOutput {
		printLines(paths)
	} else {
		outputJSON(PathsResponse{Tags: tags, Paths: emptyNotNil(paths)})
	}
	return nil
}

// emptyNotNil keeps empty results as [] rather than null in JSON output.
func emptyNotNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
