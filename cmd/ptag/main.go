// Package main provides the ptag CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pathtags/ptag/internal/config"
	"github.com/pathtags/ptag/internal/index"
	"github.com/pathtags/ptag/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ptag",
	Short: "Associate filesystem paths with tags and query them back",
	Long: `ptag attaches tags to filesystem paths and answers set queries over them.

Core features:
  - Tag, untag, and clear paths; tags are metadata and never require the
    path to exist on disk
  - Intersection queries (get) and union listings (list)
  - Tag inclusion: a tag can include other tags and match their paths
  - Full-text search over paths and tags

Data is stored in git-versionable JSONL with ephemeral SQLite for queries.
All commands output JSON by default for scripting; use --human for text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to start searching for a store.
// Checks PTAG_STORE / global config store_path first, then the current
// working directory.
func getStartingDirectory() (string, int) {
	if root := config.GetStorePath(); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindStore finds and validates the store, exits on error.
// Returns the store root path.
func mustFindStore() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	root, err := config.FindStore(start)
	if err != nil {
		// Show helpful message if no global config exists
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return root
}

// mustLoadIndex reads the JSONL source of truth and builds the in-memory
// index, exits on error.
func mustLoadIndex(root string) *index.Index {
	entries, err := storage.ReadAllEntries(config.EntriesPath(root))
	if err != nil {
		exitWithError(ExitDataError, "loading entries: %v", err)
	}
	defs, err := storage.ReadAllTagDefs(config.TagDefsPath(root))
	if err != nil {
		exitWithError(ExitDataError, "loading tag definitions: %v", err)
	}
	return index.Build(entries, defs)
}

// mustSaveIndex writes the index back to both JSONL files atomically,
// exits on error. The SQLite cache is left stale on purpose; staleness
// detection repairs it on the next cached read.
func mustSaveIndex(root string, idx *index.Index) {
	if err := storage.WriteAllEntries(config.EntriesPath(root), idx.Entries()); err != nil {
		exitWithError(ExitDataError, "saving entries: %v", err)
	}
	if err := storage.WriteAllTagDefs(config.TagDefsPath(root), idx.TagDefs()); err != nil {
		exitWithError(ExitDataError, "saving tag definitions: %v", err)
	}
}

// mustOpenFreshDB opens the SQLite cache and rebuilds it when stale.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenFreshDB(root string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitDataError, "creating cache directory: %v", err)
	}

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitDataError, "opening cache database: %v", err)
	}

	entriesPath := config.EntriesPath(root)
	defsPath := config.TagDefsPath(root)
	stale, err := db.NeedsSync(entriesPath, defsPath)
	if err != nil {
		db.Close()
		exitWithError(ExitDataError, "checking cache freshness: %v", err)
	}
	if stale {
		if _, err := db.RebuildFromJSONL(entriesPath, defsPath); err != nil {
			db.Close()
			exitWithError(ExitDataError, "rebuilding cache: %v", err)
		}
	}
	return db
}

// mustLoadConfig loads store configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
