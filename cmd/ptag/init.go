package main

import (
	"fmt"
	"os"

	"github.com/pathtags/ptag/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a ptag store in the current directory",
	Long: `Initialize a ptag store by creating a .ptag directory here.

Paths tagged from anywhere under this directory resolve to this store
unless PTAG_STORE or the global store_path points elsewhere.

Example:
  ptag init`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsStore(cwd) {
		exitWithError(ExitError, "already a ptag store: %s", config.PtagPath(cwd))
	}

	if err := os.MkdirAll(config.CachePath(cwd), 0755); err != nil {
		exitWithError(ExitDataError, "creating store directory: %v", err)
	}

	// Touch the JSONL files so the store is visibly complete.
	for _, p := range []string{config.EntriesPath(cwd), config.TagDefsPath(cwd)} {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			exitWithError(ExitDataError, "creating %s: %v", p, err)
		}
		f.Close()
	}

	if humanOutput {
		fmt.Printf("Initialized ptag store in %s\n", config.PtagPath(cwd))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.PtagPath(cwd)})
	}
	return nil
}
