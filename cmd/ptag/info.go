package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pathtags/ptag/internal/config"
	"github.com/pathtags/ptag/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show store location, record counts, and cache state",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

// InfoResponse describes the store for the info command.
type InfoResponse struct {
	Root        string    `json:"root"`
	EntriesPath string    `json:"entries_path"`
	TagDefsPath string    `json:"tag_defs_path"`
	DBPath      string    `json:"db_path"`
	Paths       int       `json:"paths"`
	Tags        int       `json:"tags"`
	EntriesSize int64     `json:"entries_size"`
	InSync      bool      `json:"in_sync"`
	LastSync    time.Time `json:"last_sync,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	root := mustFindStore()
	idx := mustLoadIndex(root)

	info := InfoResponse{
		Root:        root,
		EntriesPath: config.EntriesPath(root),
		TagDefsPath: config.TagDefsPath(root),
		DBPath:      config.DBPath(root),
		Paths:       len(idx.Paths()),
		Tags:        len(idx.Tags()),
	}

	if stat, err := os.Stat(info.EntriesPath); err == nil {
		info.EntriesSize = stat.Size()
	}

	// Cache state is best-effort: a missing cache reads as never built
	// rather than being created by a read-only command.
	cacheExists := false
	if _, err := os.Stat(info.DBPath); err == nil {
		cacheExists = true
		if db, err := storage.OpenDB(info.DBPath); err == nil {
			if stale, err := db.NeedsSync(info.EntriesPath, info.TagDefsPath); err == nil {
				info.InSync = !stale
			}
			if last, err := db.LastSync(); err == nil && !last.IsZero() {
				info.LastSync = last
			}
			db.Close()
		}
	}

	if humanOutput {
		fmt.Printf("Store:    %s\n", info.Root)
		fmt.Printf("Paths:    %d\n", info.Paths)
		fmt.Printf("Tags:     %d\n", info.Tags)
		fmt.Printf("Entries:  %s (%d bytes)\n", info.EntriesPath, info.EntriesSize)
		if cacheExists {
			fmt.Printf("Cache:    %s (in sync: %t)\n", info.DBPath, info.InSync)
		} else {
			fmt.Printf("Cache:    %s (never built)\n", info.DBPath)
		}
		if !info.LastSync.IsZero() {
			fmt.Printf("Last sync: %s\n", info.LastSync.Format(time.RFC3339))
		}
	} else {
		outputJSON(info)
	}
	return nil
}
