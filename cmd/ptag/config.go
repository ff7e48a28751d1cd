package main

import (
	"fmt"
	"strconv"

	"github.com/pathtags/ptag/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set store configuration",
	Long: `Get or set store configuration kept in .ptag/config.json.

Keys:
  warn_missing  (bool)   warn when tagging a path absent on disk
  editor        (string) preferred editor for opening tagged files`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	WarnMissing bool   `json:"warn_missing"`
	Editor      string `json:"editor,omitempty"`
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	root := mustFindStore()
	cfg := mustLoadConfig(root)

	if len(args) == 1 {
		var value string
		switch args[0] {
		case "warn_missing":
			value = strconv.FormatBool(cfg.WarnMissing)
		case "editor":
			value = cfg.Editor
		default:
			exitWithError(ExitError, "unknown config key: %s", args[0])
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(UpdateResponse{Status: "ok", Key: args[0], Value: value})
		}
		return nil
	}

	if humanOutput {
		fmt.Printf("warn_missing: %t\n", cfg.WarnMissing)
		fmt.Printf("editor:       %s\n", cfg.Editor)
	} else {
		outputJSON(ConfigResponse{WarnMissing: cfg.WarnMissing, Editor: cfg.Editor})
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	root := mustFindStore()
	cfg := mustLoadConfig(root)

	switch key {
	case "warn_missing":
		b, err := strconv.ParseBool(value)
		if err != nil {
			exitWithError(ExitError, "warn_missing must be true or false, got %q", value)
		}
		cfg.WarnMissing = b
	case "editor":
		if err := config.ValidateEditor(value); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		cfg.Editor = value
	default:
		exitWithError(ExitError, "unknown config key: %s", key)
	}

	if err := cfg.Save(root); err != nil {
		exitWithError(ExitDataError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}
