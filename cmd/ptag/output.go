package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pathtags/ptag/internal/index"
	"github.com/pathtags/ptag/internal/pathutil"
	"github.com/pathtags/ptag/internal/storage"
	"github.com/pathtags/ptag/internal/tag"
)

// DefaultSearchLimit is the default limit for search results.
const DefaultSearchLimit = 50

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitCodeFor maps sentinel errors onto exit codes: validation failures are
// user errors, everything else touching the store is a data error.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, pathutil.ErrInvalidPath),
		errors.Is(err, tag.ErrEmptyTag),
		errors.Is(err, tag.ErrInvalidTag),
		errors.Is(err, tag.ErrSelfInclude),
		errors.Is(err, index.ErrInvalidQuery),
		errors.Is(err, index.ErrCyclicInclude):
		return ExitError
	case errors.Is(err, storage.ErrCorruptStore):
		return ExitDataError
	default:
		return ExitDataError
	}
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// PathsResponse is the response for queries that return paths.
type PathsResponse struct {
	Tags  []string `json:"tags"`
	Paths []string `json:"paths"`
}

// TagsResponse is the response for listings that return tags.
type TagsResponse struct {
	Paths []string `json:"paths,omitempty"`
	Tags  []string `json:"tags"`
}

// MutationResponse is the response for tag/untag/clear commands.
type MutationResponse struct {
	Status string   `json:"status"`
	Paths  []string `json:"paths"`
	Tags   []string `json:"tags,omitempty"`
}

// IncludeResponse is the response for include commands.
type IncludeResponse struct {
	Status   string   `json:"status,omitempty"`
	Tag      string   `json:"tag"`
	Includes []string `json:"includes"`
}

// SearchResponse is the response for the search command.
type SearchResponse struct {
	Query   string      `json:"query"`
	Results []tag.Entry `json:"results"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// printLines writes one value per line for human output; queries stay
// greppable and pipeable.
func printLines(values []string) {
	for _, v := range values {
		fmt.Println(v)
	}
}

// warnMissingPaths prints a notice for tagged paths absent on disk.
// Warnings go to stderr and never affect exit status.
func warnMissingPaths(paths []string) {
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "warning: %s does not exist on disk\n", p)
		}
	}
}
