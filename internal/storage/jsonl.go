// Package storage persists the tag index: JSONL files as the durable source
// of truth, with an ephemeral SQLite cache for queries.
package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pathtags/ptag/internal/tag"
)

// MaxLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxLineCapacity = 1024 * 1024

// ErrCorruptStore is returned when a store file cannot be parsed. A missing
// file is not corruption; it reads as an empty store.
var ErrCorruptStore = errors.New("corrupt store")

// ReadAllEntries reads all path entries from a JSONL file.
// Returns an error if any entry fails structural validation (fail-fast).
func ReadAllEntries(path string) ([]tag.Entry, error) {
	var entries []tag.Entry
	err := readJSONL(path, func(line []byte, lineNum int) error {
		var e tag.Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return fmt.Errorf("%w: parsing line %d: %v", ErrCorruptStore, lineNum, err)
		}
		if err := e.ValidateForStore(); err != nil {
			return fmt.Errorf("%w: invalid entry at line %d: %v", ErrCorruptStore, lineNum, err)
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReadAllTagDefs reads all tag definitions from a JSONL file.
func ReadAllTagDefs(path string) ([]tag.TagDef, error) {
	var defs []tag.TagDef
	err := readJSONL(path, func(line []byte, lineNum int) error {
		var d tag.TagDef
		if err := json.Unmarshal(line, &d); err != nil {
			return fmt.Errorf("%w: parsing line %d: %v", ErrCorruptStore, lineNum, err)
		}
		if err := d.ValidateForStore(); err != nil {
			return fmt.Errorf("%w: invalid tag definition at line %d: %v", ErrCorruptStore, lineNum, err)
		}
		defs = append(defs, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

// readJSONL scans a JSONL file line by line. A missing file yields no lines
// and no error.
func readJSONL(path string, each func(line []byte, lineNum int) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Empty store
		}
		return fmt.Errorf("opening store file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, MaxLineCapacity)
	scanner.Buffer(buf, MaxLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		if err := each(line, lineNum); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading store file: %w", err)
	}
	return nil
}

// WriteAllEntries writes all entries to a JSONL file atomically.
func WriteAllEntries(path string, entries []tag.Entry) error {
	return writeAtomic(path, func(w io.Writer) error {
		for i, e := range entries {
			if err := writeJSONLine(w, e); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
		}
		return nil
	})
}

// WriteAllTagDefs writes all tag definitions to a JSONL file atomically.
func WriteAllTagDefs(path string, defs []tag.TagDef) error {
	return writeAtomic(path, func(w io.Writer) error {
		for i, d := range defs {
			if err := writeJSONLine(w, d); err != nil {
				return fmt.Errorf("tag definition %d: %w", i, err)
			}
		}
		return nil
	})
}

func writeJSONLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}
	return nil
}

// writeAtomic writes via a temp file in the same directory, fsyncs, then
// renames over the target. A failure at any point leaves the previous file
// intact.
func writeAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.jsonl")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := write(tmpFile); err != nil {
		tmpFile.Close()
		return err
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}
