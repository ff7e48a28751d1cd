package tag

import "errors"

// Entry associates one canonical path with its tag set.
// Entries are the unit of persistence in paths.jsonl.
type Entry struct {
	Path string   `json:"path"`
	Tags []string `json:"tags"`
}

// TagDef declares a tag that includes other tags. A query for the tag also
// matches paths carried by any transitively included tag.
// TagDefs are the unit of persistence in tags.jsonl.
type TagDef struct {
	Name     string   `json:"name"`
	Includes []string `json:"includes,omitempty"`
}

// Validation errors for stored records.
var (
	ErrEmptyPath = errors.New("path is required")
	ErrNoTags    = errors.New("entry has no tags")
)

// ValidateForStore validates an entry before it is read into or written out
// of the store. Entries with empty tag sets are never persisted.
func (e *Entry) ValidateForStore() error {
	if e.Path == "" {
		return ErrEmptyPath
	}
	if len(e.Tags) == 0 {
		return ErrNoTags
	}
	for _, t := range e.Tags {
		if err := ValidateName(t); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForStore validates a tag definition record.
func (d *TagDef) ValidateForStore() error {
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	for _, inc := range d.Includes {
		if err := ValidateName(inc); err != nil {
			return err
		}
		if inc == d.Name {
			return ErrSelfInclude
		}
	}
	return nil
}
