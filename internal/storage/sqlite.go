package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pathtags/ptag/internal/tag"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite query cache. The cache is disposable: it is rebuilt
// from the JSONL source whenever the stored hash no longer matches.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite cache at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the cache schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per tracked path
		CREATE TABLE IF NOT EXISTS entries (
			path TEXT PRIMARY KEY,
			tags_json TEXT NOT NULL
		);

		-- Exploded path/tag pairs for set queries
		CREATE TABLE IF NOT EXISTS entry_tags (
			path TEXT NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (path, tag)
		);
		CREATE INDEX IF NOT EXISTS idx_entry_tags_tag ON entry_tags(tag);

		-- Tag inclusion definitions
		CREATE TABLE IF NOT EXISTS tag_defs (
			name TEXT PRIMARY KEY,
			includes_json TEXT
		);

		-- Full-text search over path text and tag text
		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			path,
			tags_text
		);

		-- Cache metadata (store hash, last sync time)
		CREATE TABLE IF NOT EXISTS ptag_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the cache and rebuilds it from the JSONL source.
// Returns the number of path entries loaded.
func (d *DB) RebuildFromJSONL(entriesPath, tagDefsPath string) (int, error) {
	entries, err := ReadAllEntries(entriesPath)
	if err != nil {
		return 0, fmt.Errorf("reading entries JSONL: %w", err)
	}
	defs, err := ReadAllTagDefs(tagDefsPath)
	if err != nil {
		return 0, fmt.Errorf("reading tag definitions JSONL: %w", err)
	}

	for _, table := range []string{"entries", "entry_tags", "tag_defs", "entries_fts"} {
		if _, err := d.db.Exec("DELETE FROM " + table); err != nil {
			return 0, fmt.Errorf("clearing %s table: %w", table, err)
		}
	}

	entryStmt, err := d.db.Prepare(`INSERT INTO entries (path, tags_json) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing entries insert: %w", err)
	}
	defer entryStmt.Close()

	pairStmt, err := d.db.Prepare(`INSERT INTO entry_tags (path, tag) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing entry_tags insert: %w", err)
	}
	defer pairStmt.Close()

	ftsStmt, err := d.db.Prepare(`INSERT INTO entries_fts (path, tags_text) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing entries_fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, e := range entries {
		tagsJSON, err := json.Marshal(e.Tags)
		if err != nil {
			return 0, fmt.Errorf("marshaling tags for %s: %w", e.Path, err)
		}
		if _, err := entryStmt.Exec(e.Path, string(tagsJSON)); err != nil {
			return 0, fmt.Errorf("inserting entry %s: %w", e.Path, err)
		}
		for _, t := range e.Tags {
			if _, err := pairStmt.Exec(e.Path, t); err != nil {
				return 0, fmt.Errorf("inserting entry_tags for %s: %w", e.Path, err)
			}
		}
		if _, err := ftsStmt.Exec(e.Path, strings.Join(e.Tags, " ")); err != nil {
			return 0, fmt.Errorf("inserting entries_fts for %s: %w", e.Path, err)
		}
	}

	defStmt, err := d.db.Prepare(`INSERT INTO tag_defs (name, includes_json) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing tag_defs insert: %w", err)
	}
	defer defStmt.Close()

	for _, def := range defs {
		var includesJSON sql.NullString
		if len(def.Includes) > 0 {
			data, err := json.Marshal(def.Includes)
			if err != nil {
				return 0, fmt.Errorf("marshaling includes for %s: %w", def.Name, err)
			}
			includesJSON = sql.NullString{String: string(data), Valid: true}
		}
		if _, err := defStmt.Exec(def.Name, includesJSON); err != nil {
			return 0, fmt.Errorf("inserting tag_def %s: %w", def.Name, err)
		}
	}

	hash, err := ComputeStoreHash(entriesPath, tagDefsPath)
	if err != nil {
		return 0, fmt.Errorf("computing store hash: %w", err)
	}
	if err := d.setMeta("store_hash", hash); err != nil {
		return 0, fmt.Errorf("updating hash: %w", err)
	}
	if err := d.setMeta("last_sync", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("updating sync time: %w", err)
	}

	return len(entries), nil
}

// NeedsSync reports whether the cache is stale relative to the JSONL source.
func (d *DB) NeedsSync(entriesPath, tagDefsPath string) (bool, error) {
	current, err := ComputeStoreHash(entriesPath, tagDefsPath)
	if err != nil {
		return true, err
	}
	stored, err := d.getMeta("store_hash")
	if err != nil {
		return true, err
	}
	return current != stored, nil
}

// LastSync returns the recorded rebuild time, zero if the cache was never built.
func (d *DB) LastSync() (time.Time, error) {
	value, err := d.getMeta("last_sync")
	if err != nil || value == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}

// PathsByTag returns the paths directly carrying a tag, sorted.
func (d *DB) PathsByTag(t string) ([]string, error) {
	rows, err := d.db.Query(`SELECT path FROM entry_tags WHERE tag = ? ORDER BY path`, t)
	if err != nil {
		return nil, fmt.Errorf("querying paths by tag: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// TagsByPath returns the tags on a path, sorted.
func (d *DB) TagsByPath(path string) ([]string, error) {
	rows, err := d.db.Query(`SELECT tag FROM entry_tags WHERE path = ? ORDER BY tag`, path)
	if err != nil {
		return nil, fmt.Errorf("querying tags by path: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// AllTags returns every tag that appears on at least one path, sorted.
func (d *DB) AllTags() ([]string, error) {
	rows, err := d.db.Query(`SELECT DISTINCT tag FROM entry_tags ORDER BY tag`)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// CountEntries returns the number of tracked paths.
func (d *DB) CountEntries() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}

// SearchPaths performs a full-text search over path text and tag text.
func (d *DB) SearchPaths(query string, limit int) ([]tag.Entry, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT e.path, e.tags_json
		FROM entries e
		WHERE e.path IN (SELECT path FROM entries_fts WHERE entries_fts MATCH ?)
		ORDER BY e.path
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching entries: %w", err)
	}
	defer rows.Close()

	var results []tag.Entry
	for rows.Next() {
		var e tag.Entry
		var tagsJSON string
		if err := rows.Scan(&e.Path, &tagsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			return nil, fmt.Errorf("parsing tags JSON for %s: %w", e.Path, err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

// prepareFTSQuery quotes each term so FTS5 treats user input literally
// (slashes and dots in paths would otherwise be query syntax).
func prepareFTSQuery(query string) string {
	terms := strings.Fields(query)
	for i, term := range terms {
		terms[i] = `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

func (d *DB) setMeta(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO ptag_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (d *DB) getMeta(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM ptag_meta WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
