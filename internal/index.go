package internal

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Index is a local SQLite index over extracted sessions, used for fast
// listing and search without re-reading the extracted files.
type Index struct {
	db *sql.DB
}

// IndexEntry is one indexed extracted session.
type IndexEntry struct {
	SessionID    string
	MachineID    string
	RawPath      string
	OutputPath   string
	ExtractedAt  time.Time
	MessageCount int
	Summary      string
}

const indexSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id       TEXT PRIMARY KEY,
	machine_id       TEXT NOT NULL,
	raw_path         TEXT NOT NULL,
	output_path      TEXT NOT NULL,
	file_modified_at TEXT NOT NULL,
	extracted_at     TEXT NOT NULL,
	message_count    INTEGER NOT NULL,
	summary          TEXT NOT NULL DEFAULT ''
);
`

// OpenIndex opens (creating if needed) the session index at path.
func OpenIndex(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &IndexError{Op: "open", Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &IndexError{Op: "open", Err: err}
	}
	if _, err := db.Exec(indexSchema); err != nil {
		db.Close()
		return nil, &IndexError{Op: "open", Err: err}
	}

	return &Index{db: db}, nil
}

// Close releases the underlying database handle.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Record upserts one extracted session into the index.
func (ix *Index) Record(header *Header, outputPath string) error {
	_, err := ix.db.Exec(`
		INSERT INTO sessions
			(session_id, machine_id, raw_path, output_path, file_modified_at, extracted_at, message_count, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			machine_id = excluded.machine_id,
			raw_path = excluded.raw_path,
			output_path = excluded.output_path,
			file_modified_at = excluded.file_modified_at,
			extracted_at = excluded.extracted_at,
			message_count = excluded.message_count,
			summary = excluded.summary`,
		header.SessionID, header.MachineID, header.RawPath, outputPath,
		header.FileModifiedAt, header.ExtractedAt, header.MessageCount, header.Summary)
	if err != nil {
		return &IndexError{Op: "record", Err: err}
	}
	return nil
}

// Sessions returns all indexed sessions, most recently extracted first.
func (ix *Index) Sessions() ([]IndexEntry, error) {
	return ix.query(`
		SELECT session_id, machine_id, raw_path, output_path, extracted_at, message_count, summary
		FROM sessions ORDER BY extracted_at DESC`)
}

// Search returns indexed sessions whose summary or id contains term.
func (ix *Index) Search(term string) ([]IndexEntry, error) {
	pattern := "%" + term + "%"
	return ix.query(`
		SELECT session_id, machine_id, raw_path, output_path, extracted_at, message_count, summary
		FROM sessions
		WHERE summary LIKE ? OR session_id LIKE ?
		ORDER BY extracted_at DESC`, pattern, pattern)
}

// Get returns one indexed session by id.
func (ix *Index) Get(sessionID string) (*IndexEntry, error) {
	entries, err := ix.query(`
		SELECT session_id, machine_id, raw_path, output_path, extracted_at, message_count, summary
		FROM sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (ix *Index) query(query string, args ...any) ([]IndexEntry, error) {
	rows, err := ix.db.Query(query, args...)
	if err != nil {
		return nil, &IndexError{Op: "query", Err: err}
	}
	defer rows.Close()

	var entries []IndexEntry
	for rows.Next() {
		var entry IndexEntry
		var extractedAt string
		if err := rows.Scan(&entry.SessionID, &entry.MachineID, &entry.RawPath,
			&entry.OutputPath, &extractedAt, &entry.MessageCount, &entry.Summary); err != nil {
			return nil, &IndexError{Op: "query", Err: err}
		}
		entry.ExtractedAt, _ = time.Parse(time.RFC3339Nano, extractedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, &IndexError{Op: "query", Err: err}
	}

	return entries, nil
}
