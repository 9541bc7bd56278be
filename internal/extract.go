package internal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SessionFile describes one raw session to extract.
type SessionFile struct {
	Path       string
	OutputPath string
	SessionID  string
	AgentID    string // set for agent-<id>.jsonl sub-sessions
}

// ExtractStatus is the outcome of extracting one session.
type ExtractStatus int

const (
	// StatusExtracted means an output file was written (possibly header-only).
	StatusExtracted ExtractStatus = iota
	// StatusSkipped means the session had no assistant output and nothing
	// was written.
	StatusSkipped
)

// ExtractResult reports what one session extraction produced.
type ExtractResult struct {
	SessionID    string
	Status       ExtractStatus
	Header       *Header
	OutputPath   string
	MessageCount int
}

// Extractor runs the per-session extraction pipeline. MachineID provides the
// host identifier stamped into headers; Now is the extraction clock,
// overridable in tests.
type Extractor struct {
	MachineID string
	Now       func() time.Time
}

// NewExtractor builds an Extractor using the persistent machine identifier.
func NewExtractor() (*Extractor, error) {
	machineID, err := MachineID()
	if err != nil {
		return nil, err
	}
	return &Extractor{MachineID: machineID, Now: time.Now}, nil
}

// ExtractSession reads one raw session log, sanitizes it, and writes the
// extracted file. The write is atomic: a temp file in the destination
// directory is renamed into place, so no partial output is ever observable as
// a success.
func (x *Extractor) ExtractSession(session SessionFile) (*ExtractResult, error) {
	data, err := os.ReadFile(session.Path)
	if err != nil {
		return nil, &SessionError{SessionID: session.SessionID, Op: "read", Err: err}
	}
	info, err := os.Stat(session.Path)
	if err != nil {
		return nil, &SessionError{SessionID: session.SessionID, Op: "stat", Err: err}
	}

	var entries []*Entry
	assistantCount := 0
	err = IterateLines(data, func(value any) error {
		entry, class := Classify(value)
		switch class {
		case ClassifyRetain:
			entries = append(entries, entry)
			if entry.Type == EntryTypeAssistant {
				assistantCount++
			}
		case ClassifySkip:
			LogDebug("session %s: skipping %s entry", session.SessionID, entry.Type)
		case ClassifyUnrecognized:
			LogDebug("session %s: dropping unrecognized entry", session.SessionID)
		}
		return nil
	})
	if err != nil {
		return nil, &SessionError{SessionID: session.SessionID, Op: "parse", Err: err}
	}

	// A session with retained entries but no assistant output carries nothing
	// worth sharing; report it skipped without writing. A session with zero
	// retained entries still gets a header-only file so re-runs stay cheap.
	if len(entries) > 0 && assistantCount == 0 {
		return &ExtractResult{SessionID: session.SessionID, Status: StatusSkipped}, nil
	}

	header := &Header{
		Type:           HeaderType,
		Version:        FormatVersion,
		SessionID:      session.SessionID,
		MachineID:      x.MachineID,
		ExtractedAt:    x.Now().UTC().Format(time.RFC3339Nano),
		FileModifiedAt: info.ModTime().Format(time.RFC3339Nano),
		MessageCount:   len(entries),
		Summary:        ResolveSummary(entries),
		RawPath:        session.Path,
	}
	if session.AgentID != "" {
		header.AgentID = session.AgentID
		header.ParentSessionID = firstParentSessionID(entries)
	}

	var buf bytes.Buffer
	if err := encodeLine(&buf, header); err != nil {
		return nil, &SessionError{SessionID: session.SessionID, Op: "write", Err: err}
	}
	for _, entry := range entries {
		if err := encodeLine(&buf, sanitizeEntry(entry)); err != nil {
			return nil, &SessionError{SessionID: session.SessionID, Op: "write", Err: err}
		}
	}

	if err := writeFileAtomic(session.OutputPath, buf.Bytes()); err != nil {
		return nil, &SessionError{SessionID: session.SessionID, Op: "write", Err: err}
	}

	return &ExtractResult{
		SessionID:    session.SessionID,
		Status:       StatusExtracted,
		Header:       header,
		OutputPath:   session.OutputPath,
		MessageCount: len(entries),
	}, nil
}

// sanitizeEntry applies content transformation, tool result reduction, and
// field redaction to one retained entry.
func sanitizeEntry(entry *Entry) map[string]any {
	fields := RedactEntry(entry.Fields)

	if message, ok := fields["message"].(map[string]any); ok {
		if content, ok := message["content"]; ok {
			message["content"] = TransformContent(content)
		}
	}

	if entry.Type == EntryTypeUser {
		if result, ok := fields["toolUseResult"]; ok {
			fields["toolUseResult"] = ReduceToolResult(result)
		}
	}

	return fields
}

// firstParentSessionID finds the parent session id recorded on agent
// sub-session entries.
func firstParentSessionID(entries []*Entry) string {
	for _, entry := range entries {
		if id := entry.SessionID(); id != "" {
			return id
		}
	}
	return ""
}

// NeedsExtraction reports whether the raw session must be (re-)extracted:
// when no output exists, its header cannot be read, or the recorded freshness
// stamp differs from the raw file's current modification time in either
// direction.
func NeedsExtraction(session SessionFile, rawModTime time.Time) bool {
	header, err := ReadHeader(session.OutputPath)
	if err != nil {
		return true
	}
	if header.Version != FormatVersion {
		return true
	}
	recorded, err := header.ModTime()
	if err != nil {
		return true
	}
	return !recorded.Equal(rawModTime)
}

// ReadHeader parses the metadata header from line 1 of an extracted session
// file without reading the body.
func ReadHeader(path string) (*Header, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 1024)
	scanner.Buffer(buf, maxLineBytes)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty extracted file: %s", path)
	}

	var header Header
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if header.Type != HeaderType {
		return nil, fmt.Errorf("not an extracted session file: %s", path)
	}
	return &header, nil
}

func encodeLine(buf *bytes.Buffer, value any) error {
	line, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(line)
	buf.WriteByte('\n')
	return nil
}

// writeFileAtomic writes data to path via a temp file and rename so readers
// never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
