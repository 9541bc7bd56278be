package internal

import "time"

// Entry type discriminators found in raw session logs.
const (
	EntryTypeSummary             = "summary"
	EntryTypeUser                = "user"
	EntryTypeAssistant           = "assistant"
	EntryTypeSystem              = "system"
	EntryTypeFileHistorySnapshot = "file-history-snapshot"
	EntryTypeQueueOperation      = "queue-operation"
)

// Header identity constants for extracted session files.
const (
	HeaderType    = "hive-mind-meta"
	FormatVersion = "0.1"
)

// Entry is one retained log entry. Fields holds the full decoded object so
// unknown fields survive a round trip; typed accessors cover the fields the
// pipeline needs.
type Entry struct {
	Type   string
	Fields map[string]any
}

// UUID returns the entry's uuid field, or "" when absent.
func (e *Entry) UUID() string {
	s, _ := e.Fields["uuid"].(string)
	return s
}

// SessionID returns the entry's sessionId field, or "" when absent.
func (e *Entry) SessionID() string {
	s, _ := e.Fields["sessionId"].(string)
	return s
}

// Message returns the embedded message object for user/assistant entries.
func (e *Entry) Message() (map[string]any, bool) {
	m, ok := e.Fields["message"].(map[string]any)
	return m, ok
}

// SummaryText returns the summary field of a summary entry.
func (e *Entry) SummaryText() string {
	s, _ := e.Fields["summary"].(string)
	return s
}

// LeafUUID returns the leafUuid field of a summary entry.
func (e *Entry) LeafUUID() string {
	s, _ := e.Fields["leafUuid"].(string)
	return s
}

// Header is the metadata record written as line 1 of every extracted session
// file. It is rewritten in full on every extraction, never patched.
type Header struct {
	Type            string `json:"_type"`
	Version         string `json:"version"`
	SessionID       string `json:"sessionId"`
	MachineID       string `json:"machineId"`
	ExtractedAt     string `json:"extractedAt"`
	FileModifiedAt  string `json:"fileModifiedAt"`
	MessageCount    int    `json:"messageCount"`
	Summary         string `json:"summary,omitempty"`
	RawPath         string `json:"rawPath"`
	AgentID         string `json:"agentId,omitempty"`
	ParentSessionID string `json:"parentSessionId,omitempty"`
}

// ModTime parses the header's freshness stamp.
func (h *Header) ModTime() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, h.FileModifiedAt)
}
