// Package testutil provides fixture helpers shared by the package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteSessionFile writes a raw session log with one entry per line and
// returns its path.
func WriteSessionFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write session file: %v", err)
	}
	return path
}

// UserEntry builds a raw user entry line with plain text content.
func UserEntry(uuid, text string) string {
	return fmt.Sprintf(`{"type":"user","uuid":%q,"sessionId":"session-1","message":{"role":"user","content":%q}}`, uuid, text)
}

// AssistantEntry builds a raw assistant entry line with a text content block.
func AssistantEntry(uuid, text string) string {
	return fmt.Sprintf(`{"type":"assistant","uuid":%q,"sessionId":"session-1","message":{"role":"assistant","content":[{"type":"text","text":%q}]}}`, uuid, text)
}

// SummaryEntry builds a raw summary entry line.
func SummaryEntry(text, leafUUID string) string {
	return fmt.Sprintf(`{"type":"summary","summary":%q,"leafUuid":%q}`, text, leafUUID)
}

// SystemEntry builds a raw system entry line.
func SystemEntry(uuid, content string) string {
	return fmt.Sprintf(`{"type":"system","uuid":%q,"content":%q}`, uuid, content)
}

// ToolResultEntry builds a raw user entry carrying a toolUseResult payload.
// result must be a JSON value.
func ToolResultEntry(uuid, result string) string {
	return fmt.Sprintf(`{"type":"user","uuid":%q,"sessionId":"session-1","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"toolu_1","content":"done"}]},"toolUseResult":%s}`, uuid, result)
}
