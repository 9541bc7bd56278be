package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Crazytieguy/alignment-hive-sub001/testutil"
)

func TestDiscoverSessions(t *testing.T) {
	rawDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	testutil.WriteSessionFile(t, rawDir, "11111111-2222-3333-4444-555555555555.jsonl", testutil.UserEntry("u1", "hi"))
	testutil.WriteSessionFile(t, rawDir, "agent-abc123.jsonl", testutil.UserEntry("u1", "hi"))
	testutil.WriteSessionFile(t, rawDir, "notes.txt", "not a session")
	if err := os.Mkdir(filepath.Join(rawDir, "subdir.jsonl"), 0755); err != nil {
		t.Fatal(err)
	}

	sessions, err := DiscoverSessions(rawDir, outDir)
	if err != nil {
		t.Fatalf("DiscoverSessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("found %d sessions, want 2", len(sessions))
	}

	byID := map[string]SessionFile{}
	for _, s := range sessions {
		byID[s.SessionID] = s
	}

	regular, ok := byID["11111111-2222-3333-4444-555555555555"]
	if !ok {
		t.Fatal("regular session not discovered")
	}
	if regular.AgentID != "" {
		t.Errorf("regular session has agent id %q", regular.AgentID)
	}
	if regular.OutputPath != filepath.Join(outDir, "11111111-2222-3333-4444-555555555555.jsonl") {
		t.Errorf("output path = %q does not mirror input filename", regular.OutputPath)
	}

	agent, ok := byID["abc123"]
	if !ok {
		t.Fatal("agent session not discovered")
	}
	if agent.AgentID != "abc123" {
		t.Errorf("agent id = %q, want abc123", agent.AgentID)
	}
	if filepath.Base(agent.OutputPath) != "agent-abc123.jsonl" {
		t.Errorf("agent output filename = %q, want agent-abc123.jsonl", filepath.Base(agent.OutputPath))
	}
}

func TestExtractAll_CountsAndFailureIsolation(t *testing.T) {
	rawDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	testutil.WriteSessionFile(t, rawDir, "good.jsonl",
		testutil.UserEntry("u1", "hi"),
		testutil.AssistantEntry("a1", "hello"),
	)
	testutil.WriteSessionFile(t, rawDir, "user-only.jsonl",
		testutil.UserEntry("u1", "anyone there?"),
	)
	// A dangling symlink fails on read but must not abort the batch.
	if err := os.Symlink(filepath.Join(rawDir, "nowhere"), filepath.Join(rawDir, "broken.jsonl")); err != nil {
		t.Fatal(err)
	}

	result, err := newTestExtractor().ExtractAll(rawDir, outDir, nil)
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}

	if result.Extracted != 1 || result.Skipped != 1 || result.Failed != 1 {
		t.Errorf("counts = %+v, want 1 extracted, 1 skipped, 1 failed", result)
	}
	if len(result.Failures) != 1 || result.Failures[0].SessionID != "broken" {
		t.Errorf("failures = %+v, want the broken session", result.Failures)
	}

	if _, err := os.Stat(filepath.Join(outDir, "good.jsonl")); err != nil {
		t.Errorf("good session output missing: %v", err)
	}
}

func TestExtractAll_SecondRunIsIncremental(t *testing.T) {
	rawDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	raw := testutil.WriteSessionFile(t, rawDir, "good.jsonl",
		testutil.UserEntry("u1", "hi"),
		testutil.AssistantEntry("a1", "hello"),
	)

	extractor := newTestExtractor()
	if _, err := extractor.ExtractAll(rawDir, outDir, nil); err != nil {
		t.Fatal(err)
	}

	second, err := extractor.ExtractAll(rawDir, outDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if second.Extracted != 0 || second.UpToDate != 1 {
		t.Errorf("second run counts = %+v, want 0 extracted, 1 up to date", second)
	}

	// Touching the raw file forces re-extraction on the next run.
	info, _ := os.Stat(raw)
	newTime := info.ModTime().Add(time.Second)
	if err := os.Chtimes(raw, newTime, newTime); err != nil {
		t.Fatal(err)
	}

	third, err := extractor.ExtractAll(rawDir, outDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if third.Extracted != 1 || third.UpToDate != 0 {
		t.Errorf("third run counts = %+v, want 1 extracted after mtime change", third)
	}
}

func TestExtractAll_RecordsIndex(t *testing.T) {
	rawDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	testutil.WriteSessionFile(t, rawDir, "good.jsonl",
		testutil.SummaryEntry("Build fixes", "a1"),
		testutil.UserEntry("u1", "hi"),
		testutil.AssistantEntry("a1", "hello"),
	)

	index, err := OpenIndex(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("OpenIndex() error = %v", err)
	}
	defer index.Close()

	if _, err := newTestExtractor().ExtractAll(rawDir, outDir, index); err != nil {
		t.Fatal(err)
	}

	entry, err := index.Get("good")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if entry == nil {
		t.Fatal("extracted session missing from index")
	}
	if entry.MessageCount != 3 || entry.Summary != "Build fixes" {
		t.Errorf("indexed entry = %+v", entry)
	}
}
