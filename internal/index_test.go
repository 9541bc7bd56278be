package internal

import (
	"path/filepath"
	"testing"
	"time"
)

func testHeader(sessionID, summary string, count int) *Header {
	return &Header{
		Type:           HeaderType,
		Version:        FormatVersion,
		SessionID:      sessionID,
		MachineID:      "machine-test",
		ExtractedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Format(time.RFC3339Nano),
		FileModifiedAt: time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC).Format(time.RFC3339Nano),
		MessageCount:   count,
		Summary:        summary,
		RawPath:        "/raw/" + sessionID + ".jsonl",
	}
}

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	index, err := OpenIndex(filepath.Join(t.TempDir(), "state", "index.db"))
	if err != nil {
		t.Fatalf("OpenIndex() error = %v", err)
	}
	t.Cleanup(func() { index.Close() })
	return index
}

func TestIndex_RecordAndList(t *testing.T) {
	index := openTestIndex(t)

	if err := index.Record(testHeader("s1", "Refactoring the parser", 12), "/out/s1.jsonl"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := index.Record(testHeader("s2", "Debugging flaky tests", 3), "/out/s2.jsonl"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries, err := index.Sessions()
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("listed %d sessions, want 2", len(entries))
	}
}

func TestIndex_RecordUpserts(t *testing.T) {
	index := openTestIndex(t)

	if err := index.Record(testHeader("s1", "first pass", 2), "/out/s1.jsonl"); err != nil {
		t.Fatal(err)
	}
	if err := index.Record(testHeader("s1", "second pass", 5), "/out/s1.jsonl"); err != nil {
		t.Fatal(err)
	}

	entry, err := index.Get("s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if entry == nil {
		t.Fatal("session missing after upsert")
	}
	if entry.Summary != "second pass" || entry.MessageCount != 5 {
		t.Errorf("entry not updated: %+v", entry)
	}

	entries, _ := index.Sessions()
	if len(entries) != 1 {
		t.Errorf("upsert created a duplicate row: %d entries", len(entries))
	}
}

func TestIndex_Search(t *testing.T) {
	index := openTestIndex(t)

	index.Record(testHeader("s1", "Refactoring the parser", 12), "/out/s1.jsonl")
	index.Record(testHeader("s2", "Debugging flaky tests", 3), "/out/s2.jsonl")

	matches, err := index.Search("parser")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) != 1 || matches[0].SessionID != "s1" {
		t.Errorf("Search(parser) = %+v, want s1 only", matches)
	}

	matches, err = index.Search("s2")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].SessionID != "s2" {
		t.Errorf("Search(s2) = %+v, want s2 by id", matches)
	}

	matches, err = index.Search("no such thing")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("Search(miss) = %+v, want none", matches)
	}
}

func TestIndex_GetMissing(t *testing.T) {
	index := openTestIndex(t)

	entry, err := index.Get("nope")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if entry != nil {
		t.Errorf("Get(missing) = %+v, want nil", entry)
	}
}
