package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const agentFilePrefix = "agent-"

// SessionFailure records one session that failed during a batch run.
type SessionFailure struct {
	SessionID string
	Err       error
}

// BatchResult accumulates per-session outcomes across one batch run.
type BatchResult struct {
	Extracted int
	Skipped   int
	Failed    int
	UpToDate  int
	Failures  []SessionFailure
}

func (r *BatchResult) String() string {
	return fmt.Sprintf("%d extracted, %d skipped, %d failed (%d up to date)",
		r.Extracted, r.Skipped, r.Failed, r.UpToDate)
}

// DiscoverSessions enumerates raw session files in rawDir and maps each to an
// output path sharing the same filename under outDir. Filenames of the form
// agent-<id>.jsonl identify agent sub-sessions.
func DiscoverSessions(rawDir, outDir string) ([]SessionFile, error) {
	dirEntries, err := os.ReadDir(rawDir)
	if err != nil {
		return nil, fmt.Errorf("read sessions directory: %w", err)
	}

	var sessions []SessionFile
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		name := dirEntry.Name()
		if !strings.HasSuffix(name, ".jsonl") {
			continue
		}

		stem := strings.TrimSuffix(name, ".jsonl")
		session := SessionFile{
			Path:       filepath.Join(rawDir, name),
			OutputPath: filepath.Join(outDir, name),
			SessionID:  stem,
		}
		if rest, ok := strings.CutPrefix(stem, agentFilePrefix); ok && rest != "" {
			session.SessionID = rest
			session.AgentID = rest
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// ExtractAll runs incremental extraction over every raw session in rawDir.
// Unchanged sessions are detected by header inspection alone; individual
// failures are recorded and never abort the remaining sessions. When index is
// non-nil, each successful extraction is recorded in it.
func (x *Extractor) ExtractAll(rawDir, outDir string, index *Index) (*BatchResult, error) {
	sessions, err := DiscoverSessions(rawDir, outDir)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, session := range sessions {
		info, err := os.Stat(session.Path)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, SessionFailure{session.SessionID, err})
			LogWarn("session %s: %v", session.SessionID, err)
			continue
		}
		if !NeedsExtraction(session, info.ModTime()) {
			result.UpToDate++
			LogDebug("session %s: up to date", session.SessionID)
			continue
		}

		res, err := x.ExtractSession(session)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, SessionFailure{session.SessionID, err})
			LogWarn("%v", err)
			continue
		}

		switch res.Status {
		case StatusSkipped:
			result.Skipped++
			LogDebug("session %s: no assistant output, skipped", session.SessionID)
		case StatusExtracted:
			result.Extracted++
			LogInfo("session %s: extracted %d entries", session.SessionID, res.MessageCount)
			if index != nil {
				if err := index.Record(res.Header, res.OutputPath); err != nil {
					LogWarn("session %s: index update failed: %v", session.SessionID, err)
				}
			}
		}
	}

	return result, nil
}
