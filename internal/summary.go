package internal

// ResolveSummary selects the session summary from the retained entries.
// It returns the text of the first summary entry (in file order) whose
// leafUuid references an entry uuid present in the same file, which guards
// against summaries copied from another session. When no summary
// cross-references cleanly it falls back to the last summary's text; when the
// session has no summary entries it returns "".
func ResolveSummary(entries []*Entry) string {
	uuids := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if uuid := entry.UUID(); uuid != "" {
			uuids[uuid] = true
		}
	}

	lastSummary := ""
	for _, entry := range entries {
		if entry.Type != EntryTypeSummary {
			continue
		}
		if uuids[entry.LeafUUID()] {
			return entry.SummaryText()
		}
		lastSummary = entry.SummaryText()
	}

	return lastSummary
}
