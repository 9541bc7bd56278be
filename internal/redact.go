package internal

// Low-value or sensitive fields stripped from every entry, and from every
// embedded message object.
var (
	redactedEntryFields   = []string{"requestId", "slug", "userType", "imagePasteIds", "thinkingMetadata", "todos"}
	redactedMessageFields = []string{"id", "usage"}
)

// RedactEntry returns a copy of an entry's fields with the redacted field set
// removed. The embedded message object, when present, is also copied with its
// own redacted fields removed, so the input is never mutated.
func RedactEntry(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		out[key] = value
	}
	for _, key := range redactedEntryFields {
		delete(out, key)
	}

	if message, ok := out["message"].(map[string]any); ok {
		redacted := make(map[string]any, len(message))
		for key, value := range message {
			redacted[key] = value
		}
		for _, key := range redactedMessageFields {
			delete(redacted, key)
		}
		out["message"] = redacted
	}

	return out
}
