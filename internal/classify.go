package internal

// Classification is the outcome of matching a decoded value against the known
// entry shapes.
type Classification int

const (
	// ClassifyRetain marks an entry that flows through the pipeline.
	ClassifyRetain Classification = iota
	// ClassifySkip marks a recognized entry type with no retrieval value.
	ClassifySkip
	// ClassifyUnrecognized marks values that match no known shape.
	ClassifyUnrecognized
)

// Classify validates a decoded line against the known entry shapes. Extra
// unknown fields are tolerated and passively retained; missing or mistyped
// required fields for the matched type make the value unrecognized.
func Classify(value any) (*Entry, Classification) {
	fields, ok := value.(map[string]any)
	if !ok {
		return nil, ClassifyUnrecognized
	}

	entryType, ok := fields["type"].(string)
	if !ok {
		return nil, ClassifyUnrecognized
	}

	entry := &Entry{Type: entryType, Fields: fields}

	switch entryType {
	case EntryTypeSummary:
		if !hasString(fields, "summary") || !hasString(fields, "leafUuid") {
			return nil, ClassifyUnrecognized
		}
		return entry, ClassifyRetain

	case EntryTypeUser, EntryTypeAssistant:
		if !hasString(fields, "uuid") {
			return nil, ClassifyUnrecognized
		}
		message, ok := fields["message"].(map[string]any)
		if !ok || !hasString(message, "role") {
			return nil, ClassifyUnrecognized
		}
		return entry, ClassifyRetain

	case EntryTypeSystem:
		if !hasString(fields, "uuid") {
			return nil, ClassifyUnrecognized
		}
		return entry, ClassifyRetain

	case EntryTypeFileHistorySnapshot, EntryTypeQueueOperation:
		return entry, ClassifySkip

	default:
		return nil, ClassifyUnrecognized
	}
}

func hasString(fields map[string]any, key string) bool {
	s, ok := fields[key].(string)
	return ok && s != ""
}
