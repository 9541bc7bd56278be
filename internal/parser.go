package internal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
)

// Session logs can carry very large single lines (pasted files, patches).
const maxLineBytes = 8 * 1024 * 1024

// IterateLines decodes each non-blank line of data as JSON and calls fn with
// the decoded value, in file order. A line that fails to decode is dropped and
// iteration continues; this isolates single-line corruption from the rest of
// the file. Returning an error from fn stops iteration.
func IterateLines(data []byte, fn func(value any) error) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	buf := make([]byte, 1024)
	scanner.Buffer(buf, maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var value any
		if err := json.Unmarshal(line, &value); err != nil {
			LogDebug("dropping malformed line %d: %v", lineNo, err)
			continue
		}

		if err := fn(value); err != nil {
			return err
		}
	}

	return scanner.Err()
}
