package internal

import (
	"bytes"
	"encoding/json"
)

// Tool names inferred from result shapes.
const (
	ToolRead      = "Read"
	ToolEdit      = "Edit"
	ToolWrite     = "Write"
	ToolBash      = "Bash"
	ToolGlob      = "Glob"
	ToolGrep      = "Grep"
	ToolWebFetch  = "WebFetch"
	ToolWebSearch = "WebSearch"
	ToolTask      = "Task"
	ToolUnknown   = "unknown"
)

// toolAllowlists maps each inferred tool to the ordered field list its result
// is projected onto. Read is special-cased in ReduceToolResult because its
// retained fields live under a nested file object.
var toolAllowlists = map[string][]string{
	ToolEdit:      {"filePath", "oldString", "newString", "structuredPatch"},
	ToolWrite:     {"filePath", "content"},
	ToolBash:      {"command", "stdout", "stderr", "exitCode", "interrupted"},
	ToolGlob:      {"filenames", "numFiles", "truncated"},
	ToolGrep:      {"filenames", "content", "numFiles"},
	ToolWebFetch:  {"url", "prompt", "content"},
	ToolWebSearch: {"query", "results"},
	ToolTask:      {"agentId", "prompt", "status", "content"},
}

var readFileAllowlist = []string{"filePath", "numLines", "totalLines"}

// InferTool guesses which tool produced result by structural pattern matching
// on its field set. The log does not store the tool name, so rules are
// evaluated in a fixed priority order to avoid ambiguity.
func InferTool(result map[string]any) string {
	has := func(key string) bool {
		_, ok := result[key]
		return ok
	}

	switch {
	case isObject(result["file"]):
		return ToolRead
	case has("structuredPatch") || has("originalFile"):
		return ToolEdit
	case has("filePath") && has("content"):
		return ToolWrite
	case has("command") && (has("stdout") || has("exitCode")):
		return ToolBash
	case has("filenames") && has("numFiles") && !has("content"):
		return ToolGlob
	case has("filenames") && has("content"):
		return ToolGrep
	case has("url") && has("prompt"):
		return ToolWebFetch
	case has("query") && has("results"):
		return ToolWebSearch
	case has("agentId") && has("prompt"):
		return ToolTask
	default:
		return ToolUnknown
	}
}

// ReduceToolResult applies the per-tool field allowlist to a toolUseResult
// payload. Null, string, and array results cannot be tool-matched and pass
// through verbatim, as do objects matching no known tool.
func ReduceToolResult(result any) any {
	fields, ok := result.(map[string]any)
	if !ok {
		return result
	}

	tool := InferTool(fields)
	if tool == ToolUnknown {
		return result
	}

	if tool == ToolRead {
		reduced := orderedObject{}
		if file, ok := fields["file"].(map[string]any); ok {
			reduced = append(reduced, objectField{"file", projectFields(file, readFileAllowlist)})
		}
		if isImage, ok := fields["isImage"]; ok {
			reduced = append(reduced, objectField{"isImage", isImage})
		}
		return reduced
	}

	return projectFields(fields, toolAllowlists[tool])
}

func isObject(value any) bool {
	_, ok := value.(map[string]any)
	return ok
}

// projectFields keeps only the allowlisted fields of src, in allowlist order.
// Absent fields are omitted rather than emitted as null.
func projectFields(src map[string]any, allowlist []string) orderedObject {
	out := make(orderedObject, 0, len(allowlist))
	for _, name := range allowlist {
		if value, ok := src[name]; ok {
			out = append(out, objectField{name, value})
		}
	}
	return out
}

type objectField struct {
	Name  string
	Value any
}

// orderedObject marshals as a JSON object whose keys appear in slice order,
// unlike a map whose keys Go sorts alphabetically.
type orderedObject []objectField

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
