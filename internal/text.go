package internal

import (
	"fmt"
	"strings"
)

// ContentText flattens a sanitized message content value into display text
// for console rendering. Binary placeholders render as bracketed markers.
func ContentText(content any) string {
	switch v := content.(type) {
	case string:
		return v
	case []any:
		var parts []string
		for _, item := range v {
			block, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if text := blockText(block); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

func blockText(block map[string]any) string {
	blockType, _ := block["type"].(string)
	switch blockType {
	case "text", "thinking":
		if text, ok := block["text"].(string); ok {
			return text
		}
		if thinking, ok := block["thinking"].(string); ok {
			return thinking
		}
		return ""
	case "tool_use":
		name, _ := block["name"].(string)
		return fmt.Sprintf("[tool_use: %s]", name)
	case "tool_result":
		return fmt.Sprintf("[tool_result: %s]", ContentText(block["content"]))
	case "image", "document":
		size, _ := block["size"].(float64)
		return fmt.Sprintf("[%s: %d bytes]", blockType, int(size))
	default:
		return ""
	}
}
