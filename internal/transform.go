package internal

import "strings"

// TransformContent rewrites a message content value for extraction. String
// content passes through unchanged; an array of content blocks is rewritten
// block by block with binary payloads replaced by size metadata. The input is
// never mutated.
func TransformContent(content any) any {
	blocks, ok := content.([]any)
	if !ok {
		return content
	}
	return transformBlocks(blocks)
}

func transformBlocks(blocks []any) []any {
	out := make([]any, 0, len(blocks))
	for _, item := range blocks {
		block, ok := item.(map[string]any)
		if !ok {
			// Non-block array elements pass through unchanged.
			out = append(out, item)
			continue
		}
		out = append(out, transformBlock(block))
	}
	return out
}

func transformBlock(block map[string]any) any {
	blockType, _ := block["type"].(string)

	switch blockType {
	case "image":
		if data, ok := base64SourceData(block); ok {
			return map[string]any{
				"type": "image",
				"size": base64DecodedSize(data),
			}
		}

	case "document":
		if data, ok := base64SourceData(block); ok {
			replaced := map[string]any{
				"type": "document",
				"size": base64DecodedSize(data),
			}
			if source, ok := block["source"].(map[string]any); ok {
				if mediaType, ok := source["media_type"]; ok {
					replaced["media_type"] = mediaType
				}
			}
			return replaced
		}

	case "tool_result":
		if nested, ok := block["content"].([]any); ok {
			// Depth-first over nested blocks; copy the block so siblings
			// never share mutable state.
			replaced := make(map[string]any, len(block))
			for key, value := range block {
				replaced[key] = value
			}
			replaced["content"] = transformBlocks(nested)
			return replaced
		}
	}

	return block
}

// base64SourceData returns the base64 payload of a block's nested source
// object, if it has one.
func base64SourceData(block map[string]any) (string, bool) {
	source, ok := block["source"].(map[string]any)
	if !ok {
		return "", false
	}
	if sourceType, _ := source["type"].(string); sourceType != "base64" {
		return "", false
	}
	data, ok := source["data"].(string)
	return data, ok
}

// base64DecodedSize computes the decoded byte length of a base64 string
// without decoding it: floor((len - padding) * 3 / 4).
func base64DecodedSize(data string) int {
	padding := len(data) - len(strings.TrimRight(data, "="))
	return (len(data) - padding) * 3 / 4
}
