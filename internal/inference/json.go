package inference

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject returns the first complete JSON object in content.
// Markdown code fences and any text around the object are dropped.
func ExtractJSONObject(content string) (string, error) {
	content = stripCodeFence(content)

	firstBrace := -1
	braceCount := 0
	inString := false
	escapeNext := false

	for i, ch := range content {
		// Handle string escaping to avoid counting braces inside strings
		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' && inString {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}
		switch ch {
		case '{':
			if firstBrace == -1 {
				firstBrace = i
			}
			braceCount++
		case '}':
			if firstBrace == -1 {
				continue
			}
			braceCount--
			if braceCount == 0 {
				return content[firstBrace : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("no complete JSON object in response: %q", truncate(content, 200))
}

// DecodeJSONObject extracts the first JSON object of content into v.
func DecodeJSONObject(content string, v any) error {
	object, err := ExtractJSONObject(content)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(object), v); err != nil {
		return fmt.Errorf("json.Unmarshal(%s) > %w", truncate(object, 200), err)
	}
	return nil
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	// drop the language hint
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[i+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
