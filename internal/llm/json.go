package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidJSON is returned when a JSON-mode completion cannot be decoded
var ErrInvalidJSON = errors.New("completion is not valid JSON")

// DecodeJSON strips markdown fences and surrounding prose from a JSON-mode
// completion, then decodes the single object it contains into v
func DecodeJSON(text string, v any) error {
	content := cleanJSONResponse(text)
	if content == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidJSON)
	}
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some models wrap the object in a sentence
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
