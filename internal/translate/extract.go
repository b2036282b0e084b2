package translate

import (
	"encoding/json"
	"strings"
)

// firstJSONObject returns the first balanced top-level JSON object in s.
// Models wrap their JSON in prose or code fences often enough that a strict
// parse alone loses usable responses.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// decodeBulkResponse parses the model's bulk translation answer: a strict
// JSON decode first, then the first balanced object found in the text,
// decoded the same way. ok=false means nothing parsable was found.
func decodeBulkResponse(raw string) (map[string]Translation, bool) {
	var payload struct {
		Translations map[string]Translation `json:"translations"`
	}

	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		fragment, found := firstJSONObject(raw)
		if !found {
			return nil, false
		}
		payload.Translations = nil
		if err := json.Unmarshal([]byte(fragment), &payload); err != nil {
			return nil, false
		}
	}

	if payload.Translations == nil {
		return nil, false
	}
	return payload.Translations, true
}
