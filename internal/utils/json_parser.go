package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	markdownJSONBlock = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	markdownAnyBlock  = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
	trailingCommas    = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKeys      = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
	controlChars      = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// ParseModelJSON parses JSON out of extractor output that may be pure JSON,
// JSON inside a markdown code fence, JSON with surrounding prose, or JSON
// with common model mistakes (trailing commas, unquoted keys, single quotes).
func ParseModelJSON(input string, target interface{}) error {
	if input == "" {
		return fmt.Errorf("empty input")
	}

	// Most responses are already valid JSON
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if fenced := stripMarkdownFence(input); fenced != "" {
		if err := json.Unmarshal([]byte(fenced), target); err == nil {
			return nil
		}
	}

	if embedded := firstJSONValue(input); embedded != "" {
		if err := json.Unmarshal([]byte(embedded), target); err == nil {
			return nil
		}
	}

	if repaired := repairJSON(input); repaired != "" {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return nil
		}
	}

	preview := input
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	return fmt.Errorf("failed to parse JSON from input: %s", preview)
}

// ParseModelJSONObject is ParseModelJSON into an untyped object
func ParseModelJSONObject(input string) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := ParseModelJSON(input, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// stripMarkdownFence pulls the body out of a ```json or bare ``` fence
func stripMarkdownFence(input string) string {
	if m := markdownJSONBlock.FindStringSubmatch(input); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	if m := markdownAnyBlock.FindStringSubmatch(input); len(m) > 1 {
		body := strings.TrimSpace(m[1])
		if strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[") {
			return body
		}
	}
	return ""
}

// firstJSONValue finds the first balanced JSON object or array in free text
func firstJSONValue(input string) string {
	if start := strings.Index(input, "{"); start >= 0 {
		if v := balancedSlice(input[start:], '{', '}'); v != "" {
			return v
		}
	}
	if start := strings.Index(input, "["); start >= 0 {
		if v := balancedSlice(input[start:], '[', ']'); v != "" {
			return v
		}
	}
	return ""
}

// balancedSlice returns the prefix of input spanning one balanced open/close
// pair, string-literal and escape aware
func balancedSlice(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		switch {
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			if depth == 0 {
				start = i
			}
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

// repairJSON fixes the malformations models produce most often
func repairJSON(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "\ufeff")
	s = trailingCommas.ReplaceAllString(s, "$1")
	s = unquotedKeys.ReplaceAllString(s, `$1"$2"$3`)
	s = replaceSingleQuotes(s)
	s = controlChars.ReplaceAllString(s, "")
	return s
}

// replaceSingleQuotes converts quoting single quotes to double quotes while
// leaving apostrophes inside double-quoted strings alone
func replaceSingleQuotes(input string) string {
	var out strings.Builder
	inDoubleQuote := false
	inSingleQuote := false
	escape := false

	runes := []rune(input)
	for i, ch := range runes {
		if escape {
			out.WriteRune(ch)
			escape = false
			continue
		}
		if ch == '\\' {
			out.WriteRune(ch)
			escape = true
			continue
		}
		if ch == '"' && !inSingleQuote {
			inDoubleQuote = !inDoubleQuote
			out.WriteRune(ch)
			continue
		}
		if ch == '\'' && !inDoubleQuote {
			if inSingleQuote {
				inSingleQuote = false
				out.WriteRune('"')
				continue
			}
			if opensQuotedValue(runes, i) {
				inSingleQuote = true
				out.WriteRune('"')
				continue
			}
		}
		out.WriteRune(ch)
	}
	return out.String()
}

// opensQuotedValue reports whether a single quote at position i starts a
// quoted key or value, judged by the nearest non-space character before it
func opensQuotedValue(runes []rune, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch runes[j] {
		case ' ', '\t', '\n', '\r':
			continue
		case ':', ',', '[', '{':
			return true
		default:
			return false
		}
	}
	return true
}
