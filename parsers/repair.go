package parsers

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/models"
)

// RepairJSON coerces a raw model completion into valid JSON. Model output
// is frequently wrapped in Markdown fences, prefixed with prose, or cut
// off mid-structure by the output token ceiling. The repair is staged:
//
//  1. strip code fences and any text outside the outermost JSON value
//  2. parse; return immediately on success
//  3. truncate at the rightmost '}' or ']' and append the closers needed
//     to re-balance the structure
//  4. parse again
//
// The function is pure: no network, no state. On failure it returns a
// MalformedResponse error whose detail carries the response length and
// head/tail snippets for server-side diagnostics only.
func RepairJSON(raw string) ([]byte, error) {
	stripped := stripNoise(raw)
	if stripped == "" {
		return nil, models.NewPipelineError(models.KindMalformedResponse,
			fmt.Sprintf("no JSON payload in completion: %s", describeResponse(raw)))
	}

	if json.Valid([]byte(stripped)) {
		return []byte(stripped), nil
	}

	if repaired, ok := rebalance(stripped); ok {
		return []byte(repaired), nil
	}

	return nil, models.NewPipelineError(models.KindMalformedResponse,
		fmt.Sprintf("completion not repairable: %s", describeResponse(raw)))
}

// stripNoise removes Markdown fence markers and any leading or trailing
// prose around the outermost JSON object or array.
func stripNoise(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	end := strings.LastIndexAny(s, "}]")
	if end >= start {
		s = s[start : end+1]
	} else {
		// No closer at all; keep the tail so rebalance can try.
		s = s[start:]
	}
	return strings.TrimSpace(s)
}

// rebalance truncates at the rightmost closing brace or bracket, then
// walks the prefix with a string-aware scanner and appends whatever
// closers are still open. Returns false when the result is still not
// valid JSON, e.g. when the cut landed inside a string literal.
func rebalance(s string) (string, bool) {
	cut := strings.LastIndexAny(s, "}]")
	if cut < 0 {
		return "", false
	}
	s = s[:cut+1]

	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				stack = append(stack, c)
			}
		case '}', ']':
			if !inString && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if inString {
		return "", false
	}

	var closers strings.Builder
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			closers.WriteByte('}')
		} else {
			closers.WriteByte(']')
		}
	}
	repaired := s + closers.String()
	if !json.Valid([]byte(repaired)) {
		return "", false
	}
	return repaired, true
}

// describeResponse summarizes a completion for logging without ever
// reproducing it in full.
func describeResponse(raw string) string {
	const snippet = 80
	head := raw
	if len(head) > snippet {
		head = head[:snippet]
	}
	tail := ""
	if len(raw) > 2*snippet {
		tail = raw[len(raw)-snippet:]
	}
	if tail != "" {
		return fmt.Sprintf("len=%d head=%q tail=%q", len(raw), head, tail)
	}
	return fmt.Sprintf("len=%d head=%q", len(raw), head)
}
