// Package normalize turns untrusted LLM output into a models.StructuredGuide.
//
// Decode is the only place provider text is parsed; Normalize never fails and
// always returns a fully-typed value, whatever shape Decode produced.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrEmpty is returned by Decode for blank input.
var ErrEmpty = errors.New("empty response")

// DecodeError reports provider text that holds no JSON value at all.
type DecodeError struct {
	Snippet string // first bytes of the offending text
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("normalize: decode: %v", e.Err)
	}
	return fmt.Sprintf("normalize: decode %q: %v", e.Snippet, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

const snippetLen = 80

// Decode parses text into a generic JSON value (map[string]any, []any,
// string, float64, bool or nil). Markdown code fences and prose around the
// JSON body are tolerated.
func Decode(text string) (any, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil, &DecodeError{Err: ErrEmpty}
	}

	var v any
	firstErr := json.Unmarshal([]byte(raw), &v)
	if firstErr == nil {
		return v, nil
	}

	if body, ok := fenced(raw); ok {
		if err := json.Unmarshal([]byte(body), &v); err == nil {
			return v, nil
		}
	}
	if body, ok := enclosed(raw, '{', '}'); ok {
		if err := json.Unmarshal([]byte(body), &v); err == nil {
			return v, nil
		}
	}
	if body, ok := enclosed(raw, '[', ']'); ok {
		if err := json.Unmarshal([]byte(body), &v); err == nil {
			return v, nil
		}
	}

	return nil, &DecodeError{Snippet: snippet(raw), Err: firstErr}
}

// fenced returns the body of the first ``` block.
func fenced(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start < 0 {
		return "", false
	}
	rest := s[start+3:]
	// skip the info string ("json", "JSON", ...)
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

func enclosed(s string, open, close byte) (string, bool) {
	i := strings.IndexByte(s, open)
	j := strings.LastIndexByte(s, close)
	if i < 0 || j <= i {
		return "", false
	}
	return s[i : j+1], true
}

// snippet keeps at most snippetLen bytes of s without splitting a rune.
func snippet(s string) string {
	if len(s) <= snippetLen {
		return s
	}
	cut := snippetLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
