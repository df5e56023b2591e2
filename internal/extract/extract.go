// Package extract pulls named fields out of loosely structured model output.
package extract

import (
	"strings"
)

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// Strategy identifies which parser produced a result.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyFenced
	StrategyBraces
	StrategyLines
)

func (s Strategy) String() string {
	switch s {
	case StrategyFenced:
		return "fenced"
	case StrategyBraces:
		return "braces"
	case StrategyLines:
		return "lines"
	default:
		return "none"
	}
}

// Schema lists the keys a caller expects, in priority order.
type Schema struct {
	Keys           []string
	ReasoningLabel string
}

// Fields is the successful result of Extract.
type Fields struct {
	Values       map[string]string
	Reasoning    string
	HasReasoning bool
	Strategy     Strategy
}

// Get returns the trimmed value for key, or "" when absent.
func (f Fields) Get(key string) string {
	return f.Values[key]
}

// First returns the first key of keys with a non-empty value.
func (f Fields) First(keys ...string) (string, string, bool) {
	for _, k := range keys {
		if v := f.Values[k]; v != "" {
			return k, v, true
		}
	}
	return "", "", false
}

// Error is returned when no strategy yields any requested field.
type Error struct {
	Reason      string
	Raw         string
	Diagnostics []string
}

func (e *Error) Error() string {
	if len(e.Diagnostics) == 0 {
		return "extract: " + e.Reason
	}
	return "extract: " + e.Reason + " (" + strings.Join(e.Diagnostics, "; ") + ")"
}

// strategy parses raw and reports where the structured content started, so
// the caller can recover the leading reasoning text.
type strategy struct {
	kind  Strategy
	parse func(raw string, keys []string) (values map[string]string, start int, diag string)
}

var chain = []strategy{
	{kind: StrategyFenced, parse: parseFenced},
	{kind: StrategyBraces, parse: parseBraces},
	{kind: StrategyLines, parse: parseLines},
}

// Extract pulls schema keys out of raw model output. Strategies run in order
// and the first one that yields a non-empty requested field wins.
func Extract(raw string, schema Schema) (Fields, error) {
	var diags []string
	for _, s := range chain {
		values, start, diag := s.parse(raw, schema.Keys)
		if diag != "" {
			diags = append(diags, s.kind.String()+": "+diag)
		}
		if !anyValue(values, schema.Keys) {
			continue
		}
		fields := Fields{Values: values, Strategy: s.kind}
		fields.Reasoning, fields.HasReasoning = reasoning(raw[:start], schema.ReasoningLabel)
		return fields, nil
	}
	return Fields{}, &Error{
		Reason:      "no structured content found",
		Raw:         raw,
		Diagnostics: diags,
	}
}

func reasoning(leading, label string) (string, bool) {
	if label == "" {
		return "", false
	}
	i := strings.Index(leading, label)
	if i < 0 {
		return "", false
	}
	return strings.TrimSpace(leading[i+len(label):]), true
}

func anyValue(values map[string]string, keys []string) bool {
	for _, k := range keys {
		if values[k] != "" {
			return true
		}
	}
	return false
}
