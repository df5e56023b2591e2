package extract

import (
	"encoding/json"
	"strings"
)

func parseFenced(raw string, keys []string) (map[string]string, int, string) {
	open := strings.Index(raw, fenceOpen)
	if open < 0 {
		return nil, 0, ""
	}
	bodyStart := open + len(fenceOpen)
	rel := strings.LastIndex(raw[bodyStart:], fenceClose)
	if rel < 0 {
		return nil, 0, "unterminated code block"
	}
	body := raw[bodyStart : bodyStart+rel]
	values, err := decodeObject(body, keys)
	if err != nil {
		return nil, 0, err.Error()
	}
	return values, open, ""
}

func parseBraces(raw string, keys []string) (map[string]string, int, string) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, 0, ""
	}
	values, err := decodeObject(raw[start:end+1], keys)
	if err != nil {
		return nil, 0, err.Error()
	}
	return values, start, ""
}

// parseLines handles the legacy "KEY: value" convention.
func parseLines(raw string, keys []string) (map[string]string, int, string) {
	values := make(map[string]string, len(keys))
	first := -1
	offset := 0
	for _, line := range strings.SplitAfter(raw, "\n") {
		lineStart := offset
		offset += len(line)
		key, value, ok := matchKeyLine(line, keys)
		if !ok {
			continue
		}
		if _, seen := values[key]; seen {
			continue
		}
		values[key] = value
		if first < 0 {
			first = lineStart
		}
	}
	if first < 0 {
		return nil, 0, ""
	}
	for _, k := range keys {
		if _, ok := values[k]; !ok {
			values[k] = ""
		}
	}
	return values, first, ""
}

func matchKeyLine(line string, keys []string) (string, string, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "-*> \t")
	for _, k := range keys {
		rest, ok := strings.CutPrefix(s, k)
		if !ok {
			continue
		}
		rest = strings.TrimLeft(rest, "* \t")
		rest, ok = strings.CutPrefix(rest, ":")
		if !ok {
			continue
		}
		rest = strings.TrimLeft(rest, "* \t")
		return k, strings.TrimSpace(rest), true
	}
	return "", "", false
}

func decodeObject(body string, keys []string) (map[string]string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &obj); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(keys))
	for _, k := range keys {
		values[k] = scalar(obj[k])
	}
	return values, nil
}

// scalar renders a JSON value as text. Objects, arrays and null are empty.
func scalar(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	switch s[0] {
	case '"':
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return ""
		}
		return strings.TrimSpace(str)
	case '{', '[':
		return ""
	default:
		return s
	}
}
