// Package coerce turns loosely-typed multipart form values into the types the
// models expect. Legacy clients send numbers as strings and arrays as
// JSON-encoded strings; a malformed value degrades to its zero shape instead
// of failing the request.
package coerce

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Uint parses a string into a uint, returning 0 for anything unparseable.
func Uint(s string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// Int parses a string into an int, returning 0 for anything unparseable.
func Int(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Merge returns v unless it is blank, in which case the previously stored
// value is kept. Update requests never null out a field the client omitted.
func Merge(v, stored string) string {
	if strings.TrimSpace(v) == "" {
		return stored
	}
	return v
}

// IDs parses a value that should be a list of integer IDs. Accepted shapes:
// a JSON array of numbers or numeric strings, a bare number, or a
// comma-separated string. Anything else yields an empty list.
func IDs(s string) []int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int64{}
	}

	var raw []json.Number
	if err := json.Unmarshal([]byte(s), &raw); err == nil {
		out := make([]int64, 0, len(raw))
		for _, n := range raw {
			if v, err := n.Int64(); err == nil {
				out = append(out, v)
			}
		}
		return out
	}

	// JSON array of quoted numbers
	var strs []string
	if err := json.Unmarshal([]byte(s), &strs); err == nil {
		out := make([]int64, 0, len(strs))
		for _, v := range strs {
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				out = append(out, n)
			}
		}
		return out
	}

	// Bare number
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return []int64{n}
	}

	// Comma-separated fallback; broken JSON never qualifies
	if strings.Contains(s, ",") && !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "{") {
		parts := strings.Split(s, ",")
		out := make([]int64, 0, len(parts))
		for _, p := range parts {
			if n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64); err == nil {
				out = append(out, n)
			}
		}
		return out
	}

	return []int64{}
}

// MergeJSON decodes a JSON-encoded form value onto dst. Blank or malformed
// input leaves dst untouched; fields absent from the payload keep their
// stored values.
func MergeJSON(s string, dst interface{}) {
	s = strings.TrimSpace(s)
	if s == "" || !json.Valid([]byte(s)) {
		return
	}
	_ = json.Unmarshal([]byte(s), dst)
}

// JSONArray parses a value that should be a JSON array. A valid JSON array
// passes through untouched; a single JSON object is wrapped into a
// one-element array; anything else yields "[]".
func JSONArray(s string) json.RawMessage {
	s = strings.TrimSpace(s)
	if s == "" {
		return json.RawMessage("[]")
	}

	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(s), &arr); err == nil {
		return json.RawMessage(s)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err == nil {
		return json.RawMessage("[" + s + "]")
	}

	return json.RawMessage("[]")
}

// JSONObject parses a value that should be a JSON object, yielding "{}" for
// anything malformed.
func JSONObject(s string) json.RawMessage {
	s = strings.TrimSpace(s)
	if s == "" {
		return json.RawMessage("{}")
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err == nil {
		return json.RawMessage(s)
	}

	return json.RawMessage("{}")
}
