package catalog

import (
	"encoding/json"
	"fmt"
)

// encodeTag wraps payload as the sole value of a one-key JSON object keyed
// by tag — the tagged-union encoding every variant in this package uses
// (spec.md §4.3: `{"constant": {...}}`, `{"call_binary": {...}}`).
func encodeTag(tag string, payload interface{}) (json.RawMessage, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]json.RawMessage{tag: payloadBytes})
}

// decodeTag splits a tagged-union object back into its discriminant and
// payload. A payload with zero or more than one key is malformed.
func decodeTag(data []byte) (tag string, payload json.RawMessage, err error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return "", nil, &MalformedError{Input: string(data), Err: err}
	}
	if len(m) != 1 {
		return "", nil, &MalformedError{Input: string(data), Err: fmt.Errorf("tagged union object must have exactly one key, got %d", len(m))}
	}
	for k, v := range m {
		tag, payload = k, v
	}
	return tag, payload, nil
}
