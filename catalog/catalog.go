package catalog

import (
	"encoding/json"

	"github.com/streamkit-io/relexpr/dataflow"
)

// CurrentVersion is the wire format version written by Encode. Adding a
// RelationExpr or ScalarExpr operator is a breaking wire change (spec.md
// §4.3); bump this and branch on Decode's Version field before changing
// any per-variant payload shape.
const CurrentVersion = 1

// Catalog is the persisted, versioned collection of named dataflows
// (spec.md §4.3 forward-compatibility note: "the catalog must version
// dataflow entries"). Entries preserve the order they were added in.
type Catalog struct {
	Version  int
	Entries  []dataflow.Dataflow
}

// Encode serializes a whole catalog to its stable wire form.
func Encode(c Catalog) ([]byte, error) {
	entries := make([]json.RawMessage, len(c.Entries))
	for i, d := range c.Entries {
		raw, err := EncodeDataflow(d)
		if err != nil {
			return nil, err
		}
		entries[i] = raw
	}
	return json.Marshal(struct {
		Version int               `json:"version"`
		Entries []json.RawMessage `json:"entries"`
	}{c.Version, entries})
}

// Decode parses a whole catalog from its wire form. An UnknownVariantError
// or MalformedError from any entry aborts the whole decode — a partially
// loaded catalog is a recoverable-error case, not a state the caller
// should build on.
func Decode(data []byte) (Catalog, error) {
	var w struct {
		Version int               `json:"version"`
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return Catalog{}, &MalformedError{Input: string(data), Err: err}
	}
	entries := make([]dataflow.Dataflow, len(w.Entries))
	for i, raw := range w.Entries {
		d, err := DecodeDataflow(raw)
		if err != nil {
			return Catalog{}, err
		}
		entries[i] = d
	}
	return Catalog{Version: w.Version, Entries: entries}, nil
}
