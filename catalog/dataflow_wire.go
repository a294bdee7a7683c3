package catalog

import (
	"encoding/json"

	"github.com/streamkit-io/relexpr/dataflow"
)

// EncodeDataflow serializes a single catalog vertex to its tagged-union
// wire form (spec.md §4.3): `{"source": {...}}`, `{"sink": {...}}` or
// `{"view": {...}}`.
func EncodeDataflow(d dataflow.Dataflow) (json.RawMessage, error) {
	switch d.Kind {
	case dataflow.KindSource:
		connector, err := encodeSourceConnector(d.SourceConnector)
		if err != nil {
			return nil, err
		}
		return encodeTag("source", struct {
			Name      string           `json:"name"`
			Connector json.RawMessage  `json:"connector"`
			Typ       relationTypeWire `json:"typ"`
		}{d.SourceName, connector, encodeRelationType(d.SourceType)})

	case dataflow.KindSink:
		connector, err := encodeSinkConnector(d.SinkConnector)
		if err != nil {
			return nil, err
		}
		return encodeTag("sink", struct {
			Name      string           `json:"name"`
			From      string           `json:"from"`
			FromType  relationTypeWire `json:"from_type"`
			Connector json.RawMessage  `json:"connector"`
		}{d.SinkName, d.SinkFromName, encodeRelationType(d.SinkFromType), connector})

	case dataflow.KindView:
		relationExpr, err := encodeRelationExpr(d.ViewRelationExpr)
		if err != nil {
			return nil, err
		}
		return encodeTag("view", struct {
			Name         string           `json:"name"`
			RelationExpr json.RawMessage  `json:"relation_expr"`
			Typ          relationTypeWire `json:"typ"`
		}{d.ViewName, relationExpr, encodeRelationType(d.ViewType)})
	}
	return nil, &UnknownVariantError{Discriminant: d.Kind.String()}
}

// DecodeDataflow parses a single catalog vertex from its tagged-union wire
// form, reconstructing it through the same constructors used to build one
// programmatically — so a malformed View still panics with
// *plan.InvariantViolation rather than silently round-tripping a
// type-mismatched tree.
func DecodeDataflow(raw json.RawMessage) (dataflow.Dataflow, error) {
	tag, payload, err := decodeTag(raw)
	if err != nil {
		return dataflow.Dataflow{}, err
	}
	switch tag {
	case "source":
		var w struct {
			Name      string           `json:"name"`
			Connector json.RawMessage  `json:"connector"`
			Typ       relationTypeWire `json:"typ"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return dataflow.Dataflow{}, &MalformedError{Input: string(payload), Err: err}
		}
		connector, err := decodeSourceConnector(w.Connector)
		if err != nil {
			return dataflow.Dataflow{}, err
		}
		typ, err := decodeRelationType(w.Typ)
		if err != nil {
			return dataflow.Dataflow{}, err
		}
		return dataflow.NewSource(w.Name, connector, typ), nil

	case "sink":
		var w struct {
			Name      string           `json:"name"`
			From      string           `json:"from"`
			FromType  relationTypeWire `json:"from_type"`
			Connector json.RawMessage  `json:"connector"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return dataflow.Dataflow{}, &MalformedError{Input: string(payload), Err: err}
		}
		connector, err := decodeSinkConnector(w.Connector)
		if err != nil {
			return dataflow.Dataflow{}, err
		}
		fromType, err := decodeRelationType(w.FromType)
		if err != nil {
			return dataflow.Dataflow{}, err
		}
		return dataflow.NewSink(w.Name, w.From, fromType, connector), nil

	case "view":
		var w struct {
			Name         string           `json:"name"`
			RelationExpr json.RawMessage  `json:"relation_expr"`
			Typ          relationTypeWire `json:"typ"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return dataflow.Dataflow{}, &MalformedError{Input: string(payload), Err: err}
		}
		relationExpr, err := decodeRelationExpr(w.RelationExpr)
		if err != nil {
			return dataflow.Dataflow{}, err
		}
		typ, err := decodeRelationType(w.Typ)
		if err != nil {
			return dataflow.Dataflow{}, err
		}
		return dataflow.NewView(w.Name, relationExpr, typ), nil
	}
	return dataflow.Dataflow{}, &UnknownVariantError{Discriminant: tag}
}
