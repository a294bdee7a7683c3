package catalog

import (
	"encoding/json"

	"github.com/streamkit-io/relexpr/repr"
)

func encodeDatum(d repr.Datum) (json.RawMessage, error) {
	if d.IsNull() {
		return encodeTag("null", d.ScalarType().String())
	}
	switch d.ScalarType() {
	case repr.ScalarTypeBool:
		return encodeTag("bool", d.BoolValue())
	case repr.ScalarTypeInt32:
		return encodeTag("int32", d.Int32Value())
	case repr.ScalarTypeInt64:
		return encodeTag("int64", d.Int64Value())
	case repr.ScalarTypeFloat32:
		return encodeTag("float32", d.Float32Value())
	case repr.ScalarTypeFloat64:
		return encodeTag("float64", d.Float64Value())
	case repr.ScalarTypeString:
		return encodeTag("string", d.StringValue())
	case repr.ScalarTypeBytes:
		return encodeTag("bytes", d.BytesValue())
	}
	return nil, &UnknownVariantError{Discriminant: d.ScalarType().String()}
}

func decodeDatum(raw json.RawMessage) (repr.Datum, error) {
	tag, payload, err := decodeTag(raw)
	if err != nil {
		return repr.Datum{}, err
	}
	if tag == "null" {
		var name string
		if err := json.Unmarshal(payload, &name); err != nil {
			return repr.Datum{}, &MalformedError{Input: string(payload), Err: err}
		}
		st, ok := repr.ParseScalarType(name)
		if !ok {
			return repr.Datum{}, &UnknownVariantError{Discriminant: name}
		}
		return repr.Null(st), nil
	}

	st, ok := repr.ParseScalarType(tag)
	if !ok {
		return repr.Datum{}, &UnknownVariantError{Discriminant: tag}
	}
	switch st {
	case repr.ScalarTypeBool:
		var v bool
		if err := json.Unmarshal(payload, &v); err != nil {
			return repr.Datum{}, &MalformedError{Input: string(payload), Err: err}
		}
		return repr.Bool(v), nil
	case repr.ScalarTypeInt32:
		var v int32
		if err := json.Unmarshal(payload, &v); err != nil {
			return repr.Datum{}, &MalformedError{Input: string(payload), Err: err}
		}
		return repr.Int32(v), nil
	case repr.ScalarTypeInt64:
		var v int64
		if err := json.Unmarshal(payload, &v); err != nil {
			return repr.Datum{}, &MalformedError{Input: string(payload), Err: err}
		}
		return repr.Int64(v), nil
	case repr.ScalarTypeFloat32:
		var v float32
		if err := json.Unmarshal(payload, &v); err != nil {
			return repr.Datum{}, &MalformedError{Input: string(payload), Err: err}
		}
		return repr.Float32(v), nil
	case repr.ScalarTypeFloat64:
		var v float64
		if err := json.Unmarshal(payload, &v); err != nil {
			return repr.Datum{}, &MalformedError{Input: string(payload), Err: err}
		}
		return repr.Float64(v), nil
	case repr.ScalarTypeString:
		var v string
		if err := json.Unmarshal(payload, &v); err != nil {
			return repr.Datum{}, &MalformedError{Input: string(payload), Err: err}
		}
		return repr.String(v), nil
	case repr.ScalarTypeBytes:
		var v []byte
		if err := json.Unmarshal(payload, &v); err != nil {
			return repr.Datum{}, &MalformedError{Input: string(payload), Err: err}
		}
		return repr.Bytes(v), nil
	}
	return repr.Datum{}, &UnknownVariantError{Discriminant: tag}
}

type columnTypeWire struct {
	Name       string `json:"name"`
	HasName    bool   `json:"has_name"`
	Nullable   bool   `json:"nullable"`
	ScalarType string `json:"scalar_type"`
}

func encodeColumnType(ct repr.ColumnType) columnTypeWire {
	return columnTypeWire{
		Name:       ct.Name,
		HasName:    ct.HasName,
		Nullable:   ct.Nullable,
		ScalarType: ct.ScalarType.String(),
	}
}

func decodeColumnType(w columnTypeWire) (repr.ColumnType, error) {
	st, ok := repr.ParseScalarType(w.ScalarType)
	if !ok {
		return repr.ColumnType{}, &UnknownVariantError{Discriminant: w.ScalarType}
	}
	return repr.ColumnType{Name: w.Name, HasName: w.HasName, Nullable: w.Nullable, ScalarType: st}, nil
}

type relationTypeWire struct {
	ColumnTypes []columnTypeWire `json:"column_types"`
}

func encodeRelationType(t repr.RelationType) relationTypeWire {
	cols := make([]columnTypeWire, len(t.ColumnTypes))
	for i, ct := range t.ColumnTypes {
		cols[i] = encodeColumnType(ct)
	}
	return relationTypeWire{ColumnTypes: cols}
}

func decodeRelationType(w relationTypeWire) (repr.RelationType, error) {
	cols := make([]repr.ColumnType, len(w.ColumnTypes))
	for i, cw := range w.ColumnTypes {
		ct, err := decodeColumnType(cw)
		if err != nil {
			return repr.RelationType{}, err
		}
		cols[i] = ct
	}
	return repr.RelationType{ColumnTypes: cols}, nil
}
