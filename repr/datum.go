package repr

import "fmt"

// Datum is a tagged scalar value: one of the runtime's scalar types, or
// null. Its ScalarType must agree with the value it carries — a Datum is
// never constructed with a mismatched kind and payload because the
// constructors below are the only way to build one.
type Datum struct {
	null       bool
	kind       ScalarType
	boolVal    bool
	int32Val   int32
	int64Val   int64
	float32Val float32
	float64Val float64
	stringVal  string
	bytesVal   []byte
}

// Null returns the null datum carrying the given scalar type. A null datum
// still has a scalar type (ScalarType reports it, and Equal and
// serialization use it); IsInstanceOf checks only that the column is
// nullable, not that the scalar types agree.
func Null(kind ScalarType) Datum { return Datum{null: true, kind: kind} }

func Bool(v bool) Datum       { return Datum{kind: ScalarTypeBool, boolVal: v} }
func Int32(v int32) Datum     { return Datum{kind: ScalarTypeInt32, int32Val: v} }
func Int64(v int64) Datum     { return Datum{kind: ScalarTypeInt64, int64Val: v} }
func Float32(v float32) Datum { return Datum{kind: ScalarTypeFloat32, float32Val: v} }
func Float64(v float64) Datum { return Datum{kind: ScalarTypeFloat64, float64Val: v} }
func String(v string) Datum   { return Datum{kind: ScalarTypeString, stringVal: v} }
func Bytes(v []byte) Datum {
	cp := make([]byte, len(v))
	copy(cp, v)
	return Datum{kind: ScalarTypeBytes, bytesVal: cp}
}

// IsNull reports whether this datum is the null value.
func (d Datum) IsNull() bool { return d.null }

// ScalarType reports the scalar type this datum was constructed with,
// regardless of nullness.
func (d Datum) ScalarType() ScalarType { return d.kind }

// BoolValue, Int32Value, etc. return the carried value. Calling the wrong
// accessor for the datum's ScalarType, or calling one on a null datum, is a
// programmer error and panics — analogous to unwrapping the wrong variant
// of a Rust enum.
func (d Datum) BoolValue() bool {
	d.mustNonNull(ScalarTypeBool)
	return d.boolVal
}

func (d Datum) Int32Value() int32 {
	d.mustNonNull(ScalarTypeInt32)
	return d.int32Val
}

func (d Datum) Int64Value() int64 {
	d.mustNonNull(ScalarTypeInt64)
	return d.int64Val
}

func (d Datum) Float32Value() float32 {
	d.mustNonNull(ScalarTypeFloat32)
	return d.float32Val
}

func (d Datum) Float64Value() float64 {
	d.mustNonNull(ScalarTypeFloat64)
	return d.float64Val
}

func (d Datum) StringValue() string {
	d.mustNonNull(ScalarTypeString)
	return d.stringVal
}

func (d Datum) BytesValue() []byte {
	d.mustNonNull(ScalarTypeBytes)
	return d.bytesVal
}

func (d Datum) mustNonNull(want ScalarType) {
	if d.null {
		panic("repr: accessed value of a null datum")
	}
	if d.kind != want {
		panic(fmt.Sprintf("repr: datum is %s, not %s", d.kind, want))
	}
}

// IsInstanceOf reports whether this datum may legally occupy a column of
// the given type: nullability must permit it, and (when non-null) the
// scalar types must agree.
func (d Datum) IsInstanceOf(ct ColumnType) bool {
	if d.null {
		return ct.Nullable
	}
	return d.kind == ct.ScalarType
}

// Equal is structural equality between two datums.
func (d Datum) Equal(o Datum) bool {
	if d.null != o.null || d.kind != o.kind {
		return false
	}
	if d.null {
		return true
	}
	switch d.kind {
	case ScalarTypeBool:
		return d.boolVal == o.boolVal
	case ScalarTypeInt32:
		return d.int32Val == o.int32Val
	case ScalarTypeInt64:
		return d.int64Val == o.int64Val
	case ScalarTypeFloat32:
		return d.float32Val == o.float32Val
	case ScalarTypeFloat64:
		return d.float64Val == o.float64Val
	case ScalarTypeString:
		return d.stringVal == o.stringVal
	case ScalarTypeBytes:
		return string(d.bytesVal) == string(o.bytesVal)
	}
	return false
}

func (d Datum) String() string {
	if d.null {
		return "null"
	}
	switch d.kind {
	case ScalarTypeBool:
		return fmt.Sprintf("%t", d.boolVal)
	case ScalarTypeInt32:
		return fmt.Sprintf("%d", d.int32Val)
	case ScalarTypeInt64:
		return fmt.Sprintf("%d", d.int64Val)
	case ScalarTypeFloat32:
		return fmt.Sprintf("%g", d.float32Val)
	case ScalarTypeFloat64:
		return fmt.Sprintf("%g", d.float64Val)
	case ScalarTypeString:
		return fmt.Sprintf("%q", d.stringVal)
	case ScalarTypeBytes:
		return fmt.Sprintf("%x", d.bytesVal)
	}
	return "<invalid datum>"
}
