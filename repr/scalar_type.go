// Package repr defines the scalar and relation type system shared by the
// relation algebra, the dataflow envelope, and the catalog serialization
// contract.
package repr

import "fmt"

// ScalarType names one of the runtime's scalar value kinds. It carries no
// evaluation behavior here; the execution runtime gives it meaning.
type ScalarType int

const (
	ScalarTypeBool ScalarType = iota
	ScalarTypeInt32
	ScalarTypeInt64
	ScalarTypeFloat32
	ScalarTypeFloat64
	ScalarTypeString
	ScalarTypeBytes
)

// scalarTypeNames are the lower-case snake_case discriminants used both for
// Stringer output and for serialization (§6: "scalar types ... serialize by
// their lowercase-snake-case variant names").
var scalarTypeNames = [...]string{
	ScalarTypeBool:    "bool",
	ScalarTypeInt32:   "int32",
	ScalarTypeInt64:   "int64",
	ScalarTypeFloat32: "float32",
	ScalarTypeFloat64: "float64",
	ScalarTypeString:  "string",
	ScalarTypeBytes:   "bytes",
}

var scalarTypeByName = func() map[string]ScalarType {
	m := make(map[string]ScalarType, len(scalarTypeNames))
	for t, name := range scalarTypeNames {
		m[name] = ScalarType(t)
	}
	return m
}()

func (t ScalarType) String() string {
	if int(t) < 0 || int(t) >= len(scalarTypeNames) {
		return fmt.Sprintf("scalar_type(%d)", int(t))
	}
	return scalarTypeNames[t]
}

// ParseScalarType resolves a snake_case discriminant back to a ScalarType.
// It is the recoverable half of the pair and is used by the catalog decoder.
func ParseScalarType(name string) (ScalarType, bool) {
	t, ok := scalarTypeByName[name]
	return t, ok
}
