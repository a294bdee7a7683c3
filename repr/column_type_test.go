package repr

import "testing"

func TestUnionColumnNullabilityIsDisjunction(t *testing.T) {
	l := NamedColumn("x", ScalarTypeInt32, false)
	r := Column(ScalarTypeInt32, true)

	joined, ok := UnionColumn(l, r)
	if !ok {
		t.Fatal("expected union of same-scalar-type columns to succeed")
	}
	if !joined.Nullable {
		t.Error("union nullability should be the disjunction of the operands")
	}
	if joined.HasName {
		t.Error("union should drop the name when the operands' names disagree")
	}
}

func TestUnionColumnRejectsDifferentScalarTypes(t *testing.T) {
	if _, ok := UnionColumn(Column(ScalarTypeInt32, false), Column(ScalarTypeString, false)); ok {
		t.Error("expected union of differing scalar types to fail")
	}
}

func TestRelationTypeUnionCompatible(t *testing.T) {
	left := NewRelationType(Column(ScalarTypeInt32, false))
	right := NewRelationType(Column(ScalarTypeInt32, true))

	joined, ok := left.UnionCompatible(right)
	if !ok {
		t.Fatal("expected equal-arity relation types to be union-compatible")
	}
	want := NewRelationType(Column(ScalarTypeInt32, true))
	if !joined.Equal(want) {
		t.Errorf("joined type = %+v, want %+v", joined, want)
	}
}

func TestRelationTypeArityMismatchIsIncompatible(t *testing.T) {
	left := NewRelationType(Column(ScalarTypeInt32, false))
	right := NewRelationType(Column(ScalarTypeInt32, false), Column(ScalarTypeInt32, false))
	if _, ok := left.UnionCompatible(right); ok {
		t.Error("expected differing-arity relation types to be incompatible")
	}
}
