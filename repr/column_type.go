package repr

// ColumnType describes one column of a relation: an optional display name,
// nullability, and a scalar type. Equality is structural.
type ColumnType struct {
	Name       string // empty when absent; HasName distinguishes "" from absent
	HasName    bool
	Nullable   bool
	ScalarType ScalarType
}

// Column builds an unnamed, nullable-configurable column type.
func Column(scalarType ScalarType, nullable bool) ColumnType {
	return ColumnType{Nullable: nullable, ScalarType: scalarType}
}

// NamedColumn builds a named column type.
func NamedColumn(name string, scalarType ScalarType, nullable bool) ColumnType {
	return ColumnType{Name: name, HasName: true, Nullable: nullable, ScalarType: scalarType}
}

// Equal is structural equality over name, nullability and scalar type.
func (c ColumnType) Equal(o ColumnType) bool {
	return c.HasName == o.HasName && c.Name == o.Name &&
		c.Nullable == o.Nullable && c.ScalarType == o.ScalarType
}

// UnionColumn computes the lattice join of two column types used by
// RelationExpr's Union variant: equal scalar type is required, nullability
// is the disjunction, and the name is kept only when both sides agree.
func UnionColumn(l, r ColumnType) (ColumnType, bool) {
	if l.ScalarType != r.ScalarType {
		return ColumnType{}, false
	}
	out := ColumnType{
		Nullable:   l.Nullable || r.Nullable,
		ScalarType: l.ScalarType,
	}
	if l.HasName && r.HasName && l.Name == r.Name {
		out.Name = l.Name
		out.HasName = true
	}
	return out, true
}

// RelationType is an ordered sequence of column types; its length is the
// relation's arity.
type RelationType struct {
	ColumnTypes []ColumnType
}

// NewRelationType builds a RelationType from column types in order.
func NewRelationType(columnTypes ...ColumnType) RelationType {
	return RelationType{ColumnTypes: columnTypes}
}

// Arity is the number of columns.
func (t RelationType) Arity() int { return len(t.ColumnTypes) }

// Equal is structural, positional equality.
func (t RelationType) Equal(o RelationType) bool {
	if len(t.ColumnTypes) != len(o.ColumnTypes) {
		return false
	}
	for i := range t.ColumnTypes {
		if !t.ColumnTypes[i].Equal(o.ColumnTypes[i]) {
			return false
		}
	}
	return true
}

// UnionCompatible reports whether t and o have equal arity and each
// column pair admits a lattice join, returning the joined relation type
// when they do.
func (t RelationType) UnionCompatible(o RelationType) (RelationType, bool) {
	if len(t.ColumnTypes) != len(o.ColumnTypes) {
		return RelationType{}, false
	}
	out := make([]ColumnType, len(t.ColumnTypes))
	for i := range t.ColumnTypes {
		joined, ok := UnionColumn(t.ColumnTypes[i], o.ColumnTypes[i])
		if !ok {
			return RelationType{}, false
		}
		out[i] = joined
	}
	return RelationType{ColumnTypes: out}, true
}
