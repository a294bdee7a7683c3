package plan

import "github.com/streamkit-io/relexpr/repr"

// Typ is the total recursive function deriving a RelationExpr's
// RelationType (spec.md §4.1 "Type derivation"). It asserts the
// structural invariants listed in spec.md §3 as it goes; a violation
// panics with *InvariantViolation rather than returning an error, per
// spec.md §7 — these are planner bugs, not runtime conditions.
func (r RelationExpr) Typ() repr.RelationType {
	switch r.Kind {
	case KindConstant:
		for ri, row := range r.Rows {
			for ci, d := range row {
				if ci >= len(r.RelType.ColumnTypes) {
					violate("constant-arity", "row %d has %d columns, type declares %d", ri, len(row), len(r.RelType.ColumnTypes))
				}
				if !d.IsInstanceOf(r.RelType.ColumnTypes[ci]) {
					violate("constant-type", "row %d column %d: datum %s is not an instance of %v", ri, ci, d, r.RelType.ColumnTypes[ci])
				}
			}
		}
		return r.RelType

	case KindGet:
		return r.GetType

	case KindLet:
		return r.LetBody.Typ()

	case KindProject:
		inputTyp := r.ProjectInput.Typ()
		cols := make([]repr.ColumnType, len(r.ProjectOutputs))
		for i, idx := range r.ProjectOutputs {
			if idx < 0 || idx >= len(inputTyp.ColumnTypes) {
				violate("project-index", "output %d references column %d, input arity is %d", i, idx, len(inputTyp.ColumnTypes))
			}
			cols[i] = inputTyp.ColumnTypes[idx]
		}
		return repr.RelationType{ColumnTypes: cols}

	case KindMap:
		typ := r.MapInput.Typ()
		cols := append([]repr.ColumnType{}, typ.ColumnTypes...)
		for _, s := range r.MapScalars {
			if min, max, any := s.Expr.MaxColumn(); any && (min < 0 || max >= len(typ.ColumnTypes)) {
				violate("map-column", "scalar references column %d, input arity is %d", outOfRange(min, max, len(typ.ColumnTypes)), len(typ.ColumnTypes))
			}
			cols = append(cols, s.Type)
		}
		return repr.RelationType{ColumnTypes: cols}

	case KindFilter:
		typ := r.FilterInput.Typ()
		for _, p := range r.FilterPredicates {
			if min, max, any := p.MaxColumn(); any && (min < 0 || max >= len(typ.ColumnTypes)) {
				violate("filter-column", "predicate references column %d, input arity is %d", outOfRange(min, max, len(typ.ColumnTypes)), len(typ.ColumnTypes))
			}
		}
		return typ

	case KindJoin:
		var cols []repr.ColumnType
		inputTypes := make([]repr.RelationType, len(r.JoinInputs))
		for i, in := range r.JoinInputs {
			inputTypes[i] = in.Typ()
			cols = append(cols, inputTypes[i].ColumnTypes...)
		}
		for ci, class := range r.JoinVariables {
			for _, v := range class {
				if v.Input < 0 || v.Input >= len(inputTypes) {
					violate("join-input", "equivalence class %d references input %d, join has %d inputs", ci, v.Input, len(inputTypes))
				}
				if v.Column < 0 || v.Column >= len(inputTypes[v.Input].ColumnTypes) {
					violate("join-column", "equivalence class %d references column %d of input %d, which has arity %d", ci, v.Column, v.Input, len(inputTypes[v.Input].ColumnTypes))
				}
			}
		}
		return repr.RelationType{ColumnTypes: cols}

	case KindReduce:
		inputTyp := r.ReduceInput.Typ()
		cols := make([]repr.ColumnType, 0, len(r.ReduceGroupKey)+len(r.ReduceAggregates))
		for _, idx := range r.ReduceGroupKey {
			if idx < 0 || idx >= len(inputTyp.ColumnTypes) {
				violate("reduce-group-key", "group key references column %d, input arity is %d", idx, len(inputTyp.ColumnTypes))
			}
			cols = append(cols, inputTyp.ColumnTypes[idx])
		}
		for _, a := range r.ReduceAggregates {
			if min, max, any := a.Expr.Expr.MaxColumn(); any && (min < 0 || max >= len(inputTyp.ColumnTypes)) {
				violate("reduce-aggregate-column", "aggregate references column %d, input arity is %d", outOfRange(min, max, len(inputTyp.ColumnTypes)), len(inputTyp.ColumnTypes))
			}
			cols = append(cols, a.Type)
		}
		return repr.RelationType{ColumnTypes: cols}

	case KindTopK:
		inputTyp := r.TopKInput.Typ()
		for _, idx := range r.TopKGroupKey {
			if idx < 0 || idx >= len(inputTyp.ColumnTypes) {
				violate("top-k-group-key", "group key references column %d, input arity is %d", idx, len(inputTyp.ColumnTypes))
			}
		}
		for _, idx := range r.TopKOrderKey {
			if idx < 0 || idx >= len(inputTyp.ColumnTypes) {
				violate("top-k-order-key", "order key references column %d, input arity is %d", idx, len(inputTyp.ColumnTypes))
			}
		}
		return inputTyp

	case KindOrDefault:
		typ := r.OrDefaultInput.Typ()
		if len(r.OrDefaultDefault) != len(typ.ColumnTypes) {
			violate("or-default-arity", "default has %d columns, input arity is %d", len(r.OrDefaultDefault), len(typ.ColumnTypes))
		}
		for i, d := range r.OrDefaultDefault {
			if !d.IsInstanceOf(typ.ColumnTypes[i]) {
				violate("or-default-type", "default column %d: datum %s is not an instance of %v", i, d, typ.ColumnTypes[i])
			}
		}
		return typ

	case KindNegate:
		return r.NegateInput.Typ()

	case KindDistinct:
		return r.DistinctInput.Typ()

	case KindUnion:
		leftTyp := r.UnionLeft.Typ()
		rightTyp := r.UnionRight.Typ()
		joined, ok := leftTyp.UnionCompatible(rightTyp)
		if !ok {
			violate("union-compatible", "left has %d columns, right has %d, or a column pair shares no scalar type", len(leftTyp.ColumnTypes), len(rightTyp.ColumnTypes))
		}
		return joined
	}

	violate("unknown-kind", "unrecognized RelationExprKind %d", int(r.Kind))
	panic("unreachable")
}

// outOfRange picks whichever of a scalar expr's min/max referenced
// column indexes actually falls outside [0, arity) for an error message;
// callers have already checked that at least one of them does.
func outOfRange(min, max, arity int) int {
	if min < 0 {
		return min
	}
	return max
}

// Arity is the number of columns in r's derived type.
func (r RelationExpr) Arity() int { return r.Typ().Arity() }
