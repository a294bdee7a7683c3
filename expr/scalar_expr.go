package expr

import (
	"fmt"

	"github.com/streamkit-io/relexpr/repr"
)

// ScalarExprKind tags which variant of ScalarExpr is populated.
type ScalarExprKind int

const (
	KindColumn ScalarExprKind = iota
	KindLiteral
	KindCallUnary
	KindCallBinary
	KindCallVariadic
	KindIf
)

// ScalarExpr is the closed recursive variant of scalar expressions
// evaluated over a single input row (spec.md §3). It is a plain struct
// rather than an interface hierarchy so that it stays a structurally
// comparable, serializable value: exactly one group of fields is meaningful,
// selected by Kind.
type ScalarExpr struct {
	Kind ScalarExprKind

	// KindColumn
	ColumnIndex int

	// KindLiteral
	Literal repr.Datum

	// KindCallUnary
	UnaryFunc UnaryFunc
	Unary     *ScalarExpr

	// KindCallBinary
	BinaryFunc BinaryFunc
	Binary1    *ScalarExpr
	Binary2    *ScalarExpr

	// KindCallVariadic
	VariadicFunc VariadicFunc
	Variadic     []ScalarExpr

	// KindIf
	IfCond *ScalarExpr
	IfThen *ScalarExpr
	IfElse *ScalarExpr
}

// Column builds a ScalarExpr referencing input row position i (0-based).
func Column(i int) ScalarExpr { return ScalarExpr{Kind: KindColumn, ColumnIndex: i} }

// Literal builds a compile-time constant ScalarExpr.
func Literal(d repr.Datum) ScalarExpr { return ScalarExpr{Kind: KindLiteral, Literal: d} }

// CallUnary applies a UnaryFunc to expr.
func CallUnary(fn UnaryFunc, e ScalarExpr) ScalarExpr {
	return ScalarExpr{Kind: KindCallUnary, UnaryFunc: fn, Unary: &e}
}

// CallBinary applies a BinaryFunc to e1, e2.
func CallBinary(fn BinaryFunc, e1, e2 ScalarExpr) ScalarExpr {
	return ScalarExpr{Kind: KindCallBinary, BinaryFunc: fn, Binary1: &e1, Binary2: &e2}
}

// CallVariadic applies a VariadicFunc to exprs.
func CallVariadic(fn VariadicFunc, exprs ...ScalarExpr) ScalarExpr {
	return ScalarExpr{Kind: KindCallVariadic, VariadicFunc: fn, Variadic: exprs}
}

// If builds a three-way conditional; cond must yield a boolean datum at
// evaluation time.
func If(cond, then, els ScalarExpr) ScalarExpr {
	return ScalarExpr{Kind: KindIf, IfCond: &cond, IfThen: &then, IfElse: &els}
}

// Columns builds one ScalarExpr per index, in order — the Go analogue of
// the Rust is.iter().map(Column) convenience used when wiring up
// projections from index lists.
func Columns(is ...int) []ScalarExpr {
	out := make([]ScalarExpr, len(is))
	for i, idx := range is {
		out[i] = Column(idx)
	}
	return out
}

// Visit applies fn to e and, pre-order, to every ScalarExpr subterm. It is
// the single traversal primitive for scalar expressions, mirroring
// RelationExpr's Visit (plan.RelationExpr.Visit).
func (e ScalarExpr) Visit(fn func(ScalarExpr)) {
	fn(e)
	switch e.Kind {
	case KindCallUnary:
		e.Unary.Visit(fn)
	case KindCallBinary:
		e.Binary1.Visit(fn)
		e.Binary2.Visit(fn)
	case KindCallVariadic:
		for _, sub := range e.Variadic {
			sub.Visit(fn)
		}
	case KindIf:
		e.IfCond.Visit(fn)
		e.IfThen.Visit(fn)
		e.IfElse.Visit(fn)
	}
}

// MaxColumn returns the lowest and highest Column index referenced
// anywhere in e, and whether any Column reference exists at all. Callers
// use this to assert invariant 1 (§3): every Column(i) must satisfy
// 0 <= i < input arity — which means checking both min (catches a
// negative index) and max (catches an out-of-range one).
func (e ScalarExpr) MaxColumn() (min, max int, any bool) {
	e.Visit(func(sub ScalarExpr) {
		if sub.Kind == KindColumn {
			if !any || sub.ColumnIndex < min {
				min = sub.ColumnIndex
			}
			if !any || sub.ColumnIndex > max {
				max = sub.ColumnIndex
			}
			any = true
		}
	})
	return min, max, any
}

func (e ScalarExpr) String() string {
	switch e.Kind {
	case KindColumn:
		return fmt.Sprintf("#%d", e.ColumnIndex)
	case KindLiteral:
		return e.Literal.String()
	case KindCallUnary:
		return fmt.Sprintf("%s(%s)", e.UnaryFunc, e.Unary)
	case KindCallBinary:
		return fmt.Sprintf("%s(%s, %s)", e.BinaryFunc, e.Binary1, e.Binary2)
	case KindCallVariadic:
		return fmt.Sprintf("%s(%v)", e.VariadicFunc, e.Variadic)
	case KindIf:
		return fmt.Sprintf("if(%s, %s, %s)", e.IfCond, e.IfThen, e.IfElse)
	}
	return "<invalid scalar expr>"
}
