// Package plan implements the relation algebra: a closed, recursively
// composable tree of operators (spec.md §4.1) with total type derivation,
// a single visitor primitive, and dependency extraction. Construction and
// builder methods never validate; Typ() is where invariants are checked,
// on demand, exactly as spec.md §4.1 describes.
package plan

import (
	"fmt"

	"github.com/streamkit-io/relexpr/expr"
	"github.com/streamkit-io/relexpr/repr"
)

// Row is one materialized row of a Constant relation.
type Row []repr.Datum

// RelationExprKind tags which variant of RelationExpr is populated.
type RelationExprKind int

const (
	KindConstant RelationExprKind = iota
	KindGet
	KindLet
	KindProject
	KindMap
	KindFilter
	KindJoin
	KindReduce
	KindTopK
	KindOrDefault
	KindNegate
	KindDistinct
	KindUnion
)

var kindNames = [...]string{
	KindConstant:  "constant",
	KindGet:       "get",
	KindLet:       "let",
	KindProject:   "project",
	KindMap:       "map",
	KindFilter:    "filter",
	KindJoin:      "join",
	KindReduce:    "reduce",
	KindTopK:      "top_k",
	KindOrDefault: "or_default",
	KindNegate:    "negate",
	KindDistinct:  "distinct",
	KindUnion:     "union",
}

func (k RelationExprKind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("relation_expr(%d)", int(k))
	}
	return kindNames[k]
}

// ParseRelationExprKind resolves a snake_case discriminant to a Kind; used
// by the catalog decoder.
func ParseRelationExprKind(name string) (RelationExprKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return RelationExprKind(k), true
		}
	}
	return 0, false
}

// JoinVar is one coordinate, (input index, column index), of a Join
// equivalence class.
type JoinVar struct {
	Input  int
	Column int
}

// MapScalar is one column appended by Map: the expression computing it and
// its declared type.
type MapScalar struct {
	Expr expr.ScalarExpr
	Type repr.ColumnType
}

// ReduceAggregate is one column appended by Reduce: the aggregation and
// its declared output type.
type ReduceAggregate struct {
	Expr expr.AggregateExpr
	Type repr.ColumnType
}

// RelationExpr is the closed recursive variant that forms the relation
// algebra (spec.md §4.1). As with expr.ScalarExpr, it is a single struct
// tagged by Kind rather than an interface per variant, so that the whole
// tree stays a plain, serializable, structurally-comparable value.
type RelationExpr struct {
	Kind RelationExprKind

	// KindConstant
	Rows    []Row
	RelType repr.RelationType

	// KindGet
	GetName string
	GetType repr.RelationType

	// KindLet
	LetName  string
	LetValue *RelationExpr
	LetBody  *RelationExpr

	// KindProject
	ProjectInput   *RelationExpr
	ProjectOutputs []int

	// KindMap
	MapInput   *RelationExpr
	MapScalars []MapScalar

	// KindFilter
	FilterInput      *RelationExpr
	FilterPredicates []expr.ScalarExpr

	// KindJoin
	JoinInputs    []RelationExpr
	JoinVariables [][]JoinVar

	// KindReduce
	ReduceInput      *RelationExpr
	ReduceGroupKey   []int
	ReduceAggregates []ReduceAggregate

	// KindTopK
	TopKInput    *RelationExpr
	TopKGroupKey []int
	TopKOrderKey []int
	TopKLimit    int

	// KindOrDefault
	OrDefaultInput   *RelationExpr
	OrDefaultDefault []repr.Datum

	// KindNegate
	NegateInput *RelationExpr

	// KindDistinct
	DistinctInput *RelationExpr

	// KindUnion
	UnionLeft  *RelationExpr
	UnionRight *RelationExpr
}

// InvariantViolation marks a structural bug in a RelationExpr tree — an
// out-of-range column index, an arity mismatch, a type mismatch. Per
// spec.md §7 these are programmer errors, not recoverable conditions: Typ
// panics with this type rather than returning an error, and callers must
// not catch and continue from it.
type InvariantViolation struct {
	Rule    string
	Message string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("relation expr invariant violated (%s): %s", e.Rule, e.Message)
}

func violate(rule, format string, args ...interface{}) {
	panic(&InvariantViolation{Rule: rule, Message: fmt.Sprintf(format, args...)})
}

// Constant builds a materialized table of literal rows. Empty rows is a
// legal empty relation.
func Constant(rows []Row, typ repr.RelationType) RelationExpr {
	return RelationExpr{Kind: KindConstant, Rows: rows, RelType: typ}
}

// Get builds a reference to a named dataflow (view, source, or
// let-binding). typ is a snapshot taken at plan time; keeping it in sync
// with the referent is the planner's obligation, not this package's.
func Get(name string, typ repr.RelationType) RelationExpr {
	return RelationExpr{Kind: KindGet, GetName: name, GetType: typ}
}

// Let introduces name bound to value within body. value may not reference
// name (Let is not recursive).
func Let(name string, value, body RelationExpr) RelationExpr {
	return RelationExpr{Kind: KindLet, LetName: name, LetValue: &value, LetBody: &body}
}

// Join builds the cartesian product of inputs restricted by variables,
// where each variables[e] is an equivalence class of (input, column)
// coordinates that must all carry equal values. Joining zero inputs
// yields a single empty row; joining one input is the identity.
func Join(inputs []RelationExpr, variables [][]JoinVar) RelationExpr {
	return RelationExpr{Kind: KindJoin, JoinInputs: inputs, JoinVariables: variables}
}

// Union returns the multiset sum of left and right.
func Union(left, right RelationExpr) RelationExpr {
	return RelationExpr{Kind: KindUnion, UnionLeft: &left, UnionRight: &right}
}

// --- builder methods: each operator doubles as a fluent method that wraps
// the receiver as the new operator's input (spec.md §4.1 "Builder
// surface"). None of these validate; Typ() does, lazily. ---

// Project emits each row as input[outputs[0]], ..., input[outputs[k-1]].
func (r RelationExpr) Project(outputs []int) RelationExpr {
	return RelationExpr{Kind: KindProject, ProjectInput: &r, ProjectOutputs: outputs}
}

// Map appends each scalar, evaluated over the input row, as a new column.
// Scalars see only the input columns — no intra-Map forward references
// (spec.md §9, pinning the stricter of two readings of the original).
func (r RelationExpr) Map(scalars []MapScalar) RelationExpr {
	return RelationExpr{Kind: KindMap, MapInput: &r, MapScalars: scalars}
}

// Filter retains rows where every predicate evaluates to boolean true;
// null or false both reject the row.
func (r RelationExpr) Filter(predicates []expr.ScalarExpr) RelationExpr {
	return RelationExpr{Kind: KindFilter, FilterInput: &r, FilterPredicates: predicates}
}

// Reduce partitions by groupKey and appends one column per aggregate.
// Empty input with an empty groupKey emits no rows — OrDefault is the
// escape hatch for SQL scalar-aggregate semantics (spec.md §4.1, §9).
func (r RelationExpr) Reduce(groupKey []int, aggregates []ReduceAggregate) RelationExpr {
	return RelationExpr{Kind: KindReduce, ReduceInput: &r, ReduceGroupKey: groupKey, ReduceAggregates: aggregates}
}

// TopK retains, within each group, the first limit rows by ascending
// composite order on orderKey.
func (r RelationExpr) TopK(groupKey, orderKey []int, limit int) RelationExpr {
	return RelationExpr{Kind: KindTopK, TopKInput: &r, TopKGroupKey: groupKey, TopKOrderKey: orderKey, TopKLimit: limit}
}

// OrDefault emits a single default row when the input produces zero rows,
// otherwise passes the input through unchanged.
func (r RelationExpr) OrDefault(def []repr.Datum) RelationExpr {
	return RelationExpr{Kind: KindOrDefault, OrDefaultInput: &r, OrDefaultDefault: def}
}

// Negate flips the multiplicity sign of every row.
func (r RelationExpr) Negate() RelationExpr {
	return RelationExpr{Kind: KindNegate, NegateInput: &r}
}

// Distinct clamps multiplicities to {0, 1}.
func (r RelationExpr) Distinct() RelationExpr {
	return RelationExpr{Kind: KindDistinct, DistinctInput: &r}
}

// UnionWith returns the multiset sum of r and other. (Union is also
// available as a free function for symmetry with the other multi-input
// operator, Join.)
func (r RelationExpr) UnionWith(other RelationExpr) RelationExpr {
	return RelationExpr{Kind: KindUnion, UnionLeft: &r, UnionRight: &other}
}
