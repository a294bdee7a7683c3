package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamkit-io/relexpr/expr"
	"github.com/streamkit-io/relexpr/repr"
)

func int32Row(vs ...int32) Row {
	row := make(Row, len(vs))
	for i, v := range vs {
		row[i] = repr.Int32(v)
	}
	return row
}

func int32Type(n int, nullable bool) repr.RelationType {
	cols := make([]repr.ColumnType, n)
	for i := range cols {
		cols[i] = repr.Column(repr.ScalarTypeInt32, nullable)
	}
	return repr.RelationType{ColumnTypes: cols}
}

// Scenario 2 from spec.md §8.
func TestProjectArity(t *testing.T) {
	c := Constant([]Row{int32Row(1, 2, 3)}, int32Type(3, false))
	p := c.Project([]int{0, 2})
	require.Equal(t, 2, p.Arity())
}

// Scenario 3 from spec.md §8.
func TestUnionNullabilityIsDisjunction(t *testing.T) {
	left := Constant([]Row{int32Row(1)}, int32Type(1, false))
	right := Constant([]Row{{repr.Null(repr.ScalarTypeInt32)}}, int32Type(1, true))

	u := Union(left, right)
	got := u.Typ()
	want := int32Type(1, true)
	require.True(t, got.Equal(want))
}

// Scenario 4 from spec.md §8.
func TestOrDefaultTypeEqualsInputType(t *testing.T) {
	empty := Constant(nil, int32Type(1, false))
	withDefault := empty.OrDefault([]repr.Datum{repr.Int32(0)})
	require.True(t, withDefault.Typ().Equal(int32Type(1, false)))
}

func TestMapArityIsInputPlusScalars(t *testing.T) {
	c := Constant([]Row{int32Row(1, 2)}, int32Type(2, false))
	m := c.Map([]MapScalar{
		{Expr: expr.CallBinary(expr.BinaryAddInt32, expr.Column(0), expr.Column(1)), Type: repr.Column(repr.ScalarTypeInt32, false)},
	})
	require.Equal(t, 3, m.Arity())
}

func TestFilterTypeEqualsInputType(t *testing.T) {
	c := Constant([]Row{int32Row(1, 2)}, int32Type(2, false))
	f := c.Filter([]expr.ScalarExpr{expr.CallBinary(expr.BinaryGt, expr.Column(0), expr.Column(1))})
	require.True(t, f.Typ().Equal(c.Typ()))
}

func TestReduceArityIsGroupKeyPlusAggregates(t *testing.T) {
	c := Constant([]Row{int32Row(1, 2), int32Row(1, 3)}, int32Type(2, false))
	red := c.Reduce([]int{0}, []ReduceAggregate{
		{Expr: expr.NewAggregateExpr(expr.AggregateSumInt32, expr.Column(1), false), Type: repr.Column(repr.ScalarTypeInt32, false)},
	})
	require.Equal(t, 2, red.Arity())
}

func TestJoinZeroInputsYieldsEmptyRowIdentity(t *testing.T) {
	j := Join(nil, nil)
	require.Equal(t, 0, j.Arity())
}

func TestJoinConcatenatesColumnsInOrder(t *testing.T) {
	left := Constant([]Row{int32Row(1)}, int32Type(1, false))
	right := Constant([]Row{int32Row(2, 3)}, int32Type(2, false))
	j := Join([]RelationExpr{left, right}, [][]JoinVar{{{Input: 0, Column: 0}, {Input: 1, Column: 0}}})
	require.Equal(t, 3, j.Arity())
}

func TestOutOfRangeProjectPanics(t *testing.T) {
	c := Constant([]Row{int32Row(1)}, int32Type(1, false))
	p := c.Project([]int{5})
	require.Panics(t, func() { p.Typ() })
}

func TestUnionArityMismatchPanics(t *testing.T) {
	left := Constant([]Row{int32Row(1)}, int32Type(1, false))
	right := Constant([]Row{int32Row(1, 2)}, int32Type(2, false))
	u := Union(left, right)
	require.Panics(t, func() { u.Typ() })
}

func TestConstantRowTypeMismatchPanics(t *testing.T) {
	badType := repr.RelationType{ColumnTypes: []repr.ColumnType{repr.Column(repr.ScalarTypeString, false)}}
	c := Constant([]Row{int32Row(1)}, badType)
	require.Panics(t, func() { c.Typ() })
}

func TestLetTypeEqualsBodyType(t *testing.T) {
	value := Constant([]Row{int32Row(1)}, int32Type(1, false))
	body := Get("x", int32Type(1, false)).Project([]int{0})
	l := Let("x", value, body)
	require.True(t, l.Typ().Equal(int32Type(1, false)))
}

func TestMapScalarNegativeColumnPanics(t *testing.T) {
	c := Constant([]Row{int32Row(1, 2)}, int32Type(2, false))
	m := c.Map([]MapScalar{
		{Expr: expr.Column(-1), Type: repr.Column(repr.ScalarTypeInt32, false)},
	})
	require.Panics(t, func() { m.Typ() })
}

func TestFilterPredicateNegativeColumnPanics(t *testing.T) {
	c := Constant([]Row{int32Row(1, 2)}, int32Type(2, false))
	f := c.Filter([]expr.ScalarExpr{expr.CallUnary(expr.UnaryIsNull, expr.Column(-1))})
	require.Panics(t, func() { f.Typ() })
}

func TestReduceAggregateNegativeColumnPanics(t *testing.T) {
	c := Constant([]Row{int32Row(1, 2)}, int32Type(2, false))
	red := c.Reduce([]int{0}, []ReduceAggregate{
		{Expr: expr.NewAggregateExpr(expr.AggregateSumInt32, expr.Column(-1), false), Type: repr.Column(repr.ScalarTypeInt32, false)},
	})
	require.Panics(t, func() { red.Typ() })
}

func TestTopKGroupKeyOutOfRangePanics(t *testing.T) {
	c := Constant([]Row{int32Row(1, 2)}, int32Type(2, false))
	tk := c.TopK([]int{5}, []int{0}, 1)
	require.Panics(t, func() { tk.Typ() })
}

func TestTopKOrderKeyNegativePanics(t *testing.T) {
	c := Constant([]Row{int32Row(1, 2)}, int32Type(2, false))
	tk := c.TopK([]int{0}, []int{-1}, 1)
	require.Panics(t, func() { tk.Typ() })
}

func TestTopKValidKeysDoesNotPanicAndPreservesInputType(t *testing.T) {
	c := Constant([]Row{int32Row(1, 2)}, int32Type(2, false))
	tk := c.TopK([]int{0}, []int{1}, 1)
	require.True(t, tk.Typ().Equal(int32Type(2, false)))
}
