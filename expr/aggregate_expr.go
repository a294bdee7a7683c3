package expr

import "fmt"

// AggregateExpr describes one aggregation applied within a Reduce group:
// a function kind, the scalar expression producing its argument from each
// input row, and whether the argument is deduplicated within the group
// before the function is applied (spec.md §3, §4.1 Reduce).
type AggregateExpr struct {
	Func     AggregateFunc
	Expr     ScalarExpr
	Distinct bool
}

// NewAggregateExpr builds an AggregateExpr.
func NewAggregateExpr(fn AggregateFunc, e ScalarExpr, distinct bool) AggregateExpr {
	return AggregateExpr{Func: fn, Expr: e, Distinct: distinct}
}

func (a AggregateExpr) String() string {
	if a.Distinct {
		return fmt.Sprintf("%s(distinct %s)", a.Func, a.Expr)
	}
	return fmt.Sprintf("%s(%s)", a.Func, a.Expr)
}
