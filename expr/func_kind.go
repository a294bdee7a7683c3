// Package expr defines scalar and aggregate expressions over input-row
// columns. The function-kind enumerations name the runtime's scalar and
// aggregate functions; they are tags only — evaluation lives in the
// execution runtime, out of scope here (spec.md §1).
package expr

import "fmt"

// UnaryFunc names a function of one argument.
type UnaryFunc int

const (
	UnaryIsNull UnaryFunc = iota
	UnaryNot
	UnaryNegInt32
	UnaryNegInt64
	UnaryNegFloat64
	UnaryAbsInt32
	UnaryAbsInt64
	UnaryAbsFloat64
	UnaryUpper
	UnaryLower
	UnaryCharLength
	UnaryCastStringToInt64
	UnaryCastInt64ToString
)

var unaryFuncNames = [...]string{
	UnaryIsNull:            "is_null",
	UnaryNot:                "not",
	UnaryNegInt32:           "neg_int32",
	UnaryNegInt64:           "neg_int64",
	UnaryNegFloat64:         "neg_float64",
	UnaryAbsInt32:           "abs_int32",
	UnaryAbsInt64:           "abs_int64",
	UnaryAbsFloat64:         "abs_float64",
	UnaryUpper:              "upper",
	UnaryLower:              "lower",
	UnaryCharLength:         "char_length",
	UnaryCastStringToInt64:  "cast_string_to_int64",
	UnaryCastInt64ToString:  "cast_int64_to_string",
}

func (f UnaryFunc) String() string { return nameOrIndex(unaryFuncNames[:], int(f), "unary_func") }

// ParseUnaryFunc resolves a snake_case discriminant to a UnaryFunc.
func ParseUnaryFunc(name string) (UnaryFunc, bool) {
	i, ok := indexOf(unaryFuncNames[:], name)
	return UnaryFunc(i), ok
}

// BinaryFunc names a function of two arguments.
type BinaryFunc int

const (
	BinaryEq BinaryFunc = iota
	BinaryNotEq
	BinaryLt
	BinaryLte
	BinaryGt
	BinaryGte
	BinaryAnd
	BinaryOr
	BinaryAddInt32
	BinaryAddInt64
	BinaryAddFloat64
	BinarySubInt32
	BinarySubInt64
	BinarySubFloat64
	BinaryMulInt32
	BinaryMulInt64
	BinaryMulFloat64
	BinaryDivInt64
	BinaryDivFloat64
	BinaryModInt64
	BinaryTextConcat
)

var binaryFuncNames = [...]string{
	BinaryEq:         "eq",
	BinaryNotEq:      "not_eq",
	BinaryLt:         "lt",
	BinaryLte:        "lte",
	BinaryGt:         "gt",
	BinaryGte:        "gte",
	BinaryAnd:        "and",
	BinaryOr:         "or",
	BinaryAddInt32:   "add_int32",
	BinaryAddInt64:   "add_int64",
	BinaryAddFloat64: "add_float64",
	BinarySubInt32:   "sub_int32",
	BinarySubInt64:   "sub_int64",
	BinarySubFloat64: "sub_float64",
	BinaryMulInt32:   "mul_int32",
	BinaryMulInt64:   "mul_int64",
	BinaryMulFloat64: "mul_float64",
	BinaryDivInt64:   "div_int64",
	BinaryDivFloat64: "div_float64",
	BinaryModInt64:   "mod_int64",
	BinaryTextConcat: "text_concat",
}

func (f BinaryFunc) String() string { return nameOrIndex(binaryFuncNames[:], int(f), "binary_func") }

// ParseBinaryFunc resolves a snake_case discriminant to a BinaryFunc.
func ParseBinaryFunc(name string) (BinaryFunc, bool) {
	i, ok := indexOf(binaryFuncNames[:], name)
	return BinaryFunc(i), ok
}

// VariadicFunc names a function of an arbitrary number of arguments.
type VariadicFunc int

const (
	VariadicCoalesce VariadicFunc = iota
	VariadicTextConcat
	VariadicAnd
	VariadicOr
)

var variadicFuncNames = [...]string{
	VariadicCoalesce:   "coalesce",
	VariadicTextConcat: "text_concat",
	VariadicAnd:        "and",
	VariadicOr:         "or",
}

func (f VariadicFunc) String() string {
	return nameOrIndex(variadicFuncNames[:], int(f), "variadic_func")
}

// ParseVariadicFunc resolves a snake_case discriminant to a VariadicFunc.
func ParseVariadicFunc(name string) (VariadicFunc, bool) {
	i, ok := indexOf(variadicFuncNames[:], name)
	return VariadicFunc(i), ok
}

// AggregateFunc names an aggregation kind (§4.1 Reduce, §3 AggregateExpr).
type AggregateFunc int

const (
	AggregateCount AggregateFunc = iota
	AggregateSumInt32
	AggregateSumInt64
	AggregateSumFloat64
	AggregateMinInt32
	AggregateMinInt64
	AggregateMinFloat64
	AggregateMaxInt32
	AggregateMaxInt64
	AggregateMaxFloat64
	AggregateAny
	AggregateAll
)

var aggregateFuncNames = [...]string{
	AggregateCount:       "count",
	AggregateSumInt32:    "sum_int32",
	AggregateSumInt64:    "sum_int64",
	AggregateSumFloat64:  "sum_float64",
	AggregateMinInt32:    "min_int32",
	AggregateMinInt64:    "min_int64",
	AggregateMinFloat64:  "min_float64",
	AggregateMaxInt32:    "max_int32",
	AggregateMaxInt64:    "max_int64",
	AggregateMaxFloat64:  "max_float64",
	AggregateAny:         "any",
	AggregateAll:         "all",
}

func (f AggregateFunc) String() string {
	return nameOrIndex(aggregateFuncNames[:], int(f), "aggregate_func")
}

// ParseAggregateFunc resolves a snake_case discriminant to an AggregateFunc.
func ParseAggregateFunc(name string) (AggregateFunc, bool) {
	i, ok := indexOf(aggregateFuncNames[:], name)
	return AggregateFunc(i), ok
}

func nameOrIndex(names []string, i int, label string) string {
	if i < 0 || i >= len(names) || names[i] == "" {
		return fmt.Sprintf("%s(%d)", label, i)
	}
	return names[i]
}

func indexOf(names []string, name string) (int, bool) {
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}
