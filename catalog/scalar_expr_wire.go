package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/streamkit-io/relexpr/expr"
)

func encodeScalarExpr(e expr.ScalarExpr) (json.RawMessage, error) {
	switch e.Kind {
	case expr.KindColumn:
		return encodeTag("column", e.ColumnIndex)

	case expr.KindLiteral:
		lit, err := encodeDatum(e.Literal)
		if err != nil {
			return nil, err
		}
		return encodeTag("literal", lit)

	case expr.KindCallUnary:
		sub, err := encodeScalarExpr(*e.Unary)
		if err != nil {
			return nil, err
		}
		return encodeTag("call_unary", struct {
			Func string          `json:"func"`
			Expr json.RawMessage `json:"expr"`
		}{e.UnaryFunc.String(), sub})

	case expr.KindCallBinary:
		sub1, err := encodeScalarExpr(*e.Binary1)
		if err != nil {
			return nil, err
		}
		sub2, err := encodeScalarExpr(*e.Binary2)
		if err != nil {
			return nil, err
		}
		return encodeTag("call_binary", struct {
			Func  string          `json:"func"`
			Expr1 json.RawMessage `json:"expr1"`
			Expr2 json.RawMessage `json:"expr2"`
		}{e.BinaryFunc.String(), sub1, sub2})

	case expr.KindCallVariadic:
		subs := make([]json.RawMessage, len(e.Variadic))
		for i, sub := range e.Variadic {
			encoded, err := encodeScalarExpr(sub)
			if err != nil {
				return nil, err
			}
			subs[i] = encoded
		}
		return encodeTag("call_variadic", struct {
			Func  string            `json:"func"`
			Exprs []json.RawMessage `json:"exprs"`
		}{e.VariadicFunc.String(), subs})

	case expr.KindIf:
		cond, err := encodeScalarExpr(*e.IfCond)
		if err != nil {
			return nil, err
		}
		then, err := encodeScalarExpr(*e.IfThen)
		if err != nil {
			return nil, err
		}
		els, err := encodeScalarExpr(*e.IfElse)
		if err != nil {
			return nil, err
		}
		return encodeTag("if", struct {
			Cond json.RawMessage `json:"cond"`
			Then json.RawMessage `json:"then"`
			Els  json.RawMessage `json:"els"`
		}{cond, then, els})
	}
	return nil, &UnknownVariantError{Discriminant: fmt.Sprintf("scalar_expr(%d)", int(e.Kind))}
}

func decodeScalarExpr(raw json.RawMessage) (expr.ScalarExpr, error) {
	tag, payload, err := decodeTag(raw)
	if err != nil {
		return expr.ScalarExpr{}, err
	}
	switch tag {
	case "column":
		var i int
		if err := json.Unmarshal(payload, &i); err != nil {
			return expr.ScalarExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		return expr.Column(i), nil

	case "literal":
		d, err := decodeDatum(payload)
		if err != nil {
			return expr.ScalarExpr{}, err
		}
		return expr.Literal(d), nil

	case "call_unary":
		var w struct {
			Func string          `json:"func"`
			Expr json.RawMessage `json:"expr"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return expr.ScalarExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		fn, ok := expr.ParseUnaryFunc(w.Func)
		if !ok {
			return expr.ScalarExpr{}, &UnknownVariantError{Discriminant: w.Func}
		}
		sub, err := decodeScalarExpr(w.Expr)
		if err != nil {
			return expr.ScalarExpr{}, err
		}
		return expr.CallUnary(fn, sub), nil

	case "call_binary":
		var w struct {
			Func  string          `json:"func"`
			Expr1 json.RawMessage `json:"expr1"`
			Expr2 json.RawMessage `json:"expr2"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return expr.ScalarExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		fn, ok := expr.ParseBinaryFunc(w.Func)
		if !ok {
			return expr.ScalarExpr{}, &UnknownVariantError{Discriminant: w.Func}
		}
		e1, err := decodeScalarExpr(w.Expr1)
		if err != nil {
			return expr.ScalarExpr{}, err
		}
		e2, err := decodeScalarExpr(w.Expr2)
		if err != nil {
			return expr.ScalarExpr{}, err
		}
		return expr.CallBinary(fn, e1, e2), nil

	case "call_variadic":
		var w struct {
			Func  string            `json:"func"`
			Exprs []json.RawMessage `json:"exprs"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return expr.ScalarExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		fn, ok := expr.ParseVariadicFunc(w.Func)
		if !ok {
			return expr.ScalarExpr{}, &UnknownVariantError{Discriminant: w.Func}
		}
		subs := make([]expr.ScalarExpr, len(w.Exprs))
		for i, raw := range w.Exprs {
			sub, err := decodeScalarExpr(raw)
			if err != nil {
				return expr.ScalarExpr{}, err
			}
			subs[i] = sub
		}
		return expr.CallVariadic(fn, subs...), nil

	case "if":
		var w struct {
			Cond json.RawMessage `json:"cond"`
			Then json.RawMessage `json:"then"`
			Els  json.RawMessage `json:"els"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return expr.ScalarExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		cond, err := decodeScalarExpr(w.Cond)
		if err != nil {
			return expr.ScalarExpr{}, err
		}
		then, err := decodeScalarExpr(w.Then)
		if err != nil {
			return expr.ScalarExpr{}, err
		}
		els, err := decodeScalarExpr(w.Els)
		if err != nil {
			return expr.ScalarExpr{}, err
		}
		return expr.If(cond, then, els), nil
	}
	return expr.ScalarExpr{}, &UnknownVariantError{Discriminant: tag}
}

func encodeAggregateExpr(a expr.AggregateExpr) (json.RawMessage, error) {
	e, err := encodeScalarExpr(a.Expr)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Func     string          `json:"func"`
		Expr     json.RawMessage `json:"expr"`
		Distinct bool            `json:"distinct"`
	}{a.Func.String(), e, a.Distinct})
}

func decodeAggregateExpr(raw json.RawMessage) (expr.AggregateExpr, error) {
	var w struct {
		Func     string          `json:"func"`
		Expr     json.RawMessage `json:"expr"`
		Distinct bool            `json:"distinct"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return expr.AggregateExpr{}, &MalformedError{Input: string(raw), Err: err}
	}
	fn, ok := expr.ParseAggregateFunc(w.Func)
	if !ok {
		return expr.AggregateExpr{}, &UnknownVariantError{Discriminant: w.Func}
	}
	e, err := decodeScalarExpr(w.Expr)
	if err != nil {
		return expr.AggregateExpr{}, err
	}
	return expr.NewAggregateExpr(fn, e, w.Distinct), nil
}
