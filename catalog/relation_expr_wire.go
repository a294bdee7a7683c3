package catalog

import (
	"encoding/json"

	"github.com/streamkit-io/relexpr/expr"
	"github.com/streamkit-io/relexpr/plan"
	"github.com/streamkit-io/relexpr/repr"
)

type joinVarWire struct {
	Input  int `json:"input"`
	Column int `json:"column"`
}

func encodeRelationExpr(r plan.RelationExpr) (json.RawMessage, error) {
	switch r.Kind {
	case plan.KindConstant:
		rows := make([][]json.RawMessage, len(r.Rows))
		for i, row := range r.Rows {
			encodedRow := make([]json.RawMessage, len(row))
			for j, d := range row {
				encoded, err := encodeDatum(d)
				if err != nil {
					return nil, err
				}
				encodedRow[j] = encoded
			}
			rows[i] = encodedRow
		}
		return encodeTag("constant", struct {
			Rows [][]json.RawMessage `json:"rows"`
			Typ  relationTypeWire     `json:"typ"`
		}{rows, encodeRelationType(r.RelType)})

	case plan.KindGet:
		return encodeTag("get", struct {
			Name string           `json:"name"`
			Typ  relationTypeWire `json:"typ"`
		}{r.GetName, encodeRelationType(r.GetType)})

	case plan.KindLet:
		value, err := encodeRelationExpr(*r.LetValue)
		if err != nil {
			return nil, err
		}
		body, err := encodeRelationExpr(*r.LetBody)
		if err != nil {
			return nil, err
		}
		return encodeTag("let", struct {
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
			Body  json.RawMessage `json:"body"`
		}{r.LetName, value, body})

	case plan.KindProject:
		input, err := encodeRelationExpr(*r.ProjectInput)
		if err != nil {
			return nil, err
		}
		return encodeTag("project", struct {
			Input   json.RawMessage `json:"input"`
			Outputs []int           `json:"outputs"`
		}{input, r.ProjectOutputs})

	case plan.KindMap:
		input, err := encodeRelationExpr(*r.MapInput)
		if err != nil {
			return nil, err
		}
		scalars := make([]struct {
			Expr json.RawMessage `json:"expr"`
			Type columnTypeWire  `json:"type"`
		}, len(r.MapScalars))
		for i, s := range r.MapScalars {
			e, err := encodeScalarExpr(s.Expr)
			if err != nil {
				return nil, err
			}
			scalars[i].Expr = e
			scalars[i].Type = encodeColumnType(s.Type)
		}
		return encodeTag("map", struct {
			Input   json.RawMessage `json:"input"`
			Scalars []struct {
				Expr json.RawMessage `json:"expr"`
				Type columnTypeWire  `json:"type"`
			} `json:"scalars"`
		}{input, scalars})

	case plan.KindFilter:
		input, err := encodeRelationExpr(*r.FilterInput)
		if err != nil {
			return nil, err
		}
		preds := make([]json.RawMessage, len(r.FilterPredicates))
		for i, p := range r.FilterPredicates {
			encoded, err := encodeScalarExpr(p)
			if err != nil {
				return nil, err
			}
			preds[i] = encoded
		}
		return encodeTag("filter", struct {
			Input      json.RawMessage   `json:"input"`
			Predicates []json.RawMessage `json:"predicates"`
		}{input, preds})

	case plan.KindJoin:
		inputs := make([]json.RawMessage, len(r.JoinInputs))
		for i, in := range r.JoinInputs {
			encoded, err := encodeRelationExpr(in)
			if err != nil {
				return nil, err
			}
			inputs[i] = encoded
		}
		variables := make([][]joinVarWire, len(r.JoinVariables))
		for i, class := range r.JoinVariables {
			vars := make([]joinVarWire, len(class))
			for j, v := range class {
				vars[j] = joinVarWire{Input: v.Input, Column: v.Column}
			}
			variables[i] = vars
		}
		return encodeTag("join", struct {
			Inputs    []json.RawMessage `json:"inputs"`
			Variables [][]joinVarWire   `json:"variables"`
		}{inputs, variables})

	case plan.KindReduce:
		input, err := encodeRelationExpr(*r.ReduceInput)
		if err != nil {
			return nil, err
		}
		aggregates := make([]struct {
			Expr json.RawMessage `json:"expr"`
			Type columnTypeWire  `json:"type"`
		}, len(r.ReduceAggregates))
		for i, a := range r.ReduceAggregates {
			e, err := encodeAggregateExpr(a.Expr)
			if err != nil {
				return nil, err
			}
			aggregates[i].Expr = e
			aggregates[i].Type = encodeColumnType(a.Type)
		}
		return encodeTag("reduce", struct {
			Input     json.RawMessage `json:"input"`
			GroupKey  []int           `json:"group_key"`
			Aggregates []struct {
				Expr json.RawMessage `json:"expr"`
				Type columnTypeWire  `json:"type"`
			} `json:"aggregates"`
		}{input, r.ReduceGroupKey, aggregates})

	case plan.KindTopK:
		input, err := encodeRelationExpr(*r.TopKInput)
		if err != nil {
			return nil, err
		}
		return encodeTag("top_k", struct {
			Input    json.RawMessage `json:"input"`
			GroupKey []int           `json:"group_key"`
			OrderKey []int           `json:"order_key"`
			Limit    int             `json:"limit"`
		}{input, r.TopKGroupKey, r.TopKOrderKey, r.TopKLimit})

	case plan.KindOrDefault:
		input, err := encodeRelationExpr(*r.OrDefaultInput)
		if err != nil {
			return nil, err
		}
		def := make([]json.RawMessage, len(r.OrDefaultDefault))
		for i, d := range r.OrDefaultDefault {
			encoded, err := encodeDatum(d)
			if err != nil {
				return nil, err
			}
			def[i] = encoded
		}
		return encodeTag("or_default", struct {
			Input   json.RawMessage   `json:"input"`
			Default []json.RawMessage `json:"default"`
		}{input, def})

	case plan.KindNegate:
		input, err := encodeRelationExpr(*r.NegateInput)
		if err != nil {
			return nil, err
		}
		return encodeTag("negate", struct {
			Input json.RawMessage `json:"input"`
		}{input})

	case plan.KindDistinct:
		input, err := encodeRelationExpr(*r.DistinctInput)
		if err != nil {
			return nil, err
		}
		return encodeTag("distinct", struct {
			Input json.RawMessage `json:"input"`
		}{input})

	case plan.KindUnion:
		left, err := encodeRelationExpr(*r.UnionLeft)
		if err != nil {
			return nil, err
		}
		right, err := encodeRelationExpr(*r.UnionRight)
		if err != nil {
			return nil, err
		}
		return encodeTag("union", struct {
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}{left, right})
	}
	return nil, &UnknownVariantError{Discriminant: r.Kind.String()}
}

func decodeRelationExpr(raw json.RawMessage) (plan.RelationExpr, error) {
	tag, payload, err := decodeTag(raw)
	if err != nil {
		return plan.RelationExpr{}, err
	}

	switch tag {
	case "constant":
		var w struct {
			Rows [][]json.RawMessage `json:"rows"`
			Typ  relationTypeWire     `json:"typ"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		typ, err := decodeRelationType(w.Typ)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		rows := make([]plan.Row, len(w.Rows))
		for i, row := range w.Rows {
			decodedRow := make(plan.Row, len(row))
			for j, raw := range row {
				d, err := decodeDatum(raw)
				if err != nil {
					return plan.RelationExpr{}, err
				}
				decodedRow[j] = d
			}
			rows[i] = decodedRow
		}
		return plan.Constant(rows, typ), nil

	case "get":
		var w struct {
			Name string           `json:"name"`
			Typ  relationTypeWire `json:"typ"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		typ, err := decodeRelationType(w.Typ)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		return plan.Get(w.Name, typ), nil

	case "let":
		var w struct {
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
			Body  json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		value, err := decodeRelationExpr(w.Value)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		body, err := decodeRelationExpr(w.Body)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		return plan.Let(w.Name, value, body), nil

	case "project":
		var w struct {
			Input   json.RawMessage `json:"input"`
			Outputs []int           `json:"outputs"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		input, err := decodeRelationExpr(w.Input)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		return input.Project(w.Outputs), nil

	case "map":
		var w struct {
			Input   json.RawMessage `json:"input"`
			Scalars []struct {
				Expr json.RawMessage `json:"expr"`
				Type columnTypeWire  `json:"type"`
			} `json:"scalars"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		input, err := decodeRelationExpr(w.Input)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		scalars := make([]plan.MapScalar, len(w.Scalars))
		for i, sw := range w.Scalars {
			e, err := decodeScalarExpr(sw.Expr)
			if err != nil {
				return plan.RelationExpr{}, err
			}
			ct, err := decodeColumnType(sw.Type)
			if err != nil {
				return plan.RelationExpr{}, err
			}
			scalars[i] = plan.MapScalar{Expr: e, Type: ct}
		}
		return input.Map(scalars), nil

	case "filter":
		var w struct {
			Input      json.RawMessage   `json:"input"`
			Predicates []json.RawMessage `json:"predicates"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		input, err := decodeRelationExpr(w.Input)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		preds := make([]expr.ScalarExpr, len(w.Predicates))
		for i, raw := range w.Predicates {
			p, err := decodeScalarExpr(raw)
			if err != nil {
				return plan.RelationExpr{}, err
			}
			preds[i] = p
		}
		return input.Filter(preds), nil

	case "join":
		var w struct {
			Inputs    []json.RawMessage `json:"inputs"`
			Variables [][]joinVarWire   `json:"variables"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		inputs := make([]plan.RelationExpr, len(w.Inputs))
		for i, raw := range w.Inputs {
			in, err := decodeRelationExpr(raw)
			if err != nil {
				return plan.RelationExpr{}, err
			}
			inputs[i] = in
		}
		variables := make([][]plan.JoinVar, len(w.Variables))
		for i, class := range w.Variables {
			vars := make([]plan.JoinVar, len(class))
			for j, v := range class {
				vars[j] = plan.JoinVar{Input: v.Input, Column: v.Column}
			}
			variables[i] = vars
		}
		return plan.Join(inputs, variables), nil

	case "reduce":
		var w struct {
			Input      json.RawMessage `json:"input"`
			GroupKey   []int           `json:"group_key"`
			Aggregates []struct {
				Expr json.RawMessage `json:"expr"`
				Type columnTypeWire  `json:"type"`
			} `json:"aggregates"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		input, err := decodeRelationExpr(w.Input)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		aggregates := make([]plan.ReduceAggregate, len(w.Aggregates))
		for i, aw := range w.Aggregates {
			a, err := decodeAggregateExpr(aw.Expr)
			if err != nil {
				return plan.RelationExpr{}, err
			}
			ct, err := decodeColumnType(aw.Type)
			if err != nil {
				return plan.RelationExpr{}, err
			}
			aggregates[i] = plan.ReduceAggregate{Expr: a, Type: ct}
		}
		return input.Reduce(w.GroupKey, aggregates), nil

	case "top_k":
		var w struct {
			Input    json.RawMessage `json:"input"`
			GroupKey []int           `json:"group_key"`
			OrderKey []int           `json:"order_key"`
			Limit    int             `json:"limit"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		input, err := decodeRelationExpr(w.Input)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		return input.TopK(w.GroupKey, w.OrderKey, w.Limit), nil

	case "or_default":
		var w struct {
			Input   json.RawMessage   `json:"input"`
			Default []json.RawMessage `json:"default"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		input, err := decodeRelationExpr(w.Input)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		def := make([]repr.Datum, len(w.Default))
		for i, raw := range w.Default {
			d, err := decodeDatum(raw)
			if err != nil {
				return plan.RelationExpr{}, err
			}
			def[i] = d
		}
		return input.OrDefault(def), nil

	case "negate":
		var w struct {
			Input json.RawMessage `json:"input"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		input, err := decodeRelationExpr(w.Input)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		return input.Negate(), nil

	case "distinct":
		var w struct {
			Input json.RawMessage `json:"input"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		input, err := decodeRelationExpr(w.Input)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		return input.Distinct(), nil

	case "union":
		var w struct {
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return plan.RelationExpr{}, &MalformedError{Input: string(payload), Err: err}
		}
		left, err := decodeRelationExpr(w.Left)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		right, err := decodeRelationExpr(w.Right)
		if err != nil {
			return plan.RelationExpr{}, err
		}
		return plan.Union(left, right), nil
	}
	return plan.RelationExpr{}, &UnknownVariantError{Discriminant: tag}
}
