package plan

// Visit applies fn to r and then, in pre-order, to every RelationExpr
// subterm. This is the single primitive used by every analysis over the
// algebra (spec.md §4.1 "Traversal"); Uses is expressed purely in terms
// of it.
func (r RelationExpr) Visit(fn func(RelationExpr)) {
	fn(r)
	switch r.Kind {
	case KindLet:
		r.LetValue.Visit(fn)
		r.LetBody.Visit(fn)
	case KindProject:
		r.ProjectInput.Visit(fn)
	case KindMap:
		r.MapInput.Visit(fn)
	case KindFilter:
		r.FilterInput.Visit(fn)
	case KindJoin:
		for _, in := range r.JoinInputs {
			in.Visit(fn)
		}
	case KindReduce:
		r.ReduceInput.Visit(fn)
	case KindTopK:
		r.TopKInput.Visit(fn)
	case KindOrDefault:
		r.OrDefaultInput.Visit(fn)
	case KindNegate:
		r.NegateInput.Visit(fn)
	case KindDistinct:
		r.DistinctInput.Visit(fn)
	case KindUnion:
		r.UnionLeft.Visit(fn)
		r.UnionRight.Visit(fn)
	}
	// KindConstant and KindGet are leaves: no subterms to descend into.
}

// Uses collects the names of every Get{name} appearing in r, in traversal
// order, including duplicates — callers deduplicate if they wish.
// Let-bound names are not filtered out; free-variable analysis, if
// needed, is the caller's job (spec.md §4.1 "Dependency extraction").
func (r RelationExpr) Uses() []string {
	var out []string
	r.Visit(func(e RelationExpr) {
		if e.Kind == KindGet {
			out = append(out, e.GetName)
		}
	})
	return out
}

// Rewrite rebuilds the tree, replacing each subterm with fn(subterm) in
// post-order (children rewritten before their parent sees the result).
// Rewrites never mutate r; they return a new tree, per spec.md §5's "no
// interior mutability" and §9's "rewrites return new trees."
func (r RelationExpr) Rewrite(fn func(RelationExpr) RelationExpr) RelationExpr {
	switch r.Kind {
	case KindLet:
		value := r.LetValue.Rewrite(fn)
		body := r.LetBody.Rewrite(fn)
		return fn(RelationExpr{Kind: KindLet, LetName: r.LetName, LetValue: &value, LetBody: &body})
	case KindProject:
		input := r.ProjectInput.Rewrite(fn)
		return fn(RelationExpr{Kind: KindProject, ProjectInput: &input, ProjectOutputs: r.ProjectOutputs})
	case KindMap:
		input := r.MapInput.Rewrite(fn)
		return fn(RelationExpr{Kind: KindMap, MapInput: &input, MapScalars: r.MapScalars})
	case KindFilter:
		input := r.FilterInput.Rewrite(fn)
		return fn(RelationExpr{Kind: KindFilter, FilterInput: &input, FilterPredicates: r.FilterPredicates})
	case KindJoin:
		inputs := make([]RelationExpr, len(r.JoinInputs))
		for i, in := range r.JoinInputs {
			inputs[i] = in.Rewrite(fn)
		}
		return fn(RelationExpr{Kind: KindJoin, JoinInputs: inputs, JoinVariables: r.JoinVariables})
	case KindReduce:
		input := r.ReduceInput.Rewrite(fn)
		return fn(RelationExpr{Kind: KindReduce, ReduceInput: &input, ReduceGroupKey: r.ReduceGroupKey, ReduceAggregates: r.ReduceAggregates})
	case KindTopK:
		input := r.TopKInput.Rewrite(fn)
		return fn(RelationExpr{Kind: KindTopK, TopKInput: &input, TopKGroupKey: r.TopKGroupKey, TopKOrderKey: r.TopKOrderKey, TopKLimit: r.TopKLimit})
	case KindOrDefault:
		input := r.OrDefaultInput.Rewrite(fn)
		return fn(RelationExpr{Kind: KindOrDefault, OrDefaultInput: &input, OrDefaultDefault: r.OrDefaultDefault})
	case KindNegate:
		input := r.NegateInput.Rewrite(fn)
		return fn(RelationExpr{Kind: KindNegate, NegateInput: &input})
	case KindDistinct:
		input := r.DistinctInput.Rewrite(fn)
		return fn(RelationExpr{Kind: KindDistinct, DistinctInput: &input})
	case KindUnion:
		left := r.UnionLeft.Rewrite(fn)
		right := r.UnionRight.Rewrite(fn)
		return fn(RelationExpr{Kind: KindUnion, UnionLeft: &left, UnionRight: &right})
	default:
		// KindConstant, KindGet: leaves, nothing to rewrite below them.
		return fn(r)
	}
}
