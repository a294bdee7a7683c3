package plan

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/streamkit-io/relexpr/expr"
	"github.com/streamkit-io/relexpr/repr"
)

// Hash returns a structural hash of r suitable as a memoization / plan-cache
// key (spec.md §1b: "recursively composable with structural equality and
// hashing to support memoization and plan-cache lookup"). Two RelationExpr
// values that are structurally equal always hash equal; the converse need
// not hold. internal/plancache uses this as its Badger key.
func (r RelationExpr) Hash() uint64 {
	h := fnv.New64a()
	r.writeHash(h)
	return h.Sum64()
}

type hashWriter interface {
	Write([]byte) (int, error)
}

func hashUint(h hashWriter, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

func hashString(h hashWriter, s string) {
	hashUint(h, uint64(len(s)))
	h.Write([]byte(s))
}

func hashInts(h hashWriter, is []int) {
	hashUint(h, uint64(len(is)))
	for _, i := range is {
		hashUint(h, uint64(i))
	}
}

func (r RelationExpr) writeHash(h hashWriter) {
	hashUint(h, uint64(r.Kind))
	switch r.Kind {
	case KindConstant:
		hashUint(h, uint64(len(r.Rows)))
		for _, row := range r.Rows {
			for _, d := range row {
				hashString(h, d.String())
			}
		}
		hashRelationType(h, r.RelType)
	case KindGet:
		hashString(h, r.GetName)
		hashRelationType(h, r.GetType)
	case KindLet:
		hashString(h, r.LetName)
		r.LetValue.writeHash(h)
		r.LetBody.writeHash(h)
	case KindProject:
		r.ProjectInput.writeHash(h)
		hashInts(h, r.ProjectOutputs)
	case KindMap:
		r.MapInput.writeHash(h)
		hashUint(h, uint64(len(r.MapScalars)))
		for _, s := range r.MapScalars {
			hashScalarExpr(h, s.Expr)
			hashColumnType(h, s.Type)
		}
	case KindFilter:
		r.FilterInput.writeHash(h)
		hashUint(h, uint64(len(r.FilterPredicates)))
		for _, p := range r.FilterPredicates {
			hashScalarExpr(h, p)
		}
	case KindJoin:
		hashUint(h, uint64(len(r.JoinInputs)))
		for _, in := range r.JoinInputs {
			in.writeHash(h)
		}
		hashUint(h, uint64(len(r.JoinVariables)))
		for _, class := range r.JoinVariables {
			hashUint(h, uint64(len(class)))
			for _, v := range class {
				hashUint(h, uint64(v.Input))
				hashUint(h, uint64(v.Column))
			}
		}
	case KindReduce:
		r.ReduceInput.writeHash(h)
		hashInts(h, r.ReduceGroupKey)
		hashUint(h, uint64(len(r.ReduceAggregates)))
		for _, a := range r.ReduceAggregates {
			hashUint(h, uint64(a.Expr.Func))
			hashScalarExpr(h, a.Expr.Expr)
			if a.Expr.Distinct {
				hashUint(h, 1)
			} else {
				hashUint(h, 0)
			}
			hashColumnType(h, a.Type)
		}
	case KindTopK:
		r.TopKInput.writeHash(h)
		hashInts(h, r.TopKGroupKey)
		hashInts(h, r.TopKOrderKey)
		hashUint(h, uint64(r.TopKLimit))
	case KindOrDefault:
		r.OrDefaultInput.writeHash(h)
		hashUint(h, uint64(len(r.OrDefaultDefault)))
		for _, d := range r.OrDefaultDefault {
			hashString(h, d.String())
		}
	case KindNegate:
		r.NegateInput.writeHash(h)
	case KindDistinct:
		r.DistinctInput.writeHash(h)
	case KindUnion:
		r.UnionLeft.writeHash(h)
		r.UnionRight.writeHash(h)
	}
}

func hashRelationType(h hashWriter, t repr.RelationType) {
	hashUint(h, uint64(len(t.ColumnTypes)))
	for _, ct := range t.ColumnTypes {
		hashColumnType(h, ct)
	}
}

func hashColumnType(h hashWriter, ct repr.ColumnType) {
	hashString(h, ct.Name)
	if ct.HasName {
		hashUint(h, 1)
	} else {
		hashUint(h, 0)
	}
	hashUint(h, uint64(ct.ScalarType))
	if ct.Nullable {
		hashUint(h, 1)
	} else {
		hashUint(h, 0)
	}
}

func hashScalarExpr(h hashWriter, e expr.ScalarExpr) {
	hashUint(h, uint64(e.Kind))
	switch e.Kind {
	case expr.KindColumn:
		hashUint(h, uint64(e.ColumnIndex))
	case expr.KindLiteral:
		hashString(h, e.Literal.String())
	case expr.KindCallUnary:
		hashUint(h, uint64(e.UnaryFunc))
		hashScalarExpr(h, *e.Unary)
	case expr.KindCallBinary:
		hashUint(h, uint64(e.BinaryFunc))
		hashScalarExpr(h, *e.Binary1)
		hashScalarExpr(h, *e.Binary2)
	case expr.KindCallVariadic:
		hashUint(h, uint64(e.VariadicFunc))
		hashUint(h, uint64(len(e.Variadic)))
		for _, sub := range e.Variadic {
			hashScalarExpr(h, sub)
		}
	case expr.KindIf:
		hashScalarExpr(h, *e.IfCond)
		hashScalarExpr(h, *e.IfThen)
		hashScalarExpr(h, *e.IfElse)
	}
}
