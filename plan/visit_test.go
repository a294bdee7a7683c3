package plan

import (
	"reflect"
	"testing"

	"github.com/streamkit-io/relexpr/repr"
)

// Scenario 6 from spec.md §8.
func TestUsesFollowsPreOrderTraversal(t *testing.T) {
	typ := repr.NewRelationType(repr.Column(repr.ScalarTypeInt32, false))
	orders := Get("orders", typ)
	c2018 := Get("c2018", typ)
	c2019 := Get("c2019", typ)

	view := Join([]RelationExpr{orders, Union(c2018, c2019).Distinct()},
		[][]JoinVar{{{Input: 0, Column: 0}, {Input: 1, Column: 0}}}).
		Project([]int{0})

	got := view.Uses()
	want := []string{"orders", "c2018", "c2019"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Uses() = %v, want %v", got, want)
	}
}

func TestUsesIncludesDuplicatesAndLetBoundNames(t *testing.T) {
	typ := repr.NewRelationType(repr.Column(repr.ScalarTypeInt32, false))
	value := Get("src", typ)
	body := Union(Get("x", typ), Get("x", typ))
	l := Let("x", value, body)

	got := l.Uses()
	want := []string{"src", "x", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Uses() = %v, want %v (Let-bound names are not filtered)", got, want)
	}
}

func TestRewriteProducesNewTree(t *testing.T) {
	typ := repr.NewRelationType(repr.Column(repr.ScalarTypeInt32, false))
	orig := Get("a", typ).Distinct()

	renamed := orig.Rewrite(func(e RelationExpr) RelationExpr {
		if e.Kind == KindGet && e.GetName == "a" {
			e.GetName = "b"
		}
		return e
	})

	if orig.Uses()[0] != "a" {
		t.Error("Rewrite must not mutate the original tree")
	}
	if renamed.Uses()[0] != "b" {
		t.Error("Rewrite should have applied the replacement")
	}
}

func TestHashEqualForStructurallyEqualTrees(t *testing.T) {
	typ := repr.NewRelationType(repr.Column(repr.ScalarTypeInt32, false))
	a := Get("x", typ).Distinct()
	b := Get("x", typ).Distinct()
	if a.Hash() != b.Hash() {
		t.Error("structurally equal trees should hash equal")
	}

	c := Get("y", typ).Distinct()
	if a.Hash() == c.Hash() {
		t.Error("structurally different trees should (almost certainly) hash differently")
	}
}
