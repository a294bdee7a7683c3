package render

import (
	"strings"
	"testing"

	"github.com/streamkit-io/relexpr/dataflow"
	"github.com/streamkit-io/relexpr/plan"
	"github.com/streamkit-io/relexpr/repr"
)

func TestRenderRelationExprIncludesEveryOperatorLine(t *testing.T) {
	typ := repr.NewRelationType(repr.Column(repr.ScalarTypeInt32, false))
	input := plan.Constant([]plan.Row{{repr.Int32(1)}}, typ)
	tree := input.Distinct().Project([]int{0})

	out := NewExprRenderer(false).RenderRelationExpr(tree)
	for _, want := range []string{"constant", "distinct", "project"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRelationExprWithColorStillContainsKindNames(t *testing.T) {
	typ := repr.NewRelationType(repr.Column(repr.ScalarTypeInt32, false))
	input := plan.Constant([]plan.Row{{repr.Int32(1)}}, typ)

	out := NewExprRenderer(true).RenderRelationExpr(input)
	if out == "" {
		t.Fatal("expected non-empty rendered output")
	}
}

func TestCatalogTableListsEveryEntry(t *testing.T) {
	typ := repr.NewRelationType(repr.NamedColumn("id", repr.ScalarTypeInt32, false))
	source := dataflow.NewSource("orders", dataflow.LocalSourceConnector(), typ)
	view := dataflow.NewView("report", plan.Get("orders", typ), typ)

	out := CatalogTable([]dataflow.Dataflow{source, view})
	for _, want := range []string{"orders", "report", "source", "view"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog table missing %q:\n%s", want, out)
		}
	}
}
