// Package render pretty-prints relation expression trees and catalog
// listings for the dataflowctl CLI, adapted from the teacher's
// annotations.RelationRenderer (color-coded relation summaries) and
// executor.TableFormatter (tablewriter-backed tabular output).
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/streamkit-io/relexpr/dataflow"
	"github.com/streamkit-io/relexpr/plan"
	"github.com/streamkit-io/relexpr/repr"
)

// ExprRenderer pretty-prints a plan.RelationExpr tree as indented,
// optionally color-coded lines, one operator per line.
type ExprRenderer struct {
	UseColor bool
}

// NewExprRenderer builds an ExprRenderer.
func NewExprRenderer(useColor bool) *ExprRenderer {
	return &ExprRenderer{UseColor: useColor}
}

// RenderRelationExpr renders e as a multi-line, indented tree.
func (r *ExprRenderer) RenderRelationExpr(e plan.RelationExpr) string {
	var b strings.Builder
	r.renderNode(&b, e, 0)
	return b.String()
}

func (r *ExprRenderer) renderNode(b *strings.Builder, e plan.RelationExpr, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(r.headline(e))
	b.WriteByte('\n')

	switch e.Kind {
	case plan.KindLet:
		r.renderNode(b, *e.LetValue, depth+1)
		r.renderNode(b, *e.LetBody, depth+1)
	case plan.KindProject:
		r.renderNode(b, *e.ProjectInput, depth+1)
	case plan.KindMap:
		r.renderNode(b, *e.MapInput, depth+1)
	case plan.KindFilter:
		r.renderNode(b, *e.FilterInput, depth+1)
	case plan.KindJoin:
		for _, in := range e.JoinInputs {
			r.renderNode(b, in, depth+1)
		}
	case plan.KindReduce:
		r.renderNode(b, *e.ReduceInput, depth+1)
	case plan.KindTopK:
		r.renderNode(b, *e.TopKInput, depth+1)
	case plan.KindOrDefault:
		r.renderNode(b, *e.OrDefaultInput, depth+1)
	case plan.KindNegate:
		r.renderNode(b, *e.NegateInput, depth+1)
	case plan.KindDistinct:
		r.renderNode(b, *e.DistinctInput, depth+1)
	case plan.KindUnion:
		r.renderNode(b, *e.UnionLeft, depth+1)
		r.renderNode(b, *e.UnionRight, depth+1)
	}
}

func (r *ExprRenderer) headline(e plan.RelationExpr) string {
	kind := e.Kind.String()
	arity := e.Typ().Arity()
	detail := r.detail(e)

	if !r.UseColor {
		if detail == "" {
			return fmt.Sprintf("%s [arity %d]", kind, arity)
		}
		return fmt.Sprintf("%s(%s) [arity %d]", kind, detail, arity)
	}

	kindStr := color.BlueString(kind)
	arityStr := r.colorizeArity(arity)
	if detail == "" {
		return fmt.Sprintf("%s %s", kindStr, arityStr)
	}
	return fmt.Sprintf("%s(%s) %s", kindStr, color.CyanString(detail), arityStr)
}

func (r *ExprRenderer) colorizeArity(arity int) string {
	s := fmt.Sprintf("[arity %d]", arity)
	switch {
	case arity == 0:
		return color.RedString(s)
	case arity <= 4:
		return color.GreenString(s)
	default:
		return color.YellowString(s)
	}
}

func (r *ExprRenderer) detail(e plan.RelationExpr) string {
	switch e.Kind {
	case plan.KindConstant:
		return fmt.Sprintf("%d rows", len(e.Rows))
	case plan.KindGet:
		return e.GetName
	case plan.KindLet:
		return e.LetName
	case plan.KindProject:
		return fmt.Sprintf("%v", e.ProjectOutputs)
	case plan.KindMap:
		return fmt.Sprintf("%d scalars", len(e.MapScalars))
	case plan.KindFilter:
		return fmt.Sprintf("%d predicates", len(e.FilterPredicates))
	case plan.KindJoin:
		return fmt.Sprintf("%d inputs, %d equivalence classes", len(e.JoinInputs), len(e.JoinVariables))
	case plan.KindReduce:
		return fmt.Sprintf("group_key=%v, %d aggregates", e.ReduceGroupKey, len(e.ReduceAggregates))
	case plan.KindTopK:
		return fmt.Sprintf("group_key=%v, order_key=%v, limit=%d", e.TopKGroupKey, e.TopKOrderKey, e.TopKLimit)
	case plan.KindOrDefault:
		return fmt.Sprintf("default=%d cols", len(e.OrDefaultDefault))
	}
	return ""
}

// CatalogTable renders a catalog's entries as a markdown table: name,
// kind, arity, and the upstream names each entry depends on.
func CatalogTable(entries []dataflow.Dataflow) string {
	out := &strings.Builder{}

	alignment := make([]tw.Align, 4)
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}
	table := tablewriter.NewTable(out,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"Name", "Kind", "Arity", "Uses"})

	for _, d := range entries {
		table.Append([]string{
			d.Name(),
			d.Kind.String(),
			fmt.Sprintf("%d", d.Typ().Arity()),
			strings.Join(d.Uses(), ", "),
		})
	}

	table.Render()
	return out.String()
}

// RelationTypeString renders a repr.RelationType as "(name scalar_type
// [NULL|NOT NULL], ...)", used by dataflowctl's describe subcommand.
func RelationTypeString(t repr.RelationType) string {
	parts := make([]string, len(t.ColumnTypes))
	for i, ct := range t.ColumnTypes {
		name := ct.Name
		if !ct.HasName {
			name = fmt.Sprintf("#%d", i)
		}
		nullability := "NOT NULL"
		if ct.Nullable {
			nullability = "NULL"
		}
		parts[i] = fmt.Sprintf("%s %s %s", name, ct.ScalarType, nullability)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
