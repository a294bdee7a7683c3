package dataflow

import (
	"fmt"

	"github.com/streamkit-io/relexpr/plan"
	"github.com/streamkit-io/relexpr/repr"
)

// Kind tags which variant of Dataflow is populated.
type Kind int

const (
	KindSource Kind = iota
	KindSink
	KindView
)

var kindNames = [...]string{
	KindSource: "source",
	KindSink:   "sink",
	KindView:   "view",
}

func (k Kind) String() string { return kindNames[k] }

// ParseKind resolves a snake_case discriminant to a Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Dataflow is a named vertex in the catalog graph: a Source, a Sink, or a
// View (spec.md §3). As with plan.RelationExpr, it is one struct tagged
// by Kind so the whole envelope stays a plain serializable value.
type Dataflow struct {
	Kind Kind

	// KindSource
	SourceName      string
	SourceConnector SourceConnector
	SourceType      repr.RelationType

	// KindSink
	SinkName      string
	SinkFromName  string
	SinkFromType  repr.RelationType
	SinkConnector SinkConnector

	// KindView
	ViewName         string
	ViewRelationExpr plan.RelationExpr
	ViewType         repr.RelationType
}

// NewSource builds a Source dataflow: an external ingress.
func NewSource(name string, connector SourceConnector, typ repr.RelationType) Dataflow {
	return Dataflow{Kind: KindSource, SourceName: name, SourceConnector: connector, SourceType: typ}
}

// NewSink builds a Sink dataflow bound to an upstream dataflow by name,
// carrying a snapshot of that upstream's type.
func NewSink(name, fromName string, fromType repr.RelationType, connector SinkConnector) Dataflow {
	return Dataflow{Kind: KindSink, SinkName: name, SinkFromName: fromName, SinkFromType: fromType, SinkConnector: connector}
}

// NewView builds a View dataflow. Construction validates invariant 7
// (spec.md §3): typ must equal relationExpr.Typ(). A mismatch is a
// structural bug, not a recoverable condition, and panics with
// *plan.InvariantViolation — consistent with how plan.RelationExpr.Typ
// reports every other invariant violation in the same tree.
func NewView(name string, relationExpr plan.RelationExpr, typ repr.RelationType) Dataflow {
	derived := relationExpr.Typ()
	if !derived.Equal(typ) {
		panic(&plan.InvariantViolation{
			Rule:    "view-typ",
			Message: fmt.Sprintf("view %q declares type %v but its relation expr derives %v", name, typ, derived),
		})
	}
	return Dataflow{Kind: KindView, ViewName: name, ViewRelationExpr: relationExpr, ViewType: typ}
}

// Name reports the vertex's declared name.
func (d Dataflow) Name() string {
	switch d.Kind {
	case KindSource:
		return d.SourceName
	case KindSink:
		return d.SinkName
	case KindView:
		return d.ViewName
	}
	panic(fmt.Sprintf("dataflow: unrecognized Kind %d", int(d.Kind)))
}

// Typ reports the type of the datums this dataflow produces: the stored
// type for Source/View, and the snapshot of the upstream's type for Sink
// (spec.md §4.2).
func (d Dataflow) Typ() repr.RelationType {
	switch d.Kind {
	case KindSource:
		return d.SourceType
	case KindSink:
		return d.SinkFromType
	case KindView:
		return d.ViewType
	}
	panic(fmt.Sprintf("dataflow: unrecognized Kind %d", int(d.Kind)))
}

// Uses collects the names of the dataflows this dataflow depends upon: a
// Source depends on nothing, a Sink depends on its upstream name, and a
// View depends on every Get{name} in its relation expr (spec.md §4.1
// "Dependency extraction").
func (d Dataflow) Uses() []string {
	switch d.Kind {
	case KindSource:
		return nil
	case KindSink:
		return []string{d.SinkFromName}
	case KindView:
		return d.ViewRelationExpr.Uses()
	}
	panic(fmt.Sprintf("dataflow: unrecognized Kind %d", int(d.Kind)))
}
