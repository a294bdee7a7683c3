package dataflow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamkit-io/relexpr/plan"
	"github.com/streamkit-io/relexpr/repr"
)

func intType(n int) repr.RelationType {
	cols := make([]repr.ColumnType, n)
	for i := range cols {
		cols[i] = repr.Column(repr.ScalarTypeInt32, false)
	}
	return repr.RelationType{ColumnTypes: cols}
}

func TestSourceUsesIsEmpty(t *testing.T) {
	src := NewSource("orders", LocalSourceConnector(), intType(2))
	require.Equal(t, "orders", src.Name())
	require.Empty(t, src.Uses())
}

// Scenario 6 (Sink half) from spec.md §8.
func TestSinkUsesIsUpstreamName(t *testing.T) {
	connector := NewKafkaSinkConnector(NewSocketAddr("localhost", 9092), "out-topic", 7)
	sink := NewSink("out", "report", intType(2), connector)
	require.Equal(t, []string{"report"}, sink.Uses())
	require.True(t, sink.Typ().Equal(intType(2)))
}

func TestViewValidatesStoredTypeAgainstDerivedType(t *testing.T) {
	rel := plan.Get("orders", intType(2)).Project([]int{0})
	view := NewView("report", rel, intType(1))
	require.True(t, view.Typ().Equal(intType(1)))
	require.Equal(t, []string{"orders"}, view.Uses())
}

func TestViewConstructionPanicsOnTypeMismatch(t *testing.T) {
	rel := plan.Get("orders", intType(2)).Project([]int{0})
	require.Panics(t, func() {
		NewView("report", rel, intType(2))
	})
}

func TestSocketAddrRoundTrip(t *testing.T) {
	addr := NewSocketAddr("127.0.0.1", 9092)
	parsed, err := ParseSocketAddr(addr.String())
	require.NoError(t, err)
	require.Equal(t, addr, parsed)
}
