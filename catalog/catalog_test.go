package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamkit-io/relexpr/dataflow"
	"github.com/streamkit-io/relexpr/expr"
	"github.com/streamkit-io/relexpr/plan"
	"github.com/streamkit-io/relexpr/repr"
)

func namedString(name string) repr.ColumnType {
	return repr.NamedColumn(name, repr.ScalarTypeString, false)
}

func namedInt32(name string) repr.ColumnType {
	return repr.NamedColumn(name, repr.ScalarTypeInt32, false)
}

// buildProjectedJoinOfDistinctUnion constructs spec.md §8 scenario 1's
// View{name:"report", relation_expr: Project(outputs=[1,2],
// input=Join(inputs=[Get("orders"), Distinct(Union(Get("c2018"),
// Get("c2019")))], variables=[[(0,0),(1,0)]])),
// typ:[("name",String,NOT NULL),("quantity",Int32,NOT NULL)]}.
func buildProjectedJoinOfDistinctUnion() dataflow.Dataflow {
	ordersType := repr.NewRelationType(
		repr.NamedColumn("order_id", repr.ScalarTypeInt32, false),
		namedString("name"),
		namedInt32("quantity"),
	)
	customerType := repr.NewRelationType(namedInt32("order_id"))

	orders := plan.Get("orders", ordersType)
	c2018 := plan.Get("c2018", customerType)
	c2019 := plan.Get("c2019", customerType)
	unionOfCustomers := plan.Union(c2018, c2019)
	distinctCustomers := unionOfCustomers.Distinct()

	joined := plan.Join(
		[]plan.RelationExpr{orders, distinctCustomers},
		[][]plan.JoinVar{{{Input: 0, Column: 0}, {Input: 1, Column: 0}}},
	)
	projected := joined.Project([]int{1, 2})

	typ := repr.NewRelationType(namedString("name"), namedInt32("quantity"))
	return dataflow.NewView("report", projected, typ)
}

func TestRoundTripProjectedJoinOfDistinctUnion(t *testing.T) {
	original := buildProjectedJoinOfDistinctUnion()

	encoded, err := EncodeDataflow(original)
	require.NoError(t, err)

	decoded, err := DecodeDataflow(encoded)
	require.NoError(t, err)

	require.Equal(t, original, decoded)
	require.Equal(t, []string{"orders", "c2018", "c2019"}, decoded.Uses())
}

func TestRoundTripSourceAndSinkAndCatalogVersion(t *testing.T) {
	ordersType := repr.NewRelationType(namedInt32("order_id"), namedString("name"))
	source := dataflow.NewSource(
		"orders",
		dataflow.KafkaSourceConnector(dataflow.NewSocketAddr("kafka.internal", 9092), "orders-topic", `{"type":"record"}`, ""),
		ordersType,
	)
	sink := dataflow.NewSink(
		"orders-sink",
		"orders",
		ordersType,
		dataflow.NewKafkaSinkConnector(dataflow.NewSocketAddr("kafka.internal", 9092), "orders-out", 7),
	)

	cat := Catalog{Version: CurrentVersion, Entries: []dataflow.Dataflow{source, sink}}
	encoded, err := Encode(cat)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, cat, decoded)
	require.Equal(t, []string{"orders"}, decoded.Entries[1].Uses())
}

func TestRoundTripScalarExprAndAggregateExprShapes(t *testing.T) {
	scalar := expr.If(
		expr.CallUnary(expr.UnaryIsNull, expr.Column(0)),
		expr.Literal(repr.Int32(0)),
		expr.CallBinary(expr.BinaryAddInt32, expr.Column(0), expr.Literal(repr.Int32(1))),
	)
	encoded, err := encodeScalarExpr(scalar)
	require.NoError(t, err)
	decoded, err := decodeScalarExpr(encoded)
	require.NoError(t, err)
	require.Equal(t, scalar, decoded)

	agg := expr.NewAggregateExpr(expr.AggregateSumInt64, expr.Column(1), true)
	encodedAgg, err := encodeAggregateExpr(agg)
	require.NoError(t, err)
	decodedAgg, err := decodeAggregateExpr(encodedAgg)
	require.NoError(t, err)
	require.Equal(t, agg, decodedAgg)
}

func TestDecodeRejectsUnknownVariantDiscriminant(t *testing.T) {
	_, err := decodeScalarExpr(json.RawMessage(`{"not_a_real_kind": 1}`))
	require.Error(t, err)
	var unknown *UnknownVariantError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "not_a_real_kind", unknown.Discriminant)
}

func TestDecodeRejectsMalformedPayload(t *testing.T) {
	_, err := decodeScalarExpr(json.RawMessage(`{"column": "not-an-int"}`))
	require.Error(t, err)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
}

func TestRoundTripDistinguishesEmptyNamedColumnFromUnnamed(t *testing.T) {
	empty := repr.NamedColumn("", repr.ScalarTypeInt32, false)
	unnamed := repr.Column(repr.ScalarTypeInt32, false)
	require.NotEqual(t, empty, unnamed)

	emptyWire := encodeColumnType(empty)
	unnamedWire := encodeColumnType(unnamed)
	require.NotEqual(t, emptyWire, unnamedWire)

	decodedEmpty, err := decodeColumnType(emptyWire)
	require.NoError(t, err)
	require.Equal(t, empty, decodedEmpty)

	decodedUnnamed, err := decodeColumnType(unnamedWire)
	require.NoError(t, err)
	require.Equal(t, unnamed, decodedUnnamed)
}

func TestDecodeRejectsMultiKeyTaggedObject(t *testing.T) {
	_, err := DecodeDataflow(json.RawMessage(`{"source": {}, "sink": {}}`))
	require.Error(t, err)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
}
