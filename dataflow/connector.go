// Package dataflow implements the catalog envelope: named Source, Sink
// and View vertices wrapping relation expressions, plus the connector
// descriptions that ride along to the runtime (spec.md §3, §4.2, §4.4).
package dataflow

import (
	"fmt"
	"net"
	"strconv"
)

// SocketAddr is the host:port address used by KafkaSourceConnector and
// KafkaSinkConnector (spec.md §4.4). Host is not validated: it may be an
// IPv4 or IPv6 literal or a host name.
type SocketAddr struct {
	Host string
	Port uint16
}

// NewSocketAddr builds a SocketAddr from its parts.
func NewSocketAddr(host string, port uint16) SocketAddr {
	return SocketAddr{Host: host, Port: port}
}

// ParseSocketAddr parses a "host:port" string.
func ParseSocketAddr(s string) (SocketAddr, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return SocketAddr{}, fmt.Errorf("dataflow: invalid socket address %q: %w", s, err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return SocketAddr{}, fmt.Errorf("dataflow: invalid socket address port %q: %w", portStr, err)
	}
	return SocketAddr{Host: host, Port: uint16(port)}, nil
}

func (a SocketAddr) String() string {
	return net.JoinHostPort(a.Host, strconv.FormatUint(uint64(a.Port), 10))
}

// SourceConnectorKind tags which SourceConnector variant is populated.
type SourceConnectorKind int

const (
	SourceConnectorKafka SourceConnectorKind = iota
	SourceConnectorLocal
)

var sourceConnectorKindNames = [...]string{
	SourceConnectorKafka: "kafka",
	SourceConnectorLocal: "local",
}

func (k SourceConnectorKind) String() string { return sourceConnectorKindNames[k] }

// ParseSourceConnectorKind resolves a snake_case discriminant.
func ParseSourceConnectorKind(name string) (SourceConnectorKind, bool) {
	for k, n := range sourceConnectorKindNames {
		if n == name {
			return SourceConnectorKind(k), true
		}
	}
	return 0, false
}

// SourceConnector describes how a Source ingests external data.
// LocalSourceConnector (the zero-value Kafka fields) marks an in-process
// source; Kafka carries the topic, raw schema and optional schema
// registry URL.
type SourceConnector struct {
	Kind SourceConnectorKind

	// SourceConnectorKafka
	KafkaAddr               SocketAddr
	KafkaTopic              string
	KafkaRawSchema          string
	KafkaSchemaRegistryURL  string // empty means absent
	HasSchemaRegistryURL    bool
}

// KafkaSourceConnector builds a Kafka-backed SourceConnector.
func KafkaSourceConnector(addr SocketAddr, topic, rawSchema, schemaRegistryURL string) SourceConnector {
	c := SourceConnector{
		Kind:           SourceConnectorKafka,
		KafkaAddr:      addr,
		KafkaTopic:     topic,
		KafkaRawSchema: rawSchema,
	}
	if schemaRegistryURL != "" {
		c.KafkaSchemaRegistryURL = schemaRegistryURL
		c.HasSchemaRegistryURL = true
	}
	return c
}

// LocalSourceConnector builds the marker connector for an in-process
// source.
func LocalSourceConnector() SourceConnector {
	return SourceConnector{Kind: SourceConnectorLocal}
}

// SinkConnectorKind tags which SinkConnector variant is populated. Only
// Kafka exists today (spec.md §4.4); the tag still exists so the wire
// format can grow another variant without breaking the discriminant
// convention.
type SinkConnectorKind int

const (
	SinkConnectorKafka SinkConnectorKind = iota
)

var sinkConnectorKindNames = [...]string{
	SinkConnectorKafka: "kafka",
}

func (k SinkConnectorKind) String() string { return sinkConnectorKindNames[k] }

// ParseSinkConnectorKind resolves a snake_case discriminant.
func ParseSinkConnectorKind(name string) (SinkConnectorKind, bool) {
	for k, n := range sinkConnectorKindNames {
		if n == name {
			return SinkConnectorKind(k), true
		}
	}
	return 0, false
}

// SinkConnector describes how a Sink publishes to an external system.
type SinkConnector struct {
	Kind SinkConnectorKind

	KafkaAddr     SocketAddr
	KafkaTopic    string
	KafkaSchemaID int32
}

// NewKafkaSinkConnector builds a Kafka-backed SinkConnector.
func NewKafkaSinkConnector(addr SocketAddr, topic string, schemaID int32) SinkConnector {
	return SinkConnector{Kind: SinkConnectorKafka, KafkaAddr: addr, KafkaTopic: topic, KafkaSchemaID: schemaID}
}
