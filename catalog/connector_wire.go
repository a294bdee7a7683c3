package catalog

import (
	"encoding/json"

	"github.com/streamkit-io/relexpr/dataflow"
)

type socketAddrWire struct {
	Host string `json:"host"`
	Port uint16 `json:"port"`
}

func encodeSocketAddr(a dataflow.SocketAddr) socketAddrWire {
	return socketAddrWire{Host: a.Host, Port: a.Port}
}

func decodeSocketAddr(w socketAddrWire) dataflow.SocketAddr {
	return dataflow.NewSocketAddr(w.Host, w.Port)
}

func encodeSourceConnector(c dataflow.SourceConnector) (json.RawMessage, error) {
	switch c.Kind {
	case dataflow.SourceConnectorKafka:
		w := struct {
			Addr              socketAddrWire `json:"addr"`
			Topic             string         `json:"topic"`
			RawSchema         string         `json:"raw_schema"`
			SchemaRegistryURL string         `json:"schema_registry_url,omitempty"`
		}{
			Addr:      encodeSocketAddr(c.KafkaAddr),
			Topic:     c.KafkaTopic,
			RawSchema: c.KafkaRawSchema,
		}
		if c.HasSchemaRegistryURL {
			w.SchemaRegistryURL = c.KafkaSchemaRegistryURL
		}
		return encodeTag("kafka", w)

	case dataflow.SourceConnectorLocal:
		return encodeTag("local", struct{}{})
	}
	return nil, &UnknownVariantError{Discriminant: c.Kind.String()}
}

func decodeSourceConnector(raw json.RawMessage) (dataflow.SourceConnector, error) {
	tag, payload, err := decodeTag(raw)
	if err != nil {
		return dataflow.SourceConnector{}, err
	}
	switch tag {
	case "kafka":
		var w struct {
			Addr              socketAddrWire `json:"addr"`
			Topic             string         `json:"topic"`
			RawSchema         string         `json:"raw_schema"`
			SchemaRegistryURL string         `json:"schema_registry_url"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return dataflow.SourceConnector{}, &MalformedError{Input: string(payload), Err: err}
		}
		return dataflow.KafkaSourceConnector(decodeSocketAddr(w.Addr), w.Topic, w.RawSchema, w.SchemaRegistryURL), nil

	case "local":
		return dataflow.LocalSourceConnector(), nil
	}
	return dataflow.SourceConnector{}, &UnknownVariantError{Discriminant: tag}
}

func encodeSinkConnector(c dataflow.SinkConnector) (json.RawMessage, error) {
	switch c.Kind {
	case dataflow.SinkConnectorKafka:
		return encodeTag("kafka", struct {
			Addr     socketAddrWire `json:"addr"`
			Topic    string         `json:"topic"`
			SchemaID int32          `json:"schema_id"`
		}{encodeSocketAddr(c.KafkaAddr), c.KafkaTopic, c.KafkaSchemaID})
	}
	return nil, &UnknownVariantError{Discriminant: c.Kind.String()}
}

func decodeSinkConnector(raw json.RawMessage) (dataflow.SinkConnector, error) {
	tag, payload, err := decodeTag(raw)
	if err != nil {
		return dataflow.SinkConnector{}, err
	}
	switch tag {
	case "kafka":
		var w struct {
			Addr     socketAddrWire `json:"addr"`
			Topic    string         `json:"topic"`
			SchemaID int32          `json:"schema_id"`
		}
		if err := json.Unmarshal(payload, &w); err != nil {
			return dataflow.SinkConnector{}, &MalformedError{Input: string(payload), Err: err}
		}
		return dataflow.NewKafkaSinkConnector(decodeSocketAddr(w.Addr), w.Topic, w.SchemaID), nil
	}
	return dataflow.SinkConnector{}, &UnknownVariantError{Discriminant: tag}
}
