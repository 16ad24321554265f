package server

import "encoding/json"

// jsonCodec lets connect carry plain Go structs as JSON. It replaces the
// default protojson codec registered under the same name.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
