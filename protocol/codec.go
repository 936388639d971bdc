package protocol

import (
	"encoding/json"
	"fmt"
)

// Messages are flat JSON objects tagged by a "type" field. The tag set is
// closed: anything outside it is a protocol error and never reaches the
// simulation.

func Encode(payload any) ([]byte, error) {
	if payload == nil {
		return nil, fmt.Errorf("trying to encode nil payload")
	}
	return json.Marshal(payload)
}

// DecodeType reads only the tag, so the caller can pick the concrete type
// before committing to a full decode.
func DecodeType(b []byte) (string, error) {
	if len(b) == 0 {
		return "", fmt.Errorf("trying to decode message with byte size 0")
	}
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return "", err
	}
	if probe.Type == "" {
		return "", fmt.Errorf("message has no type tag")
	}
	return probe.Type, nil
}

func Decode[T any](b []byte) (T, error) {
	var out T
	if len(b) == 0 {
		return out, fmt.Errorf("empty message")
	}
	err := json.Unmarshal(b, &out)
	return out, err
}
