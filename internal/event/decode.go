package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload as T. Payloads published in-process
// already carry T (or *T); anything else, such as a map decoded from a
// dead-letter file or raw JSON bytes, is converted through JSON.
func DecodePayload[T any](input interface{}) (T, error) {
	var out T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, fmt.Errorf("decode %T: nil payload", out)
		}
		return *v, nil
	case json.RawMessage:
		return out, unmarshalPayload(v, &out)
	case []byte:
		return out, unmarshalPayload(v, &out)
	}

	raw, err := json.Marshal(input)
	if err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, unmarshalPayload(raw, &out)
}

func unmarshalPayload[T any](raw []byte, out *T) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %T: %w", *out, err)
	}
	return nil
}
