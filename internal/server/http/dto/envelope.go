package dto

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrMalformedEnvelope signals a body that is neither an object, nor a data
// wrapper, nor an array of either.
var ErrMalformedEnvelope = errors.New("malformed payload envelope")

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// UnwrapData decodes legacy payloads whose shape drifted across backend
// versions: a bare object, an object wrapped in {"data": ...}, or an array of
// objects (possibly itself under "data"). The result is always a flat slice.
func UnwrapData[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrMalformedEnvelope
	}

	var envelope dataEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		body = bytes.TrimSpace(envelope.Data)
	}

	switch body[0] {
	case '[':
		var many []T
		if err := json.Unmarshal(body, &many); err != nil {
			return nil, ErrMalformedEnvelope
		}
		return many, nil
	case '{':
		var one T
		if err := json.Unmarshal(body, &one); err != nil {
			return nil, ErrMalformedEnvelope
		}
		return []T{one}, nil
	default:
		return nil, ErrMalformedEnvelope
	}
}
