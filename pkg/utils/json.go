package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// DecodePayload converts a loosely typed message payload into T. Payloads that
// crossed the wire arrive as generic maps, in-process ones as structs; both
// take the same path through the codec.
func DecodePayload[T any](payload any) (T, error) {
	var result T
	if payload == nil {
		return result, errors.New("empty payload")
	}
	if v, ok := payload.(T); ok {
		return v, nil
	}
	data, err := jsoniter.Marshal(payload)
	if err != nil {
		return result, errors.WithMessage(err, "marshal payload")
	}
	if err := jsoniter.Unmarshal(data, &result); err != nil {
		return result, errors.WithMessage(err, "unmarshal payload")
	}
	return result, nil
}
