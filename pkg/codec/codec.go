// Package codec converts between a form's typed model and the flat key/value
// wire representation the binding layer distributes across controls. Exactly
// one codec is chosen when a form is constructed and stays fixed for the
// form's lifetime.
package codec

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Codec encodes a model into a flat wire map and decodes one back. Encode
// omits null fields so "absent" and "null" collapse into the same wire state;
// Decode skips absent entries so the model falls back to its defaults.
type Codec[T any] interface {
	Encode(model T) (map[string]any, error)
	Decode(flat map[string]any) (T, error)
}

type jsonCodec[T any] struct{}

// JSON returns the structured-mode codec: the model is serialized through
// goccy/go-json into a generic key/value object keyed by the model's JSON
// field names, and reconstructed the same way.
func JSON[T any]() Codec[T] {
	return jsonCodec[T]{}
}

func (jsonCodec[T]) Encode(model T) (map[string]any, error) {
	raw, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("codec: encode model: %w", err)
	}

	flat := make(map[string]any)
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("codec: flatten model: %w", err)
	}

	for key, value := range flat {
		if value == nil {
			delete(flat, key)
		}
	}
	return flat, nil
}

func (jsonCodec[T]) Decode(flat map[string]any) (T, error) {
	var model T

	present := make(map[string]any, len(flat))
	for key, value := range flat {
		if value == nil {
			continue
		}
		present[key] = value
	}

	raw, err := json.Marshal(present)
	if err != nil {
		return model, fmt.Errorf("codec: encode wire object: %w", err)
	}
	if err := json.Unmarshal(raw, &model); err != nil {
		return model, fmt.Errorf("codec: decode model: %w", err)
	}
	return model, nil
}

type mapCodec struct{}

// Map returns the untyped-mode codec: the model already is the flat map, so
// conversion reduces to a copy with null entries dropped.
func Map() Codec[map[string]any] {
	return mapCodec{}
}

func (mapCodec) Encode(model map[string]any) (map[string]any, error) {
	flat := make(map[string]any, len(model))
	for key, value := range model {
		if value == nil {
			continue
		}
		flat[key] = value
	}
	return flat, nil
}

func (mapCodec) Decode(flat map[string]any) (map[string]any, error) {
	model := make(map[string]any, len(flat))
	for key, value := range flat {
		if value == nil {
			continue
		}
		model[key] = value
	}
	return model, nil
}
