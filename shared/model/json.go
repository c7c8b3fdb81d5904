package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON stores V in a jsonb column.
type JSON[V any] struct {
	V V
}

func NewJSON[V any](v V) JSON[V] {
	return JSON[V]{V: v}
}

func (j JSON[V]) Value() (driver.Value, error) {
	raw, err := json.Marshal(j.V)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json column: %w", err)
	}

	return raw, nil
}

func (j *JSON[V]) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		var zero V
		j.V = zero

		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}

	if err := json.Unmarshal(raw, &j.V); err != nil {
		return fmt.Errorf("failed to unmarshal json column: %w", err)
	}

	return nil
}

func (j JSON[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.V)
}

func (j *JSON[V]) UnmarshalJSON(raw []byte) error {
	return json.Unmarshal(raw, &j.V)
}
