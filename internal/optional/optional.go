// Package optional provides a presence-tracking value for partial updates.
//
// A Value distinguishes three states a JSON field can be in: absent
// (Set == false), explicitly null (Set && Null) and present with a value.
package optional

import (
	"bytes"
	"encoding/json"
)

type Value[T any] struct {
	V    T
	Set  bool
	Null bool
}

// Of returns a Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{V: v, Set: true}
}

// Null returns a Value that was explicitly cleared.
func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

// Get returns the held value and whether one is present.
func (o Value[T]) Get() (T, bool) {
	return o.V, o.Set && !o.Null
}

// UnmarshalJSON is only invoked by encoding/json when the key is present,
// which is what marks the value as Set.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.V = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.V)
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.V)
}
