package model

import (
	"bytes"
	"encoding/json"
)

// Nullable distinguishes a JSON field that is absent from one that is
// explicitly null. Use it with the omitzero option so absent values are
// not marshaled.
type Nullable[T any] struct {
	value   T
	present bool
	valid   bool
}

// Value returns a present, non-null Nullable holding v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, present: true, valid: true}
}

// Null returns a present Nullable holding null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{present: true}
}

// Present reports whether the field appeared in the input.
func (n Nullable[T]) Present() bool { return n.present }

// IsNull reports whether the field appeared with a null value.
func (n Nullable[T]) IsNull() bool { return n.present && !n.valid }

// Get returns the value and whether it is present and non-null.
func (n Nullable[T]) Get() (T, bool) { return n.value, n.valid }

// Ptr returns nil for null or absent, otherwise a pointer to a copy of the value.
func (n Nullable[T]) Ptr() *T {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}

// IsZero reports absence, which makes omitzero skip the field.
func (n Nullable[T]) IsZero() bool { return !n.present }

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		n.value, n.valid = zero, false
		return nil
	}
	if err := json.Unmarshal(data, &n.value); err != nil {
		return err
	}
	n.valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}
