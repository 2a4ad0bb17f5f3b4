package dto

import "encoding/json"

// Optional is a JSON field with three states: absent (Set is false),
// explicit null (Set, not Valid) and a value (Set and Valid).
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some builds a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null builds an Optional that was sent as an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Valid = false
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
