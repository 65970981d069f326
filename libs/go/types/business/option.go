package business

import "encoding/json"

// Option marks a sub-result that may not have been triggered. The zero value
// is absent.
type Option[T any] struct {
	value   T
	present bool
}

// Some wraps a computed value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns an absent option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether the sub-result was computed.
func (o Option[T]) IsPresent() bool {
	return o.present
}

// OrZero returns the value or the zero T when absent.
func (o Option[T]) OrZero() T {
	return o.value
}

// MarshalJSON encodes an absent option as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as absent.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// MarshalYAML encodes an absent option as null.
func (o Option[T]) MarshalYAML() (interface{}, error) {
	if !o.present {
		return nil, nil
	}
	return o.value, nil
}
