package types

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

var jsonNull = []byte("null")

// Nullable wraps an optional value that may be absent, present but null, or present with a value.
//
// When used as a struct field with the `omitzero` JSON option, an absent value is omitted from the
// encoded object, a null value is encoded as JSON null, and any other value is encoded as is. Decoding
// reverses the mapping, so the three states survive a JSON round trip.
type Nullable[T any] struct {
	set   bool
	value *T
}

// Absent returns a Nullable that is not set.
func Absent[T any]() Nullable[T] {
	return Nullable[T]{}
}

// Null returns a Nullable that is set but holds no value.
func Null[T any]() Nullable[T] {
	return Nullable[T]{set: true}
}

// Some returns a Nullable that holds the given value.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{set: true, value: &v}
}

// IsSet indicates whether the value is present, including present but null.
func (n Nullable[T]) IsSet() bool {
	return n.set
}

// IsNull indicates whether the value is present but null.
func (n Nullable[T]) IsNull() bool {
	return n.set && n.value == nil
}

// Get returns the wrapped value if any.
func (n Nullable[T]) Get() (val T, ok bool) {
	if n.value == nil {
		return
	}

	return *n.value, true
}

// IsZero reports whether the value is absent, which is used by the `omitzero` JSON option.
func (n Nullable[T]) IsZero() bool {
	return !n.set
}

// MarshalJSON implements the json.Marshaler interface.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.value == nil {
		return jsonNull, nil
	}

	return json.Marshal(*n.value)
}

// UnmarshalJSON implements the json.Unmarshaler interface. It is only invoked when the field is present.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.set = true

	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		n.value = nil
		return nil
	}

	var val T
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}

	n.value = &val

	return nil
}

// Bytes is a byte slice encoded as a JSON array of numbers, e.g. [1,2,3].
//
// Decoding also accepts a base64 string, which is how encoding/json encodes []byte by default.
type Bytes []byte

// MarshalJSON implements the json.Marshaler interface.
func (b Bytes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('[')
	for i, v := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(int(v)))
	}
	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (b *Bytes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, jsonNull) {
		*b = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}

		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return errors.WithMessage(err, "Failed to decode base64 bytes")
		}

		*b = decoded
		return nil
	}

	var nums []uint8
	if err := json.Unmarshal(data, &nums); err != nil {
		return errors.WithMessage(err, "Failed to unmarshal bytes from number array")
	}

	*b = nums

	return nil
}
