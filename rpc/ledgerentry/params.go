package ledgerentry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var errNotObject = errors.New("ledgerentry: request is not a JSON object")

// Params is a decoded request object. Numbers must be held as json.Number so
// integral and real values can be told apart.
type Params map[string]any

// DecodeParams decodes a JSON object with UseNumber. An empty payload yields
// an empty request.
func DecodeParams(data []byte) (Params, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Params{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return Params(obj), nil
}

// Has reports whether name is a member, even when its value is null.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Get returns the member as a Value. Missing members are not Present.
func (p Params) Get(name string) Value {
	raw, ok := p[name]
	return Value{raw: raw, present: ok}
}

// Value wraps one untyped request member.
type Value struct {
	raw     any
	present bool
}

func (v Value) Present() bool { return v.present }

func (v Value) IsNull() bool { return v.present && v.raw == nil }

func (v Value) IsObject() bool {
	switch v.raw.(type) {
	case map[string]any, Params:
		return true
	}
	return false
}

func (v Value) IsArray() bool {
	_, ok := v.raw.([]any)
	return ok
}

func (v Value) IsString() bool {
	_, ok := v.raw.(string)
	return ok
}

// IsIntegral reports whether the value is a number written without a
// fraction or exponent.
func (v Value) IsIntegral() bool {
	switch n := v.raw.(type) {
	case json.Number:
		_, err := strconv.ParseInt(n.String(), 10, 64)
		if err == nil {
			return true
		}
		_, err = strconv.ParseUint(n.String(), 10, 64)
		return err == nil
	case int, int32, int64, uint, uint32, uint64:
		return true
	}
	return false
}

// String renders scalars as text. Objects, arrays and null read as the
// empty string, which no parser downstream accepts.
func (v Value) String() string {
	switch s := v.raw.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	case int, int32, int64, uint, uint32, uint64:
		return fmt.Sprint(s)
	}
	return ""
}

// Uint32 reads an integral value that fits in 32 unsigned bits.
func (v Value) Uint32() (uint32, bool) {
	if !v.IsIntegral() {
		return 0, false
	}
	n, err := strconv.ParseUint(v.String(), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// Object returns the value as a nested request, or nil.
func (v Value) Object() Params {
	switch o := v.raw.(type) {
	case map[string]any:
		return Params(o)
	case Params:
		return o
	}
	return nil
}

// Array returns the elements of an array value, or nil.
func (v Value) Array() []Value {
	items, ok := v.raw.([]any)
	if !ok {
		return nil
	}
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = Value{raw: item, present: true}
	}
	return out
}

// Bool reads a flag with JSON truthiness: non-zero numbers, non-empty
// strings and non-empty containers are true.
func (v Value) Bool() bool {
	switch b := v.raw.(type) {
	case bool:
		return b
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	case string:
		return b != ""
	case []any:
		return len(b) != 0
	case map[string]any:
		return len(b) != 0
	case Params:
		return len(b) != 0
	}
	return false
}
