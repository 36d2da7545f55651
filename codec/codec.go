// Package codec holds the binary and structured renderings of ledger
// entries. The binary form is deterministic CBOR so equal entries always
// serialise to equal bytes.
package codec

import (
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"ledgerd/core/types"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: build encoder: %v", err))
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		MaxNestedLevels: 32,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("codec: build decoder: %v", err))
	}
}

// ErrEmptyPayload is returned when decoding zero bytes.
var ErrEmptyPayload = errors.New("codec: empty payload")

type wireEntry struct {
	Type   uint16         `cbor:"1,keyasint"`
	Fields map[string]any `cbor:"2,keyasint,omitempty"`
}

// Marshal encodes v with the deterministic encoder shared by every package
// that persists or transmits ledger data.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes data produced by Marshal into v.
func Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyPayload
	}
	return decMode.Unmarshal(data, v)
}

// Binary serialises entries. It is the production implementation of the
// serializer consumed by the RPC handlers.
type Binary struct{}

// Encode serialises the type tag and fields of e. The key is not part of the
// encoding; it is the address the bytes are stored under.
func (Binary) Encode(e *types.Entry) ([]byte, error) {
	return Encode(e)
}

// Encode serialises the type tag and fields of e.
func Encode(e *types.Entry) ([]byte, error) {
	if e == nil {
		return nil, errors.New("codec: nil entry")
	}
	return Marshal(wireEntry{Type: uint16(e.Type), Fields: e.Fields})
}

// Decode restores an entry stored under key.
func Decode(key types.Hash256, data []byte) (*types.Entry, error) {
	var w wireEntry
	if err := Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("codec: decode entry %s: %w", key, err)
	}
	fields := w.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return &types.Entry{Type: types.EntryType(w.Type), Key: key, Fields: fields}, nil
}

// Project renders e as a JSON-ready map. Byte strings become uppercase hex,
// the type tag is exposed as LedgerEntryType and the key as index.
func Project(e *types.Entry) map[string]any {
	out := make(map[string]any, len(e.Fields)+2)
	for k, v := range e.Fields {
		out[k] = projectValue(v)
	}
	out["LedgerEntryType"] = e.Type.String()
	out["index"] = e.Key.String()
	return out
}

func projectValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return strings.ToUpper(hex.EncodeToString(val))
	case types.Hash256:
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = projectValue(inner)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[fmt.Sprint(k)] = projectValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = projectValue(inner)
		}
		return out
	default:
		return v
	}
}

// FieldNames lists the entry's field names in sorted order.
func FieldNames(e *types.Entry) []string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
