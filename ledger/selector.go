package ledger

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"ledgerd/core/types"
)

// Shortcut names a moving ledger rather than a fixed one.
type Shortcut string

const (
	ShortcutCurrent   Shortcut = "current"
	ShortcutClosed    Shortcut = "closed"
	ShortcutValidated Shortcut = "validated"
)

// Selector picks one ledger. Exactly one of Hash, Sequence or Shortcut is
// meaningful, checked in that order.
type Selector struct {
	Hash     *types.Hash256
	Sequence uint32
	Shortcut Shortcut
}

// DefaultSelector selects the current ledger.
func DefaultSelector() Selector {
	return Selector{Shortcut: ShortcutCurrent}
}

// BySequence selects a ledger by sequence number.
func BySequence(seq uint32) Selector {
	return Selector{Sequence: seq}
}

// ByHash selects a ledger by hash.
func ByHash(h types.Hash256) Selector {
	return Selector{Hash: &h}
}

// ParseShortcut accepts the three shortcut names.
func ParseShortcut(s string) (Shortcut, bool) {
	switch Shortcut(s) {
	case ShortcutCurrent, ShortcutClosed, ShortcutValidated:
		return Shortcut(s), true
	default:
		return "", false
	}
}

// ParseSelector reads ledger_hash and ledger_index from decoded request
// parameters. ledger_hash wins when both are present.
func ParseSelector(params map[string]any) (Selector, error) {
	if raw, ok := params["ledger_hash"]; ok && raw != nil {
		text, isString := raw.(string)
		if !isString {
			return Selector{}, invalidParams("ledgerHashNotString")
		}
		h, ok := types.ParseHash256(text)
		if !ok {
			return Selector{}, invalidParams("ledgerHashMalformed")
		}
		return ByHash(h), nil
	}
	raw, ok := params["ledger_index"]
	if !ok || raw == nil {
		return DefaultSelector(), nil
	}
	switch v := raw.(type) {
	case string:
		if shortcut, ok := ParseShortcut(v); ok {
			return Selector{Shortcut: shortcut}, nil
		}
		seq, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return Selector{}, invalidParams("ledgerIndexMalformed")
		}
		return BySequence(uint32(seq)), nil
	case json.Number:
		seq, err := strconv.ParseUint(v.String(), 10, 32)
		if err != nil {
			return Selector{}, invalidParams("ledgerIndexMalformed")
		}
		return BySequence(uint32(seq)), nil
	case float64:
		if v < 0 || v > math.MaxUint32 || v != math.Trunc(v) {
			return Selector{}, invalidParams("ledgerIndexMalformed")
		}
		return BySequence(uint32(v)), nil
	case int:
		if v < 0 || int64(v) > math.MaxUint32 {
			return Selector{}, invalidParams("ledgerIndexMalformed")
		}
		return BySequence(uint32(v)), nil
	default:
		return Selector{}, invalidParams("ledgerIndexMalformed")
	}
}

// Resolver maps a selector onto a snapshot.
type Resolver interface {
	Resolve(sel Selector) (Snapshot, error)
}

// SelectorFromWire builds a selector from the binary protocol's ledger
// specifier. A hash wins over a sequence, which wins over a shortcut; none of
// them selects the current ledger.
func SelectorFromWire(hash []byte, seq uint32, shortcut string) (Selector, error) {
	if len(hash) > 0 {
		h, ok := types.Hash256FromBytes(hash)
		if !ok {
			return Selector{}, invalidParams("ledgerHashMalformed")
		}
		return ByHash(h), nil
	}
	if seq != 0 {
		return BySequence(seq), nil
	}
	if shortcut == "" {
		return DefaultSelector(), nil
	}
	sc, ok := ParseShortcut(shortcut)
	if !ok {
		return Selector{}, invalidParams("ledgerIndexMalformed")
	}
	return Selector{Shortcut: sc}, nil
}
