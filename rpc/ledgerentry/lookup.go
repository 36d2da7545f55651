package ledgerentry

import (
	"errors"
	"fmt"

	"ledgerd/core/types"
)

var errZeroKey = errors.New("ledgerentry: lookup with zero key")

// Reader is the read side of a ledger snapshot. Read returns nil, nil when no
// object is stored under key.
type Reader interface {
	Read(key types.Hash256) (*types.Entry, error)
}

// Lookup reads the object at key without a type filter, then checks its type
// tag against expected unless expected is the wildcard. Missing or mistyped
// objects are reported as *Error; storage failures are returned wrapped.
func Lookup(r Reader, key types.Hash256, expected types.EntryType) (*types.Entry, error) {
	if key.IsZero() {
		return nil, errZeroKey
	}
	entry, err := r.Read(key)
	if err != nil {
		return nil, fmt.Errorf("ledgerentry: read %s: %w", key, err)
	}
	if entry == nil {
		return nil, fail(CodeEntryNotFound)
	}
	if expected != types.EntryTypeAny && entry.Type != expected {
		return nil, fail(CodeUnexpectedLedgerType)
	}
	return entry, nil
}
