package types

import (
	"bytes"
	"encoding/hex"
	"strings"
)

// AccountIDLength is the width of a ledger account identifier.
const AccountIDLength = 20

// AccountID identifies a ledger account. It is the RIPEMD-160 of the SHA-256
// of the account's master public key.
type AccountID [AccountIDLength]byte

// IsZero reports whether the identifier is the all-zero account.
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

// Less orders account identifiers by their raw bytes.
func (a AccountID) Less(other AccountID) bool {
	return bytes.Compare(a[:], other[:]) < 0
}

// Hex renders the raw identifier as uppercase hexadecimal.
func (a AccountID) Hex() string {
	return strings.ToUpper(hex.EncodeToString(a[:]))
}
