package types

import (
	"encoding/hex"
	"strings"
)

// HashLength is the width in bytes of ledger keys and ledger hashes.
const HashLength = 32

// Hash256 is a fixed-width 256-bit value used for ledger keys, ledger hashes
// and the opaque identifiers referenced by keylets. The zero value means "no
// key".
type Hash256 [HashLength]byte

// ZeroHash is the sentinel for an underived key.
var ZeroHash Hash256

// ParseHash256 decodes exactly 64 hexadecimal characters. Shorter, longer or
// prefixed input is rejected.
func ParseHash256(s string) (Hash256, bool) {
	var h Hash256
	if len(s) != HashLength*2 {
		return h, false
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return ZeroHash, false
	}
	return h, true
}

// Hash256FromBytes copies b into a Hash256 when it is exactly 32 bytes long.
func Hash256FromBytes(b []byte) (Hash256, bool) {
	var h Hash256
	if len(b) != HashLength {
		return h, false
	}
	copy(h[:], b)
	return h, true
}

// IsZero reports whether every byte is zero.
func (h Hash256) IsZero() bool {
	return h == ZeroHash
}

// Bytes returns a copy of the underlying bytes.
func (h Hash256) Bytes() []byte {
	out := make([]byte, HashLength)
	copy(out, h[:])
	return out
}

// String renders the hash as 64 uppercase hexadecimal characters.
func (h Hash256) String() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}
