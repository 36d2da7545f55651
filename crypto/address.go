package crypto

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"

	"ledgerd/core/types"
)

// rippleAlphabet is the base58 dictionary used for ledger addresses.
const rippleAlphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

// accountVersion is the token type prefix for account addresses.
const accountVersion byte = 0x00

const checksumLength = 4

var addressAlphabet = base58.NewAlphabet(rippleAlphabet)

var (
	ErrAddressEncoding = errors.New("crypto: invalid base58 address")
	ErrAddressChecksum = errors.New("crypto: address checksum mismatch")
	ErrAddressVersion  = errors.New("crypto: unexpected address version")
)

// EncodeAccountID renders an account identifier as a classic address.
func EncodeAccountID(id types.AccountID) string {
	payload := make([]byte, 0, 1+types.AccountIDLength+checksumLength)
	payload = append(payload, accountVersion)
	payload = append(payload, id[:]...)
	payload = append(payload, checksum(payload)...)
	return base58.EncodeAlphabet(payload, addressAlphabet)
}

// DecodeAccountID parses a classic address, verifying its version byte and
// checksum.
func DecodeAccountID(address string) (types.AccountID, error) {
	var id types.AccountID
	if address == "" {
		return id, ErrAddressEncoding
	}
	raw, err := base58.DecodeAlphabet(address, addressAlphabet)
	if err != nil {
		return id, fmt.Errorf("%w: %v", ErrAddressEncoding, err)
	}
	if len(raw) != 1+types.AccountIDLength+checksumLength {
		return id, fmt.Errorf("%w: decoded length %d", ErrAddressEncoding, len(raw))
	}
	body, sum := raw[:len(raw)-checksumLength], raw[len(raw)-checksumLength:]
	if !bytes.Equal(checksum(body), sum) {
		return id, ErrAddressChecksum
	}
	if body[0] != accountVersion {
		return id, ErrAddressVersion
	}
	copy(id[:], body[1:])
	return id, nil
}

// ParseAccountID is the boolean form of DecodeAccountID used by request
// validation.
func ParseAccountID(address string) (types.AccountID, bool) {
	id, err := DecodeAccountID(address)
	if err != nil {
		return types.AccountID{}, false
	}
	return id, true
}

func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}
