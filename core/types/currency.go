package types

import (
	"encoding/hex"
	"strings"
)

// CurrencyLength is the width of an issued currency code.
const CurrencyLength = 20

// NativeCurrencyCode is the textual code of the ledger's native asset.
const NativeCurrencyCode = "XRP"

// isoCharSet lists the characters permitted in three-letter currency codes.
const isoCharSet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789<>(){}[]|?!@#$%^&*"

// Currency is the 160-bit representation of a currency code.
type Currency [CurrencyLength]byte

// ParseCurrency converts a textual currency code. The empty string and the
// native code map to the zero currency, three character ISO style codes are
// placed at bytes 12..14, and 40 hexadecimal characters are taken verbatim.
func ParseCurrency(code string) (Currency, bool) {
	var c Currency
	if code == "" || code == NativeCurrencyCode {
		return c, true
	}
	if len(code) == 3 {
		for i := 0; i < 3; i++ {
			if !strings.ContainsRune(isoCharSet, rune(code[i])) {
				return c, false
			}
		}
		copy(c[12:], code)
		return c, true
	}
	if len(code) != CurrencyLength*2 {
		return c, false
	}
	if _, err := hex.Decode(c[:], []byte(code)); err != nil {
		return Currency{}, false
	}
	return c, true
}

// IsNative reports whether the currency is the native asset.
func (c Currency) IsNative() bool {
	return c == Currency{}
}

// String renders standard codes as their three letters and anything else as
// uppercase hexadecimal.
func (c Currency) String() string {
	if c.IsNative() {
		return NativeCurrencyCode
	}
	standard := true
	for i, b := range c {
		if i >= 12 && i < 15 {
			continue
		}
		if b != 0 {
			standard = false
			break
		}
	}
	if standard {
		code := string(c[12:15])
		if code != NativeCurrencyCode {
			return code
		}
	}
	return strings.ToUpper(hex.EncodeToString(c[:]))
}
