package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHash256(t *testing.T) {
	valid := strings.Repeat("ab", 32)
	h, ok := ParseHash256(valid)
	require.True(t, ok)
	require.Equal(t, strings.ToUpper(valid), h.String())
	require.False(t, h.IsZero())

	zero, ok := ParseHash256(strings.Repeat("0", 64))
	require.True(t, ok)
	require.True(t, zero.IsZero())

	for _, bad := range []string{"", "ab", strings.Repeat("a", 63), strings.Repeat("a", 65), strings.Repeat("zz", 32), "0x" + strings.Repeat("a", 62)} {
		got, ok := ParseHash256(bad)
		require.False(t, ok, bad)
		require.True(t, got.IsZero(), bad)
	}
}

func TestHash256FromBytes(t *testing.T) {
	_, ok := Hash256FromBytes(make([]byte, 31))
	require.False(t, ok)
	raw := make([]byte, 32)
	raw[31] = 7
	h, ok := Hash256FromBytes(raw)
	require.True(t, ok)
	require.Equal(t, raw, h.Bytes())
}

func TestParseCurrency(t *testing.T) {
	native, ok := ParseCurrency("XRP")
	require.True(t, ok)
	require.True(t, native.IsNative())

	empty, ok := ParseCurrency("")
	require.True(t, ok)
	require.True(t, empty.IsNative())

	usd, ok := ParseCurrency("USD")
	require.True(t, ok)
	require.Equal(t, "USD", usd.String())
	require.Equal(t, byte('U'), usd[12])

	raw := "0158415500000000C1F76FF6ECB0BAC600000000"
	hexCode, ok := ParseCurrency(raw)
	require.True(t, ok)
	require.Equal(t, raw, hexCode.String())

	for _, bad := range []string{"US", "USDX", "U D", strings.Repeat("g", 40), "~~~"} {
		_, ok := ParseCurrency(bad)
		require.False(t, ok, bad)
	}
}

func TestEntryTypeNames(t *testing.T) {
	require.Equal(t, "AccountRoot", EntryTypeAccountRoot.String())
	require.Equal(t, "Any", EntryTypeAny.String())
	require.Equal(t, "0x1234", EntryType(0x1234).String())

	parsed, err := ParseEntryType("HookState")
	require.NoError(t, err)
	require.Equal(t, EntryTypeHookState, parsed)

	_, err = ParseEntryType("Nope")
	require.Error(t, err)
	require.False(t, EntryTypeAny.Known())
	require.True(t, EntryTypeURIToken.Known())
}

func TestAccountIDOrdering(t *testing.T) {
	var low, high AccountID
	high[0] = 1
	require.True(t, low.Less(high))
	require.False(t, high.Less(low))
	require.True(t, low.IsZero())
	require.Equal(t, "01"+strings.Repeat("00", 19), high.Hex())
}
