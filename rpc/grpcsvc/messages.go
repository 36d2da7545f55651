package grpcsvc

// LedgerSpecifier names a ledger by hash, sequence or shortcut, checked in
// that order.
type LedgerSpecifier struct {
	Hash     []byte `cbor:"1,keyasint,omitempty"`
	Sequence uint32 `cbor:"2,keyasint,omitempty"`
	Shortcut string `cbor:"3,keyasint,omitempty"`
}

type GetLedgerEntryRequest struct {
	Ledger LedgerSpecifier `cbor:"1,keyasint"`
	Key    []byte          `cbor:"2,keyasint"`
}

// RawLedgerObject is a stored object in its binary encoding.
type RawLedgerObject struct {
	Key  []byte `cbor:"1,keyasint"`
	Data []byte `cbor:"2,keyasint"`
}

type GetLedgerEntryResponse struct {
	LedgerObject RawLedgerObject `cbor:"1,keyasint"`
	Ledger       LedgerSpecifier `cbor:"2,keyasint"`
}
