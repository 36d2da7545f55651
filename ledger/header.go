package ledger

import (
	"time"

	"ledgerd/core/types"
)

// Header describes one closed ledger.
type Header struct {
	Sequence   uint32        `cbor:"1,keyasint"`
	Hash       types.Hash256 `cbor:"2,keyasint"`
	ParentHash types.Hash256 `cbor:"3,keyasint"`
	CloseTime  int64         `cbor:"4,keyasint"`
	Validated  bool          `cbor:"5,keyasint"`
}

// ClosedAt returns the close time as a UTC timestamp.
func (h Header) ClosedAt() time.Time {
	return time.Unix(h.CloseTime, 0).UTC()
}

// Descriptor is the ledger identification echoed back in responses.
type Descriptor struct {
	LedgerIndex uint32 `json:"ledger_index"`
	LedgerHash  string `json:"ledger_hash"`
	Validated   bool   `json:"validated"`
}

// Descriptor renders the header's identification fields.
func (h Header) Descriptor() Descriptor {
	return Descriptor{
		LedgerIndex: h.Sequence,
		LedgerHash:  h.Hash.String(),
		Validated:   h.Validated,
	}
}
