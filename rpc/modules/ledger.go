package modules

import (
	"context"
	"encoding/json"
	"net/http"

	"ledgerd/ledger"
	"ledgerd/rpc/ledgerentry"
)

// LedgerModule exposes ledger object lookups and ledger headers.
type LedgerModule struct {
	resolver ledger.Resolver
	entries  *ledgerentry.Handler
}

// NewLedgerModule constructs a ledger RPC helper module.
func NewLedgerModule(resolver ledger.Resolver, opts ...ledgerentry.Option) *LedgerModule {
	return &LedgerModule{resolver: resolver, entries: ledgerentry.NewHandler(resolver, opts...)}
}

// ClosedResult identifies the most recently closed ledger.
type ClosedResult struct {
	LedgerHash  string `json:"ledger_hash"`
	LedgerIndex uint32 `json:"ledger_index"`
	CloseTime   int64  `json:"close_time"`
	Validated   bool   `json:"validated"`
}

var errModuleOffline = &ModuleError{HTTPStatus: http.StatusServiceUnavailable, Code: codeServerError, Message: "ledger module not initialised"}

// Entry resolves one ledger_entry request object. Shape and lookup failures
// are reported inside the returned document; only ledger selection and
// storage failures produce a ModuleError.
func (m *LedgerModule) Entry(ctx context.Context, raw json.RawMessage) (*ledgerentry.Result, *ModuleError) {
	if m == nil || m.resolver == nil {
		return nil, errModuleOffline
	}
	params, err := ledgerentry.DecodeParams(raw)
	if err != nil {
		return nil, &ModuleError{HTTPStatus: http.StatusBadRequest, Code: codeInvalidParams, Message: "invalid parameter object", Data: err.Error()}
	}
	res, err := m.entries.Handle(ctx, params)
	if err != nil {
		return nil, ledgerError(err)
	}
	return res, nil
}

// Closed returns the header of the most recently closed ledger.
func (m *LedgerModule) Closed(_ context.Context) (*ClosedResult, *ModuleError) {
	if m == nil || m.resolver == nil {
		return nil, errModuleOffline
	}
	snap, err := m.resolver.Resolve(ledger.Selector{Shortcut: ledger.ShortcutClosed})
	if err != nil {
		return nil, ledgerError(err)
	}
	header := snap.Header()
	return &ClosedResult{
		LedgerHash:  header.Hash.String(),
		LedgerIndex: header.Sequence,
		CloseTime:   header.CloseTime,
		Validated:   header.Validated,
	}, nil
}
