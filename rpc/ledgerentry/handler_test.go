package ledgerentry

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ledgerd/codec"
	"ledgerd/core/keylet"
	"ledgerd/core/types"
	"ledgerd/ledger"
	"ledgerd/storage"
)

type staticResolver struct {
	snap ledger.Snapshot
	err  error
}

func (r staticResolver) Resolve(ledger.Selector) (ledger.Snapshot, error) {
	return r.snap, r.err
}

func testSnapshot() *ledger.MemSnapshot {
	header := ledger.Header{Sequence: 42, Hash: types.Hash256{0x42}, Validated: true}
	return ledger.NewMemSnapshot(header,
		&types.Entry{
			Type: types.EntryTypeAccountRoot,
			Key:  keylet.Account(alice).Key,
			Fields: map[string]any{
				"Account":  addr(alice),
				"Balance":  "1000000",
				"Sequence": uint64(7),
				"Domain":   []byte("example.com"),
			},
		},
		&types.Entry{
			Type:   types.EntryTypeOffer,
			Key:    hashB,
			Fields: map[string]any{"Account": addr(bob)},
		},
	)
}

func newTestHandler(snap ledger.Snapshot) *Handler {
	return NewHandler(staticResolver{snap: snap}, WithMetrics(nil))
}

func handle(t *testing.T, h *Handler, raw string) *Result {
	t.Helper()
	res, err := h.Handle(context.Background(), mustParams(t, jsonf(raw)))
	require.NoError(t, err)
	return res
}

func TestHandleAccountRoot(t *testing.T) {
	res := handle(t, newTestHandler(testSnapshot()), `{"account_root": "{alice}"}`)
	require.False(t, res.Failed())
	require.Equal(t, keylet.Account(alice).Key.String(), res.Index)
	require.Equal(t, uint32(42), res.LedgerIndex)
	require.True(t, res.Validated)
	require.Equal(t, "AccountRoot", res.Node["LedgerEntryType"])
	require.Equal(t, res.Index, res.Node["index"])
	require.Equal(t, strings.ToUpper(hex.EncodeToString([]byte("example.com"))), res.Node["Domain"])
	require.Empty(t, res.NodeBinary)
}

func TestHandleBinaryProjection(t *testing.T) {
	snap := testSnapshot()
	res := handle(t, newTestHandler(snap), `{"account_root": "{alice}", "binary": true}`)
	require.False(t, res.Failed())
	require.Nil(t, res.Node)

	entry, err := snap.Read(keylet.Account(alice).Key)
	require.NoError(t, err)
	want, err := codec.Encode(entry)
	require.NoError(t, err)
	require.Equal(t, strings.ToUpper(hex.EncodeToString(want)), res.NodeBinary)
	require.Equal(t, keylet.Account(alice).Key.String(), res.Index)
}

func TestHandleBinaryFlagFollowsTruthiness(t *testing.T) {
	h := newTestHandler(testSnapshot())
	for _, flag := range []string{`"false"`, `"0"`, `1`, `[0]`, `{"x": false}`} {
		res := handle(t, h, `{"account_root": "{alice}", "binary": `+flag+`}`)
		require.False(t, res.Failed())
		require.NotEmpty(t, res.NodeBinary, "binary %s", flag)
		require.Nil(t, res.Node)
	}
	for _, flag := range []string{`false`, `0`, `""`, `null`, `[]`, `{}`} {
		res := handle(t, h, `{"account_root": "{alice}", "binary": `+flag+`}`)
		require.False(t, res.Failed())
		require.Empty(t, res.NodeBinary, "binary %s", flag)
		require.NotNil(t, res.Node)
	}
}

func TestHandleURITokenRejectsNonStringURI(t *testing.T) {
	res := handle(t, newTestHandler(testSnapshot()), `{"uri_token": {"account": "{alice}", "uri": {"x": 1}}}`)
	require.Equal(t, "malformedRequest", res.Error)
	require.Empty(t, res.Index)
	require.Nil(t, res.Node)
}

func TestHandleIdenticalAccountsInTrustLine(t *testing.T) {
	res := handle(t, newTestHandler(testSnapshot()), `{"ripple_state": {"currency": "USD", "accounts": ["{alice}", "{alice}"]}}`)
	require.Equal(t, "malformedRequest", res.Error)
	require.Equal(t, "Malformed request.", res.ErrorMessage)
	require.Empty(t, res.Index)
	require.Equal(t, uint32(42), res.LedgerIndex)
}

func TestHandleMissingEscrow(t *testing.T) {
	res := handle(t, newTestHandler(testSnapshot()), `{"escrow": {"owner": "{alice}", "seq": 5}}`)
	require.Equal(t, "entryNotFound", res.Error)
	require.Empty(t, res.Index)
	require.Nil(t, res.Node)
}

func TestHandleRawIndexAcceptsAnyType(t *testing.T) {
	h := newTestHandler(testSnapshot())
	res := handle(t, h, `{"index": "{hashB}"}`)
	require.False(t, res.Failed())
	require.Equal(t, "Offer", res.Node["LedgerEntryType"])

	res = handle(t, h, `{"params": ["{hashB}"]}`)
	require.False(t, res.Failed())

	res = handle(t, h, `{"check": "{hashB}"}`)
	require.Equal(t, "unexpectedLedgerType", res.Error)
	require.Empty(t, res.Index)
}

func TestHandleNonIntegralOfferSeq(t *testing.T) {
	res := handle(t, newTestHandler(testSnapshot()), `{"offer": {"account": "{alice}", "seq": "notanumber"}}`)
	require.Equal(t, "malformedRequest", res.Error)
}

func TestHandleEmittedTxnObjectReturnsDescriptorOnly(t *testing.T) {
	res := handle(t, newTestHandler(testSnapshot()), `{"emitted_txn": {}}`)
	require.False(t, res.Failed())
	require.Empty(t, res.Index)
	require.Nil(t, res.Node)
	require.Equal(t, uint32(42), res.LedgerIndex)
}

func TestHandleIsIdempotent(t *testing.T) {
	h := newTestHandler(testSnapshot())
	for _, raw := range []string{
		`{"account_root": "{alice}"}`,
		`{"account_root": "{alice}", "binary": true}`,
		`{"offer": {"account": "{alice}", "seq": 1}}`,
	} {
		first := handle(t, h, raw)
		second := handle(t, h, raw)
		require.Equal(t, first, second, raw)
	}
}

func TestHandlePassesLedgerErrorsThrough(t *testing.T) {
	h := newTestHandler(testSnapshot())
	_, err := h.Handle(context.Background(), mustParams(t, `{"ledger_index": "bogus", "index": "00"}`))
	require.Error(t, err)
	require.True(t, ledger.IsParamError(err))

	store, err := ledger.OpenStore(storage.NewMemDB())
	require.NoError(t, err)
	h = NewHandler(store, WithMetrics(nil))
	_, err = h.Handle(context.Background(), mustParams(t, `{"ledger_index": 9, "index": "00"}`))
	require.True(t, errors.Is(err, ledger.ErrLedgerNotFound))
}

func TestHandleAgainstStore(t *testing.T) {
	store, err := ledger.OpenStore(storage.NewMemDB())
	require.NoError(t, err)
	snap := testSnapshot()
	committed, err := store.Commit(ledger.Header{Sequence: 10, Validated: true}, snap.Entries())
	require.NoError(t, err)
	_, err = store.Commit(ledger.Header{Sequence: 11, ParentHash: committed.Hash}, nil)
	require.NoError(t, err)

	h := NewHandler(store, WithMetrics(nil))
	res := handle(t, h, `{"account_root": "{alice}", "ledger_index": "validated"}`)
	require.False(t, res.Failed())
	require.Equal(t, uint32(10), res.LedgerIndex)
	require.Equal(t, committed.Hash.String(), res.LedgerHash)
	require.Equal(t, uint64(7), res.Node["Sequence"])

	res = handle(t, h, `{"account_root": "{alice}"}`)
	require.Equal(t, "entryNotFound", res.Error)
	require.Equal(t, uint32(11), res.LedgerIndex)
}

type failingReader struct{}

func (failingReader) Header() ledger.Header { return ledger.Header{Sequence: 1} }

func (failingReader) Read(types.Hash256) (*types.Entry, error) {
	return nil, errors.New("disk on fire")
}

func TestExecuteSurfacesStorageFailures(t *testing.T) {
	h := newTestHandler(nil)
	_, err := h.Execute(failingReader{}, mustParams(t, jsonf(`{"index": "{hashA}"}`)))
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk on fire")
}

func TestLookupGuardsZeroKey(t *testing.T) {
	_, err := Lookup(testSnapshot(), types.ZeroHash, types.EntryTypeAny)
	require.Error(t, err)
	var shapeErr *Error
	require.False(t, errors.As(err, &shapeErr))
}
