package rpc

import (
	"net/http/httptest"
	"testing"

	"ledgerd/core/keylet"
	"ledgerd/core/types"
	"ledgerd/crypto"
	"ledgerd/ledger"
	"ledgerd/rpc/ledgerentry"
	"ledgerd/storage"
)

var testAccount = types.AccountID{0xA1, 0xB2, 0xC3}

func newTestStore(t testing.TB) *ledger.Store {
	t.Helper()
	store, err := ledger.OpenStore(storage.NewMemDB())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	entry := &types.Entry{
		Type: types.EntryTypeAccountRoot,
		Key:  keylet.Account(testAccount).Key,
		Fields: map[string]any{
			"Account": crypto.EncodeAccountID(testAccount),
			"Balance": "25000000",
		},
	}
	if _, err := store.Commit(ledger.Header{Sequence: 8, Validated: true}, []*types.Entry{entry}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	return store
}

func newTestServer(t testing.TB, cfg ServerConfig) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(newTestStore(t), cfg, ledgerentry.WithMetrics(nil))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}
