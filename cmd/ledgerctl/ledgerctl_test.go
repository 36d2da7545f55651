package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ledgerd/cmd/internal/passphrase"
	"ledgerd/core/keylet"
	"ledgerd/core/types"
	"ledgerd/crypto"
	"ledgerd/ledger"
	"ledgerd/rpc"
	"ledgerd/storage"
)

const fixtureYAML = `ledger:
  sequence: 3
  close_time: 1700000000
  validated: true
entries:
  - type: AccountRoot
    fields:
      Account: %s
      Balance: "5000"
      Sequence: 4
  - type: Offer
    index: "%s"
    fields:
      TakerPays: "10"
`

func writeFixture(t *testing.T, account types.AccountID, offer types.Hash256) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	contents := []byte(fmt.Sprintf(fixtureYAML, crypto.EncodeAccountID(account), offer.String()))
	require.NoError(t, os.WriteFile(path, contents, 0o644))
	return path
}

func TestImportFixtureCommitsLedger(t *testing.T) {
	account := types.AccountID{0x10, 0x20}
	offer := keylet.Offer(account, 9).Key
	fixture, err := loadFixture(writeFixture(t, account, offer))
	require.NoError(t, err)

	store, err := ledger.OpenStore(storage.NewMemDB())
	require.NoError(t, err)
	header, err := importFixture(store, fixture)
	require.NoError(t, err)
	require.Equal(t, uint32(3), header.Sequence)
	require.True(t, header.Validated)

	snap, err := store.Resolve(ledger.Selector{Shortcut: ledger.ShortcutValidated})
	require.NoError(t, err)
	root, err := snap.Read(keylet.Account(account).Key)
	require.NoError(t, err)
	require.NotNil(t, root)
	require.Equal(t, types.EntryTypeAccountRoot, root.Type)
	require.Equal(t, "5000", root.Fields["Balance"])

	got, err := snap.Read(offer)
	require.NoError(t, err)
	require.Equal(t, types.EntryTypeOffer, got.Type)

	// The next fixture without a sequence follows the latest ledger.
	fixture.Ledger.Sequence = 0
	fixture.Ledger.Validated = false
	next, err := importFixture(store, fixture)
	require.NoError(t, err)
	require.Equal(t, uint32(4), next.Sequence)
	require.Equal(t, header.Hash, next.ParentHash)
}

func TestFixtureEntryErrors(t *testing.T) {
	cases := []fixtureEntry{
		{Type: "Bogus"},
		{Type: "Offer"},
		{Type: "Offer", Index: "ABC"},
		{Type: "AccountRoot", Fields: map[string]any{"Account": "not-an-address"}},
	}
	for _, fe := range cases {
		_, err := fe.entry()
		require.Error(t, err, "%+v", fe)
	}
}

func TestCallRPCAgainstServer(t *testing.T) {
	account := types.AccountID{0x33}
	store, err := ledger.OpenStore(storage.NewMemDB())
	require.NoError(t, err)
	_, err = store.Commit(ledger.Header{Sequence: 2}, []*types.Entry{{
		Type:   types.EntryTypeAccountRoot,
		Key:    keylet.Account(account).Key,
		Fields: map[string]any{"Balance": "1"},
	}})
	require.NoError(t, err)

	ts := httptest.NewServer(rpc.NewServer(store, rpc.ServerConfig{}).Handler())
	defer ts.Close()

	params, err := json.Marshal(map[string]any{"account_root": crypto.EncodeAccountID(account)})
	require.NoError(t, err)
	result, err := callRPC(http.DefaultClient, ts.URL, "ledger_entry", params)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(result, &doc))
	require.Equal(t, keylet.Account(account).Key.String(), doc["index"])

	_, err = callRPC(http.DefaultClient, ts.URL, "ledger_entry", json.RawMessage(`{"ledger_index":99}`))
	require.ErrorContains(t, err, "ledgerNotFound")

	_, err = callRPC(http.DefaultClient, ts.URL, "ledger_entry", json.RawMessage(`{`))
	require.Error(t, err)
}

func TestGenerateKeyPair(t *testing.T) {
	for _, kind := range []string{"secp256k1", "ed25519"} {
		pair, err := generateKeyPair(kind)
		require.NoError(t, err)
		require.Equal(t, kind, pair.Type)
		require.Len(t, pair.PublicKey, crypto.PublicKeyLength)
		id, err := crypto.AccountIDFromPublicKey(pair.PublicKey)
		require.NoError(t, err)
		require.Equal(t, crypto.EncodeAccountID(id), pair.Address)
	}
	_, err := generateKeyPair("rsa")
	require.Error(t, err)
}

func TestKeystoreWriteAndOpen(t *testing.T) {
	t.Setenv(passphrase.EnvVar, "keystore-secret")
	path := filepath.Join(t.TempDir(), "keys", "validator.json")

	pair, err := generateKeyPair("secp256k1")
	require.NoError(t, err)
	require.NoError(t, writeKeystore(path, pair, passphrase.NewPrompter(passphrase.EnvVar), false))

	key, err := openKeystore(path, passphrase.NewPrompter(passphrase.EnvVar))
	require.NoError(t, err)
	require.Equal(t, pair.Address, crypto.EncodeAccountID(key.AccountID()))

	other, err := generateKeyPair("secp256k1")
	require.NoError(t, err)
	require.Error(t, writeKeystore(path, other, passphrase.NewPrompter(passphrase.EnvVar), false))
	require.NoError(t, writeKeystore(path, other, passphrase.NewPrompter(passphrase.EnvVar), true))

	edPair, err := generateKeyPair("ed25519")
	require.NoError(t, err)
	require.Error(t, writeKeystore(filepath.Join(t.TempDir(), "ed.json"), edPair, passphrase.NewPrompter(passphrase.EnvVar), false))

	t.Setenv(passphrase.EnvVar, "short")
	require.ErrorIs(t, writeKeystore(filepath.Join(t.TempDir(), "weak.json"), pair, passphrase.NewPrompter(passphrase.EnvVar), false), passphrase.ErrTooShort)
}
