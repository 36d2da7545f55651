package ledger

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"ledgerd/core/types"
	"ledgerd/storage"
)

func entry(b byte, t types.EntryType) *types.Entry {
	var key types.Hash256
	key[0] = b
	key[31] = b
	return &types.Entry{Type: t, Key: key, Fields: map[string]any{"Flags": uint64(b)}}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(storage.NewMemDB())
	require.NoError(t, err)
	return s
}

func TestStoreCommitAndResolve(t *testing.T) {
	s := newStore(t)

	_, err := s.Resolve(DefaultSelector())
	require.True(t, errors.Is(err, ErrLedgerNotFound))

	first, err := s.Commit(Header{Sequence: 5, CloseTime: 100, Validated: true}, []*types.Entry{entry(1, types.EntryTypeAccountRoot)})
	require.NoError(t, err)
	require.False(t, first.Hash.IsZero())

	second, err := s.Commit(Header{Sequence: 6, ParentHash: first.Hash, CloseTime: 110}, []*types.Entry{
		entry(1, types.EntryTypeAccountRoot),
		entry(2, types.EntryTypeOffer),
	})
	require.NoError(t, err)
	require.NotEqual(t, first.Hash, second.Hash)

	current, err := s.Resolve(DefaultSelector())
	require.NoError(t, err)
	require.Equal(t, uint32(6), current.Header().Sequence)

	validated, err := s.Resolve(Selector{Shortcut: ShortcutValidated})
	require.NoError(t, err)
	require.Equal(t, uint32(5), validated.Header().Sequence)

	byHash, err := s.Resolve(ByHash(first.Hash))
	require.NoError(t, err)
	require.Equal(t, uint32(5), byHash.Header().Sequence)

	got, err := byHash.Read(entry(2, types.EntryTypeOffer).Key)
	require.NoError(t, err)
	require.Nil(t, got, "ledger 5 never held the offer")

	got, err = current.Read(entry(2, types.EntryTypeOffer).Key)
	require.NoError(t, err)
	require.Equal(t, types.EntryTypeOffer, got.Type)
	require.Equal(t, uint64(2), got.Fields["Flags"])

	_, err = s.Resolve(BySequence(99))
	require.True(t, errors.Is(err, ErrLedgerNotFound))
	require.False(t, IsParamError(err))
}

func TestStoreReopenRestoresPointers(t *testing.T) {
	db := storage.NewMemDB()
	s, err := OpenStore(db)
	require.NoError(t, err)
	_, err = s.Commit(Header{Sequence: 3, Validated: true}, []*types.Entry{entry(9, types.EntryTypeTicket)})
	require.NoError(t, err)

	reopened, err := OpenStore(db)
	require.NoError(t, err)
	latest, err := reopened.Latest()
	require.NoError(t, err)
	require.Equal(t, uint32(3), latest.Sequence)
	require.True(t, latest.Validated)
}

func TestStoreRejectsBadCommits(t *testing.T) {
	s := newStore(t)
	_, err := s.Commit(Header{}, nil)
	require.Error(t, err)
	_, err = s.Commit(Header{Sequence: 1}, []*types.Entry{{Type: types.EntryTypeCheck}})
	require.Error(t, err)
	_, err = s.Commit(Header{Sequence: 1}, []*types.Entry{entry(1, types.EntryTypeCheck), entry(1, types.EntryTypeCheck)})
	require.Error(t, err)
}

func TestStoreConcurrentReads(t *testing.T) {
	s := newStore(t)
	_, err := s.Commit(Header{Sequence: 1}, []*types.Entry{entry(4, types.EntryTypeEscrow)})
	require.NoError(t, err)
	snap, err := s.Resolve(BySequence(1))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := snap.Read(entry(4, types.EntryTypeEscrow).Key)
			if err != nil || got == nil {
				t.Errorf("concurrent read failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestParseSelector(t *testing.T) {
	hash := strings.Repeat("AB", 32)
	cases := []struct {
		name   string
		params map[string]any
		want   Selector
		errMsg string
	}{
		{name: "default", params: map[string]any{}, want: DefaultSelector()},
		{name: "validated", params: map[string]any{"ledger_index": "validated"}, want: Selector{Shortcut: ShortcutValidated}},
		{name: "numeric string", params: map[string]any{"ledger_index": "42"}, want: BySequence(42)},
		{name: "number", params: map[string]any{"ledger_index": json.Number("7")}, want: BySequence(7)},
		{name: "float", params: map[string]any{"ledger_index": float64(8)}, want: BySequence(8)},
		{name: "bad index", params: map[string]any{"ledger_index": "latest"}, errMsg: "ledgerIndexMalformed"},
		{name: "negative", params: map[string]any{"ledger_index": json.Number("-1")}, errMsg: "ledgerIndexMalformed"},
		{name: "object index", params: map[string]any{"ledger_index": map[string]any{}}, errMsg: "ledgerIndexMalformed"},
		{name: "bad hash", params: map[string]any{"ledger_hash": "abc"}, errMsg: "ledgerHashMalformed"},
		{name: "hash not string", params: map[string]any{"ledger_hash": json.Number("1")}, errMsg: "ledgerHashNotString"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSelector(tc.params)
			if tc.errMsg != "" {
				require.Error(t, err)
				require.True(t, IsParamError(err))
				var lookupErr *LookupError
				require.True(t, errors.As(err, &lookupErr))
				require.Equal(t, "invalidParams", lookupErr.Code)
				require.Equal(t, tc.errMsg, lookupErr.Message)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	sel, err := ParseSelector(map[string]any{"ledger_hash": hash, "ledger_index": "junk"})
	require.NoError(t, err)
	require.NotNil(t, sel.Hash)
	require.Equal(t, hash, sel.Hash.String())
}

func TestMemSnapshotReturnsCopies(t *testing.T) {
	e := entry(3, types.EntryTypeHook)
	snap := NewMemSnapshot(Header{Sequence: 1}, e)
	got, err := snap.Read(e.Key)
	require.NoError(t, err)
	got.Fields["Flags"] = uint64(99)

	again, err := snap.Read(e.Key)
	require.NoError(t, err)
	require.Equal(t, uint64(3), again.Fields["Flags"])
	require.Len(t, snap.Entries(), 1)

	missing, err := snap.Read(types.Hash256{1})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestSelectorFromWire(t *testing.T) {
	sel, err := SelectorFromWire(nil, 0, "")
	require.NoError(t, err)
	require.Equal(t, DefaultSelector(), sel)

	sel, err = SelectorFromWire(nil, 12, "validated")
	require.NoError(t, err)
	require.Equal(t, BySequence(12), sel)

	sel, err = SelectorFromWire(make([]byte, 32), 12, "")
	require.NoError(t, err)
	require.NotNil(t, sel.Hash)

	_, err = SelectorFromWire([]byte{1, 2}, 0, "")
	require.True(t, IsParamError(err))

	_, err = SelectorFromWire(nil, 0, "latest")
	require.True(t, IsParamError(err))
}
