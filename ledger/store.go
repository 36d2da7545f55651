package ledger

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"sync"

	"ledgerd/codec"
	"ledgerd/core/types"
	"ledgerd/observability"
	"ledgerd/storage"
)

var (
	headerPrefix     = []byte("hdr:")
	hashIndexPrefix  = []byte("hash:")
	entryPrefix      = []byte("ent:")
	latestKey        = []byte("meta:latest")
	latestClosedKey  = []byte("meta:closed")
	latestValidKey   = []byte("meta:validated")
	errStoreNotReady = errors.New("ledger: store not initialised")
)

func headerKey(seq uint32) []byte {
	return binary.BigEndian.AppendUint32(append([]byte(nil), headerPrefix...), seq)
}

func hashIndexKey(h types.Hash256) []byte {
	return append(append([]byte(nil), hashIndexPrefix...), h[:]...)
}

func entryKey(seq uint32, key types.Hash256) []byte {
	buf := binary.BigEndian.AppendUint32(append([]byte(nil), entryPrefix...), seq)
	return append(buf, key[:]...)
}

// Store keeps closed ledgers in a key-value database. Every committed ledger
// holds its complete object set, so a snapshot never consults another
// ledger.
type Store struct {
	db storage.Database

	mu        sync.RWMutex
	latest    uint32
	closed    uint32
	validated uint32
	hasLedger bool
}

// OpenStore loads the ledger pointers persisted in db.
func OpenStore(db storage.Database) (*Store, error) {
	if db == nil {
		return nil, errStoreNotReady
	}
	s := &Store{db: db}
	for _, ptr := range []struct {
		key []byte
		dst *uint32
	}{
		{latestKey, &s.latest},
		{latestClosedKey, &s.closed},
		{latestValidKey, &s.validated},
	} {
		raw, err := db.Get(ptr.key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("ledger: load %s: %w", ptr.key, err)
		}
		if len(raw) != 4 {
			return nil, fmt.Errorf("ledger: corrupt pointer %s", ptr.key)
		}
		*ptr.dst = binary.BigEndian.Uint32(raw)
		s.hasLedger = true
	}
	return s, nil
}

// Commit persists a ledger and its complete object set. A zero header hash
// is filled with a digest of the parent hash, the sequence and the encoded
// objects. The committed header is returned.
func (s *Store) Commit(header Header, entries []*types.Entry) (Header, error) {
	if s == nil || s.db == nil {
		return Header{}, errStoreNotReady
	}
	if header.Sequence == 0 {
		return Header{}, fmt.Errorf("ledger: sequence must be positive")
	}
	ordered := append([]*types.Entry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i].Key[:], ordered[j].Key[:]) < 0
	})

	batch := new(storage.Batch)
	digest := sha512.New()
	digest.Write(header.ParentHash[:])
	digest.Write(binary.BigEndian.AppendUint32(nil, header.Sequence))
	for i, e := range ordered {
		if e == nil || e.Key.IsZero() {
			return Header{}, fmt.Errorf("ledger: entry %d has no key", i)
		}
		if i > 0 && ordered[i-1].Key == e.Key {
			return Header{}, fmt.Errorf("ledger: duplicate entry %s", e.Key)
		}
		data, err := codec.Encode(e)
		if err != nil {
			return Header{}, err
		}
		digest.Write(e.Key[:])
		digest.Write(data)
		batch.Put(entryKey(header.Sequence, e.Key), data)
	}
	if header.Hash.IsZero() {
		copy(header.Hash[:], digest.Sum(nil)[:types.HashLength])
	}

	encodedHeader, err := codec.Marshal(header)
	if err != nil {
		return Header{}, err
	}
	batch.Put(headerKey(header.Sequence), encodedHeader)
	batch.Put(hashIndexKey(header.Hash), binary.BigEndian.AppendUint32(nil, header.Sequence))

	s.mu.Lock()
	defer s.mu.Unlock()
	latest, closed, validated := s.latest, s.closed, s.validated
	if header.Sequence >= latest {
		latest = header.Sequence
	}
	if header.Sequence >= closed {
		closed = header.Sequence
	}
	if header.Validated && header.Sequence >= validated {
		validated = header.Sequence
	}
	batch.Put(latestKey, binary.BigEndian.AppendUint32(nil, latest))
	batch.Put(latestClosedKey, binary.BigEndian.AppendUint32(nil, closed))
	if validated != 0 {
		batch.Put(latestValidKey, binary.BigEndian.AppendUint32(nil, validated))
	}
	if err := s.db.Write(batch); err != nil {
		return Header{}, fmt.Errorf("ledger: commit %d: %w", header.Sequence, err)
	}
	s.latest, s.closed, s.validated = latest, closed, validated
	s.hasLedger = true
	observability.Ledgers().RecordCommit(len(ordered), header.Validated)
	observability.Ledgers().SetPointers(closed, validated)
	return header, nil
}

// Resolve returns the snapshot the selector names.
func (s *Store) Resolve(sel Selector) (Snapshot, error) {
	if s == nil || s.db == nil {
		return nil, notFound("ledgerNotFound")
	}
	if sel.Hash != nil {
		raw, err := s.db.Get(hashIndexKey(*sel.Hash))
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("ledgerNotFound")
		}
		if err != nil {
			return nil, err
		}
		return s.load(binary.BigEndian.Uint32(raw))
	}

	s.mu.RLock()
	hasLedger, latest, closed, validated := s.hasLedger, s.latest, s.closed, s.validated
	s.mu.RUnlock()

	switch sel.Shortcut {
	case "":
		return s.load(sel.Sequence)
	case ShortcutCurrent:
		if !hasLedger {
			return nil, notFound("ledgerNotFound")
		}
		return s.load(latest)
	case ShortcutClosed:
		if !hasLedger {
			return nil, notFound("ledgerNotFound")
		}
		return s.load(closed)
	case ShortcutValidated:
		if validated == 0 {
			return nil, notFound("ledgerNotValidated")
		}
		return s.load(validated)
	default:
		return nil, invalidParams("ledgerIndexMalformed")
	}
}

// Latest returns the header of the most recently closed ledger.
func (s *Store) Latest() (Header, error) {
	snap, err := s.Resolve(Selector{Shortcut: ShortcutClosed})
	if err != nil {
		return Header{}, err
	}
	return snap.Header(), nil
}

func (s *Store) load(seq uint32) (Snapshot, error) {
	raw, err := s.db.Get(headerKey(seq))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("ledgerNotFound")
	}
	if err != nil {
		return nil, err
	}
	var header Header
	if err := codec.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("ledger: decode header %d: %w", seq, err)
	}
	return &storeSnapshot{db: s.db, header: header}, nil
}

type storeSnapshot struct {
	db     storage.Database
	header Header
}

func (s *storeSnapshot) Header() Header {
	return s.header
}

func (s *storeSnapshot) Read(key types.Hash256) (*types.Entry, error) {
	raw, err := s.db.Get(entryKey(s.header.Sequence, key))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return codec.Decode(key, raw)
}
