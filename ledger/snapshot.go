package ledger

import "ledgerd/core/types"

// Snapshot is an immutable view of every object in one ledger. Reads are
// unchecked: the stored type tag is returned as-is for the caller to judge.
// Read returns nil, nil when nothing is stored under key. Implementations
// must allow concurrent reads.
type Snapshot interface {
	Header() Header
	Read(key types.Hash256) (*types.Entry, error)
}

// MemSnapshot is a map-backed Snapshot for tests and fixtures. The map is
// never written after construction.
type MemSnapshot struct {
	header  Header
	entries map[types.Hash256]*types.Entry
}

// NewMemSnapshot builds a snapshot holding entries.
func NewMemSnapshot(header Header, entries ...*types.Entry) *MemSnapshot {
	s := &MemSnapshot{header: header, entries: make(map[types.Hash256]*types.Entry, len(entries))}
	for _, e := range entries {
		s.entries[e.Key] = e.Clone()
	}
	return s
}

func (s *MemSnapshot) Header() Header {
	return s.header
}

func (s *MemSnapshot) Read(key types.Hash256) (*types.Entry, error) {
	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return e.Clone(), nil
}

// Entries returns copies of every held entry.
func (s *MemSnapshot) Entries() []*types.Entry {
	out := make([]*types.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	return out
}
