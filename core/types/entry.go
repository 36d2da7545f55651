package types

// Entry is a ledger object as read from a snapshot. Fields holds the
// object's named values: strings, integers, booleans, byte slices and nested
// lists or maps of the same.
type Entry struct {
	Type   EntryType
	Key    Hash256
	Fields map[string]any
}

// Clone returns a shallow copy with its own top-level field map.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	out := &Entry{Type: e.Type, Key: e.Key, Fields: make(map[string]any, len(e.Fields))}
	for k, v := range e.Fields {
		out.Fields[k] = v
	}
	return out
}
