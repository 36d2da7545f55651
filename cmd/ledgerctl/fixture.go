package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ledgerd/core/keylet"
	"ledgerd/core/types"
	"ledgerd/crypto"
	"ledgerd/ledger"
	"ledgerd/storage"
)

// fixtureFile is the on-disk description of one ledger. JSON fixtures are
// read through the same YAML decoder.
type fixtureFile struct {
	Ledger  fixtureLedger  `yaml:"ledger"`
	Entries []fixtureEntry `yaml:"entries"`
}

type fixtureLedger struct {
	Sequence  uint32 `yaml:"sequence"`
	CloseTime int64  `yaml:"close_time"`
	Validated bool   `yaml:"validated"`
}

type fixtureEntry struct {
	Type   string         `yaml:"type"`
	Index  string         `yaml:"index"`
	Fields map[string]any `yaml:"fields"`
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dataDir := fs.String("data-dir", "./ledgerd-data", "Data directory of the ledger store")
	backend := fs.String("backend", storage.BackendLevelDB, "Storage backend (leveldb or bolt)")
	file := fs.String("file", "", "Fixture file (YAML or JSON)")
	validated := fs.Bool("validated", false, "Mark the ledger validated regardless of the fixture")
	fs.Parse(args)

	if strings.TrimSpace(*file) == "" {
		return errors.New("-file is required")
	}
	fixture, err := loadFixture(*file)
	if err != nil {
		return err
	}
	if *validated {
		fixture.Ledger.Validated = true
	}

	db, err := storage.Open(*backend, *dataDir)
	if err != nil {
		return err
	}
	defer db.Close()
	store, err := ledger.OpenStore(db)
	if err != nil {
		return err
	}
	header, err := importFixture(store, fixture)
	if err != nil {
		return err
	}
	fmt.Printf("Imported ledger %d (%s) with %d objects\n", header.Sequence, header.Hash, len(fixture.Entries))
	return nil
}

func loadFixture(path string) (*fixtureFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixture fixtureFile
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &fixture, nil
}

// importFixture commits the fixture as the next ledger. A missing sequence
// follows the store's latest ledger and the parent hash always does.
func importFixture(store *ledger.Store, fixture *fixtureFile) (ledger.Header, error) {
	header := ledger.Header{
		Sequence:  fixture.Ledger.Sequence,
		CloseTime: fixture.Ledger.CloseTime,
		Validated: fixture.Ledger.Validated,
	}
	if latest, err := store.Latest(); err == nil {
		header.ParentHash = latest.Hash
		if header.Sequence == 0 {
			header.Sequence = latest.Sequence + 1
		}
	} else if header.Sequence == 0 {
		header.Sequence = 1
	}

	entries := make([]*types.Entry, 0, len(fixture.Entries))
	for i, fe := range fixture.Entries {
		entry, err := fe.entry()
		if err != nil {
			return ledger.Header{}, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return store.Commit(header, entries)
}

func (fe fixtureEntry) entry() (*types.Entry, error) {
	t, err := types.ParseEntryType(fe.Type)
	if err != nil {
		return nil, err
	}
	fields := fe.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	if fe.Index != "" {
		key, ok := types.ParseHash256(fe.Index)
		if !ok {
			return nil, fmt.Errorf("index %q is not a 256-bit hex value", fe.Index)
		}
		return &types.Entry{Type: t, Key: key, Fields: fields}, nil
	}
	if t != types.EntryTypeAccountRoot {
		return nil, fmt.Errorf("%s entries need an explicit index", fe.Type)
	}
	address, _ := fields["Account"].(string)
	id, err := crypto.DecodeAccountID(address)
	if err != nil {
		return nil, fmt.Errorf("account root without index: %w", err)
	}
	return &types.Entry{Type: t, Key: keylet.Account(id).Key, Fields: fields}, nil
}
