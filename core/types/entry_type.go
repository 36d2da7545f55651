package types

import "fmt"

// EntryType is the discriminator stored with every ledger object.
type EntryType uint16

// EntryTypeAny is the wildcard used when a lookup accepts any stored type.
// No persisted object carries it.
const EntryTypeAny EntryType = 0

const (
	EntryTypeAccountRoot     EntryType = 0x0061
	EntryTypeDirectoryNode   EntryType = 0x0064
	EntryTypeRippleState     EntryType = 0x0072
	EntryTypeTicket          EntryType = 0x0054
	EntryTypeSignerList      EntryType = 0x0053
	EntryTypeOffer           EntryType = 0x006f
	EntryTypeLedgerHashes    EntryType = 0x0068
	EntryTypeAmendments      EntryType = 0x0066
	EntryTypeFeeSettings     EntryType = 0x0073
	EntryTypeEscrow          EntryType = 0x0075
	EntryTypePayChannel      EntryType = 0x0078
	EntryTypeCheck           EntryType = 0x0043
	EntryTypeDepositPreauth  EntryType = 0x0070
	EntryTypeNegativeUNL     EntryType = 0x004e
	EntryTypeNFTokenPage     EntryType = 0x0050
	EntryTypeNFTokenOffer    EntryType = 0x0037
	EntryTypeHook            EntryType = 0x0048
	EntryTypeHookDefinition  EntryType = 0x0044
	EntryTypeHookState       EntryType = 0x0076
	EntryTypeEmittedTxn      EntryType = 0x0045
	EntryTypeURIToken        EntryType = 0x0055
	EntryTypeImportVLSeq     EntryType = 0x0049
	EntryTypeUNLReport       EntryType = 0x0052
)

var entryTypeNames = map[EntryType]string{
	EntryTypeAccountRoot:    "AccountRoot",
	EntryTypeDirectoryNode:  "DirectoryNode",
	EntryTypeRippleState:    "RippleState",
	EntryTypeTicket:         "Ticket",
	EntryTypeSignerList:     "SignerList",
	EntryTypeOffer:          "Offer",
	EntryTypeLedgerHashes:   "LedgerHashes",
	EntryTypeAmendments:     "Amendments",
	EntryTypeFeeSettings:    "FeeSettings",
	EntryTypeEscrow:         "Escrow",
	EntryTypePayChannel:     "PayChannel",
	EntryTypeCheck:          "Check",
	EntryTypeDepositPreauth: "DepositPreauth",
	EntryTypeNegativeUNL:    "NegativeUNL",
	EntryTypeNFTokenPage:    "NFTokenPage",
	EntryTypeNFTokenOffer:   "NFTokenOffer",
	EntryTypeHook:           "Hook",
	EntryTypeHookDefinition: "HookDefinition",
	EntryTypeHookState:      "HookState",
	EntryTypeEmittedTxn:     "EmittedTxn",
	EntryTypeURIToken:       "URIToken",
	EntryTypeImportVLSeq:    "ImportVLSequence",
	EntryTypeUNLReport:      "UNLReport",
}

var entryTypesByName = func() map[string]EntryType {
	out := make(map[string]EntryType, len(entryTypeNames))
	for t, name := range entryTypeNames {
		out[name] = t
	}
	return out
}()

// String returns the canonical entry type name.
func (t EntryType) String() string {
	if t == EntryTypeAny {
		return "Any"
	}
	if name, ok := entryTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%04x", uint16(t))
}

// Known reports whether t is a concrete, recognised entry type.
func (t EntryType) Known() bool {
	_, ok := entryTypeNames[t]
	return ok
}

// ParseEntryType resolves a canonical entry type name.
func ParseEntryType(name string) (EntryType, error) {
	if t, ok := entryTypesByName[name]; ok {
		return t, nil
	}
	return EntryTypeAny, fmt.Errorf("unknown ledger entry type %q", name)
}
