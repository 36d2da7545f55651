package ledgerentry

import (
	"ledgerd/core/types"
	"ledgerd/crypto"
)

// Shape names one request grammar.
type Shape int

const (
	ShapeIndex Shape = iota
	ShapeAccountRoot
	ShapeCheck
	ShapeDepositPreauth
	ShapeDirectory
	ShapeEscrow
	ShapeEmittedTxn
	ShapeImportVLSeq
	ShapeOffer
	ShapePaymentChannel
	ShapeURIToken
	ShapeRippleState
	ShapeTicket
	ShapeHook
	ShapeHookDefinition
	ShapeHookState
	ShapeNFTPage
	ShapeLegacy
	ShapeUnknown
)

var shapeNames = [...]string{
	ShapeIndex:          "index",
	ShapeAccountRoot:    "account_root",
	ShapeCheck:          "check",
	ShapeDepositPreauth: "deposit_preauth",
	ShapeDirectory:      "directory",
	ShapeEscrow:         "escrow",
	ShapeEmittedTxn:     "emitted_txn",
	ShapeImportVLSeq:    "import_vlseq",
	ShapeOffer:          "offer",
	ShapePaymentChannel: "payment_channel",
	ShapeURIToken:       "uri_token",
	ShapeRippleState:    "ripple_state",
	ShapeTicket:         "ticket",
	ShapeHook:           "hook",
	ShapeHookDefinition: "hook_definition",
	ShapeHookState:      "hook_state",
	ShapeNFTPage:        "nft_page",
	ShapeLegacy:         "params",
	ShapeUnknown:        "unknown",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// KeyDeriver maps validated fields onto ledger keys. keylet.Deriver is the
// production implementation.
type KeyDeriver interface {
	Account(id types.AccountID) types.Hash256
	OwnerDir(id types.AccountID) types.Hash256
	Page(root types.Hash256, index uint64) types.Hash256
	DepositPreauth(owner, authorized types.AccountID) types.Hash256
	Escrow(owner types.AccountID, seq uint32) types.Hash256
	EmittedTxn(id types.Hash256) types.Hash256
	ImportVLSeq(publicKey []byte) types.Hash256
	Offer(account types.AccountID, seq uint32) types.Hash256
	URIToken(issuer types.AccountID, uri []byte) types.Hash256
	Line(a, b types.AccountID, currency types.Currency) types.Hash256
	Ticket(account types.AccountID, seq uint32) types.Hash256
	Hook(account types.AccountID) types.Hash256
	HookDefinition(hash types.Hash256) types.Hash256
	HookState(account types.AccountID, key, ns types.Hash256) types.Hash256
}

// validator checks one shape's member and derives its key. A non-nil error
// always comes with the zero key.
type validator func(v Value, d KeyDeriver) (types.Hash256, *Error)

func rejected(code ErrorCode) (types.Hash256, *Error) {
	return types.ZeroHash, fail(code)
}

func derived(key types.Hash256) (types.Hash256, *Error) {
	return key, nil
}

func hex256(v Value) (types.Hash256, bool) {
	return types.ParseHash256(v.String())
}

// rawKey accepts a value that must itself be the 64 hex digit key.
func rawKey(v Value) (types.Hash256, *Error) {
	key, ok := hex256(v)
	if !ok {
		return rejected(CodeMalformedRequest)
	}
	return derived(key)
}

func address(v Value) (types.AccountID, bool) {
	return crypto.ParseAccountID(v.String())
}

func validateIndex(v Value, _ KeyDeriver) (types.Hash256, *Error) {
	return rawKey(v)
}

func validateAccountRoot(v Value, d KeyDeriver) (types.Hash256, *Error) {
	id, ok := address(v)
	if !ok || id.IsZero() {
		return rejected(CodeMalformedAddress)
	}
	return derived(d.Account(id))
}

func validateDepositPreauth(v Value, d KeyDeriver) (types.Hash256, *Error) {
	if !v.IsObject() {
		if !v.IsString() {
			return rejected(CodeMalformedRequest)
		}
		return rawKey(v)
	}
	obj := v.Object()
	owner, authorized := obj.Get("owner"), obj.Get("authorized")
	if !owner.IsString() || !authorized.IsString() {
		return rejected(CodeMalformedRequest)
	}
	ownerID, ok := address(owner)
	if !ok {
		return rejected(CodeMalformedOwner)
	}
	authorizedID, ok := address(authorized)
	if !ok {
		return rejected(CodeMalformedAuthorized)
	}
	return derived(d.DepositPreauth(ownerID, authorizedID))
}

func validateDirectory(v Value, d KeyDeriver) (types.Hash256, *Error) {
	if v.IsNull() {
		return rejected(CodeMalformedRequest)
	}
	if !v.IsObject() {
		return rawKey(v)
	}
	obj := v.Object()
	var subIndex uint32
	if sub := obj.Get("sub_index"); sub.Present() {
		n, ok := sub.Uint32()
		if !ok {
			return rejected(CodeMalformedRequest)
		}
		subIndex = n
	}
	switch {
	case obj.Has("dir_root"):
		if obj.Has("owner") {
			return rejected(CodeMalformedRequest)
		}
		root, ok := hex256(obj.Get("dir_root"))
		if !ok {
			return rejected(CodeMalformedRequest)
		}
		return derived(d.Page(root, uint64(subIndex)))
	case obj.Has("owner"):
		owner, ok := address(obj.Get("owner"))
		if !ok {
			return rejected(CodeMalformedAddress)
		}
		return derived(d.Page(d.OwnerDir(owner), uint64(subIndex)))
	default:
		return rejected(CodeMalformedRequest)
	}
}

// sequenced validates the common {<account member>, <seq member>} object
// form shared by escrows, offers and tickets.
func sequenced(v Value, accountField, seqField string, badAccount ErrorCode, derive func(types.AccountID, uint32) types.Hash256) (types.Hash256, *Error) {
	if !v.IsObject() {
		return rawKey(v)
	}
	obj := v.Object()
	if !obj.Has(accountField) {
		return rejected(CodeMalformedRequest)
	}
	seq, ok := obj.Get(seqField).Uint32()
	if !ok {
		return rejected(CodeMalformedRequest)
	}
	id, ok := address(obj.Get(accountField))
	if !ok {
		return rejected(badAccount)
	}
	return derived(derive(id, seq))
}

func validateEscrow(v Value, d KeyDeriver) (types.Hash256, *Error) {
	return sequenced(v, "owner", "seq", CodeMalformedOwner, d.Escrow)
}

func validateOffer(v Value, d KeyDeriver) (types.Hash256, *Error) {
	return sequenced(v, "account", "seq", CodeMalformedAddress, d.Offer)
}

func validateTicket(v Value, d KeyDeriver) (types.Hash256, *Error) {
	return sequenced(v, "account", "ticket_seq", CodeMalformedAddress, d.Ticket)
}

// validateEmittedTxn leaves an object form without a key and without an
// error, so the request answers with the bare ledger descriptor.
func validateEmittedTxn(v Value, d KeyDeriver) (types.Hash256, *Error) {
	if v.IsObject() {
		return types.ZeroHash, nil
	}
	id, ok := hex256(v)
	if !ok {
		return rejected(CodeMalformedRequest)
	}
	return derived(d.EmittedTxn(id))
}

func validateImportVLSeq(v Value, d KeyDeriver) (types.Hash256, *Error) {
	if !v.IsObject() {
		return rawKey(v)
	}
	pk := v.Object().Get("public_key")
	if !pk.IsString() {
		return rejected(CodeMalformedRequest)
	}
	raw, err := crypto.DecodePublicKeyHex(pk.String())
	if err != nil {
		return rejected(CodeMalformedRequest)
	}
	return derived(d.ImportVLSeq(raw))
}

func validateURIToken(v Value, d KeyDeriver) (types.Hash256, *Error) {
	if !v.IsObject() {
		return rawKey(v)
	}
	obj := v.Object()
	if !obj.Has("account") || !obj.Get("uri").IsString() {
		return rejected(CodeMalformedRequest)
	}
	id, ok := address(obj.Get("account"))
	if !ok {
		return rejected(CodeMalformedAddress)
	}
	return derived(d.URIToken(id, []byte(obj.Get("uri").String())))
}

func validateRippleState(v Value, d KeyDeriver) (types.Hash256, *Error) {
	obj := v.Object()
	if obj == nil || !obj.Has("currency") {
		return rejected(CodeMalformedRequest)
	}
	accounts := obj.Get("accounts").Array()
	if len(accounts) != 2 || !accounts[0].IsString() || !accounts[1].IsString() ||
		accounts[0].String() == accounts[1].String() {
		return rejected(CodeMalformedRequest)
	}
	first, ok1 := address(accounts[0])
	second, ok2 := address(accounts[1])
	if !ok1 || !ok2 {
		return rejected(CodeMalformedAddress)
	}
	currency, ok := types.ParseCurrency(obj.Get("currency").String())
	if !ok {
		return rejected(CodeMalformedCurrency)
	}
	return derived(d.Line(first, second, currency))
}

func validateHook(v Value, d KeyDeriver) (types.Hash256, *Error) {
	if !v.IsObject() {
		return rawKey(v)
	}
	obj := v.Object()
	if !obj.Has("account") {
		return rejected(CodeMalformedRequest)
	}
	id, ok := address(obj.Get("account"))
	if !ok {
		return rejected(CodeMalformedAddress)
	}
	return derived(d.Hook(id))
}

func validateHookDefinition(v Value, d KeyDeriver) (types.Hash256, *Error) {
	if v.IsObject() {
		return rejected(CodeMalformedRequest)
	}
	hash, ok := hex256(v)
	if !ok {
		return rejected(CodeMalformedRequest)
	}
	return derived(d.HookDefinition(hash))
}

func validateHookState(v Value, d KeyDeriver) (types.Hash256, *Error) {
	obj := v.Object()
	if obj == nil {
		return rejected(CodeMalformedRequest)
	}
	account, key, ns := obj.Get("account"), obj.Get("key"), obj.Get("namespace_id")
	if !account.IsString() || !key.IsString() || !ns.IsString() {
		return rejected(CodeMalformedRequest)
	}
	id, ok := address(account)
	if !ok {
		return rejected(CodeMalformedAddress)
	}
	stateKey, ok := hex256(key)
	if !ok {
		return rejected(CodeMalformedRequest)
	}
	namespace, ok := hex256(ns)
	if !ok {
		return rejected(CodeMalformedRequest)
	}
	return derived(d.HookState(id, stateKey, namespace))
}

func validateNFTPage(v Value, _ KeyDeriver) (types.Hash256, *Error) {
	if !v.IsString() {
		return rejected(CodeMalformedRequest)
	}
	return rawKey(v)
}

// validateLegacy handles {"params": ["<hex key>"]}. Anything else is an
// unrecognised request.
func validateLegacy(v Value, _ KeyDeriver) (types.Hash256, *Error) {
	items := v.Array()
	if len(items) != 1 || !items[0].IsString() {
		return rejected(CodeUnknownOption)
	}
	return rawKey(items[0])
}
