package keylet

import "ledgerd/core/types"

// Deriver exposes the keylet functions through a value so callers can accept
// an interface and substitute fakes in tests.
type Deriver struct{}

func (Deriver) Account(id types.AccountID) types.Hash256 { return Account(id).Key }

func (Deriver) OwnerDir(id types.AccountID) types.Hash256 { return OwnerDir(id).Key }

func (Deriver) Page(root types.Hash256, index uint64) types.Hash256 { return Page(root, index).Key }

func (Deriver) DepositPreauth(owner, authorized types.AccountID) types.Hash256 {
	return DepositPreauth(owner, authorized).Key
}

func (Deriver) Escrow(owner types.AccountID, seq uint32) types.Hash256 { return Escrow(owner, seq).Key }

func (Deriver) EmittedTxn(id types.Hash256) types.Hash256 { return EmittedTxn(id).Key }

func (Deriver) ImportVLSeq(publicKey []byte) types.Hash256 { return ImportVLSeq(publicKey).Key }

func (Deriver) Offer(account types.AccountID, seq uint32) types.Hash256 { return Offer(account, seq).Key }

func (Deriver) URIToken(issuer types.AccountID, uri []byte) types.Hash256 {
	return URIToken(issuer, uri).Key
}

func (Deriver) Line(a, b types.AccountID, currency types.Currency) types.Hash256 {
	return Line(a, b, currency).Key
}

func (Deriver) Ticket(account types.AccountID, seq uint32) types.Hash256 {
	return Ticket(account, seq).Key
}

func (Deriver) Hook(account types.AccountID) types.Hash256 { return Hook(account).Key }

func (Deriver) HookDefinition(hash types.Hash256) types.Hash256 { return HookDefinition(hash).Key }

func (Deriver) HookState(account types.AccountID, key, ns types.Hash256) types.Hash256 {
	return HookState(account, key, ns).Key
}
