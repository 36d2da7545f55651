// Package keylet derives the canonical storage keys of ledger objects. Every
// key is the first half of a SHA-512 digest over a two byte namespace tag
// followed by the object's identifying fields.
package keylet

import (
	"crypto/sha512"
	"encoding/binary"

	"ledgerd/core/types"
)

type namespace uint16

const (
	nsAccount        namespace = 'a'
	nsDirNode        namespace = 'd'
	nsTrustLine      namespace = 'r'
	nsOffer          namespace = 'o'
	nsOwnerDir       namespace = 'O'
	nsEscrow         namespace = 'u'
	nsTicket         namespace = 'T'
	nsPayChannel     namespace = 'x'
	nsCheck          namespace = 'C'
	nsDepositPreauth namespace = 'p'
	nsHook           namespace = 'H'
	nsHookState      namespace = 'v'
	nsHookDefinition namespace = 'D'
	nsEmittedTxn     namespace = 'E'
	nsURIToken       namespace = 'U'
	nsImportVLSeq    namespace = 'I'
)

// Keylet pairs a derived key with the entry type stored under it.
type Keylet struct {
	Type types.EntryType
	Key  types.Hash256
}

type hasher struct {
	buf []byte
}

func newHasher(ns namespace) *hasher {
	h := &hasher{buf: make([]byte, 0, 128)}
	h.buf = binary.BigEndian.AppendUint16(h.buf, uint16(ns))
	return h
}

func (h *hasher) bytes(b []byte) *hasher {
	h.buf = append(h.buf, b...)
	return h
}

func (h *hasher) u32(v uint32) *hasher {
	h.buf = binary.BigEndian.AppendUint32(h.buf, v)
	return h
}

func (h *hasher) u64(v uint64) *hasher {
	h.buf = binary.BigEndian.AppendUint64(h.buf, v)
	return h
}

func (h *hasher) sum() types.Hash256 {
	digest := sha512.Sum512(h.buf)
	var out types.Hash256
	copy(out[:], digest[:types.HashLength])
	return out
}

// Account locates an account root.
func Account(id types.AccountID) Keylet {
	return Keylet{types.EntryTypeAccountRoot, newHasher(nsAccount).bytes(id[:]).sum()}
}

// OwnerDir locates the root page of an account's owner directory.
func OwnerDir(id types.AccountID) Keylet {
	return Keylet{types.EntryTypeDirectoryNode, newHasher(nsOwnerDir).bytes(id[:]).sum()}
}

// Page locates page index of the directory rooted at root. Page zero is the
// root itself.
func Page(root types.Hash256, index uint64) Keylet {
	if index == 0 {
		return Keylet{types.EntryTypeDirectoryNode, root}
	}
	return Keylet{types.EntryTypeDirectoryNode, newHasher(nsDirNode).bytes(root[:]).u64(index).sum()}
}

// DepositPreauth locates the preauthorization of authorized by owner.
func DepositPreauth(owner, authorized types.AccountID) Keylet {
	return Keylet{types.EntryTypeDepositPreauth, newHasher(nsDepositPreauth).bytes(owner[:]).bytes(authorized[:]).sum()}
}

// Escrow locates the escrow created by owner with sequence seq.
func Escrow(owner types.AccountID, seq uint32) Keylet {
	return Keylet{types.EntryTypeEscrow, newHasher(nsEscrow).bytes(owner[:]).u32(seq).sum()}
}

// EmittedTxn locates the emitted transaction with the given id.
func EmittedTxn(id types.Hash256) Keylet {
	return Keylet{types.EntryTypeEmittedTxn, newHasher(nsEmittedTxn).bytes(id[:]).sum()}
}

// ImportVLSeq locates the validator list sequence tracked for a publisher
// key.
func ImportVLSeq(publicKey []byte) Keylet {
	return Keylet{types.EntryTypeImportVLSeq, newHasher(nsImportVLSeq).bytes(publicKey).sum()}
}

// Offer locates the offer placed by account with sequence seq.
func Offer(account types.AccountID, seq uint32) Keylet {
	return Keylet{types.EntryTypeOffer, newHasher(nsOffer).bytes(account[:]).u32(seq).sum()}
}

// URIToken locates the token minted by issuer for uri.
func URIToken(issuer types.AccountID, uri []byte) Keylet {
	return Keylet{types.EntryTypeURIToken, newHasher(nsURIToken).bytes(issuer[:]).bytes(uri).sum()}
}

// Line locates the trust line between two accounts. The accounts are hashed
// in ascending order so Line(a, b, c) == Line(b, a, c).
func Line(a, b types.AccountID, currency types.Currency) Keylet {
	low, high := a, b
	if high.Less(low) {
		low, high = high, low
	}
	return Keylet{types.EntryTypeRippleState, newHasher(nsTrustLine).bytes(low[:]).bytes(high[:]).bytes(currency[:]).sum()}
}

// Ticket locates the ticket of account with sequence seq.
func Ticket(account types.AccountID, seq uint32) Keylet {
	return Keylet{types.EntryTypeTicket, newHasher(nsTicket).bytes(account[:]).u32(seq).sum()}
}

// Hook locates the hook set of an account.
func Hook(account types.AccountID) Keylet {
	return Keylet{types.EntryTypeHook, newHasher(nsHook).bytes(account[:]).sum()}
}

// HookDefinition locates a hook definition by its code hash.
func HookDefinition(hash types.Hash256) Keylet {
	return Keylet{types.EntryTypeHookDefinition, newHasher(nsHookDefinition).bytes(hash[:]).sum()}
}

// HookState locates one hook state value.
func HookState(account types.AccountID, key, ns types.Hash256) Keylet {
	return Keylet{types.EntryTypeHookState, newHasher(nsHookState).bytes(account[:]).bytes(key[:]).bytes(ns[:]).sum()}
}

// Check locates a check by its creating transaction's sequence.
func Check(account types.AccountID, seq uint32) Keylet {
	return Keylet{types.EntryTypeCheck, newHasher(nsCheck).bytes(account[:]).u32(seq).sum()}
}

// PayChannel locates a payment channel.
func PayChannel(src, dst types.AccountID, seq uint32) Keylet {
	return Keylet{types.EntryTypePayChannel, newHasher(nsPayChannel).bytes(src[:]).bytes(dst[:]).u32(seq).sum()}
}
