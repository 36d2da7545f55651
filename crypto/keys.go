package crypto

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"ledgerd/core/types"
)

// KeyType identifies the signing algorithm a raw public key belongs to.
type KeyType int

const (
	KeyTypeUnknown KeyType = iota
	KeyTypeSecp256k1
	KeyTypeEd25519
)

// PublicKeyLength is the size of every encoded public key.
const PublicKeyLength = 33

const ed25519Prefix byte = 0xED

func (t KeyType) String() string {
	switch t {
	case KeyTypeSecp256k1:
		return "secp256k1"
	case KeyTypeEd25519:
		return "ed25519"
	default:
		return "unknown"
	}
}

// PublicKeyType classifies raw public key bytes. Compressed secp256k1 keys
// start with 0x02 or 0x03; ed25519 keys carry a 0xED prefix byte.
func PublicKeyType(pub []byte) KeyType {
	if len(pub) != PublicKeyLength {
		return KeyTypeUnknown
	}
	switch pub[0] {
	case 0x02, 0x03:
		return KeyTypeSecp256k1
	case ed25519Prefix:
		return KeyTypeEd25519
	default:
		return KeyTypeUnknown
	}
}

// AccountIDFromPublicKey derives the account identifier of an encoded public
// key.
func AccountIDFromPublicKey(pub []byte) (types.AccountID, error) {
	var id types.AccountID
	if PublicKeyType(pub) == KeyTypeUnknown {
		return id, fmt.Errorf("crypto: unsupported public key encoding")
	}
	copy(id[:], btcutil.Hash160(pub))
	return id, nil
}

// --- Key Management ---

// PrivateKey wraps a secp256k1 signing key.
type PrivateKey struct {
	*ecdsa.PrivateKey
}

// GeneratePrivateKey creates a fresh secp256k1 key.
func GeneratePrivateKey() (*PrivateKey, error) {
	key, err := ecdsa.GenerateKey(ethcrypto.S256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key}, nil
}

// Bytes returns the 32-byte private scalar.
func (k *PrivateKey) Bytes() []byte {
	return ethcrypto.FromECDSA(k.PrivateKey)
}

// PublicKeyBytes returns the 33-byte compressed public key.
func (k *PrivateKey) PublicKeyBytes() []byte {
	return ethcrypto.CompressPubkey(&k.PrivateKey.PublicKey)
}

// AccountID returns the account controlled by the key.
func (k *PrivateKey) AccountID() types.AccountID {
	id, _ := AccountIDFromPublicKey(k.PublicKeyBytes())
	return id
}

func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	key, err := ethcrypto.ToECDSA(b)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key}, nil
}

// Ed25519PublicKey prefixes a raw ed25519 public key with its type byte.
func Ed25519PublicKey(pub ed25519.PublicKey) []byte {
	out := make([]byte, 0, PublicKeyLength)
	out = append(out, ed25519Prefix)
	return append(out, pub...)
}

// GenerateEd25519 returns a fresh ed25519 key pair with the public half in
// its prefixed ledger encoding.
func GenerateEd25519() ([]byte, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return Ed25519PublicKey(pub), priv, nil
}

// DecodePublicKeyHex decodes a hex encoded public key and checks its type.
func DecodePublicKeyHex(s string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("crypto: public key is not hex: %w", err)
	}
	if PublicKeyType(raw) == KeyTypeUnknown {
		return nil, fmt.Errorf("crypto: unsupported public key encoding")
	}
	return raw, nil
}
