package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"ledgerd/cmd/internal/passphrase"
	"ledgerd/crypto"
)

type keyPair struct {
	Type       string
	PublicKey  []byte
	PrivateKey []byte
	Address    string
	secp       *crypto.PrivateKey
}

func runKeygen(args []string) error {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	keyType := fs.String("type", "secp256k1", "Key type: secp256k1 or ed25519")
	keystorePath := fs.String("keystore", "", "Write a secp256k1 key to an encrypted keystore instead of printing it")
	overwrite := fs.Bool("overwrite", false, "Replace an existing keystore file")
	fs.Parse(args)

	pair, err := generateKeyPair(*keyType)
	if err != nil {
		return err
	}
	fmt.Printf("Type:       %s\n", pair.Type)
	fmt.Printf("Public key: %s\n", strings.ToUpper(hex.EncodeToString(pair.PublicKey)))
	fmt.Printf("Address:    %s\n", pair.Address)

	if *keystorePath == "" {
		fmt.Printf("Private key: %s\n", strings.ToUpper(hex.EncodeToString(pair.PrivateKey)))
		return nil
	}
	if err := writeKeystore(*keystorePath, pair, passphrase.NewPrompter(passphrase.EnvVar), *overwrite); err != nil {
		return err
	}
	fmt.Printf("Keystore:   %s\n", *keystorePath)
	return nil
}

func writeKeystore(path string, pair *keyPair, prompter *passphrase.Prompter, overwrite bool) error {
	if pair.secp == nil {
		return fmt.Errorf("keystores only hold secp256k1 keys")
	}
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("keystore %s already exists; pass -overwrite to replace it", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	pass, err := prompter.Passphrase(path, passphrase.Create)
	if err != nil {
		return err
	}
	return crypto.SaveToKeystore(path, pair.secp, pass)
}

func runKeyinfo(args []string) error {
	fs := flag.NewFlagSet("keyinfo", flag.ExitOnError)
	keystorePath := fs.String("keystore", "", "Keystore file to open")
	fs.Parse(args)
	if *keystorePath == "" {
		return fmt.Errorf("keyinfo requires -keystore")
	}
	key, err := openKeystore(*keystorePath, passphrase.NewPrompter(passphrase.EnvVar))
	if err != nil {
		return err
	}
	fmt.Printf("Public key: %s\n", strings.ToUpper(hex.EncodeToString(key.PublicKeyBytes())))
	fmt.Printf("Address:    %s\n", crypto.EncodeAccountID(key.AccountID()))
	return nil
}

func openKeystore(path string, prompter *passphrase.Prompter) (*crypto.PrivateKey, error) {
	pass, err := prompter.Passphrase(path, passphrase.Unlock)
	if err != nil {
		return nil, err
	}
	return crypto.LoadFromKeystore(path, pass)
}

func generateKeyPair(keyType string) (*keyPair, error) {
	switch strings.ToLower(strings.TrimSpace(keyType)) {
	case "secp256k1", "":
		key, err := crypto.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		return &keyPair{
			Type:       "secp256k1",
			PublicKey:  key.PublicKeyBytes(),
			PrivateKey: key.Bytes(),
			Address:    crypto.EncodeAccountID(key.AccountID()),
			secp:       key,
		}, nil
	case "ed25519":
		pub, priv, err := crypto.GenerateEd25519()
		if err != nil {
			return nil, err
		}
		id, err := crypto.AccountIDFromPublicKey(pub)
		if err != nil {
			return nil, err
		}
		return &keyPair{
			Type:       "ed25519",
			PublicKey:  pub,
			PrivateKey: priv.Seed(),
			Address:    crypto.EncodeAccountID(id),
		}, nil
	default:
		return nil, fmt.Errorf("unknown key type %q", keyType)
	}
}
