package main

import (
	"fmt"
	"os"
)

const (
	defaultRPCEndpoint  = "http://127.0.0.1:5005"
	defaultGRPCEndpoint = "127.0.0.1:50051"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "import":
		err = runImport(os.Args[2:])
	case "entry":
		err = runEntry(os.Args[2:])
	case "object":
		err = runObject(os.Args[2:])
	case "keygen":
		err = runKeygen(os.Args[2:])
	case "keyinfo":
		err = runKeyinfo(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: ledgerctl <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  import  -data-dir DIR -file FIXTURE.yaml   Commit a fixture ledger into a data directory")
	fmt.Fprintln(os.Stderr, "  entry   -params '{...}'                    Call ledger_entry over JSON-RPC")
	fmt.Fprintln(os.Stderr, "  object  -index HEX                         Fetch a raw ledger object over gRPC")
	fmt.Fprintln(os.Stderr, "  keygen  -type secp256k1|ed25519            Generate a key pair and its address")
	fmt.Fprintln(os.Stderr, "  keyinfo -keystore FILE                     Show the address held in a keystore")
}
