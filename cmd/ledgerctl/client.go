package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ledgerd/codec"
	"ledgerd/core/types"
	"ledgerd/rpc/grpcsvc"
)

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func runEntry(args []string) error {
	fs := flag.NewFlagSet("entry", flag.ExitOnError)
	endpoint := fs.String("rpc", defaultRPCEndpoint, "JSON-RPC endpoint")
	params := fs.String("params", "{}", "ledger_entry parameters as a JSON object")
	fs.Parse(args)

	result, err := callRPC(http.DefaultClient, *endpoint, "ledger_entry", json.RawMessage(*params))
	if err != nil {
		return err
	}
	printJSONResult(result)
	return nil
}

func callRPC(client *http.Client, endpoint, method string, param json.RawMessage) (json.RawMessage, error) {
	if !json.Valid(param) {
		return nil, errors.New("parameters are not valid JSON")
	}
	payload, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  []json.RawMessage{param},
	})
	if err != nil {
		return nil, err
	}
	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rpcResp struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("failed to decode response from node")
	}
	if rpcResp.Error != nil {
		if len(rpcResp.Error.Data) > 0 {
			return nil, fmt.Errorf("error from node: %s (%s)", rpcResp.Error.Message, rpcResp.Error.Data)
		}
		return nil, fmt.Errorf("error from node: %s", rpcResp.Error.Message)
	}
	return rpcResp.Result, nil
}

func printJSONResult(result json.RawMessage) {
	if len(result) == 0 {
		fmt.Println("No result.")
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, result, "", "  "); err != nil {
		fmt.Println(string(result))
		return
	}
	fmt.Println(buf.String())
}

func runObject(args []string) error {
	fs := flag.NewFlagSet("object", flag.ExitOnError)
	endpoint := fs.String("grpc", defaultGRPCEndpoint, "gRPC endpoint")
	index := fs.String("index", "", "Object index as 64 hex characters")
	ledgerHash := fs.String("ledger-hash", "", "Ledger hash")
	ledgerSeq := fs.Uint("ledger-index", 0, "Ledger sequence")
	shortcut := fs.String("ledger", "", "Ledger shortcut (current, closed or validated)")
	decode := fs.Bool("decode", false, "Decode the object instead of printing its bytes")
	fs.Parse(args)

	key, ok := types.ParseHash256(*index)
	if !ok {
		return errors.New("-index must be 64 hex characters")
	}
	req := &grpcsvc.GetLedgerEntryRequest{
		Ledger: grpcsvc.LedgerSpecifier{Sequence: uint32(*ledgerSeq), Shortcut: strings.TrimSpace(*shortcut)},
		Key:    key.Bytes(),
	}
	if *ledgerHash != "" {
		h, ok := types.ParseHash256(*ledgerHash)
		if !ok {
			return errors.New("-ledger-hash must be 64 hex characters")
		}
		req.Ledger.Hash = h.Bytes()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := grpcsvc.Dial(ctx, *endpoint)
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := client.GetLedgerEntry(ctx, req)
	if err != nil {
		return err
	}
	if !*decode {
		fmt.Println(strings.ToUpper(hex.EncodeToString(resp.LedgerObject.Data)))
		return nil
	}
	entry, err := codec.Decode(key, resp.LedgerObject.Data)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(codec.Project(entry), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
