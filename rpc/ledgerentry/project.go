package ledgerentry

import (
	"encoding/hex"
	"strings"

	"ledgerd/codec"
	"ledgerd/core/types"
	"ledgerd/ledger"
)

// Encoder serialises an entry for binary responses. codec.Binary is the
// production implementation.
type Encoder interface {
	Encode(e *types.Entry) ([]byte, error)
}

// Result is the ledger_entry response document. A failed request carries
// Error and ErrorMessage; a successful one carries Index and exactly one of
// Node or NodeBinary. A request that derived no key carries neither.
type Result struct {
	ledger.Descriptor
	Index        string         `json:"index,omitempty"`
	Node         map[string]any `json:"node,omitempty"`
	NodeBinary   string         `json:"node_binary,omitempty"`
	Error        string         `json:"error,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// Failed reports whether the document carries an error.
func (r *Result) Failed() bool {
	return r != nil && r.Error != ""
}

func (r *Result) setError(e *Error) {
	r.Error = string(e.Code)
	r.ErrorMessage = e.Code.Message()
}

// Project fills the node or node_binary member. binary has no other effect.
func Project(res *Result, e *types.Entry, binary bool, enc Encoder) error {
	res.Index = e.Key.String()
	if !binary {
		res.Node = codec.Project(e)
		return nil
	}
	data, err := enc.Encode(e)
	if err != nil {
		return err
	}
	res.NodeBinary = strings.ToUpper(hex.EncodeToString(data))
	return nil
}
