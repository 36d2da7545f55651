package modules

import (
	"errors"
	"net/http"

	"ledgerd/ledger"
)

const (
	codeInvalidParams  = -32602
	codeServerError    = -32000
	codeLedgerNotFound = -32004
)

// ModuleError is a method failure carrying the HTTP status and JSON-RPC code
// to answer with.
type ModuleError struct {
	HTTPStatus int
	Code       int
	Message    string
	Data       interface{}
}

func (e *ModuleError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// ledgerError maps a ledger selection failure onto a module error. The
// message is the RPC token, the data its detail.
func ledgerError(err error) *ModuleError {
	var lookupErr *ledger.LookupError
	if !errors.As(err, &lookupErr) {
		return &ModuleError{HTTPStatus: http.StatusInternalServerError, Code: codeServerError, Message: err.Error()}
	}
	if errors.Is(err, ledger.ErrInvalidParams) {
		return &ModuleError{HTTPStatus: http.StatusBadRequest, Code: codeInvalidParams, Message: lookupErr.Code, Data: lookupErr.Message}
	}
	return &ModuleError{HTTPStatus: http.StatusNotFound, Code: codeLedgerNotFound, Message: lookupErr.Code, Data: lookupErr.Message}
}
