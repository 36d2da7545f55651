package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams marks selection failures caused by malformed request
	// parameters.
	ErrInvalidParams = errors.New("invalidParams")
	// ErrLedgerNotFound marks selection failures where the parameters were
	// well formed but no such ledger is held.
	ErrLedgerNotFound = errors.New("lgrNotFound")
)

// LookupError reports why a ledger could not be selected. Code is the RPC
// error token returned to clients.
type LookupError struct {
	kind    error
	Code    string
	Message string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the sentinel so callers can use errors.Is.
func (e *LookupError) Unwrap() error {
	return e.kind
}

func invalidParams(message string) *LookupError {
	return &LookupError{kind: ErrInvalidParams, Code: ErrInvalidParams.Error(), Message: message}
}

func notFound(message string) *LookupError {
	return &LookupError{kind: ErrLedgerNotFound, Code: ErrLedgerNotFound.Error(), Message: message}
}

// IsParamError reports whether err stems from malformed selection input.
func IsParamError(err error) bool {
	return errors.Is(err, ErrInvalidParams)
}
