package ledgerentry

// ErrorCode is the token placed in a result's error field.
type ErrorCode string

const (
	CodeMalformedRequest     ErrorCode = "malformedRequest"
	CodeMalformedAddress     ErrorCode = "malformedAddress"
	CodeMalformedOwner       ErrorCode = "malformedOwner"
	CodeMalformedAuthorized  ErrorCode = "malformedAuthorized"
	CodeMalformedCurrency    ErrorCode = "malformedCurrency"
	CodeUnknownOption        ErrorCode = "unknownOption"
	CodeEntryNotFound        ErrorCode = "entryNotFound"
	CodeUnexpectedLedgerType ErrorCode = "unexpectedLedgerType"
)

var errorMessages = map[ErrorCode]string{
	CodeMalformedRequest:     "Malformed request.",
	CodeMalformedAddress:     "Malformed address.",
	CodeMalformedOwner:       "Malformed owner.",
	CodeMalformedAuthorized:  "Malformed authorized address.",
	CodeMalformedCurrency:    "Malformed currency.",
	CodeUnknownOption:        "Unknown option.",
	CodeEntryNotFound:        "Entry not found.",
	CodeUnexpectedLedgerType: "Unexpected ledger type.",
}

// Message returns the human-readable text for the code.
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return string(c)
}

// Error is a terminal failure for one request. It is returned as a value in
// the result document rather than propagated.
type Error struct {
	Code ErrorCode
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return string(e.Code)
}

func fail(code ErrorCode) *Error {
	return &Error{Code: code}
}
