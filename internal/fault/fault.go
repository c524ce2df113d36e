package fault

import (
	"errors"
	"net/http"
)

// Kind classifies every error that crosses a service or transport boundary.
// The set is closed: anything unclassified is KindInternal.
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
)

// Error is the only error type exposed by services. It optionally wraps the
// underlying cause, which never crosses the RPC boundary.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds a classified error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an underlying error while keeping it available to errors.Is/As.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the classification of err. Unclassified errors are internal.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternal
}

// MessageOf returns the boundary-safe message for err. Unclassified errors
// collapse to a generic message so driver details never leak to callers.
func MessageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return "internal error"
}

var wireCodes = map[Kind]string{
	KindValidation: "invalid_argument",
	KindConflict:   "already_exists",
	KindNotFound:   "not_found",
	KindInternal:   "internal",
}

var wireKinds = map[string]Kind{
	"invalid_argument": KindValidation,
	"already_exists":   KindConflict,
	"not_found":        KindNotFound,
	"internal":         KindInternal,
}

// Code returns the RPC wire code for a kind.
func Code(kind Kind) string {
	if code, ok := wireCodes[kind]; ok {
		return code
	}
	return "internal"
}

// FromCode maps an RPC wire code back to a kind. Unknown codes are internal.
func FromCode(code string) Kind {
	if kind, ok := wireKinds[code]; ok {
		return kind
	}
	return KindInternal
}

// HTTPStatus maps a kind onto the HTTP status used by both the RPC server
// and the gateway.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
