// Package apperr defines the error kinds surfaced to the user and the
// notices shown for them.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindDecode
	KindStorageRead
	KindStorageWrite
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	case KindStorageRead:
		return "storage_read"
	case KindStorageWrite:
		return "storage_write"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error carries a Kind, the operation that failed and a message fit for
// display. Err is the underlying cause, if any.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, &Error{Kind: k})
// works as a kind test.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Message == "" && t.Err == nil
}

func newf(kind Kind, op string, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...), Err: cause}
}

func Network(op string, cause error, format string, args ...any) *Error {
	return newf(KindNetwork, op, cause, format, args...)
}

func Decode(op string, cause error, format string, args ...any) *Error {
	return newf(KindDecode, op, cause, format, args...)
}

func StorageRead(op string, cause error, format string, args ...any) *Error {
	return newf(KindStorageRead, op, cause, format, args...)
}

func StorageWrite(op string, cause error, format string, args ...any) *Error {
	return newf(KindStorageWrite, op, cause, format, args...)
}

func Validation(op string, format string, args ...any) *Error {
	return newf(KindValidation, op, nil, format, args...)
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
