package contract

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies a failed invocation. Business-rule failures abort the
// invocation before any write commits; CONCURRENCY_CONFLICT and STORE_ERROR
// come from the platform and are retryable by the caller.
type Code string

const (
	CodeValidation          Code = "VALIDATION"
	CodeNotFound            Code = "NOT_FOUND"
	CodeConflict            Code = "CONFLICT"
	CodePreconditionFailed  Code = "PRECONDITION_FAILED"
	CodeInsufficientFunds   Code = "INSUFFICIENT_FUNDS"
	CodeConcurrencyConflict Code = "CONCURRENCY_CONFLICT"
	CodeStore               Code = "STORE_ERROR"
)

type Error struct {
	Code    Code
	Message string
}

// Error renders `CODE: message` so the classification survives the
// platform boundary, which flattens errors to strings.
func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return Errorf(CodeValidation, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return Errorf(CodeNotFound, format, args...)
}

func Conflictf(format string, args ...any) *Error {
	return Errorf(CodeConflict, format, args...)
}

// CodeOf returns the classification of err, defaulting to STORE_ERROR for
// anything the contract did not produce itself.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeStore
}

var knownCodes = []Code{
	CodeValidation,
	CodeNotFound,
	CodeConflict,
	CodePreconditionFailed,
	CodeInsufficientFunds,
	CodeConcurrencyConflict,
	CodeStore,
}

// ParseCode recovers the classification from a flattened error message,
// for callers on the far side of the platform boundary. Unrecognized
// messages classify as STORE_ERROR.
func ParseCode(message string) Code {
	for _, code := range knownCodes {
		if strings.Contains(message, string(code)+": ") {
			return code
		}
	}
	return CodeStore
}
