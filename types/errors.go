package types

import (
	"errors"
	"fmt"
)

// ErrorCode classifies simulator failures.
type ErrorCode int

const (
	CodeUnknown ErrorCode = iota

	// CodeInvalidCapacity: frame capacity <= 0.
	CodeInvalidCapacity

	// CodeEmptySequence: a run was started with no references.
	CodeEmptySequence

	// CodeMalformedInput: a reference string token is not an integer.
	CodeMalformedInput

	// CodeUnknownPolicy: no replacement policy with that name.
	CodeUnknownPolicy
)

func (c ErrorCode) String() string {
	switch c {
	case CodeInvalidCapacity:
		return "invalid capacity"
	case CodeEmptySequence:
		return "empty sequence"
	case CodeMalformedInput:
		return "malformed input"
	case CodeUnknownPolicy:
		return "unknown policy"
	default:
		return "unknown error"
	}
}

// SimError is a simulator error with context.
type SimError struct {
	Code    ErrorCode
	Op      string // operation that failed
	Message string
	Err     error // underlying error, if any
}

// Sentinels for errors.Is. Only the Code is compared.
var (
	ErrInvalidCapacity = &SimError{Code: CodeInvalidCapacity, Message: "frame capacity must be a positive integer"}
	ErrEmptySequence   = &SimError{Code: CodeEmptySequence, Message: "reference sequence must contain at least one page"}
	ErrMalformedInput  = &SimError{Code: CodeMalformedInput, Message: "reference string must contain only integers"}
	ErrUnknownPolicy   = &SimError{Code: CodeUnknownPolicy, Message: "unknown replacement policy"}
)

func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SimError) Unwrap() error {
	return e.Err
}

// Is matches any *SimError carrying the same code.
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewError creates a SimError.
func NewError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{Code: code, Op: op, Message: message, Err: err}
}

func InvalidCapacity(op string, capacity int) *SimError {
	return NewError(CodeInvalidCapacity, op,
		fmt.Sprintf("frame capacity must be a positive integer, got %d", capacity), nil)
}

func EmptySequence(op string) *SimError {
	return NewError(CodeEmptySequence, op, "reference sequence must contain at least one page", nil)
}

func MalformedInput(op, token string, err error) *SimError {
	return NewError(CodeMalformedInput, op, fmt.Sprintf("invalid page %q", token), err)
}

func UnknownPolicy(op, name string) *SimError {
	return NewError(CodeUnknownPolicy, op, fmt.Sprintf("unknown replacement policy %q", name), nil)
}

// CodeOf returns the code of the first *SimError in err's chain, or CodeUnknown.
func CodeOf(err error) ErrorCode {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeUnknown
}
