package adder

import (
	"context"
	"errors"
)

var (
	ErrInsufficientOperands = errors.New("insufficient operands")
	ErrInvalidNumberFormat  = errors.New("invalid number format")
	ErrInputExhausted       = errors.New("input exhausted")
)

const (
	MessageInsufficientOperands = "Error: Please provide at least two numbers separated by a space."
	MessageInvalidNumberFormat  = "Error: Invalid number format. Please enter valid integers."
	MessageInputExhausted       = "Error: No input received. Please provide two numbers separated by a space."
)

// Kind classifies a run failure for logs.
type Kind string

const (
	KindNone                 Kind = ""
	KindInsufficientOperands Kind = "insufficient_operands"
	KindInvalidNumberFormat  Kind = "invalid_number_format"
	KindInputExhausted       Kind = "input_exhausted"
	KindCancelled            Kind = "cancelled"
	KindReadFailed           Kind = "read_failed"
)

// KindOf maps err to its failure kind. A nil error is KindNone.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInsufficientOperands):
		return KindInsufficientOperands
	case errors.Is(err, ErrInvalidNumberFormat):
		return KindInvalidNumberFormat
	case errors.Is(err, ErrInputExhausted):
		return KindInputExhausted
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	default:
		return KindReadFailed
	}
}

// Message returns the user-facing line printed for err.
func Message(err error) string {
	switch KindOf(err) {
	case KindInsufficientOperands:
		return MessageInsufficientOperands
	case KindInvalidNumberFormat:
		return MessageInvalidNumberFormat
	case KindInputExhausted:
		return MessageInputExhausted
	case KindNone:
		return ""
	default:
		return "Error: " + err.Error()
	}
}

// Reportable reports whether err belongs on stdout as the run outcome rather
// than on stderr as an operational failure.
func Reportable(err error) bool {
	switch KindOf(err) {
	case KindInsufficientOperands, KindInvalidNumberFormat, KindInputExhausted:
		return true
	default:
		return false
	}
}
