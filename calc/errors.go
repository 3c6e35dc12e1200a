package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies an arithmetic failure.
//
// ErrorKind values are errors themselves, so callers can test for a kind
// with errors.Is:
//
//	if errors.Is(err, calc.ErrDivisionByZero) {
//	    // ...
//	}
type ErrorKind uint8

func (e ErrorKind) Error() string {
	return e.String()
}

// Location identifies the position of an operator in the query source.
type Location struct {
	Module string
	Line   int
	Column int
}

func (l Location) IsZero() bool {
	return l == Location{}
}

func (l Location) String() string {
	var b strings.Builder
	if l.Module != "" {
		b.WriteString(l.Module)
		b.WriteByte(':')
	}
	b.WriteString(strconv.Itoa(l.Line))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(l.Column))
	return b.String()
}

// Error is the failure returned by Evaluate.
type Error struct {
	Kind     ErrorKind
	Location Location
	Message  string
}

func (e *Error) Error() string {
	if e.Location.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Kind.Code(), e.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", e.Location, e.Kind.Code(), e.Message)
}

// Code returns the error code of the query language for e.
func (e *Error) Code() string {
	return e.Kind.Code()
}

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func typeError(op Operator, t1, t2 Type) *Error {
	return newError(ErrTypeMismatch, "%s: %s and %s can not be combined", describe(op), t1, t2)
}

func numberError(op Operator, item Item) *Error {
	return newError(ErrTypeMismatch, "%s: numeric value expected, %s found: %s", describe(op), item.Type(), item)
}

func zeroError(item Item) *Error {
	return newError(ErrDivisionByZero, "division by zero: %s", item)
}

func rangeError(a any, op Operator, b any) *Error {
	return newError(ErrNumericOverflow, "value out of range: %v %s %v", a, op.Symbol(), b)
}

func indeterminateError(a any, op Operator, b any) *Error {
	return newError(ErrDivisionIndeterminate, "indeterminate division: %v %s %v", a, op.Symbol(), b)
}

func abstractDurationError(item Item) *Error {
	return newError(ErrUnsupportedDurationSubtype, "%s or %s expected, %s found: %s",
		TypeYearMonthDuration, TypeDayTimeDuration, item.Type(), item)
}

func durationOperandError(op Operator, item Item) *Error {
	return newError(ErrInvalidDurationOperand, "%s: numeric factor expected, %s found: %s", describe(op), item.Type(), item)
}

func describe(op Operator) string {
	return "'" + op.Symbol() + "' operator"
}
