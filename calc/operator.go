package calc

import (
	"context"
	"errors"
)

// Operator is one of the six binary arithmetic operators.
type Operator uint8

// Evaluate applies op to a and b.
//
// Numeric operands are promoted with Promote before the operation is
// carried out. Date, time and duration operands follow the rules of
// XQuery and XPath Functions and Operators. On failure the returned error
// is an *Error carrying loc.
func Evaluate(ctx context.Context, op Operator, a, b Item, loc Location) (Item, error) {
	result, err := evaluate(ctx, op, a, b)
	if err != nil {
		var calcErr *Error
		if errors.As(err, &calcErr) {
			calcErr.Location = loc
		}
		return nil, err
	}
	return result, nil
}

func evaluate(ctx context.Context, op Operator, a, b Item) (Item, error) {
	if a.Type() == TypeDuration {
		return nil, abstractDurationError(a)
	}
	if b.Type() == TypeDuration {
		return nil, abstractDurationError(b)
	}

	t1, t2 := a.Type(), b.Type()
	num1, num2 := t1.isNumberOrUntyped(), t2.isNumberOrUntyped()
	switch op {
	case Add, Subtract:
		switch {
		case num1 && num2:
			return evalNumeric(ctx, op, a, b)
		case num1:
			return nil, numberError(op, b)
		case num2:
			return nil, numberError(op, a)
		}
		return evalTemporal(ctx, op, a, b)
	case Multiply:
		switch {
		case isConcreteDuration(t1):
			return scaleDuration(ctx, op, a, b)
		case isConcreteDuration(t2):
			return scaleDuration(ctx, op, b, a)
		case num1 && num2:
			return evalNumeric(ctx, op, a, b)
		case num1 || num2:
			return nil, typeError(op, t1, t2)
		}
		return nil, numberError(op, a)
	case Divide:
		switch {
		case isConcreteDuration(t1) && t1 == t2:
			return durationRatio(ctx, a, b)
		case isConcreteDuration(t1):
			return scaleDuration(ctx, op, a, b)
		case isConcreteDuration(t2):
			return nil, typeError(op, t1, t2)
		}
		if err := checkNumbers(op, a, b); err != nil {
			return nil, err
		}
		return evalNumeric(ctx, op, a, b)
	case IntegerDivide, Modulo:
		if err := checkNumbers(op, a, b); err != nil {
			return nil, err
		}
		return evalNumeric(ctx, op, a, b)
	}
	return nil, newError(ErrTypeMismatch, "unknown operator %s", op)
}

func checkNumbers(op Operator, a, b Item) error {
	if !a.Type().isNumberOrUntyped() {
		return numberError(op, a)
	}
	if !b.Type().isNumberOrUntyped() {
		return numberError(op, b)
	}
	return nil
}
