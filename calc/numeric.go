package calc

import (
	"context"
	"errors"
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/damedic/xquery-calc-go/calc/internal/decimal"
	"github.com/damedic/xquery-calc-go/calc/internal/overflow"
)

// evalNumeric applies op to two numeric or untyped items.
func evalNumeric(ctx context.Context, op Operator, a, b Item) (Item, error) {
	t := Promote(a.Type(), b.Type())
	if t == TypeInteger && op == Divide {
		// div on integers yields xs:decimal
		t = TypeDecimal
	}

	switch t {
	case TypeInteger:
		return integerOp(op, int64(a.(Integer)), int64(b.(Integer)))
	case TypeDouble:
		x, err := toDouble(a)
		if err != nil {
			return nil, err
		}
		y, err := toDouble(b)
		if err != nil {
			return nil, err
		}
		return doubleOp(op, x, y)
	case TypeFloat:
		x, err := toFloat(a)
		if err != nil {
			return nil, err
		}
		y, err := toFloat(b)
		if err != nil {
			return nil, err
		}
		return floatOp(op, x, y)
	}

	x, err := toDecimal(a)
	if err != nil {
		return nil, err
	}
	y, err := toDecimal(b)
	if err != nil {
		return nil, err
	}
	return decimalOp(ctx, op, x, y)
}

func integerOp(op Operator, x, y int64) (Item, error) {
	var (
		r  int64
		ok bool
	)
	switch op {
	case Add:
		r, ok = overflow.Add(x, y)
	case Subtract:
		r, ok = overflow.Sub(x, y)
	case Multiply:
		r, ok = overflow.Mul(x, y)
	case IntegerDivide:
		if y == 0 {
			return nil, zeroError(Integer(x))
		}
		r, ok = overflow.Div(x, y)
	case Modulo:
		if y == 0 {
			return nil, zeroError(Integer(x))
		}
		r, ok = overflow.Mod(x, y)
	default:
		panic("unexpected integer operator " + op.String())
	}
	if !ok {
		return nil, rangeError(Integer(x), op, Integer(y))
	}
	return Integer(r), nil
}

func doubleOp(op Operator, x, y float64) (Item, error) {
	switch op {
	case Add:
		return Double(x + y), nil
	case Subtract:
		return Double(x - y), nil
	case Multiply:
		return Double(x * y), nil
	case Divide:
		return Double(x / y), nil
	case IntegerDivide:
		return floatIntegerDivide(x, y, Double(x), Double(y))
	case Modulo:
		return Double(math.Mod(x, y)), nil
	}
	panic("unexpected operator " + op.String())
}

func floatOp(op Operator, x, y float32) (Item, error) {
	switch op {
	case Add:
		return Float(x + y), nil
	case Subtract:
		return Float(x - y), nil
	case Multiply:
		return Float(x * y), nil
	case Divide:
		return Float(x / y), nil
	case IntegerDivide:
		return floatIntegerDivide(float64(x), float64(y), Float(x), Float(y))
	case Modulo:
		// the remainder of two float32 values is exact in float32
		return Float(math.Mod(float64(x), float64(y))), nil
	}
	panic("unexpected operator " + op.String())
}

// floatIntegerDivide truncates x / y to an xs:integer. a and b are the
// operands as they are reported in errors.
func floatIntegerDivide(x, y float64, a, b Item) (Item, error) {
	if y == 0 {
		return nil, zeroError(a)
	}
	q := x / y
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return nil, indeterminateError(a, IntegerDivide, b)
	}
	// float64(math.MaxInt64) is 2^63, which does not fit
	if q < math.MinInt64 || q >= math.MaxInt64 {
		return nil, rangeError(a, IntegerDivide, b)
	}
	return Integer(int64(q)), nil
}

func decimalOp(ctx context.Context, op Operator, x, y *apd.Decimal) (Item, error) {
	var (
		r   *apd.Decimal
		err error
	)
	switch op {
	case Add:
		r, err = decimal.Add(x, y)
	case Subtract:
		r, err = decimal.Sub(x, y)
	case Multiply:
		r, err = decimal.Mul(x, y)
	case Divide:
		scale := max(divisionScale(ctx), decimal.Scale(x), decimal.Scale(y))
		r, err = decimal.Quo(x, y, scale)
	case IntegerDivide:
		r, err = decimal.QuoInteger(x, y)
		if err == nil {
			i, ok := decimal.Int64(r)
			if !ok {
				return nil, rangeError(Decimal{x}, op, Decimal{y})
			}
			return Integer(i), nil
		}
	case Modulo:
		r, err = decimal.Rem(x, y)
	default:
		panic("unexpected operator " + op.String())
	}
	if errors.Is(err, decimal.ErrDivisionByZero) {
		return nil, zeroError(Decimal{x})
	}
	if err != nil {
		return nil, rangeError(Decimal{x}, op, Decimal{y})
	}
	return Decimal{r}, nil
}
