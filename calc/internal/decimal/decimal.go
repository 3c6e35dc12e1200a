// Package decimal implements the scaled big-integer operations the arithmetic
// engine needs on top of apd: exact addition, subtraction and multiplication,
// division at a fixed scale with half-even rounding, truncated integral
// division and the truncated remainder.
//
// All operands must be finite.
package decimal

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// ErrDivisionByZero is returned when the divisor of a division is zero.
var ErrDivisionByZero = errors.New("decimal division by zero")

// exact performs unrounded arithmetic; Precision 0 disables rounding.
var exact = apd.BaseContext

var (
	bigOne = apd.NewBigInt(1)
	bigTen = apd.NewBigInt(10)
)

// Scale returns the number of digits after the decimal point of d.
func Scale(d *apd.Decimal) int32 {
	if d.Exponent < 0 {
		return -d.Exponent
	}
	return 0
}

// Add returns x + y.
func Add(x, y *apd.Decimal) (*apd.Decimal, error) {
	var d apd.Decimal
	if _, err := exact.Add(&d, x, y); err != nil {
		return nil, err
	}
	return &d, nil
}

// Sub returns x - y.
func Sub(x, y *apd.Decimal) (*apd.Decimal, error) {
	var d apd.Decimal
	if _, err := exact.Sub(&d, x, y); err != nil {
		return nil, err
	}
	return &d, nil
}

// Mul returns x * y.
func Mul(x, y *apd.Decimal) (*apd.Decimal, error) {
	var d apd.Decimal
	if _, err := exact.Mul(&d, x, y); err != nil {
		return nil, err
	}
	return &d, nil
}

// Quo returns x / y rounded half-even to exactly scale fractional digits.
func Quo(x, y *apd.Decimal, scale int32) (*apd.Decimal, error) {
	if y.IsZero() {
		return nil, ErrDivisionByZero
	}
	num, den := signedCoeff(x), signedCoeff(y)
	// x/y * 10^scale = cx/cy * 10^(ex-ey+scale)
	shift := int64(x.Exponent) - int64(y.Exponent) + int64(scale)
	p, err := pow10(abs(shift))
	if err != nil {
		return nil, err
	}
	if shift >= 0 {
		num.Mul(num, p)
	} else {
		den.Mul(den, p)
	}

	var q, r apd.BigInt
	q.QuoRem(num, den, &r)
	if r.Sign() != 0 {
		var twice, absDen apd.BigInt
		twice.Abs(&r)
		twice.Lsh(&twice, 1)
		absDen.Abs(den)
		c := twice.Cmp(&absDen)
		if c > 0 || c == 0 && q.Bit(0) == 1 {
			if num.Sign() != den.Sign() {
				q.Sub(&q, bigOne)
			} else {
				q.Add(&q, bigOne)
			}
		}
	}
	return apd.NewWithBigInt(&q, -scale), nil
}

// QuoInteger returns the integral part of x / y, truncated toward zero.
func QuoInteger(x, y *apd.Decimal) (*apd.Decimal, error) {
	if y.IsZero() {
		return nil, ErrDivisionByZero
	}
	a, b, err := align(x, y)
	if err != nil {
		return nil, err
	}
	var q apd.BigInt
	q.Quo(a, b)
	return apd.NewWithBigInt(&q, 0), nil
}

// Rem returns x - (x quo y) * y where the quotient is truncated toward zero,
// so the sign of a non-zero result follows x.
func Rem(x, y *apd.Decimal) (*apd.Decimal, error) {
	if y.IsZero() {
		return nil, ErrDivisionByZero
	}
	a, b, err := align(x, y)
	if err != nil {
		return nil, err
	}
	var r apd.BigInt
	r.Rem(a, b)
	d := apd.NewWithBigInt(&r, min(x.Exponent, y.Exponent))
	if r.Sign() == 0 {
		d.Negative = false
	}
	return d, nil
}

// Int64 returns d as an int64. It reports false if d has a fractional part
// or lies outside the int64 range.
func Int64(d *apd.Decimal) (int64, bool) {
	v, err := d.Int64()
	return v, err == nil
}

// FromInt64 returns i as a decimal with scale 0.
func FromInt64(i int64) *apd.Decimal {
	return apd.New(i, 0)
}

// FromFloat returns the decimal with the shortest digit string that
// round-trips to f at the given bit size (32 or 64).
func FromFloat(f float64, bitSize int) (*apd.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("can not convert %v to decimal", f)
	}
	d, _, err := apd.NewFromString(strconv.FormatFloat(f, 'E', -1, bitSize))
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Float64 returns the float64 nearest to d.
// Values beyond the float64 range become ±Inf.
func Float64(d *apd.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// String returns the canonical lexical form of d: no exponent, no trailing
// fractional zeros, no negative zero.
func String(d *apd.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	var r apd.Decimal
	r.Reduce(d)
	return r.Text('f')
}

func signedCoeff(d *apd.Decimal) *apd.BigInt {
	b := new(apd.BigInt).Set(&d.Coeff)
	if d.Negative {
		b.Neg(b)
	}
	return b
}

// align returns the signed coefficients of x and y scaled to their common
// smallest exponent.
func align(x, y *apd.Decimal) (*apd.BigInt, *apd.BigInt, error) {
	a, b := signedCoeff(x), signedCoeff(y)
	shift := int64(x.Exponent) - int64(y.Exponent)
	p, err := pow10(abs(shift))
	if err != nil {
		return nil, nil, err
	}
	if shift > 0 {
		a.Mul(a, p)
	} else if shift < 0 {
		b.Mul(b, p)
	}
	return a, b, nil
}

func pow10(n int64) (*apd.BigInt, error) {
	if n > apd.MaxExponent {
		return nil, errors.New("decimal exponent out of range")
	}
	return new(apd.BigInt).Exp(bigTen, apd.NewBigInt(n), nil), nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
