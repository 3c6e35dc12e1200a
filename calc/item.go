// Package calc implements the arithmetic operators of XQuery and XPath over
// numeric, date/time and duration values, and the algebraic rewrites a query
// compiler can apply to them.
//
// Values are Items: Integer, Double, Float, Decimal, UntypedAtomic,
// DateTime, Date, Time and the durations Duration, YearMonthDuration and
// DayTimeDuration. Evaluate applies an Operator to two Items:
//
//	sum, err := calc.Evaluate(ctx, calc.Add, calc.Integer(40), calc.Integer(2), calc.Location{})
//
// Optimize rewrites an operator application over two operand expressions
// when an identity or absorbing element makes the result statically known.
package calc

//go:generate go run ../internal/cmd/generate --input ../internal/generate/enums.yaml --output zz_generated.go

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/damedic/xquery-calc-go/calc/internal/decimal"
)

// Type is the type tag of an Item.
type Type uint8

// IsNumeric reports whether t is xs:integer, xs:decimal, xs:float or xs:double.
func (t Type) IsNumeric() bool {
	switch t {
	case TypeInteger, TypeDecimal, TypeFloat, TypeDouble:
		return true
	}
	return false
}

func (t Type) isNumberOrUntyped() bool {
	return t.IsNumeric() || t == TypeUntypedAtomic
}

// Item is an immutable value. The set of implementations is closed; it
// consists of the value types of this package.
type Item interface {
	Type() Type
	fmt.Stringer
	item()
}

// Integer is an xs:integer, limited to the signed 64-bit range.
type Integer int64

func (i Integer) Type() Type { return TypeInteger }
func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}
func (Integer) item() {}

// Double is an xs:double.
type Double float64

func (d Double) Type() Type { return TypeDouble }
func (d Double) String() string {
	return formatFloat(float64(d), 64)
}
func (Double) item() {}

// Float is an xs:float.
type Float float32

func (f Float) Type() Type { return TypeFloat }
func (f Float) String() string {
	return formatFloat(float64(f), 32)
}
func (Float) item() {}

// Decimal is an xs:decimal. Value must be finite; its negated exponent is
// the scale of the decimal.
type Decimal struct {
	Value *apd.Decimal
}

// NewDecimal returns the decimal coeff * 10^exponent.
func NewDecimal(coeff int64, exponent int32) Decimal {
	return Decimal{Value: apd.New(coeff, exponent)}
}

var decimalLexical = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseDecimal parses the lexical form of an xs:decimal. The scale of the
// result is the number of digits after the decimal point.
func ParseDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if !decimalLexical.MatchString(s) {
		return Decimal{}, fmt.Errorf("invalid xs:decimal: %q", s)
	}
	d, _, err := apd.NewFromString(strings.TrimSuffix(s, "."))
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid xs:decimal: %q: %w", s, err)
	}
	return Decimal{Value: d}, nil
}

// MustParseDecimal is like ParseDecimal but panics on invalid input.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Scale returns the number of digits after the decimal point.
func (d Decimal) Scale() int32 {
	return decimal.Scale(d.Value)
}

func (d Decimal) Type() Type { return TypeDecimal }
func (d Decimal) String() string {
	return decimal.String(d.Value)
}
func (Decimal) item() {}

// UntypedAtomic is an xs:untypedAtomic. Arithmetic casts it to xs:double.
type UntypedAtomic string

func (u UntypedAtomic) Type() Type { return TypeUntypedAtomic }
func (u UntypedAtomic) String() string {
	return string(u)
}
func (UntypedAtomic) item() {}

var doubleLexical = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Double returns u cast to xs:double.
func (u UntypedAtomic) Double() (Double, error) {
	s := strings.TrimSpace(string(u))
	switch s {
	case "INF", "+INF":
		return Double(math.Inf(1)), nil
	case "-INF":
		return Double(math.Inf(-1)), nil
	case "NaN":
		return Double(math.NaN()), nil
	}
	if !doubleLexical.MatchString(s) {
		return 0, newError(ErrInvalidValue, "can not cast %q to %s", string(u), TypeDouble)
	}
	// out of range literals round to ±Inf
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, newError(ErrInvalidValue, "can not cast %q to %s", string(u), TypeDouble)
	}
	return Double(f), nil
}

// formatFloat returns the canonical lexical form of an xs:double
// (bitSize 64) or xs:float (bitSize 32).
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case f == 0:
		if math.Signbit(f) {
			return "-0"
		}
		return "0"
	}
	if a := math.Abs(f); a >= 1e-6 && a < 1e6 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
	s := strconv.FormatFloat(f, 'E', -1, bitSize)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	e, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(e)
}

// toDouble returns the xs:double value of a numeric or untyped item.
func toDouble(it Item) (float64, error) {
	switch v := it.(type) {
	case Integer:
		return float64(v), nil
	case Double:
		return float64(v), nil
	case Float:
		return float64(v), nil
	case Decimal:
		return decimal.Float64(v.Value), nil
	case UntypedAtomic:
		d, err := v.Double()
		return float64(d), err
	}
	return 0, fmt.Errorf("can not convert %s to %s", it.Type(), TypeDouble)
}

// toFloat returns the xs:float value of a numeric or untyped item.
func toFloat(it Item) (float32, error) {
	switch v := it.(type) {
	case Integer:
		return float32(v), nil
	case Float:
		return float32(v), nil
	case Decimal:
		f, _ := strconv.ParseFloat(v.Value.String(), 32)
		return float32(f), nil
	}
	d, err := toDouble(it)
	return float32(d), err
}

// toDecimal returns the xs:decimal value of an xs:integer or xs:decimal.
func toDecimal(it Item) (*apd.Decimal, error) {
	switch v := it.(type) {
	case Integer:
		return decimal.FromInt64(int64(v)), nil
	case Decimal:
		return v.Value, nil
	}
	return nil, fmt.Errorf("can not convert %s to %s", it.Type(), TypeDecimal)
}
