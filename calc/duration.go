package calc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/damedic/xquery-calc-go/calc/internal/decimal"
	"github.com/damedic/xquery-calc-go/calc/internal/overflow"
)

// Duration is an xs:duration. It is only a carrier for values that mix
// months and seconds; every arithmetic operator rejects it.
type Duration struct {
	Months  int64
	Seconds *apd.Decimal
}

func (d Duration) Type() Type { return TypeDuration }
func (d Duration) String() string {
	return formatDuration(d.Months, d.Seconds)
}
func (Duration) item() {}

// YearMonthDuration is an xs:yearMonthDuration, a signed number of months.
type YearMonthDuration struct {
	Months int64
}

func (d YearMonthDuration) Type() Type { return TypeYearMonthDuration }
func (d YearMonthDuration) String() string {
	return formatDuration(d.Months, nil)
}
func (YearMonthDuration) item() {}

// DayTimeDuration is an xs:dayTimeDuration, a signed number of seconds.
type DayTimeDuration struct {
	Seconds *apd.Decimal
}

// NewDayTimeDuration returns d as an xs:dayTimeDuration.
func NewDayTimeDuration(d time.Duration) DayTimeDuration {
	return DayTimeDuration{Seconds: apd.New(int64(d), -9)}
}

func (d DayTimeDuration) Type() Type { return TypeDayTimeDuration }
func (d DayTimeDuration) String() string {
	return formatDuration(0, d.Seconds)
}
func (DayTimeDuration) item() {}

func (d DayTimeDuration) seconds() *apd.Decimal {
	if d.Seconds == nil {
		return new(apd.Decimal)
	}
	return d.Seconds
}

var durationLexical = regexp.MustCompile(
	`^(-)?P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

type durationParts struct {
	months    int64
	seconds   *apd.Decimal
	yearMonth bool
	dayTime   bool
}

func parseDurationParts(s string) (durationParts, error) {
	m := durationLexical.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "-P" || strings.HasSuffix(s, "T") {
		return durationParts{}, fmt.Errorf("invalid duration: %q", s)
	}
	p := durationParts{
		yearMonth: m[2] != "" || m[3] != "",
		dayTime:   m[4] != "" || m[5] != "" || m[6] != "" || m[7] != "",
	}
	if !p.yearMonth && !p.dayTime {
		return durationParts{}, fmt.Errorf("invalid duration: %q", s)
	}

	years, err := parseCount(m[2])
	if err != nil {
		return durationParts{}, fmt.Errorf("invalid duration: %q: %w", s, err)
	}
	months, err := parseCount(m[3])
	if err != nil {
		return durationParts{}, fmt.Errorf("invalid duration: %q: %w", s, err)
	}
	yearMonths, ok := overflow.Mul(years, 12)
	if ok {
		p.months, ok = overflow.Add(yearMonths, months)
	}
	if !ok {
		return durationParts{}, fmt.Errorf("invalid duration: %q: month count out of range", s)
	}

	seconds := new(apd.Decimal)
	for _, c := range []struct {
		lexical string
		unit    int64
	}{
		{m[4], 86400},
		{m[5], 3600},
		{m[6], 60},
		{m[7], 1},
	} {
		if c.lexical == "" {
			continue
		}
		v, _, err := apd.NewFromString(c.lexical)
		if err != nil {
			return durationParts{}, fmt.Errorf("invalid duration: %q: %w", s, err)
		}
		if v, err = decimal.Mul(v, decimal.FromInt64(c.unit)); err != nil {
			return durationParts{}, fmt.Errorf("invalid duration: %q: %w", s, err)
		}
		if seconds, err = decimal.Add(seconds, v); err != nil {
			return durationParts{}, fmt.Errorf("invalid duration: %q: %w", s, err)
		}
	}
	p.seconds = seconds

	if m[1] == "-" {
		p.months = -p.months
		p.seconds = new(apd.Decimal).Neg(p.seconds)
	}
	return p, nil
}

func parseCount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// ParseDuration parses the ISO 8601 lexical form of an xs:duration,
// e.g. -P1Y2M3DT4H5M6.7S.
func ParseDuration(s string) (Duration, error) {
	p, err := parseDurationParts(strings.TrimSpace(s))
	if err != nil {
		return Duration{}, err
	}
	return Duration{Months: p.months, Seconds: p.seconds}, nil
}

// ParseYearMonthDuration parses an xs:yearMonthDuration such as P1Y2M.
func ParseYearMonthDuration(s string) (YearMonthDuration, error) {
	s = strings.TrimSpace(s)
	p, err := parseDurationParts(s)
	if err != nil {
		return YearMonthDuration{}, err
	}
	if p.dayTime {
		return YearMonthDuration{}, fmt.Errorf("invalid %s: %q has day or time components", TypeYearMonthDuration, s)
	}
	return YearMonthDuration{Months: p.months}, nil
}

// ParseDayTimeDuration parses an xs:dayTimeDuration such as P1DT2H3.5S.
func ParseDayTimeDuration(s string) (DayTimeDuration, error) {
	s = strings.TrimSpace(s)
	p, err := parseDurationParts(s)
	if err != nil {
		return DayTimeDuration{}, err
	}
	if p.yearMonth {
		return DayTimeDuration{}, fmt.Errorf("invalid %s: %q has year or month components", TypeDayTimeDuration, s)
	}
	return DayTimeDuration{Seconds: p.seconds}, nil
}

// formatDuration renders the canonical lexical form of a duration. A nil
// seconds value marks a year-month duration, which renders zero as P0M.
func formatDuration(months int64, seconds *apd.Decimal) string {
	secondsZero := seconds == nil || seconds.IsZero()
	if months == 0 && secondsZero {
		if seconds == nil {
			return "P0M"
		}
		return "PT0S"
	}

	var b strings.Builder
	if months < 0 || !secondsZero && seconds.Negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')

	// uint64 holds the magnitude of math.MinInt64
	m := uint64(months)
	if months < 0 {
		m = -m
	}
	if y := m / 12; y > 0 {
		b.WriteString(strconv.FormatUint(y, 10))
		b.WriteByte('Y')
	}
	if mo := m % 12; mo > 0 {
		b.WriteString(strconv.FormatUint(mo, 10))
		b.WriteByte('M')
	}
	if secondsZero {
		return b.String()
	}

	var abs apd.Decimal
	abs.Abs(seconds)
	days, hours, minutes, secs := splitSeconds(&abs)
	if days.Sign() > 0 {
		b.WriteString(days.String())
		b.WriteByte('D')
	}
	if hours.Sign() > 0 || minutes.Sign() > 0 || !secs.IsZero() {
		b.WriteByte('T')
		if hours.Sign() > 0 {
			b.WriteString(hours.String())
			b.WriteByte('H')
		}
		if minutes.Sign() > 0 {
			b.WriteString(minutes.String())
			b.WriteByte('M')
		}
		if !secs.IsZero() {
			b.WriteString(decimal.String(secs))
			b.WriteByte('S')
		}
	}
	return b.String()
}

// splitSeconds splits a non-negative number of seconds into days, hours,
// minutes and the remaining seconds.
func splitSeconds(s *apd.Decimal) (days, hours, minutes *apd.BigInt, secs *apd.Decimal) {
	whole, _ := decimal.QuoInteger(s, decimal.FromInt64(1))
	secs, _ = decimal.Sub(s, whole)

	var r1, r2, r3 apd.BigInt
	days, hours, minutes = new(apd.BigInt), new(apd.BigInt), new(apd.BigInt)
	days.QuoRem(&whole.Coeff, apd.NewBigInt(86400), &r1)
	hours.QuoRem(&r1, apd.NewBigInt(3600), &r2)
	minutes.QuoRem(&r2, apd.NewBigInt(60), &r3)

	// add back the whole seconds below one minute
	secs, _ = decimal.Add(secs, apd.NewWithBigInt(&r3, 0))
	return days, hours, minutes, secs
}

func isConcreteDuration(t Type) bool {
	return t == TypeYearMonthDuration || t == TypeDayTimeDuration
}

// addDurations adds (or, if negate is set, subtracts) two durations of the
// same concrete subtype.
func addDurations(op Operator, a, b Item, negate bool) (Item, error) {
	switch x := a.(type) {
	case YearMonthDuration:
		y := b.(YearMonthDuration)
		var (
			m  int64
			ok bool
		)
		if negate {
			m, ok = overflow.Sub(x.Months, y.Months)
		} else {
			m, ok = overflow.Add(x.Months, y.Months)
		}
		if !ok {
			return nil, rangeError(a, op, b)
		}
		return YearMonthDuration{Months: m}, nil
	case DayTimeDuration:
		y := b.(DayTimeDuration)
		var (
			s   *apd.Decimal
			err error
		)
		if negate {
			s, err = decimal.Sub(x.seconds(), y.seconds())
		} else {
			s, err = decimal.Add(x.seconds(), y.seconds())
		}
		if err != nil {
			return nil, rangeError(a, op, b)
		}
		return DayTimeDuration{Seconds: s}, nil
	}
	return nil, typeError(op, a.Type(), b.Type())
}

// scaleDuration multiplies or divides a concrete duration by a number. An
// untyped factor is cast to xs:double.
func scaleDuration(ctx context.Context, op Operator, dur, factor Item) (Item, error) {
	if !factor.Type().isNumberOrUntyped() {
		return nil, durationOperandError(op, factor)
	}
	switch d := dur.(type) {
	case YearMonthDuration:
		return scaleMonths(op, d, factor)
	case DayTimeDuration:
		return scaleSeconds(ctx, op, d, factor)
	}
	return nil, abstractDurationError(dur)
}

// scaleMonths rounds the scaled month count to the nearest month, halves
// toward positive infinity.
func scaleMonths(op Operator, d YearMonthDuration, factor Item) (Item, error) {
	f, err := toDouble(factor)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) {
		return nil, durationOperandError(op, factor)
	}

	var r float64
	if op == Multiply {
		if math.IsInf(f, 0) {
			return nil, rangeError(d, op, factor)
		}
		r = float64(d.Months) * f
	} else {
		if f == 0 {
			return nil, zeroError(d)
		}
		r = float64(d.Months) / f
	}
	r = math.Floor(r + 0.5)
	if r < math.MinInt64 || r >= math.MaxInt64 {
		return nil, rangeError(d, op, factor)
	}
	return YearMonthDuration{Months: int64(r)}, nil
}

func scaleSeconds(ctx context.Context, op Operator, d DayTimeDuration, factor Item) (Item, error) {
	var f *apd.Decimal
	switch v := factor.(type) {
	case Integer, Decimal:
		f, _ = toDecimal(v)
	default:
		x, err := toDouble(v)
		if err != nil {
			return nil, err
		}
		switch {
		case math.IsNaN(x):
			return nil, durationOperandError(op, factor)
		case math.IsInf(x, 0) && op == Multiply:
			return nil, rangeError(d, op, factor)
		case math.IsInf(x, 0):
			return DayTimeDuration{Seconds: new(apd.Decimal)}, nil
		}
		bitSize := 64
		if v.Type() == TypeFloat {
			bitSize = 32
		}
		if f, err = decimal.FromFloat(x, bitSize); err != nil {
			return nil, rangeError(d, op, factor)
		}
	}

	var (
		s   *apd.Decimal
		err error
	)
	if op == Multiply {
		s, err = decimal.Mul(d.seconds(), f)
	} else {
		scale := max(divisionScale(ctx), decimal.Scale(d.seconds()), decimal.Scale(f))
		s, err = decimal.Quo(d.seconds(), f, scale)
	}
	if errors.Is(err, decimal.ErrDivisionByZero) {
		return nil, zeroError(d)
	}
	if err != nil {
		return nil, rangeError(d, op, factor)
	}
	return DayTimeDuration{Seconds: s}, nil
}

// durationRatio divides two durations of the same concrete subtype.
func durationRatio(ctx context.Context, a, b Item) (Item, error) {
	var x, y *apd.Decimal
	switch d := a.(type) {
	case YearMonthDuration:
		x = decimal.FromInt64(d.Months)
		y = decimal.FromInt64(b.(YearMonthDuration).Months)
	case DayTimeDuration:
		x = d.seconds()
		y = b.(DayTimeDuration).seconds()
	default:
		return nil, typeError(Divide, a.Type(), b.Type())
	}
	r, err := decimal.Quo(x, y, divisionScale(ctx))
	if errors.Is(err, decimal.ErrDivisionByZero) {
		return nil, zeroError(a)
	}
	if err != nil {
		return nil, rangeError(a, Divide, b)
	}
	return Decimal{r}, nil
}
