package calc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/damedic/xquery-calc-go/calc/internal/decimal"
	"github.com/damedic/xquery-calc-go/calc/internal/overflow"
)

// Layouts of the lexical forms, with and without timezone.
const (
	DateFormat       = "2006-01-02"
	DateFormatTZ     = "2006-01-02Z07:00"
	TimeFormat       = "15:04:05.999999999"
	TimeFormatTZ     = "15:04:05.999999999Z07:00"
	DateTimeFormat   = DateFormat + "T" + TimeFormat
	DateTimeFormatTZ = DateFormat + "T" + TimeFormatTZ
)

const (
	timezoneFormat = "-07:00"
	referenceYear  = 1972
	referenceMonth = time.December
	referenceDay   = 31
	secondsPerDay  = 86400
	nanosPerSecond = 1_000_000_000
)

// Instants are kept within a billion years around the reference date.
const (
	maxMonths = 12 * 1_000_000_000
	maxDays   = 366 * 1_000_000_000
)

// DateTime is an xs:dateTime. Without a timezone, Value holds the wall clock
// in UTC.
type DateTime struct {
	Value       time.Time
	HasTimezone bool
}

// NewDateTime returns t as an xs:dateTime with the timezone offset of t.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Value: fixedZone(t), HasTimezone: true}
}

// ParseDateTime parses an xs:dateTime such as 2024-01-31T12:00:00.5+01:00.
func ParseDateTime(s string) (DateTime, error) {
	t, tz, err := parseInstant(s, DateTimeFormat, DateTimeFormatTZ)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid %s: %w", TypeDateTime, err)
	}
	return DateTime{Value: t, HasTimezone: tz}, nil
}

func (dt DateTime) Type() Type { return TypeDateTime }
func (dt DateTime) String() string {
	return dt.Value.Format(DateTimeFormat) + formatTimezone(dt.Value, dt.HasTimezone)
}
func (DateTime) item() {}

// Date is an xs:date. Value is midnight of the day, in UTC if the date has
// no timezone.
type Date struct {
	Value       time.Time
	HasTimezone bool
}

// NewDate returns an xs:date without timezone.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Value: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an xs:date such as 2023-06-15 or 2023-06-15Z.
func ParseDate(s string) (Date, error) {
	t, tz, err := parseInstant(s, DateFormat, DateFormatTZ)
	if err != nil {
		return Date{}, fmt.Errorf("invalid %s: %w", TypeDate, err)
	}
	return Date{Value: t, HasTimezone: tz}, nil
}

func (d Date) Type() Type { return TypeDate }
func (d Date) String() string {
	return d.Value.Format(DateFormat) + formatTimezone(d.Value, d.HasTimezone)
}
func (Date) item() {}

// Time is an xs:time. Value lies on 1972-12-31, in UTC if the time has no
// timezone.
type Time struct {
	Value       time.Time
	HasTimezone bool
}

// NewTime returns an xs:time without timezone.
func NewTime(hour, min, sec, nsec int) Time {
	return Time{Value: time.Date(referenceYear, referenceMonth, referenceDay, hour, min, sec, nsec, time.UTC)}
}

// ParseTime parses an xs:time such as 13:20:00 or 13:20:00.25-05:00.
func ParseTime(s string) (Time, error) {
	t, tz, err := parseInstant(s, TimeFormat, TimeFormatTZ)
	if err != nil {
		return Time{}, fmt.Errorf("invalid %s: %w", TypeTime, err)
	}
	return Time{Value: onReferenceDay(t), HasTimezone: tz}, nil
}

func (t Time) Type() Type { return TypeTime }
func (t Time) String() string {
	return t.Value.Format(TimeFormat) + formatTimezone(t.Value, t.HasTimezone)
}
func (Time) item() {}

func parseInstant(s, layout, layoutTZ string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(layout, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(layoutTZ, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return fixedZone(t), true, nil
}

// fixedZone moves t into a location with the constant offset t has, so
// calendar arithmetic never crosses a daylight saving transition.
func fixedZone(t time.Time) time.Time {
	_, offset := t.Zone()
	if offset == 0 {
		return t.In(time.UTC)
	}
	return t.In(time.FixedZone("", offset))
}

func formatTimezone(t time.Time, hasTimezone bool) string {
	if !hasTimezone {
		return ""
	}
	if _, offset := t.Zone(); offset == 0 {
		return "Z"
	}
	return t.Format(timezoneFormat)
}

func onReferenceDay(t time.Time) time.Time {
	return time.Date(referenceYear, referenceMonth, referenceDay,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isInstant(t Type) bool {
	return t == TypeDateTime || t == TypeDate || t == TypeTime
}

// evalTemporal applies Add or Subtract to instants and durations.
func evalTemporal(ctx context.Context, op Operator, a, b Item) (Item, error) {
	t1, t2 := a.Type(), b.Type()
	if t1 == t2 {
		switch {
		case isConcreteDuration(t1):
			return addDurations(op, a, b, op == Subtract)
		case isInstant(t1) && op == Subtract:
			return subtractInstants(ctx, a, b), nil
		}
	}
	switch {
	case isInstant(t1) && isConcreteDuration(t2):
		return shiftInstant(op, a, b)
	case op == Add && isConcreteDuration(t1) && isInstant(t2):
		return shiftInstant(op, b, a)
	}
	return nil, typeError(op, t1, t2)
}

// instant returns the point in time of a DateTime, Date or Time. Values
// without timezone are placed in loc.
func instant(it Item, loc *time.Location) time.Time {
	var (
		t  time.Time
		tz bool
	)
	switch v := it.(type) {
	case DateTime:
		t, tz = v.Value, v.HasTimezone
	case Date:
		t, tz = v.Value, v.HasTimezone
	case Time:
		t, tz = v.Value, v.HasTimezone
	}
	if tz {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func subtractInstants(ctx context.Context, a, b Item) DayTimeDuration {
	loc := implicitTimezone(ctx)
	t1, t2 := instant(a, loc), instant(b, loc)

	secs := apd.New(t1.Unix()-t2.Unix(), 0)
	nanos := int64(t1.Nanosecond() - t2.Nanosecond())
	if nanos == 0 {
		return DayTimeDuration{Seconds: secs}
	}
	s, _ := decimal.Add(secs, apd.New(nanos, -9))
	return DayTimeDuration{Seconds: s}
}

// shiftInstant adds a concrete duration to, or subtracts it from, an instant.
func shiftInstant(op Operator, inst, dur Item) (Item, error) {
	negate := op == Subtract
	switch v := inst.(type) {
	case DateTime:
		if t, ok := shift(v.Value, dur, negate); ok {
			return DateTime{Value: t, HasTimezone: v.HasTimezone}, nil
		}
	case Date:
		if t, ok := shift(v.Value, dur, negate); ok {
			return Date{Value: startOfDay(t), HasTimezone: v.HasTimezone}, nil
		}
	case Time:
		d, ok := dur.(DayTimeDuration)
		if !ok {
			return nil, typeError(op, inst.Type(), dur.Type())
		}
		s := d.seconds()
		if negate {
			s = new(apd.Decimal).Neg(s)
		}
		return Time{Value: addClock(v.Value, s), HasTimezone: v.HasTimezone}, nil
	default:
		return nil, typeError(op, inst.Type(), dur.Type())
	}
	return nil, rangeError(inst, op, dur)
}

// shift moves t by a concrete duration. It reports false if the result
// leaves the supported range.
func shift(t time.Time, dur Item, negate bool) (time.Time, bool) {
	switch d := dur.(type) {
	case YearMonthDuration:
		m := d.Months
		if negate {
			var ok bool
			if m, ok = overflow.Neg(m); !ok {
				return t, false
			}
		}
		return addMonths(t, m)
	case DayTimeDuration:
		s := d.seconds()
		if negate {
			s = new(apd.Decimal).Neg(s)
		}
		return addSeconds(t, s)
	}
	return t, false
}

// addMonths adds months to t. A day of month the target month does not have
// is clamped to the last day of that month: 2024-01-31 plus one month is
// 2024-02-29.
func addMonths(t time.Time, months int64) (time.Time, bool) {
	if months < -maxMonths || months > maxMonths {
		return t, false
	}
	result := t.AddDate(0, int(months), 0)
	if result.Day() < t.Day() {
		// AddDate normalized into the following month
		result = result.AddDate(0, 0, -result.Day())
	}
	return result, true
}

func addSeconds(t time.Time, s *apd.Decimal) (time.Time, bool) {
	secs, nanos, ok := splitNanos(s)
	if !ok {
		return t, false
	}
	days := secs / secondsPerDay
	if days < -maxDays || days > maxDays {
		return t, false
	}
	rest := secs % secondsPerDay
	return t.AddDate(0, 0, int(days)).Add(time.Duration(rest)*time.Second + time.Duration(nanos)), true
}

// addClock adds s to a time of day, wrapping around midnight.
func addClock(t time.Time, s *apd.Decimal) time.Time {
	r, _ := decimal.Rem(s, decimal.FromInt64(secondsPerDay))
	secs, nanos, _ := splitNanos(r)
	return onReferenceDay(t.Add(time.Duration(secs)*time.Second + time.Duration(nanos)))
}

// splitNanos splits s into whole seconds and nanoseconds, both truncated
// toward zero.
func splitNanos(s *apd.Decimal) (secs, nanos int64, ok bool) {
	whole, err := decimal.QuoInteger(s, decimal.FromInt64(1))
	if err != nil {
		return 0, 0, false
	}
	if secs, ok = decimal.Int64(whole); !ok {
		return 0, 0, false
	}
	frac, err := decimal.Sub(s, whole)
	if err != nil {
		return 0, 0, false
	}
	frac, err = decimal.Mul(frac, decimal.FromInt64(nanosPerSecond))
	if err != nil {
		return 0, 0, false
	}
	n, err := decimal.QuoInteger(frac, decimal.FromInt64(1))
	if err != nil {
		return 0, 0, false
	}
	nanos, ok = decimal.Int64(n)
	return secs, nanos, ok
}
