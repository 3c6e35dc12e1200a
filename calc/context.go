package calc

import (
	"context"
	"time"
)

// MinDivisionScale is the lowest number of fractional digits a decimal
// division result carries.
const MinDivisionScale int32 = 18

type divisionScaleKey struct{}

// WithDivisionScale sets the minimum scale of decimal division results.
//
// The effective scale of a division is the maximum of this value and the
// scales of both operands. Values below MinDivisionScale are ignored.
//
// Example:
//
//	ctx = calc.WithDivisionScale(ctx, 34)
//	q, err := calc.Evaluate(ctx, calc.Divide, calc.NewDecimal(1, 0), calc.NewDecimal(3, 0), calc.Location{})
func WithDivisionScale(ctx context.Context, scale int32) context.Context {
	return context.WithValue(ctx, divisionScaleKey{}, scale)
}

func divisionScale(ctx context.Context) int32 {
	if ctx != nil {
		if scale, ok := ctx.Value(divisionScaleKey{}).(int32); ok && scale > MinDivisionScale {
			return scale
		}
	}
	return MinDivisionScale
}

type implicitTimezoneKey struct{}

// WithImplicitTimezone sets the timezone assumed for date and time values
// that carry none, when they are subtracted from each other.
// By default UTC is used.
func WithImplicitTimezone(ctx context.Context, loc *time.Location) context.Context {
	return context.WithValue(ctx, implicitTimezoneKey{}, loc)
}

func implicitTimezone(ctx context.Context) *time.Location {
	if ctx != nil {
		if loc, ok := ctx.Value(implicitTimezoneKey{}).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return time.UTC
}
