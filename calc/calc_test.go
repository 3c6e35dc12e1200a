package calc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/damedic/xquery-calc-go/calc"
	"github.com/google/go-cmp/cmp"
)

// result is the observable outcome of an evaluation.
type result struct {
	Type    calc.Type
	Lexical string
	Err     calc.ErrorKind
}

func resultOf(item calc.Item, err error) result {
	if err != nil {
		var calcErr *calc.Error
		if !errors.As(err, &calcErr) {
			return result{Lexical: err.Error()}
		}
		return result{Err: calcErr.Kind}
	}
	return result{Type: item.Type(), Lexical: item.String()}
}

func want(item calc.Item) result {
	return result{Type: item.Type(), Lexical: item.String()}
}

func fails(kind calc.ErrorKind) result {
	return result{Err: kind}
}

type evalTest struct {
	name string
	op   calc.Operator
	a, b calc.Item
	want result
}

func runEvalTests(t *testing.T, ctx context.Context, tests []evalTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resultOf(calc.Evaluate(ctx, tt.op, tt.a, tt.b, calc.Location{}))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("%s %s %s mismatch (-want +got):\n%s", tt.a, tt.op.Symbol(), tt.b, diff)
			}
		})
	}
}

func dec(s string) calc.Decimal {
	return calc.MustParseDecimal(s)
}

func ymd(t *testing.T, s string) calc.YearMonthDuration {
	t.Helper()
	d, err := calc.ParseYearMonthDuration(s)
	if err != nil {
		t.Fatalf("Unexpected error parsing %q: %v", s, err)
	}
	return d
}

func dtd(t *testing.T, s string) calc.DayTimeDuration {
	t.Helper()
	d, err := calc.ParseDayTimeDuration(s)
	if err != nil {
		t.Fatalf("Unexpected error parsing %q: %v", s, err)
	}
	return d
}

func dateTime(t *testing.T, s string) calc.DateTime {
	t.Helper()
	d, err := calc.ParseDateTime(s)
	if err != nil {
		t.Fatalf("Unexpected error parsing %q: %v", s, err)
	}
	return d
}

func date(t *testing.T, s string) calc.Date {
	t.Helper()
	d, err := calc.ParseDate(s)
	if err != nil {
		t.Fatalf("Unexpected error parsing %q: %v", s, err)
	}
	return d
}

func timeOfDay(t *testing.T, s string) calc.Time {
	t.Helper()
	d, err := calc.ParseTime(s)
	if err != nil {
		t.Fatalf("Unexpected error parsing %q: %v", s, err)
	}
	return d
}
