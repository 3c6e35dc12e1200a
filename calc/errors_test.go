package calc_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/damedic/xquery-calc-go/calc"
	"github.com/google/go-cmp/cmp"
)

func TestErrorLocation(t *testing.T) {
	tests := []struct {
		name     string
		op       calc.Operator
		a, b     calc.Item
		loc      calc.Location
		wantKind calc.ErrorKind
		wantCode string
		wantMsg  string
	}{
		{
			name:     "overflow with module",
			op:       calc.Add,
			a:        calc.Integer(math.MaxInt64),
			b:        calc.Integer(1),
			loc:      calc.Location{Module: "query.xq", Line: 3, Column: 14},
			wantKind: calc.ErrNumericOverflow,
			wantCode: "FOAR0002",
			wantMsg:  "query.xq:3:14: [FOAR0002] value out of range: 9223372036854775807 + 1",
		},
		{
			name:     "type mismatch",
			op:       calc.Add,
			a:        calc.YearMonthDuration{Months: 12},
			b:        calc.NewDayTimeDuration(0),
			loc:      calc.Location{Line: 1, Column: 7},
			wantKind: calc.ErrTypeMismatch,
			wantCode: "XPTY0004",
			wantMsg:  "1:7: [XPTY0004] '+' operator: xs:yearMonthDuration and xs:dayTimeDuration can not be combined",
		},
		{
			name:     "division by zero without location",
			op:       calc.Modulo,
			a:        calc.Integer(5),
			b:        calc.Integer(0),
			wantKind: calc.ErrDivisionByZero,
			wantCode: "FOAR0001",
			wantMsg:  "[FOAR0001] division by zero: 5",
		},
		{
			name:     "indeterminate",
			op:       calc.IntegerDivide,
			a:        calc.Double(math.Inf(1)),
			b:        calc.Double(2),
			loc:      calc.Location{Line: 2, Column: 1},
			wantKind: calc.ErrDivisionIndeterminate,
			wantCode: "FOAR0002",
			wantMsg:  "2:1: [FOAR0002] indeterminate division: INF idiv 2",
		},
		{
			name:     "invalid untyped value",
			op:       calc.Multiply,
			a:        calc.UntypedAtomic("twelve"),
			b:        calc.Integer(2),
			loc:      calc.Location{Line: 9, Column: 9},
			wantKind: calc.ErrInvalidValue,
			wantCode: "FORG0001",
			wantMsg:  `9:9: [FORG0001] can not cast "twelve" to xs:double`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Evaluate(context.Background(), tt.op, tt.a, tt.b, tt.loc)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantKind)
			}
			var calcErr *calc.Error
			if !errors.As(err, &calcErr) {
				t.Fatalf("expected *calc.Error, got %T", err)
			}
			if diff := cmp.Diff(tt.loc, calcErr.Location); diff != "" {
				t.Errorf("location mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantCode, calcErr.Code()); diff != "" {
				t.Errorf("code mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantMsg, err.Error()); diff != "" {
				t.Errorf("message mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrorKindIs(t *testing.T) {
	_, err := calc.Evaluate(context.Background(), calc.Divide, calc.Integer(1), calc.Integer(0), calc.Location{})
	if !errors.Is(err, calc.ErrDivisionByZero) {
		t.Errorf("expected %v, got %v", calc.ErrDivisionByZero, err)
	}
	if errors.Is(err, calc.ErrNumericOverflow) {
		t.Errorf("did not expect %v for %v", calc.ErrNumericOverflow, err)
	}
	if got := calc.ErrDivisionByZero.Error(); got != "division by zero" {
		t.Errorf("Error() = %q, want %q", got, "division by zero")
	}
}

func TestOperatorSymbols(t *testing.T) {
	got := map[string]string{}
	for _, op := range []calc.Operator{calc.Add, calc.Subtract, calc.Multiply, calc.Divide, calc.IntegerDivide, calc.Modulo} {
		got[op.String()] = op.Symbol()
	}
	want := map[string]string{
		"add":            "+",
		"subtract":       "-",
		"multiply":       "*",
		"divide":         "div",
		"integer divide": "idiv",
		"modulo":         "mod",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
