package decimal

import (
	"errors"
	"math"
	"testing"

	"github.com/cockroachdb/apd/v3"
)

func mustParse(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	if err != nil {
		t.Fatalf("can not parse %q: %v", s, err)
	}
	return d
}

func TestQuo(t *testing.T) {
	tests := []struct {
		x, y  string
		scale int32
		want  string
	}{
		{"1", "3", 18, "0.333333333333333333"},
		{"2", "3", 18, "0.666666666666666667"},
		{"-2", "3", 18, "-0.666666666666666667"},
		{"2", "-3", 18, "-0.666666666666666667"},
		{"10", "4", 0, "2"}, // 2.5 ties to even
		{"14", "4", 0, "4"}, // 3.5 ties to even
		{"-10", "4", 0, "-2"},
		{"-14", "4", 0, "-4"},
		{"1", "8", 2, "0.12"}, // 0.125 ties to even
		{"3", "8", 2, "0.38"}, // 0.375 ties to even
		{"6", "2", 18, "3.000000000000000000"},
		{"1.5", "0.5", 1, "3.0"},
		{"1E+3", "7", 3, "142.857"},
	}
	for _, tt := range tests {
		t.Run(tt.x+"/"+tt.y, func(t *testing.T) {
			got, err := Quo(mustParse(t, tt.x), mustParse(t, tt.y), tt.scale)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Text('f') != tt.want {
				t.Errorf("Quo(%s, %s, %d) = %s, want %s", tt.x, tt.y, tt.scale, got.Text('f'), tt.want)
			}
			if Scale(got) != tt.scale {
				t.Errorf("scale = %d, want %d", Scale(got), tt.scale)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	zero := mustParse(t, "0.000")
	one := mustParse(t, "1")
	if _, err := Quo(one, zero, 18); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Quo: got %v", err)
	}
	if _, err := QuoInteger(one, zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("QuoInteger: got %v", err)
	}
	if _, err := Rem(one, zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Rem: got %v", err)
	}
}

func TestQuoIntegerAndRem(t *testing.T) {
	tests := []struct {
		x, y string
		quo  string
		rem  string
	}{
		{"10", "3", "3", "1"},
		{"-10", "3", "-3", "-1"},
		{"10", "-3", "-3", "1"},
		{"10.5", "3", "3", "1.5"},
		{"1.25", "0.5", "2", "0.25"},
		{"-0.5", "3", "0", "-0.5"},
		{"6", "2", "3", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.x+" "+tt.y, func(t *testing.T) {
			x, y := mustParse(t, tt.x), mustParse(t, tt.y)
			q, err := QuoInteger(x, y)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if String(q) != tt.quo {
				t.Errorf("QuoInteger = %s, want %s", String(q), tt.quo)
			}
			r, err := Rem(x, y)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if String(r) != tt.rem {
				t.Errorf("Rem = %s, want %s", String(r), tt.rem)
			}
		})
	}
}

func TestExactArithmetic(t *testing.T) {
	x := mustParse(t, "123456789012345678901234567890.123456789")
	y := mustParse(t, "0.000000001")
	sum, err := Add(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if got := sum.Text('f'); got != "123456789012345678901234567890.123456790" {
		t.Errorf("Add = %s", got)
	}
	diff, err := Sub(y, x)
	if err != nil {
		t.Fatal(err)
	}
	if got := diff.Text('f'); got != "-123456789012345678901234567890.123456788" {
		t.Errorf("Sub = %s", got)
	}
	prod, err := Mul(x, mustParse(t, "1000000000"))
	if err != nil {
		t.Fatal(err)
	}
	if got := String(prod); got != "123456789012345678901234567890123456789" {
		t.Errorf("Mul = %s", got)
	}
}

func TestInt64(t *testing.T) {
	if v, ok := Int64(mustParse(t, "9223372036854775807")); !ok || v != math.MaxInt64 {
		t.Errorf("Int64(max) = %d, %v", v, ok)
	}
	if _, ok := Int64(mustParse(t, "9223372036854775808")); ok {
		t.Errorf("Int64(max+1) reported ok")
	}
	if _, ok := Int64(mustParse(t, "1.5")); ok {
		t.Errorf("Int64(1.5) reported ok")
	}
}

func TestFromFloat(t *testing.T) {
	d, err := FromFloat(0.1, 64)
	if err != nil {
		t.Fatal(err)
	}
	if got := String(d); got != "0.1" {
		t.Errorf("FromFloat(0.1) = %s", got)
	}
	d, err = FromFloat(float64(float32(0.1)), 32)
	if err != nil {
		t.Fatal(err)
	}
	if got := String(d); got != "0.1" {
		t.Errorf("FromFloat(float32 0.1) = %s", got)
	}
	if _, err := FromFloat(math.NaN(), 64); err == nil {
		t.Errorf("FromFloat(NaN) succeeded")
	}
}

func TestString(t *testing.T) {
	tests := map[string]string{
		"1.500":   "1.5",
		"-0.00":   "0",
		"1E+3":    "1000",
		"100":     "100",
		"0.0010":  "0.001",
		"-12.340": "-12.34",
	}
	for in, want := range tests {
		if got := String(mustParse(t, in)); got != want {
			t.Errorf("String(%s) = %s, want %s", in, got, want)
		}
	}
}
