package overflow

import (
	"math"
	"testing"
)

func TestBounds(t *testing.T) {
	lo8, hi8 := Bounds[int8]()
	if lo8 != math.MinInt8 || hi8 != math.MaxInt8 {
		t.Errorf("Bounds[int8]() = %d, %d", lo8, hi8)
	}
	lo32, hi32 := Bounds[int32]()
	if lo32 != math.MinInt32 || hi32 != math.MaxInt32 {
		t.Errorf("Bounds[int32]() = %d, %d", lo32, hi32)
	}
	lo64, hi64 := Bounds[int64]()
	if lo64 != math.MinInt64 || hi64 != math.MaxInt64 {
		t.Errorf("Bounds[int64]() = %d, %d", lo64, hi64)
	}
}

func TestInt64(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(a, b int64) (int64, bool)
		a, b   int64
		want   int64
		wantOK bool
	}{
		{"add", Add[int64], 1, 2, 3, true},
		{"add max+0", Add[int64], math.MaxInt64, 0, math.MaxInt64, true},
		{"add max+1", Add[int64], math.MaxInt64, 1, 0, false},
		{"add min+-1", Add[int64], math.MinInt64, -1, 0, false},
		{"add min+max", Add[int64], math.MinInt64, math.MaxInt64, -1, true},
		{"sub", Sub[int64], 1, 2, -1, true},
		{"sub min-1", Sub[int64], math.MinInt64, 1, 0, false},
		{"sub max--1", Sub[int64], math.MaxInt64, -1, 0, false},
		{"sub 0-min", Sub[int64], 0, math.MinInt64, 0, false},
		{"sub -1-min", Sub[int64], -1, math.MinInt64, math.MaxInt64, true},
		{"mul", Mul[int64], -3, 4, -12, true},
		{"mul by zero", Mul[int64], math.MinInt64, 0, 0, true},
		{"mul max*2", Mul[int64], math.MaxInt64, 2, 0, false},
		{"mul min*-1", Mul[int64], math.MinInt64, -1, 0, false},
		{"mul -1*min", Mul[int64], -1, math.MinInt64, 0, false},
		{"mul max*-1", Mul[int64], math.MaxInt64, -1, -math.MaxInt64, true},
		{"mul min/2*2", Mul[int64], math.MinInt64 / 2, 2, math.MinInt64, true},
		{"mul min/2*-2", Mul[int64], math.MinInt64 / 2, -2, 0, false},
		{"mul 2^32*2^31", Mul[int64], 1 << 32, 1 << 31, 0, false},
		{"div", Div[int64], 7, 2, 3, true},
		{"div negative", Div[int64], -7, 2, -3, true},
		{"div zero", Div[int64], 7, 0, 0, false},
		{"div min/-1", Div[int64], math.MinInt64, -1, 0, false},
		{"mod", Mod[int64], 7, 3, 1, true},
		{"mod follows dividend", Mod[int64], -7, 3, -1, true},
		{"mod negative divisor", Mod[int64], 7, -3, 1, true},
		{"mod zero", Mod[int64], 7, 0, 0, false},
		{"mod min%-1", Mod[int64], math.MinInt64, -1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fn(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInt8Exhaustive(t *testing.T) {
	for a := math.MinInt8; a <= math.MaxInt8; a++ {
		for b := math.MinInt8; b <= math.MaxInt8; b++ {
			check := func(name string, got int8, ok bool, exact int) {
				fits := exact >= math.MinInt8 && exact <= math.MaxInt8
				if ok != fits {
					t.Fatalf("%s(%d, %d): ok = %v, exact %d", name, a, b, ok, exact)
				}
				if ok && int(got) != exact {
					t.Fatalf("%s(%d, %d) = %d, want %d", name, a, b, got, exact)
				}
			}
			got, ok := Add(int8(a), int8(b))
			check("Add", got, ok, a+b)
			got, ok = Sub(int8(a), int8(b))
			check("Sub", got, ok, a-b)
			got, ok = Mul(int8(a), int8(b))
			check("Mul", got, ok, a*b)
			if b != 0 {
				got, ok = Div(int8(a), int8(b))
				check("Div", got, ok, a/b)
			}
		}
	}
}

func TestNeg(t *testing.T) {
	if got, ok := Neg[int64](5); !ok || got != -5 {
		t.Errorf("Neg(5) = %d, %v", got, ok)
	}
	if _, ok := Neg[int64](math.MinInt64); ok {
		t.Errorf("Neg(MinInt64) reported ok")
	}
}
