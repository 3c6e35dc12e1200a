// Package overflow implements checked integer arithmetic.
//
// Every operation tests its operands against the bounds of T before the
// operation executes, so a wrapped result is never produced.
package overflow

import "unsafe"

// Signed is the set of fixed-width signed integer types.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Bounds returns the smallest and largest value representable by T.
func Bounds[T Signed]() (lo, hi T) {
	var zero T
	bits := unsafe.Sizeof(zero) * 8
	hi = T(uint64(1)<<(bits-1) - 1)
	return -hi - 1, hi
}

// Add returns a + b, and false if the sum is not representable by T.
func Add[T Signed](a, b T) (T, bool) {
	lo, hi := Bounds[T]()
	if b > 0 && a > hi-b || b < 0 && a < lo-b {
		return 0, false
	}
	return a + b, true
}

// Sub returns a - b, and false if the difference is not representable by T.
func Sub[T Signed](a, b T) (T, bool) {
	lo, hi := Bounds[T]()
	if b < 0 && a > hi+b || b > 0 && a < lo+b {
		return 0, false
	}
	return a - b, true
}

// Mul returns a * b, and false if the product is not representable by T.
func Mul[T Signed](a, b T) (T, bool) {
	lo, hi := Bounds[T]()
	switch {
	case b > 0:
		if a > hi/b || a < lo/b {
			return 0, false
		}
	case b < -1:
		if a > lo/b || a < hi/b {
			return 0, false
		}
	case b == -1:
		if a == lo {
			return 0, false
		}
	}
	return a * b, true
}

// Div returns the truncated quotient a / b. It reports false for a zero
// divisor and for the single overflowing case lo / -1.
func Div[T Signed](a, b T) (T, bool) {
	lo, _ := Bounds[T]()
	if b == 0 || a == lo && b == -1 {
		return 0, false
	}
	return a / b, true
}

// Mod returns the remainder of the truncated division a / b, whose sign
// follows the dividend. It reports false for a zero divisor.
func Mod[T Signed](a, b T) (T, bool) {
	if b == 0 {
		return 0, false
	}
	if b == -1 {
		return 0, true
	}
	return a % b, true
}

// Neg returns -a, and false for the lowest value of T.
func Neg[T Signed](a T) (T, bool) {
	lo, _ := Bounds[T]()
	if a == lo {
		return 0, false
	}
	return -a, true
}
