package calc

import (
	"math"

	"github.com/cockroachdb/apd/v3"
)

// Expr is an operand expression as seen by Optimize. It is implemented by
// the expression tree of the caller.
type Expr interface {
	// StaticType is the type the expression is known to evaluate to.
	StaticType() Type
	// Equal reports whether the expression has the same shape as other.
	Equal(other Expr) bool
	// SideEffectFree reports whether evaluating the expression can be
	// skipped or repeated without changing the result of the query.
	SideEffectFree() bool
}

// Literal is a constant expression.
type Literal struct {
	Value Item
}

func (l Literal) StaticType() Type {
	return l.Value.Type()
}

func (l Literal) Equal(other Expr) bool {
	o, ok := other.(Literal)
	return ok && l.Value.Type() == o.Value.Type() && l.Value.String() == o.Value.String()
}

func (l Literal) SideEffectFree() bool {
	return true
}

func (l Literal) String() string {
	return l.Value.String()
}

// Optimize rewrites the application of op to e1 and e2 if its result is
// statically known to equal one of the operands or a literal. It reports
// false if no rewrite applies. Optimize never evaluates its operands.
//
// A rewrite never changes the type or value of the result, with one
// exception allowed by the language: x div x and x idiv x fold to 1 even
// though x may evaluate to zero.
func Optimize(op Operator, e1, e2 Expr) (Expr, bool) {
	switch op {
	case Add:
		if identity(op, e1, 0, e2) {
			return e2, true
		}
		if identity(op, e2, 0, e1) {
			return e1, true
		}
	case Subtract:
		if identity(op, e2, 0, e1) {
			return e1, true
		}
		if sameOperand(e1, e2) {
			return constant(e1.StaticType(), 0)
		}
	case Multiply:
		if identity(op, e1, 1, e2) {
			return e2, true
		}
		if identity(op, e2, 1, e1) {
			return e1, true
		}
		if isLiteral(e1, 0) && e2.SideEffectFree() && e2.StaticType().IsNumeric() {
			return constant(Promote(e1.StaticType(), e2.StaticType()), 0)
		}
		if isLiteral(e2, 0) && e1.SideEffectFree() && e1.StaticType().IsNumeric() {
			return constant(Promote(e1.StaticType(), e2.StaticType()), 0)
		}
	case Divide:
		if identity(op, e2, 1, e1) {
			return e1, true
		}
		if sameOperand(e1, e2) && isExact(e1.StaticType()) {
			// div on integers yields xs:decimal
			return constant(TypeDecimal, 1)
		}
	case IntegerDivide:
		if identity(op, e2, 1, e1) {
			return e1, true
		}
		if sameOperand(e1, e2) && isExact(e1.StaticType()) {
			return constant(TypeInteger, 1)
		}
	case Modulo:
		// x mod 1 and x mod x depend on the sign and kind of x
	}
	return nil, false
}

// identity reports whether applying op to x and the literal lit, which has
// the value v, yields x unchanged.
func identity(op Operator, lit Expr, v int64, x Expr) bool {
	if !isLiteral(lit, v) {
		return false
	}
	t := x.StaticType()
	if !t.IsNumeric() || Promote(lit.StaticType(), t) != t {
		return false
	}
	switch op {
	case Add, Subtract:
		if t == TypeDouble || t == TypeFloat {
			// -0 + 0 is 0 and 0 - -0 is 0
			neg := math.Signbit(literalFloat(lit))
			return neg == (op == Add)
		}
	case Divide:
		// div on integers yields xs:decimal
		return t != TypeInteger
	case IntegerDivide:
		return t == TypeInteger
	}
	return true
}

func sameOperand(e1, e2 Expr) bool {
	return e1.SideEffectFree() && e1.Equal(e2)
}

// isExact reports whether t is a numeric type without NaN, infinities and
// signed zeros.
func isExact(t Type) bool {
	return t == TypeInteger || t == TypeDecimal
}

// isLiteral reports whether e is a numeric literal equal to v.
func isLiteral(e Expr, v int64) bool {
	lit, ok := e.(Literal)
	if !ok {
		return false
	}
	switch n := lit.Value.(type) {
	case Integer:
		return int64(n) == v
	case Decimal:
		return n.Value != nil && n.Value.Cmp(apd.New(v, 0)) == 0
	case Double:
		return float64(n) == float64(v)
	case Float:
		return float64(n) == float64(v)
	}
	return false
}

func literalFloat(e Expr) float64 {
	switch n := e.(Literal).Value.(type) {
	case Double:
		return float64(n)
	case Float:
		return float64(n)
	}
	return 0
}

// constant returns the literal v of type t if t is xs:integer or xs:decimal.
func constant(t Type, v int64) (Expr, bool) {
	switch t {
	case TypeInteger:
		return Literal{Value: Integer(v)}, true
	case TypeDecimal:
		return Literal{Value: NewDecimal(v, 0)}, true
	}
	return nil, false
}
