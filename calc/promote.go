package calc

// Promote returns the type a numeric operator evaluates two operands of
// types t1 and t2 in: xs:double if either is xs:double or xs:untypedAtomic,
// else xs:float if either is xs:float, else xs:decimal if either is
// xs:decimal, else xs:integer.
func Promote(t1, t2 Type) Type {
	switch {
	case t1 == TypeDouble || t2 == TypeDouble || t1 == TypeUntypedAtomic || t2 == TypeUntypedAtomic:
		return TypeDouble
	case t1 == TypeFloat || t2 == TypeFloat:
		return TypeFloat
	case t1 == TypeDecimal || t2 == TypeDecimal:
		return TypeDecimal
	}
	return TypeInteger
}
