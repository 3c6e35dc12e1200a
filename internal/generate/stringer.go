package generate

import (
	. "github.com/dave/jennifer/jen"
)

// StringerGenerator emits one method per listed method name, each switching
// over the enumeration constants. String falls back to "Type(n)" for
// unknown values, the other methods to the empty string.
type StringerGenerator struct {
	NoOpGenerator
}

func (g StringerGenerator) GenerateEnum(f *File, e Enum) bool {
	recv := e.Receiver()
	for _, m := range e.Methods {
		cases := make([]Code, 0, len(e.Values))
		for _, v := range e.Values {
			cases = append(cases, Case(Id(e.ConstName(v))).Block(
				Return(Lit(v.Strings[m])),
			))
		}

		fallback := Return(Lit(""))
		if m == "String" {
			fallback = Return(Qual("fmt", "Sprintf").Call(Lit(e.Type+"(%d)"), Int().Call(Id(recv))))
		}

		f.Func().Params(Id(recv).Id(e.Type)).Id(m).Params().String().Block(
			Switch(Id(recv)).Block(cases...),
			fallback,
		)
	}
	return true
}
