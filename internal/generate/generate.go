// Package generate produces the enumeration tables of the calc package.
package generate

import (
	. "github.com/dave/jennifer/jen"
)

// HeaderComment marks every generated file.
const HeaderComment = "Code generated by internal/cmd/generate; DO NOT EDIT."

// Generator emits code for one enumeration into f and reports whether it
// emitted anything.
type Generator interface {
	GenerateEnum(f *File, e Enum) bool
}

// NoOpGenerator emits nothing. Embed it to implement only what is needed.
type NoOpGenerator struct{}

func (g NoOpGenerator) GenerateEnum(f *File, e Enum) bool {
	return false
}

// ConstGenerator emits the constant block of an enumeration. The first
// constant is 1 so the zero value stays invalid.
type ConstGenerator struct {
	NoOpGenerator
}

func (g ConstGenerator) GenerateEnum(f *File, e Enum) bool {
	defs := make([]Code, 0, len(e.Values))
	for i, v := range e.Values {
		if i == 0 {
			defs = append(defs, Id(e.ConstName(v)).Id(e.Type).Op("=").Iota().Op("+").Lit(1))
		} else {
			defs = append(defs, Id(e.ConstName(v)))
		}
	}
	f.Const().Defs(defs...)
	return true
}

// DefaultGenerators are run by the generate command in this order.
var DefaultGenerators = []Generator{
	ConstGenerator{},
	StringerGenerator{},
}

// Generate renders all enumerations of spec with the given generators.
func Generate(spec Spec, generators ...Generator) *File {
	f := NewFile(spec.Package)
	f.HeaderComment(HeaderComment)
	for _, e := range spec.Enums {
		for _, g := range generators {
			g.GenerateEnum(f, e)
		}
	}
	return f
}
