package generate

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Spec describes the enumerations of one Go package.
type Spec struct {
	Package string `yaml:"package"`
	Enums   []Enum `yaml:"enums"`
}

// Enum is an integer enumeration with string-valued methods.
type Enum struct {
	Type    string   `yaml:"type"`
	Prefix  string   `yaml:"prefix"`
	Methods []string `yaml:"methods"`
	Values  []Value  `yaml:"values"`
}

// Value is one enumeration member. Strings maps each method name of the
// enclosing Enum to the string that method returns for this member.
type Value struct {
	Name    string
	Strings map[string]string
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]string
	if err := node.Decode(&m); err != nil {
		return err
	}
	v.Name = m["name"]
	delete(m, "name")
	v.Strings = m
	return nil
}

// ConstName returns the Go identifier of the constant for v.
func (e Enum) ConstName(v Value) string {
	return e.Prefix + strcase.ToCamel(v.Name)
}

// Receiver returns the receiver name used for methods on the enum type.
func (e Enum) Receiver() string {
	return strcase.ToLowerCamel(e.Type[:1])
}

// LoadFile reads a Spec from a YAML file.
func LoadFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, err
	}
	return Load(bytes.NewReader(data))
}

// Load decodes a Spec from YAML and validates it.
func Load(r io.Reader) (Spec, error) {
	var spec Spec
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return Spec{}, fmt.Errorf("can not decode enumerations: %w", err)
	}
	if err := spec.validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

func (s Spec) validate() error {
	if s.Package == "" {
		return fmt.Errorf("missing package name")
	}
	types := map[string]bool{}
	for _, e := range s.Enums {
		if e.Type == "" {
			return fmt.Errorf("enum without type name")
		}
		if types[e.Type] {
			return fmt.Errorf("duplicate enum %s", e.Type)
		}
		types[e.Type] = true
		if len(e.Values) == 0 {
			return fmt.Errorf("enum %s has no values", e.Type)
		}

		names := map[string]bool{}
		for _, v := range e.Values {
			if v.Name == "" {
				return fmt.Errorf("enum %s has a value without name", e.Type)
			}
			name := e.ConstName(v)
			if names[name] {
				return fmt.Errorf("enum %s: duplicate value %s", e.Type, name)
			}
			names[name] = true
			for _, m := range e.Methods {
				if _, ok := v.Strings[m]; !ok {
					return fmt.Errorf("enum %s: value %s has no %s", e.Type, name, m)
				}
			}
			for m := range v.Strings {
				if !containsString(e.Methods, m) {
					return fmt.Errorf("enum %s: value %s sets unknown method %s", e.Type, name, m)
				}
			}
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}
