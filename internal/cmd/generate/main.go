// Command generate renders calc/zz_generated.go from internal/generate/enums.yaml.
package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/damedic/xquery-calc-go/internal/generate"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate the enumeration tables of the calc package",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(input, output)
		},
	}
	cmd.Flags().StringVar(&input, "input", "internal/generate/enums.yaml", "YAML file describing the enumerations")
	cmd.Flags().StringVar(&output, "output", "calc/zz_generated.go", "Go file to write")
	return cmd
}

func run(input, output string) error {
	log.Println("reading enumerations...")
	spec, err := generate.LoadFile(input)
	if err != nil {
		return err
	}

	log.Printf("generating %d enumerations into %s...", len(spec.Enums), output)
	return generate.Generate(spec, generate.DefaultGenerators...).Save(output)
}
