package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tordrt/coddschema"
	"github.com/tordrt/coddschema/internal/normalize"
	"github.com/tordrt/coddschema/internal/parser"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		name         string
		attributes   string
		dependencies []string
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Normalize relations from a document, flags or stdin",
		Long: `Normalize relations given as a YAML/JSON document, as --attributes with
repeated --fd flags, or in the line format read from stdin:

  A, B, C, D
  A -> B
  B -> C`,
		Example: `  coddschema analyze schema.yaml --target 3NF
  coddschema analyze --attributes "A, B, C" --fd "A -> B" --fd "B -> C"
  printf 'A, B, C\nA -> B\nB -> C\n' | coddschema analyze --format markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				rels []*normalize.Relation
				err  error
			)
			switch {
			case len(args) == 1 && attributes != "":
				return fmt.Errorf("cannot use both a file and --attributes")
			case len(dependencies) > 0 && attributes == "":
				return fmt.Errorf("--fd requires --attributes")
			case len(args) == 1:
				rels, err = coddschema.LoadRelations(args[0])
			case attributes != "":
				rels, err = relationFromFlags(name, attributes, dependencies)
			default:
				var r *normalize.Relation
				r, err = parser.ReadRelation(name, cmd.InOrStdin())
				rels = []*normalize.Relation{r}
			}
			if err != nil {
				return err
			}
			return a.report(cmd, rels)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "R", "Relation name for --attributes and stdin input")
	cmd.Flags().StringVarP(&attributes, "attributes", "a", "", `Attributes, e.g. "A, B, C"`)
	cmd.Flags().StringArrayVar(&dependencies, "fd", nil, `Functional dependency, e.g. "A, B -> C" (repeatable)`)
	return cmd
}

func relationFromFlags(name, attributes string, dependencies []string) ([]*normalize.Relation, error) {
	attrs, err := parser.ParseDescriptor(attributes)
	if err != nil {
		return nil, err
	}
	fds, err := parser.ParseDependencies(strings.Join(dependencies, ";"))
	if err != nil {
		return nil, err
	}
	r, err := normalize.NewRelation(name, attrs, fds)
	if err != nil {
		return nil, err
	}
	return []*normalize.Relation{r}, nil
}
