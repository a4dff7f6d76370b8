// =============================================================================
// GMSEC CLI - Schema Command
// =============================================================================
//
// COMMAND USAGE:
//   gmsec schema <schema-id>    - print one schema's resolved fields
//   gmsec schema --list         - list every registered schema ID
//
// =============================================================================

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var schemaList bool

var schemaCmd = &cobra.Command{
	Use:   "schema [schema-id]",
	Short: "Print a schema's resolved field list, or list every registered schema ID",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSchema,
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaList, "list", false, "list every registered schema ID instead of printing one")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	spec, err := loadSpecification()
	if err != nil {
		return err
	}

	if schemaList || len(args) == 0 {
		it := spec.SchemaIDIterator()
		for {
			id, ok := it.Next()
			if !ok {
				break
			}
			fmt.Println(id)
		}
		return nil
	}

	for _, ms := range spec.GetMessageSpecifications() {
		if ms.SchemaID != args[0] {
			continue
		}
		fmt.Printf("%s  (subject: %s)\n", ms.SchemaID, ms.Subject)
		for _, f := range ms.FieldSpecs {
			fmt.Printf("  %-24s %-8s %-10s %s\n", f.Name, f.Type, f.Mode, f.Description)
		}
		return nil
	}

	return fmt.Errorf("no schema registered with ID %q", args[0])
}
