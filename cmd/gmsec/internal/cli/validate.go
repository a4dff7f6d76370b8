// =============================================================================
// GMSEC CLI - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   gmsec validate <message-file> [--format xml|json] [--strict]
//
// =============================================================================

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/gmsec-project/msgspec"
	"github.com/spf13/cobra"
)

var (
	validateFormat string
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <message-file>",
	Short: "Validate a wire-format message file against the schema directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "xml", "message wire format: xml or json")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "reject fields the template doesn't recognize")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	spec, err := loadSpecification()
	if err != nil {
		return err
	}

	config, err := gmsec.NewConfigFromPairs(gmsec.KeySchemaPath, schemaPath)
	if err != nil {
		return err
	}
	factory := gmsec.NewMessageFactory(spec, config)

	var msg *gmsec.Message
	switch strings.ToLower(validateFormat) {
	case "xml":
		msg, err = gmsec.MessageFromXML(factory, data)
	case "json":
		msg, err = gmsec.MessageFromJSON(factory, data)
	default:
		return fmt.Errorf("unsupported format %q: must be xml or json", validateFormat)
	}
	if err != nil {
		return err
	}

	status := gmsec.Validate(spec, msg, validateStrict)
	if status.OK() {
		fmt.Printf("%s is valid against schema %s\n", path, msg.SchemaID())
		for _, w := range status.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
		return nil
	}

	fmt.Printf("%s failed validation against schema %s:\n", path, msg.SchemaID())
	for _, d := range status.Details {
		fmt.Printf("  [%s] %s: %s\n", d.Code, d.Field, d.Reason)
	}
	os.Exit(1)
	return nil
}
