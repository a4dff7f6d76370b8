// =============================================================================
// GMSEC Message Specification Tools - Main Entry Point
// =============================================================================
//
// USAGE:
//   gmsec validate <message-file>   - Validate a wire-format message file
//   gmsec schema <schema-id>        - Print a schema's effective field list
//
// =============================================================================

package main

import (
	"github.com/gmsec-project/msgspec/cmd/gmsec/internal/cli"
)

func main() {
	cli.Execute()
}
