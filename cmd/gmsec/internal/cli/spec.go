package cli

import (
	"fmt"

	"github.com/gmsec-project/msgspec"
)

// loadSpecification builds a Config from the command's global flags and
// constructs a Specification from it.
func loadSpecification() (*gmsec.Specification, error) {
	config, err := gmsec.NewConfigFromPairs(
		gmsec.KeySchemaPath, schemaPath,
		gmsec.KeySpecVersion, fmt.Sprintf("%d", specVersion),
		gmsec.KeySchemaLevel, fmt.Sprintf("%d", schemaLevel),
	)
	if err != nil {
		return nil, err
	}
	return gmsec.Construct(config)
}
