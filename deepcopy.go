package gmsec

import "github.com/tiendc/go-deepcopy"

// cloneSpecification returns a deep copy of src, used by Specification.Copy
// (spec.md §4.5 "Copy") so callers can hold an independently mutable-free
// snapshot without re-running directory/template parsing.
func cloneSpecification(src *Specification) (*Specification, error) {
	var dst Specification
	if err := deepcopy.Copy(&dst, src); err != nil {
		return nil, newErrorf(ClassSpecificationError, CodeTemplateDirError,
			"failed to deep-copy specification: %v", err)
	}
	return &dst, nil
}
