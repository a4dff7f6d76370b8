package gmsec

// SubjectElement is one positional token of a message's dotted subject
// template (spec.md §3, §4.7). An optional element has Optional set; its
// DefaultValue is stored as written, with no '!' marker.
type SubjectElement struct {
	Name         string
	DefaultValue string
	Optional     bool
}

// MessageTemplate is the immutable composite a Specification stores per
// schema ID (spec.md §3, §4.4). It plays the role the XSD engine's Schema
// type plays for a single element: an ordered field list plus whatever
// else identifies valid instances, but scoped to exactly one schema ID
// rather than a whole document grammar.
type MessageTemplate struct {
	SchemaID        string
	Fields          []*FieldTemplate
	SubjectElements []SubjectElement
	SchemaLevel     int
	Definition      string
}

// EffectiveFields splices header onto the template's own content fields,
// expanding CONTROL field children with their ModifiedName prefixed by the
// CONTROL field's prefix (spec.md §4.4 "prepend header", §4.6 step 2).
func (mt *MessageTemplate) EffectiveFields(header []*FieldTemplate) []*FieldTemplate {
	out := make([]*FieldTemplate, 0, len(header)+len(mt.Fields))
	out = append(out, header...)
	for _, f := range mt.Fields {
		out = append(out, expandControlField(f)...)
	}
	return out
}

// expandControlField flattens a CONTROL field into its children, with each
// child's effective name prefixed by the CONTROL field's prefix (spec.md
// §4.2 step 5 "CONTROL field").
func expandControlField(f *FieldTemplate) []*FieldTemplate {
	if f.class != ClassControl || len(f.children) == 0 {
		return []*FieldTemplate{f}
	}
	out := make([]*FieldTemplate, 0, len(f.children))
	for _, child := range f.children {
		c := *child
		if f.prefix != "" {
			c.modifiedName = f.prefix + "." + child.modifiedName
		}
		out = append(out, &c)
	}
	return out
}
