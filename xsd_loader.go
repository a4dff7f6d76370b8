package gmsec

import (
	"path/filepath"
	"strings"

	"github.com/agentflare-ai/go-xmldom"
)

// xsdDocumentSet is the primary XSD document plus every document reached
// through xs:include, resolved once up front (spec.md §4.2 step 1). Field
// and simpleType lookups search the primary document first, then each
// included document in inclusion order — mirroring the XSD engine's own
// "search current document, then included documents" convention
// (go-xsd's schema_loader.go LoadSchemaWithImports).
type xsdDocumentSet struct {
	docs []xmldom.Document
}

// loadDocumentSet reads path and recursively resolves xs:include
// schemaLocation references relative to path's directory, guarding against
// include cycles.
func loadDocumentSet(path string) (*xsdDocumentSet, error) {
	set := &xsdDocumentSet{}
	visited := make(map[string]bool)
	if err := set.load(path, visited); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *xsdDocumentSet) load(path string, visited map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if visited[abs] {
		return nil
	}
	visited[abs] = true

	data, err := readCachedFile(path)
	if err != nil {
		return newErrorf(ClassSpecificationError, CodeTemplateDirError,
			"failed to read schema file %s: %v", path, err)
	}
	doc, err := xmldom.Decode(strings.NewReader(string(data)))
	if err != nil {
		return newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s: failed to parse XSD: %v", path, err)
	}
	s.docs = append(s.docs, doc)

	root := doc.DocumentElement()
	if root == nil {
		return nil
	}
	dir := filepath.Dir(path)
	children := root.Children()
	for i := uint(0); i < children.Length(); i++ {
		child := children.Item(i)
		if child == nil || !isXSDTag(child, "include") {
			continue
		}
		loc := string(child.GetAttribute("schemaLocation"))
		if loc == "" {
			continue
		}
		if err := s.load(filepath.Join(dir, loc), visited); err != nil {
			return err
		}
	}
	return nil
}

// isXSDTag reports whether elem is the XML Schema element named local,
// matching by local name only (the dependency/pattern extensions used by
// GMSEC templates are commonly declared with a non-standard "api" prefix
// whose namespace URI this package doesn't need to resolve).
func isXSDTag(elem xmldom.Element, local string) bool {
	return elem != nil && strings.EqualFold(string(elem.LocalName()), local)
}

// topLevel returns the root-level children of every document in the set,
// primary document first.
func (s *xsdDocumentSet) topLevel() []xmldom.Element {
	var out []xmldom.Element
	for _, doc := range s.docs {
		root := doc.DocumentElement()
		if root == nil {
			continue
		}
		children := root.Children()
		for i := uint(0); i < children.Length(); i++ {
			if c := children.Item(i); c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

func (s *xsdDocumentSet) findByNameAttr(tag, name string, wantLast bool) xmldom.Element {
	var found xmldom.Element
	for _, elem := range s.topLevel() {
		if isXSDTag(elem, tag) && string(elem.GetAttribute("name")) == name {
			found = elem
			if !wantLast {
				return found
			}
		}
	}
	return found
}

func firstChildTag(elem xmldom.Element, local string) xmldom.Element {
	if elem == nil {
		return nil
	}
	children := elem.Children()
	for i := uint(0); i < children.Length(); i++ {
		if c := children.Item(i); c != nil && isXSDTag(c, local) {
			return c
		}
	}
	return nil
}

func childTags(elem xmldom.Element, local string) []xmldom.Element {
	if elem == nil {
		return nil
	}
	var out []xmldom.Element
	children := elem.Children()
	for i := uint(0); i < children.Length(); i++ {
		if c := children.Item(i); c != nil && isXSDTag(c, local) {
			out = append(out, c)
		}
	}
	return out
}

// parseEnumerations resolves a base/type attribute value to either an
// explicit value list (xs:enumeration) or a regex pattern (xs:pattern) by
// searching the simpleType named name across the document set (spec.md
// §4.2 step 6). A name prefixed "xs:" is a direct GMSEC type/value pass
// through with no simpleType lookup.
func (s *xsdDocumentSet) parseEnumerations(name string) (values []string, pattern string, found bool) {
	if strings.HasPrefix(name, "xs:") {
		return nil, "", true
	}
	st := s.findByNameAttr("simpleType", name, false)
	if st == nil {
		return nil, "", false
	}
	restriction := firstChildTag(st, "restriction")
	if restriction == nil {
		return nil, "", true
	}
	for _, e := range childTags(restriction, "enumeration") {
		values = append(values, string(e.GetAttribute("value")))
	}
	if p := firstChildTag(restriction, "pattern"); p != nil {
		pattern = string(p.GetAttribute("value"))
	}
	return values, pattern, true
}

// loadXSDTemplate parses one GMSEC message template file (spec.md §4.2).
// dir supplies the level-name -> level mapping used to resolve the
// template's schema level and to decide whether it should be skipped as
// above the configured ceiling.
func loadXSDTemplate(path string, dir *Directory, version int, configuredLevel int) (*MessageTemplate, bool, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(base, "_")
	if len(parts) < 2 {
		return nil, false, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s: filename does not match <level>_<parts...>.xsd", path)
	}
	levelName := parts[0]
	shortID := strings.ToUpper(strings.Join(parts[1:], "."))

	level := -1
	for _, e := range dir.Entries {
		if e.LevelName == levelName {
			level = e.Level
			break
		}
	}
	if level < 0 {
		return nil, false, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s: level name %q is not registered in the schema directory", path, levelName)
	}
	if level > configuredLevel {
		return nil, false, nil // skipped: above the configured ceiling
	}

	set, err := loadDocumentSet(path)
	if err != nil {
		return nil, false, err
	}

	var fields []*FieldTemplate
	var subjectElems []SubjectElement

	if strings.EqualFold(shortID, "HEADER") {
		fields, subjectElems, err = parseHeaderTemplate(set, shortID)
	} else {
		fields, subjectElems, err = parseMessageTemplate(set, shortID)
	}
	if err != nil {
		return nil, false, err
	}

	entry := findDirEntry(dir, shortID, level)
	definition := ""
	if entry != nil {
		definition = entry.Description
	}

	return &MessageTemplate{
		SchemaID:        shortID,
		Fields:          fields,
		SubjectElements: subjectElems,
		SchemaLevel:     level,
		Definition:      definition,
	}, true, nil
}

func findDirEntry(dir *Directory, id string, level int) *SchemaEntry {
	for i := range dir.Entries {
		if dir.Entries[i].ID == id && dir.Entries[i].Level == level {
			return &dir.Entries[i]
		}
	}
	return nil
}

// parseHeaderTemplate implements spec.md §4.2 step 4's HEADER case: the
// first top-level complexType named HEADER holds field elements under
// xs:all; the complexType immediately following it holds subject
// elements.
func parseHeaderTemplate(set *xsdDocumentSet, shortID string) ([]*FieldTemplate, []SubjectElement, error) {
	var headerType, subjectType xmldom.Element
	seenHeader := false
	for _, elem := range set.topLevel() {
		if !isXSDTag(elem, "complexType") {
			continue
		}
		if !seenHeader {
			if string(elem.GetAttribute("name")) == "HEADER" {
				headerType = elem
				seenHeader = true
			}
			continue
		}
		subjectType = elem
		break
	}
	if headerType == nil {
		return nil, nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s: schema missing <xs:complexType> tag named HEADER", shortID)
	}

	all := firstChildTag(headerType, "all")
	if all == nil {
		return nil, nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s: schema missing <xs:all> tag inside HEADER", shortID)
	}

	fields, err := parseFieldList(set, shortID, all, ClassHeader)
	if err != nil {
		return nil, nil, err
	}

	var subjectElems []SubjectElement
	if subjectType != nil {
		subjectAll := firstChildTag(subjectType, "all")
		if subjectAll == nil {
			return nil, nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
				"%s: schema missing <xs:all> tag inside SUBJECT", shortID)
		}
		subjectElems = parseSubjectElements(subjectAll)
	}

	return fields, subjectElems, nil
}

// parseMessageTemplate implements spec.md §4.2 step 4's non-HEADER case.
func parseMessageTemplate(set *xsdDocumentSet, shortID string) ([]*FieldTemplate, []SubjectElement, error) {
	msgElem := set.findByNameAttr("element", shortID, true)
	if msgElem == nil {
		return nil, nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: schema missing <xs:element> tag with attribute name="%s"`, shortID, shortID)
	}

	complexType := firstChildTag(msgElem, "complexType")
	if complexType == nil {
		return nil, nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s: schema missing <xs:complexType> tag", shortID)
	}
	top := firstChildTag(complexType, "all")
	if top == nil {
		return nil, nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s: schema missing <xs:all> tag", shortID)
	}

	var subjectElem, contentElem xmldom.Element
	for _, e := range childTags(top, "element") {
		switch string(e.GetAttribute("name")) {
		case "SUBJECT":
			subjectElem = e
		case "CONTENT":
			contentElem = e
		}
	}
	if subjectElem == nil {
		return nil, nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s: missing <xs:element> named SUBJECT", shortID)
	}
	if contentElem == nil {
		return nil, nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s: missing <xs:element> named CONTENT", shortID)
	}

	var subjectElems []SubjectElement
	if typeName := string(subjectElem.GetAttribute("type")); typeName != "" {
		subjectType := set.findByNameAttr("complexType", typeName, false)
		if subjectType == nil {
			return nil, nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
				"%s: cannot find complexType %q referenced by SUBJECT", shortID, typeName)
		}
		subjectAll := firstChildTag(subjectType, "all")
		if subjectAll == nil {
			return nil, nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
				"%s: complexType %q missing <xs:all> tag", shortID, typeName)
		}
		subjectElems = parseSubjectElements(subjectAll)
	} else if inline := firstChildTag(subjectElem, "complexType"); inline != nil {
		if subjectAll := firstChildTag(inline, "all"); subjectAll != nil {
			subjectElems = parseSubjectElements(subjectAll)
		}
	}

	contentType := firstChildTag(contentElem, "complexType")
	if contentType == nil {
		return nil, nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s: content missing <xs:complexType> tag", shortID)
	}
	contentAll := firstChildTag(contentType, "all")
	if contentAll == nil {
		return nil, nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s: content missing <xs:all> tag", shortID)
	}

	fields, err := parseFieldList(set, shortID, contentAll, ClassStandard)
	if err != nil {
		return nil, nil, err
	}
	return fields, subjectElems, nil
}

func parseSubjectElements(all xmldom.Element) []SubjectElement {
	var out []SubjectElement
	for _, e := range childTags(all, "element") {
		name := string(e.GetAttribute("name"))
		def := string(e.GetAttribute("default"))
		optional := string(e.GetAttribute("minOccurs")) == "0"
		out = append(out, SubjectElement{Name: name, DefaultValue: def, Optional: optional})
	}
	return out
}

func parseFieldList(set *xsdDocumentSet, schemaID string, all xmldom.Element, class FieldClass) ([]*FieldTemplate, error) {
	refGuard := map[string]bool{}
	var fields []*FieldTemplate
	for _, e := range childTags(all, "element") {
		ft, err := parseField(set, schemaID, e, class, refGuard)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ft)
	}
	return fields, nil
}

// parseField implements spec.md §4.2 step 5.
func parseField(set *xsdDocumentSet, schemaID string, elem xmldom.Element, class FieldClass, refGuard map[string]bool) (*FieldTemplate, error) {
	name := string(elem.GetAttribute("name"))
	if name == "" {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s: field element missing name attribute", schemaID)
	}

	ft := &FieldTemplate{name: name, modifiedName: name, class: class}
	if string(elem.GetAttribute("minOccurs")) == "0" {
		ft.mode = ModeOptional
	} else {
		ft.mode = ModeRequired
	}

	if ann := firstChildTag(elem, "annotation"); ann != nil {
		if doc := firstChildTag(ann, "documentation"); doc != nil {
			ft.description = string(doc.TextContent())
		}
	}

	complexType := firstChildTag(elem, "complexType")
	if complexType == nil {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: field element "%s" missing <xs:complexType> tag`, schemaID, name)
	}

	if seq := firstChildTag(complexType, "sequence"); seq != nil {
		return parseControlField(set, schemaID, ft, seq, refGuard)
	}

	simpleContent := firstChildTag(complexType, "simpleContent")
	if simpleContent == nil {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: field element "%s" missing <xs:simpleContent> or <xs:sequence> tag`, schemaID, name)
	}
	extension := firstChildTag(simpleContent, "extension")
	if extension == nil {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: field element "%s" missing <xs:extension> tag`, schemaID, name)
	}

	base := string(extension.GetAttribute("base"))
	if base == "" {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: field element "%s" extension tag missing base attribute`, schemaID, name)
	}
	if values, pattern, found := set.parseEnumerations(base); found {
		ft.values = values
		if pattern != "" {
			ft.pattern = pattern
		}
	} else {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: cannot find simpleType element "%s"`, schemaID, base)
	}
	if p := string(extension.GetAttribute("pattern")); p != "" {
		ft.pattern = p
	}

	typeAttr := findTypeAttribute(extension)
	if typeAttr == nil {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: field element "%s" missing or incomplete <xs:attribute name="TYPE"> tag`, schemaID, name)
	}
	if fixed := string(typeAttr.GetAttribute("fixed")); fixed != "" {
		ft.types = []TypeTag{TypeTag(strings.ToUpper(fixed))}
	} else {
		typeRef := string(typeAttr.GetAttribute("type"))
		values, _, found := set.parseEnumerations(typeRef)
		if !found {
			return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
				`%s: cannot find simpleType element "%s"`, schemaID, typeRef)
		}
		for _, v := range values {
			ft.types = append(ft.types, TypeTag(strings.ToUpper(v)))
		}
	}
	if len(ft.types) == 0 {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: field element %s is missing TYPE`, schemaID, name)
	}

	if tracking := findAttributeNamed(extension, "TRACKING"); tracking != nil {
		ft.mode = ModeTracking
	}

	deps, err := parseDependencies(set, schemaID, name, extension)
	if err != nil {
		return nil, err
	}
	ft.dependencies = deps

	return ft, nil
}

// findTypeAttribute returns the <xs:attribute name="TYPE" .../> child of
// extension, if present.
func findTypeAttribute(extension xmldom.Element) xmldom.Element {
	return findAttributeNamed(extension, "TYPE")
}

func findAttributeNamed(extension xmldom.Element, attrName string) xmldom.Element {
	for _, a := range childTags(extension, "attribute") {
		if string(a.GetAttribute("name")) == attrName {
			return a
		}
	}
	return nil
}

// parseControlField implements spec.md §4.2 step 5's CONTROL case: the
// field groups a named, elsewhere-defined element's fields under a common
// prefix. Self- or ancestor-reference is rejected (spec.md §9, §8).
func parseControlField(set *xsdDocumentSet, schemaID string, ft *FieldTemplate, seq xmldom.Element, refGuard map[string]bool) (*FieldTemplate, error) {
	ft.class = ClassControl
	ft.mode = ModeOptional

	refElem := firstChildTag(seq, "element")
	if refElem == nil {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: field element "%s" missing <xs:element> tag with ref attribute`, schemaID, ft.name)
	}
	refName := string(refElem.GetAttribute("ref"))
	if refName == "" {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: field element "%s" missing <xs:element> tag with ref attribute`, schemaID, ft.name)
	}
	if refGuard[refName] {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: reference element "%s" cannot reference itself or an ancestor element of the same name`, schemaID, refName)
	}
	ft.prefix = refName

	target := set.findByNameAttr("element", refName, false)
	if target == nil {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: cannot find reference element "%s"`, schemaID, refName)
	}
	targetType := firstChildTag(target, "complexType")
	if targetType == nil {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: reference element "%s" missing <xs:complexType> tag`, schemaID, refName)
	}
	targetAll := firstChildTag(targetType, "all")
	if targetAll == nil {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			`%s: reference element "%s" missing <xs:all> tag`, schemaID, refName)
	}

	childGuard := make(map[string]bool, len(refGuard)+1)
	for k := range refGuard {
		childGuard[k] = true
	}
	childGuard[refName] = true

	for _, e := range childTags(targetAll, "element") {
		child, err := parseField(set, schemaID, e, ClassStandard, childGuard)
		if err != nil {
			return nil, err
		}
		ft.children = append(ft.children, child)
	}

	return ft, nil
}

// parseDependencies implements spec.md §4.2 step 5's <api:dependency> case.
func parseDependencies(set *xsdDocumentSet, schemaID, fieldName string, extension xmldom.Element) ([]*Dependency, error) {
	var deps []*Dependency
	for _, d := range childTags(extension, "dependency") {
		name := string(d.GetAttribute("name"))
		if name == "" {
			return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
				`%s: field element "%s" contains <api:dependency> tag with missing or empty name attribute`, schemaID, fieldName)
		}
		dep := &Dependency{Name: name}
		if v := string(d.GetAttribute("valueEquals")); v != "" {
			dep.EqualsValue = &v
		}
		if v := string(d.GetAttribute("valueGreaterThan")); v != "" {
			dep.GreaterThan = &v
		}
		if v := string(d.GetAttribute("valueLessThan")); v != "" {
			dep.LessThan = &v
		}
		if v := string(d.GetAttribute("use")); v != "" {
			mode := FieldMode(strings.ToUpper(v))
			dep.UseOverride = &mode
		}
		if v := string(d.GetAttribute("pattern")); v != "" {
			dep.Pattern = v
		}
		if base := string(d.GetAttribute("base")); base != "" {
			values, pattern, found := set.parseEnumerations(base)
			if !found {
				return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
					`%s: cannot find simpleType element "%s"`, schemaID, base)
			}
			dep.ValueOverrides = values
			if pattern != "" {
				dep.Pattern = pattern
			}
		}
		if typ := string(d.GetAttribute("type")); typ != "" {
			values, _, found := set.parseEnumerations(typ)
			if !found {
				return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
					`%s: cannot find simpleType element "%s"`, schemaID, typ)
			}
			for _, v := range values {
				dep.TypeOverrides = append(dep.TypeOverrides, TypeTag(strings.ToUpper(v)))
			}
		}
		deps = append(deps, dep)
	}
	return deps, nil
}
