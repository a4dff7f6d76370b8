package gmsec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	defaultSpecVersion = 201900
	defaultSchemaLevel = 0
)

// Specification is the immutable, queryable set of message templates
// resolved from a schema directory at a given version/level (spec.md §3,
// §4.5). Once Construct returns one it is never mutated; callers needing an
// independent snapshot use Copy.
type Specification struct {
	Version     int
	SchemaLevel int
	Directory   *Directory

	// Templates is keyed by short schema ID (e.g. "MSG.LOG"), one entry per
	// ID at whichever level Construct resolved it to (spec.md §4.5 "higher
	// level wins for short ID").
	Templates map[string]*MessageTemplate

	// FullIDTemplates additionally indexes every level's copy of a schema
	// under its full ID ("<version>.<levelName>.<shortID>"), so a template
	// superseded at the short-ID level is still reachable (spec.md §4.5).
	FullIDTemplates map[string]*MessageTemplate

	// HeaderTemplates holds the HEADER template loaded for each level 0..
	// SchemaLevel, keyed by level.
	HeaderTemplates map[int]*MessageTemplate

	// TemplateOrder lists Templates' keys in the order they were first
	// inserted during construct (spec.md §5 "Ordering": "Schema-ID iteration
	// order is the order in which templates were inserted during load").
	TemplateOrder []string
}

func constructKey(schemaPath string, version, level int) string {
	return fmt.Sprintf("%s|%d|%d", schemaPath, version, level)
}

type specConstructEntry struct {
	once sync.Once
	spec *Specification
	err  error
}

var (
	specConstructMu    sync.Mutex
	specConstructCache = map[string]*specConstructEntry{}
)

// Construct loads and resolves a Specification from config (spec.md §4.5
// "Construct"). Concurrent calls sharing the same schema path, version, and
// level are deduplicated: only the first actually walks the directory and
// parses templates, the rest block on the same result, in the style of
// go-xsd's SchemaCache.Get (cache.go) generalized from a per-file to a
// per-construction sync.Once.
func Construct(config *Config) (*Specification, error) {
	schemaPath := config.schemaPath(".")
	version, err := config.GetInt(KeySpecVersion, defaultSpecVersion)
	if err != nil {
		return nil, err
	}
	level, err := config.GetInt(KeySchemaLevel, defaultSchemaLevel)
	if err != nil {
		return nil, err
	}

	key := constructKey(schemaPath, version, level)

	specConstructMu.Lock()
	entry, ok := specConstructCache[key]
	if !ok {
		entry = &specConstructEntry{}
		specConstructCache[key] = entry
	}
	specConstructMu.Unlock()

	entry.once.Do(func() {
		entry.spec, entry.err = construct(schemaPath, version, level)
	})
	return entry.spec, entry.err
}

func versionDirName(version int) string {
	return fmt.Sprintf("%d.%02d", version/100, version%100)
}

func construct(schemaPath string, version, level int) (*Specification, error) {
	dir := filepath.Join(schemaPath, versionDirName(version))

	dirFileData, err := readCachedFile(filepath.Join(dir, "DirectoryFile.xml"))
	if err != nil {
		return nil, newErrorf(ClassSpecificationError, CodeTemplateDirNotFound,
			"failed to locate schema directory at %s: %v", dir, err)
	}
	directory, err := ParseDirectory(strings.NewReader(string(dirFileData)), level)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, newErrorf(ClassSpecificationError, CodeTemplateDirNotFound,
			"failed to read schema directory %s: %v", dir, err)
	}

	spec := &Specification{
		Version:         version,
		SchemaLevel:     level,
		Directory:       directory,
		Templates:       make(map[string]*MessageTemplate),
		FullIDTemplates: make(map[string]*MessageTemplate),
		HeaderTemplates: make(map[int]*MessageTemplate),
	}

	vdir := versionDirName(version)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xsd") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		tmpl, loaded, err := loadXSDTemplate(path, directory, version, level)
		if err != nil {
			return nil, err
		}
		if !loaded {
			continue
		}

		levelName, _ := directory.LevelName(tmpl.SchemaLevel)
		fullID := fmt.Sprintf("%s.%s.%s", vdir, levelName, tmpl.SchemaID)
		spec.FullIDTemplates[fullID] = tmpl

		if strings.EqualFold(tmpl.SchemaID, "HEADER") {
			spec.HeaderTemplates[tmpl.SchemaLevel] = tmpl
			continue
		}

		if existing, ok := spec.Templates[tmpl.SchemaID]; !ok || tmpl.SchemaLevel > existing.SchemaLevel {
			if !ok {
				spec.TemplateOrder = append(spec.TemplateOrder, tmpl.SchemaID)
			}
			spec.Templates[tmpl.SchemaID] = tmpl
		}
	}

	return spec, nil
}

// FindTemplate resolves id to a MessageTemplate (spec.md §4.5 "findTemplate"):
// an exact short-ID match first, then progressively stripping trailing
// ".<token>" segments until one matches or none remain.
func (s *Specification) FindTemplate(id string) (*MessageTemplate, bool) {
	candidate := id
	for candidate != "" {
		if tmpl, ok := s.Templates[candidate]; ok {
			return tmpl, true
		}
		idx := strings.LastIndex(candidate, ".")
		if idx < 0 {
			break
		}
		candidate = candidate[:idx]
	}
	return nil, false
}

// FindDefinition composes a concrete schema ID for msg by walking the
// directory outward from level, extending name with successive key-field
// values read out of msg (spec.md §4.5 "findDefinition"; used by the
// validator's §4.6 step 1 fallback when msg carries no explicit schema
// ID). Starting at the HEADER entry registered for level, each matched
// directory entry's own DEFINITION names the next key field(s) to read;
// the walk stops once a key field is missing from msg, or once the
// matched entry's DEFINITION no longer names a further field to read (its
// DEFINITION equals its own ID, the directory's convention for a terminal
// schema entry). The returned bool reports whether the composed name
// resolves to a registered MessageTemplate.
func (s *Specification) FindDefinition(level int, msg *Message) (string, bool) {
	entry := s.Directory.HeaderEntry(level)
	if entry == nil {
		return "", false
	}

	name := ""
	keys := entry.Definition
	for len(keys) > 0 {
		extended := false
		for _, key := range keys {
			v, ok := msg.GetFieldValue(key)
			if !ok {
				break
			}
			if name == "" {
				name = v
			} else {
				name = name + "." + v
			}
			extended = true
		}
		if !extended {
			break
		}
		next := s.Directory.EntryByID(name, level)
		if next == nil {
			break
		}
		if len(next.Definition) == 0 || strings.Join(next.Definition, ".") == next.ID {
			break // terminal entry: DEFINITION just restates the schema ID
		}
		keys = next.Definition
	}

	if name == "" {
		return "", false
	}
	_, ok := s.Templates[name]
	return name, ok
}

// HeaderFieldNames returns the HEADER field templates effective for a
// template at the given schema level, falling back to the DEFAULT HEADER
// template (the one at the highest loaded level not above SchemaLevel) when
// no HEADER is registered at that exact level.
func (s *Specification) HeaderFieldNames(level int) []*FieldTemplate {
	if h, ok := s.HeaderTemplates[level]; ok {
		return h.Fields
	}
	for l := s.SchemaLevel; l >= 0; l-- {
		if h, ok := s.HeaderTemplates[l]; ok {
			return h.Fields
		}
	}
	return nil
}

// MessageSpecification is a flattened, read-only snapshot of one schema's
// effective fields — the shape getMessageSpecifications (spec.md §9
// Supplemented Features) exposes for introspection tooling, independent of
// the live Specification/MessageTemplate object graph.
type MessageSpecification struct {
	SchemaID   string
	Subject    string
	FieldSpecs []FieldSpecification
}

// FieldSpecification is one field's resolved (not dependency-applied)
// contract, for display or codegen purposes.
type FieldSpecification struct {
	Name        string
	Type        string
	Mode        string
	Class       string
	Description string
}

// GetMessageSpecifications returns a snapshot of every registered message
// template's field list, in the order templates were inserted during load
// (spec.md §9 "supplement: getMessageSpecifications snapshot"; §5
// "Ordering").
func (s *Specification) GetMessageSpecifications() []MessageSpecification {
	out := make([]MessageSpecification, 0, len(s.TemplateOrder))
	for _, id := range s.TemplateOrder {
		tmpl := s.Templates[id]
		header := s.HeaderFieldNames(tmpl.SchemaLevel)
		fields := tmpl.EffectiveFields(header)

		fieldSpecs := make([]FieldSpecification, 0, len(fields))
		for _, f := range fields {
			fieldSpecs = append(fieldSpecs, FieldSpecification{
				Name:        f.ModifiedName(),
				Type:        f.ConcatenatedTypes(),
				Mode:        string(f.Mode()),
				Class:       string(f.Class()),
				Description: f.Description(),
			})
		}

		subjectParts := make([]string, 0, len(tmpl.SubjectElements))
		for _, se := range tmpl.SubjectElements {
			subjectParts = append(subjectParts, se.DefaultValue)
		}

		out = append(out, MessageSpecification{
			SchemaID:   id,
			Subject:    strings.Join(subjectParts, "."),
			FieldSpecs: fieldSpecs,
		})
	}
	return out
}

// SchemaIDIterator iterates a Specification's registered short schema IDs
// in insertion order (spec.md §9 "supplement: schemaIDIterator"; §5
// "Ordering": "Schema-ID iteration order is the order in which templates
// were inserted during load").
type SchemaIDIterator struct {
	ids []string
	pos int
}

// SchemaIDIterator returns a restartable iterator over s's schema IDs.
func (s *Specification) SchemaIDIterator() *SchemaIDIterator {
	ids := make([]string, len(s.TemplateOrder))
	copy(ids, s.TemplateOrder)
	return &SchemaIDIterator{ids: ids}
}

// Next returns the next schema ID, or ok=false when exhausted.
func (it *SchemaIDIterator) Next() (string, bool) {
	if it.pos >= len(it.ids) {
		return "", false
	}
	id := it.ids[it.pos]
	it.pos++
	return id, true
}

// Reset restarts the iterator from the beginning.
func (it *SchemaIDIterator) Reset() { it.pos = 0 }

// Copy returns an independent deep copy of s (spec.md §4.5 "Copy").
func (s *Specification) Copy() (*Specification, error) {
	return cloneSpecification(s)
}
