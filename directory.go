package gmsec

import (
	"io"
	"strconv"
	"strings"

	"github.com/agentflare-ai/go-xmldom"
)

// SchemaEntry is one <SCHEMA> entry of DirectoryFile.xml (spec.md §3, §4.1).
type SchemaEntry struct {
	ID          string
	Level       int
	LevelName   string
	Definition  []string
	Description string
}

// Directory is the parsed form of DirectoryFile.xml: the ordered list of
// SchemaEntry plus lookup by (id, level).
type Directory struct {
	Entries []SchemaEntry
}

// ParseDirectory parses a DirectoryFile.xml document (spec.md §4.1). It
// enforces: NAME and DEFINITION present, every LEVEL-<n> attribute name
// parses as a non-negative integer, and a HEADER entry exists at every
// level <= configuredLevel. Violations are fatal (spec.md §7).
func ParseDirectory(r io.Reader, configuredLevel int) (*Directory, error) {
	doc, err := xmldom.Decode(r)
	if err != nil {
		return nil, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"failed to parse directory file: %v", err)
	}

	root := doc.DocumentElement()
	if root == nil {
		return nil, newError(ClassSpecificationError, CodeSchemaFailedToParse,
			"directory file has no root element")
	}

	dir := &Directory{}

	children := root.Children()
	for i := uint(0); i < children.Length(); i++ {
		elem := children.Item(i)
		if elem == nil {
			continue
		}
		if !strings.EqualFold(string(elem.LocalName()), "SCHEMA") {
			continue
		}

		entry, err := parseSchemaEntry(elem)
		if err != nil {
			return nil, err
		}
		dir.Entries = append(dir.Entries, entry)
	}

	if err := dir.validateHeaderCoverage(configuredLevel); err != nil {
		return nil, err
	}

	return dir, nil
}

func parseSchemaEntry(elem xmldom.Element) (SchemaEntry, error) {
	var entry SchemaEntry

	entry.ID = string(elem.GetAttribute("NAME"))
	if entry.ID == "" {
		return entry, newError(ClassSpecificationError, CodeSchemaFailedToParse,
			"directory references a schema with no NAME")
	}

	def := string(elem.GetAttribute("DEFINITION"))
	if def == "" {
		return entry, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s is referenced in directory but contains no DEFINITION", entry.ID)
	}
	entry.Definition = strings.Split(def, ".")

	entry.Description = string(elem.GetAttribute("DESCRIPTION"))

	attrs := elem.Attributes()
	for i := uint(0); i < attrs.Length(); i++ {
		attr := attrs.Item(i)
		if attr == nil {
			continue
		}
		name := string(attr.NodeName())
		if !strings.HasPrefix(name, "LEVEL-") {
			continue
		}
		levelStr := strings.TrimPrefix(name, "LEVEL-")
		level, err := strconv.Atoi(levelStr)
		if err != nil || level < 0 {
			return entry, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
				"%s is referenced in directory but schema level LEVEL-%s can't be parsed", entry.ID, levelStr)
		}
		entry.Level = level
		entry.LevelName = string(attr.NodeValue())
	}

	if entry.LevelName == "" {
		return entry, newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
			"%s is referenced in directory but contains an unnamed level", entry.ID)
	}

	return entry, nil
}

// validateHeaderCoverage enforces spec.md §3's invariant: for every level L
// <= configuredLevel, a HEADER entry at level L exists.
func (d *Directory) validateHeaderCoverage(configuredLevel int) error {
	for level := 0; level <= configuredLevel; level++ {
		found := false
		for _, e := range d.Entries {
			if strings.EqualFold(e.ID, "HEADER") && e.Level == level {
				found = true
				break
			}
		}
		if !found {
			return newErrorf(ClassSpecificationError, CodeSchemaFailedToParse,
				"directory is missing definition for LEVEL-%d HEADER", level)
		}
	}
	return nil
}

// LevelName returns the display name registered for level, and whether one
// was found.
func (d *Directory) LevelName(level int) (string, bool) {
	for _, e := range d.Entries {
		if e.Level == level {
			return e.LevelName, true
		}
	}
	return "", false
}

// ByID returns the directory entries sharing the given short schema ID,
// across all levels.
func (d *Directory) ByID(id string) []SchemaEntry {
	var out []SchemaEntry
	for _, e := range d.Entries {
		if e.ID == id {
			out = append(out, e)
		}
	}
	return out
}

// HeaderEntry returns the HEADER entry registered at level, the walk's
// starting point for findDefinition (spec.md §4.5, §4.6 step 1).
func (d *Directory) HeaderEntry(level int) *SchemaEntry {
	for i := range d.Entries {
		if strings.EqualFold(d.Entries[i].ID, "HEADER") && d.Entries[i].Level == level {
			return &d.Entries[i]
		}
	}
	return nil
}

// EntryByID returns the entry named id with the highest level not
// exceeding maxLevel, or nil if none is registered.
func (d *Directory) EntryByID(id string, maxLevel int) *SchemaEntry {
	var best *SchemaEntry
	for i := range d.Entries {
		e := &d.Entries[i]
		if e.ID != id || e.Level > maxLevel {
			continue
		}
		if best == nil || e.Level > best.Level {
			best = e
		}
	}
	return best
}
