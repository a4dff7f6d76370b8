package gmsec

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Configuration keys consumed by the core (spec.md §6).
const (
	KeySchemaPath    = "GMSEC-SCHEMA-PATH"
	KeySpecVersion   = "GMSEC-MESSAGE-SPEC-VERSION"
	KeySchemaLevel   = "GMSEC-SCHEMA-LEVEL"
	envSchemaPathVar = "GMSEC_SCHEMA_PATH"
)

// Config is an ordered string->string map, per spec.md §9 ("All tunables
// are passed explicitly through a Config ... rather than environment
// variables"). Insertion order is preserved for iteration, matching the
// insertion-order contract the rest of the package holds field maps to.
type Config struct {
	keys   []string
	values map[string]string
}

// NewConfig returns an empty Config.
func NewConfig() *Config {
	return &Config{values: make(map[string]string)}
}

// NewConfigFromPairs builds a Config from an ordered list of key/value
// pairs, e.g. NewConfigFromPairs("a", "1", "b", "2").
func NewConfigFromPairs(pairs ...string) (*Config, error) {
	if len(pairs)%2 != 0 {
		return nil, newErrorf(ClassSpecificationError, CodeInvalidConfigValue,
			"odd number of arguments to NewConfigFromPairs")
	}
	c := NewConfig()
	for i := 0; i < len(pairs); i += 2 {
		c.Set(pairs[i], pairs[i+1])
	}
	return c, nil
}

// LoadConfigFile loads a flat key/value YAML document into a Config, in the
// style of ginjaninja78-CSV-to-XML-conversion's internal/config package.
func LoadConfigFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, newErrorf(ClassSpecificationError, CodeTemplateDirError,
			"failed to read config file %s: %v", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err == nil && len(doc.Content) > 0 && doc.Content[0].Kind == yaml.MappingNode {
		c := NewConfig()
		items := doc.Content[0].Content
		for i := 0; i+1 < len(items); i += 2 {
			if items[i].ShortTag() != "!!str" {
				continue
			}
			c.Set(items[i].Value, items[i+1].Value)
		}
		return c, nil
	}

	var plain map[string]string
	if err := yaml.Unmarshal(raw, &plain); err != nil {
		return nil, newErrorf(ClassSpecificationError, CodeInvalidConfigValue,
			"failed to parse config file %s: %v", path, err)
	}
	c := NewConfig()
	for k, v := range plain {
		c.Set(k, v)
	}
	return c, nil
}

// Set assigns key=value, preserving first-insertion order.
func (c *Config) Set(key, value string) {
	if _, exists := c.values[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// GetString returns the value for key, or def if absent.
func (c *Config) GetString(key, def string) string {
	if v, ok := c.values[key]; ok {
		return v
	}
	return def
}

// GetInt returns the integer value for key, or def if absent. A value that
// does not parse as an integer yields an INVALID_CONFIG_VALUE error.
func (c *Config) GetInt(key string, def int) (int, error) {
	v, ok := c.values[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, newErrorf(ClassSpecificationError, CodeInvalidConfigValue,
			"config key %s: %q is not an integer", key, v)
	}
	return n, nil
}

// Keys returns the configured keys in insertion order.
func (c *Config) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// schemaPath resolves GMSEC-SCHEMA-PATH, falling back to the
// GMSEC_SCHEMA_PATH environment variable per spec.md §9's explicit
// allowance, then to def.
func (c *Config) schemaPath(def string) string {
	if v := c.GetString(KeySchemaPath, ""); v != "" {
		return v
	}
	if v := os.Getenv(envSchemaPathVar); v != "" {
		return v
	}
	return def
}
