package catalog

import (
	"strings"

	"github.com/goliatone/go-autofill/pkg/model"
)

// Field describes one metadata category.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Hint  string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// Catalog is an ordered, immutable set of fields. It is safe for concurrent
// readers.
type Catalog struct {
	fields []Field
	index  map[string]int
}

// New builds a catalog from fields, rejecting empty or duplicate keys.
func New(fields ...Field) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(fields))}
	for _, field := range fields {
		if err := c.add(field, "inline"); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(field Field, source string) error {
	key := strings.TrimSpace(field.Key)
	if key == "" {
		return &LoadError{Source: source, Reason: "field key is required"}
	}
	if _, exists := c.index[key]; exists {
		return &LoadError{Source: source, Reason: "duplicate field " + key}
	}
	field.Key = key
	field.Label = strings.TrimSpace(field.Label)
	field.Hint = strings.TrimSpace(field.Hint)
	c.index[key] = len(c.fields)
	c.fields = append(c.fields, field)
	return nil
}

// Fields returns the fields in display order.
func (c *Catalog) Fields() []Field {
	if c == nil {
		return nil
	}
	return append([]Field(nil), c.fields...)
}

// Keys returns the field keys in display order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.fields))
	for _, field := range c.fields {
		keys = append(keys, field.Key)
	}
	return keys
}

// Len returns the number of fields.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.fields)
}

// Lookup returns the field registered under key.
func (c *Catalog) Lookup(key string) (Field, bool) {
	if c == nil {
		return Field{}, false
	}
	idx, ok := c.index[key]
	if !ok {
		return Field{}, false
	}
	return c.fields[idx], true
}

// Has reports whether key is part of the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

// Label returns the configured label for key, falling back to the derived
// label so keys outside the catalog still render.
func (c *Catalog) Label(key string) string {
	if field, ok := c.Lookup(key); ok && field.Label != "" {
		return field.Label
	}
	return model.Label(key)
}

// Hint returns the prompt hint for key, if any.
func (c *Catalog) Hint(key string) string {
	field, _ := c.Lookup(key)
	return field.Hint
}
