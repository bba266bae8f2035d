// Package prompt builds the instructions sent to the completion model.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-autofill/pkg/catalog"
)

var (
	// ErrEmptyName is returned when the assistant name is blank.
	ErrEmptyName = errors.New("prompt: assistant name is required")
	// ErrEmptyField is returned when a regeneration prompt names no field.
	ErrEmptyField = errors.New("prompt: field is required")
)

const preamble = "You are a senior AI developer assistant."

// Generate returns the instruction asking for every field in c for the
// assistant called name. Field order in the example object follows the
// catalog.
func Generate(name string, c *catalog.Catalog) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if c == nil {
		c = catalog.Default()
	}
	fields := c.Fields()

	var b strings.Builder
	fmt.Fprintf(&b, "%s Given an assistant function name like '%s', generate suggestions for %d assistant design fields.\n", preamble, name, len(fields))
	b.WriteString("Return the result in this exact JSON format:\n{\n")
	for i, field := range fields {
		sep := ","
		if i == len(fields)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  %q: [\"text\", confidence]%s\n", field.Key, sep)
	}
	b.WriteString("}\n")

	b.WriteString("Field guidance:\n")
	for _, field := range fields {
		if field.Hint == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", field.Key, field.Hint)
	}

	b.WriteString("Rules:\n")
	b.WriteString("- \"text\" is your suggestion as a plain string.\n")
	b.WriteString("- confidence is a number between 0 and 1.\n")
	b.WriteString("Only output JSON.\n")
	return b.String(), nil
}

// Regenerate returns the instruction asking for a single field.
func Regenerate(name, field string) (string, error) {
	name = strings.TrimSpace(name)
	field = strings.TrimSpace(field)
	if name == "" {
		return "", ErrEmptyName
	}
	if field == "" {
		return "", ErrEmptyField
	}
	return fmt.Sprintf(
		"Based on the assistant '%s', regenerate the field '%s' and return it as a JSON pair: {%q: [\"text\", confidence]}\nOnly output JSON.",
		name, field, field,
	), nil
}
