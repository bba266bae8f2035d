package testsupport

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-autofill/pkg/catalog"
	"github.com/goliatone/go-autofill/pkg/model"
)

// HeaderFixerSuggestions is a full, well formed answer for the "header fixer"
// assistant, keyed in catalog order with confidence 0.9.
func HeaderFixerSuggestions() model.Suggestions {
	var out model.Suggestions
	for _, key := range catalog.Default().Keys() {
		out.Set(model.FieldSuggestion{
			Field:      key,
			Text:       "Header fixer " + strings.ReplaceAll(key, "_", " "),
			Confidence: 0.9,
		})
	}
	return out
}

// ReplyFor renders suggestions as a model reply, preserving their order.
func ReplyFor(s model.Suggestions) string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, entry := range s.Entries() {
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  %q: [%q, %v]", entry.Field, entry.Text, entry.Confidence)
	}
	b.WriteString("\n}")
	return b.String()
}

// HeaderFixerReply is ReplyFor(HeaderFixerSuggestions()).
func HeaderFixerReply() string {
	return ReplyFor(HeaderFixerSuggestions())
}
