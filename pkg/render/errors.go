package render

import (
	"strings"

	"github.com/goliatone/go-autofill/pkg/session"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises form-level messages, trimming
// whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapFieldErrors resolves payload keys against the rows of view. Keys may be
// bare field names or form control names ("text.tags", "lock.tags") and JSON
// pointers ("/tags"). Unknown keys become form-level messages so nothing is
// lost.
func MapFieldErrors(view session.View, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	known := make(map[string]struct{}, len(view.Rows))
	for _, row := range view.Rows {
		known[row.Field] = struct{}{}
	}

	for raw, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		field, formLevel := mapErrorPath(raw, known)
		if formLevel {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[field] = append(mapping.Fields[field], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeNotices returns existing followed by extras, dropping blank messages
// and exact duplicates.
func MergeNotices(existing []session.Notice, extras ...session.Notice) []session.Notice {
	out := make([]session.Notice, 0, len(existing)+len(extras))
	seen := make(map[session.Notice]struct{}, len(existing)+len(extras))
	for _, notice := range append(append([]session.Notice(nil), existing...), extras...) {
		notice.Message = strings.TrimSpace(notice.Message)
		if notice.Message == "" {
			continue
		}
		if notice.Level == "" {
			notice.Level = session.NoticeInfo
		}
		if _, dup := seen[notice]; dup {
			continue
		}
		seen[notice] = struct{}{}
		out = append(out, notice)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, known map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}

	clean := strings.TrimLeft(trimmed, "#/$.")
	for _, prefix := range []string{"text.", "lock.", "regenerate."} {
		clean = strings.TrimPrefix(clean, prefix)
	}
	clean = strings.ReplaceAll(clean, "~1", "/")
	clean = strings.ReplaceAll(clean, "~0", "~")

	if _, ok := known[clean]; ok {
		return clean, false
	}
	return "", true
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "name", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
