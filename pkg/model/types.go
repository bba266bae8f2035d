package model

import "fmt"

// FieldSuggestion is one model-proposed value for a metadata field.
// Confidence is reported by the model and is not normalised; callers render
// it as-is.
type FieldSuggestion struct {
	Field      string  `json:"field"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Suggestions is an ordered mapping of field key to suggestion.
type Suggestions struct {
	keys    []string
	entries map[string]FieldSuggestion
}

// NewSuggestions builds a mapping from the supplied entries, keeping their
// order. Duplicate keys return an error.
func NewSuggestions(entries ...FieldSuggestion) (Suggestions, error) {
	var out Suggestions
	for _, entry := range entries {
		if entry.Field == "" {
			return Suggestions{}, fmt.Errorf("model: suggestion field is required")
		}
		if out.Has(entry.Field) {
			return Suggestions{}, fmt.Errorf("model: duplicate suggestion field %q", entry.Field)
		}
		out.Set(entry)
	}
	return out, nil
}

// MustSuggestions panics when NewSuggestions fails. Intended for fixtures.
func MustSuggestions(entries ...FieldSuggestion) Suggestions {
	out, err := NewSuggestions(entries...)
	if err != nil {
		panic(err)
	}
	return out
}

// Set inserts the entry at the end of the mapping or replaces an existing
// entry in place, keeping its position.
func (s *Suggestions) Set(entry FieldSuggestion) {
	if s.entries == nil {
		s.entries = make(map[string]FieldSuggestion)
	}
	if _, exists := s.entries[entry.Field]; !exists {
		s.keys = append(s.keys, entry.Field)
	}
	s.entries[entry.Field] = entry
}

// Get returns the entry for field.
func (s Suggestions) Get(field string) (FieldSuggestion, bool) {
	entry, ok := s.entries[field]
	return entry, ok
}

// Has reports whether field is present.
func (s Suggestions) Has(field string) bool {
	_, ok := s.entries[field]
	return ok
}

// Len returns the number of entries.
func (s Suggestions) Len() int {
	return len(s.keys)
}

// Keys returns the field keys in display order.
func (s Suggestions) Keys() []string {
	if len(s.keys) == 0 {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Entries returns the suggestions in display order.
func (s Suggestions) Entries() []FieldSuggestion {
	if len(s.keys) == 0 {
		return nil
	}
	out := make([]FieldSuggestion, 0, len(s.keys))
	for _, key := range s.keys {
		out = append(out, s.entries[key])
	}
	return out
}

// Clone returns an independent copy.
func (s Suggestions) Clone() Suggestions {
	var out Suggestions
	for _, key := range s.keys {
		out.Set(s.entries[key])
	}
	return out
}

// Replace returns a copy of the mapping where only field is replaced by
// entry. The boolean is false, and the copy unchanged, when field is absent.
func (s Suggestions) Replace(field string, entry FieldSuggestion) (Suggestions, bool) {
	out := s.Clone()
	if !out.Has(field) {
		return out, false
	}
	entry.Field = field
	out.entries[field] = entry
	return out, true
}

// Equal reports whether both mappings hold the same entries in the same
// order.
func (s Suggestions) Equal(other Suggestions) bool {
	if len(s.keys) != len(other.keys) {
		return false
	}
	for i, key := range s.keys {
		if other.keys[i] != key || s.entries[key] != other.entries[key] {
			return false
		}
	}
	return true
}
