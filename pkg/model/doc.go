// Package model defines the typed suggestion record produced by the metadata
// requester and consumed by the session and renderers. A Suggestions value is
// an ordered mapping from field key to FieldSuggestion: keys are unique and
// iteration follows insertion order, which for decoded replies is the order
// the model emitted the keys in. Entries are replaced wholesale, never merged.
package model
