package session

import "github.com/goliatone/go-autofill/pkg/model"

// State is the per-field UI state.
type State string

const (
	StateUnlocked     State = "unlocked"
	StateLocked       State = "locked"
	StateRegenerating State = "regenerating"
)

// FieldState tracks one row. Suggestion is what the model proposed, Draft is
// the user's edit buffer. The draft survives lock/unlock cycles and is reset
// only when a new suggestion arrives.
type FieldState struct {
	Suggestion   model.FieldSuggestion
	Draft        string
	Locked       bool
	Regenerating bool
}

func newFieldState(entry model.FieldSuggestion) *FieldState {
	return &FieldState{Suggestion: entry, Draft: entry.Text}
}

// State reports the current state. A regenerating field returns to its
// Locked value when the request fails.
func (f FieldState) State() State {
	switch {
	case f.Regenerating:
		return StateRegenerating
	case f.Locked:
		return StateLocked
	default:
		return StateUnlocked
	}
}

// Display returns the text a renderer should show: the original suggestion
// verbatim when locked, the draft otherwise.
func (f FieldState) Display() string {
	if f.Locked {
		return f.Suggestion.Text
	}
	return f.Draft
}
