package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-autofill/pkg/catalog"
	"github.com/goliatone/go-autofill/pkg/model"
	"github.com/goliatone/go-autofill/pkg/suggest"
)

var (
	// ErrUnknownField is returned for operations on a field the session does
	// not hold.
	ErrUnknownField = errors.New("session: unknown field")
	// ErrFieldLocked is returned when editing a locked field.
	ErrFieldLocked = errors.New("session: field is locked")
	// ErrBusy is returned while a conflicting request is in flight.
	ErrBusy = errors.New("session: request already in progress")
	// ErrEmptyName is returned when generating without an assistant name.
	ErrEmptyName = suggest.ErrEmptyName
)

// Requester is the subset of suggest.Requester a session needs.
type Requester interface {
	Generate(ctx context.Context, name string) (model.Suggestions, error)
	Regenerate(ctx context.Context, name, field string) (model.FieldSuggestion, error)
}

// Option configures a Session.
type Option func(*Session)

// WithCatalog sets the catalog used for labels and hints.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is safe for concurrent use. The lock is never held while waiting on
// the requester; in-flight markers make conflicting calls fail with ErrBusy.
type Session struct {
	mu sync.Mutex

	id          string
	requester   Requester
	catalog     *catalog.Catalog
	logger      *slog.Logger
	now         func() time.Time
	lastSeen    time.Time
	name        string
	suggestions model.Suggestions
	fields      map[string]*FieldState
	generating  bool
	notices     []Notice
}

// New returns an empty session.
func New(id string, requester Requester, opts ...Option) *Session {
	s := &Session{
		id:        id,
		requester: requester,
		catalog:   catalog.Default(),
		logger:    slog.Default(),
		now:       time.Now,
		fields:    make(map[string]*FieldState),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = s.logger.With("session", id)
	s.lastSeen = s.now()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Name returns the current assistant name.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// LastSeen returns the time of the last operation.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch() {
	s.lastSeen = s.now()
}

// SetName stores the assistant name used by later requests.
func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.name = strings.TrimSpace(name)
}

// Generate replaces every suggestion with a fresh set from the requester. A
// requester failure empties the mapping, queues one error notice and returns
// the *suggest.Error.
func (s *Session) Generate(ctx context.Context) error {
	s.mu.Lock()
	s.touch()
	if s.name == "" {
		s.mu.Unlock()
		return ErrEmptyName
	}
	if s.generating || s.anyRegenerating() {
		s.mu.Unlock()
		return ErrBusy
	}
	s.generating = true
	name := s.name
	s.mu.Unlock()

	suggestions, err := s.requester.Generate(ctx, name)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
	s.touch()

	if err != nil {
		if errors.Is(err, suggest.ErrEmptyName) {
			return err
		}
		s.replace(model.Suggestions{})
		s.notify(NoticeError, GenerationFailedMessage)
		s.logger.Warn("generation failed", "name", name, "error", err)
		return err
	}

	s.replace(suggestions)
	s.logger.Info("generation applied", "name", name, "fields", suggestions.Len())
	return nil
}

func (s *Session) replace(suggestions model.Suggestions) {
	s.suggestions = suggestions.Clone()
	s.fields = make(map[string]*FieldState, suggestions.Len())
	for _, entry := range s.suggestions.Entries() {
		s.fields[entry.Field] = newFieldState(entry)
	}
}

// Regenerate asks for a new suggestion for field. On success the field is
// unlocked and its draft reset to the new text; on failure nothing changes
// besides one queued error notice.
func (s *Session) Regenerate(ctx context.Context, field string) error {
	s.mu.Lock()
	s.touch()
	state, ok := s.fields[field]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if s.generating || state.Regenerating {
		s.mu.Unlock()
		return ErrBusy
	}
	state.Regenerating = true
	name := s.name
	s.mu.Unlock()

	entry, err := s.requester.Regenerate(ctx, name, field)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	state.Regenerating = false

	if err != nil {
		s.notify(NoticeError, RegenerationFailedMessage(field))
		s.logger.Warn("regeneration failed", "field", field, "error", err)
		return err
	}

	updated, replaced := s.suggestions.Replace(field, entry)
	if !replaced {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	s.suggestions = updated
	entry, _ = updated.Get(field)
	state.Suggestion = entry
	state.Draft = entry.Text
	state.Locked = false
	s.logger.Info("field regenerated", "field", field)
	return nil
}

// SetLocked toggles a field between unlocked and locked. The draft is kept
// so unlocking resumes the user's edit.
func (s *Session) SetLocked(field string, locked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	state, ok := s.fields[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if state.Regenerating {
		return ErrBusy
	}
	state.Locked = locked
	return nil
}

// Edit replaces the draft of an unlocked field.
func (s *Session) Edit(field, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.edit(field, text)
}

func (s *Session) edit(field, text string) error {
	state, ok := s.fields[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if state.Regenerating {
		return ErrBusy
	}
	if state.Locked {
		return ErrFieldLocked
	}
	state.Draft = text
	return nil
}

// FormState is the editable state submitted by a form. Fields lists the rows
// the form rendered; rows not listed keep their lock state.
type FormState struct {
	Name   string
	Fields []string
	Drafts map[string]string
	Locked map[string]bool
}

// Apply merges a submitted form into the session. Drafts of unlocked rows are
// applied before lock changes so an edit submitted together with a lock is
// kept. Fields the session no longer holds are skipped.
func (s *Session) Apply(form FormState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.name = strings.TrimSpace(form.Name)
	for _, field := range form.Fields {
		state, ok := s.fields[field]
		if !ok || state.Regenerating {
			continue
		}
		if text, ok := form.Drafts[field]; ok && !state.Locked {
			state.Draft = text
		}
		state.Locked = form.Locked[field]
	}
}

// Suggestions returns a copy of the current mapping as returned by the model.
func (s *Session) Suggestions() model.Suggestions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestions.Clone()
}

// Field returns a copy of the state of field.
func (s *Session) Field(field string) (FieldState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.fields[field]
	if !ok {
		return FieldState{}, false
	}
	return *state, true
}

// Snapshot returns the render-ready view including pending notices, without
// draining them.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Flush returns the view and drains pending notices atomically. Renderers
// call it once per render so each notice is shown exactly once.
func (s *Session) Flush() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := s.snapshot()
	s.notices = nil
	return view
}

func (s *Session) snapshot() View {
	view := View{
		ID:         s.id,
		Name:       s.name,
		Generating: s.generating,
		Notices:    append([]Notice(nil), s.notices...),
	}
	for _, entry := range s.suggestions.Entries() {
		state := s.fields[entry.Field]
		view.Rows = append(view.Rows, Row{
			Field:          entry.Field,
			Label:          s.catalog.Label(entry.Field),
			Hint:           s.catalog.Hint(entry.Field),
			Text:           state.Display(),
			Suggested:      state.Suggestion.Text,
			Draft:          state.Draft,
			Confidence:     state.Suggestion.Confidence,
			ConfidenceText: model.FormatConfidence(state.Suggestion.Confidence),
			State:          state.State(),
			Locked:         state.Locked,
			Regenerating:   state.Regenerating,
		})
	}
	return view
}

// Notices returns pending notices.
func (s *Session) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notice(nil), s.notices...)
}

// DrainNotices returns and clears pending notices.
func (s *Session) DrainNotices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

func (s *Session) notify(level NoticeLevel, message string) {
	s.notices = append(s.notices, Notice{Level: level, Message: message})
}

func (s *Session) anyRegenerating() bool {
	for _, state := range s.fields {
		if state.Regenerating {
			return true
		}
	}
	return false
}
