package testsupport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-autofill/pkg/llm"
)

// ErrScriptExhausted is returned once a StubCompleter has no replies left.
var ErrScriptExhausted = errors.New("testsupport: stub completer has no scripted replies left")

// Reply is one scripted completion outcome.
type Reply struct {
	Text string
	Err  error
}

// StubCompleter replays scripted replies in order and records every request.
// An optional gate blocks Complete until the test releases it.
type StubCompleter struct {
	mu       sync.Mutex
	replies  []Reply
	requests []llm.Request
	gate     chan struct{}
	entered  chan struct{}
}

var _ llm.Completer = (*StubCompleter)(nil)

// NewStubCompleter returns a completer answering with texts in order.
func NewStubCompleter(texts ...string) *StubCompleter {
	stub := &StubCompleter{}
	for _, text := range texts {
		stub.replies = append(stub.replies, Reply{Text: text})
	}
	return stub
}

// Push appends scripted replies.
func (s *StubCompleter) Push(replies ...Reply) *StubCompleter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, replies...)
	return s
}

// Fail appends a failing reply.
func (s *StubCompleter) Fail(err error) *StubCompleter {
	return s.Push(Reply{Err: err})
}

// Gate makes the next calls block until Release is called. Entered receives a
// value each time a call reaches the gate.
func (s *StubCompleter) Gate() (entered <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = make(chan struct{})
	s.entered = make(chan struct{}, 16)
	return s.entered
}

// Release unblocks gated calls.
func (s *StubCompleter) Release() {
	s.mu.Lock()
	gate := s.gate
	s.gate = nil
	s.mu.Unlock()
	if gate != nil {
		close(gate)
	}
}

// Complete implements llm.Completer.
func (s *StubCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	gate, entered := s.gate, s.entered
	s.mu.Unlock()

	if gate != nil {
		entered <- struct{}{}
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.replies) == 0 {
		return "", ErrScriptExhausted
	}
	next := s.replies[0]
	s.replies = s.replies[1:]
	return next.Text, next.Err
}

// Requests returns a copy of the recorded requests.
func (s *StubCompleter) Requests() []llm.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llm.Request(nil), s.requests...)
}

// Calls returns how many requests were made.
func (s *StubCompleter) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// FieldReply renders a single-field reply.
func FieldReply(field, text string, confidence float64) string {
	return fmt.Sprintf(`{%q: [%q, %v]}`, field, text, confidence)
}
