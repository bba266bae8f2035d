package suggest

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-autofill/pkg/prompt"
)

var (
	// ErrEmptyName is returned when Generate or Regenerate is called without
	// an assistant name.
	ErrEmptyName = prompt.ErrEmptyName
	// ErrEmptyField is returned when Regenerate is called without a field.
	ErrEmptyField = prompt.ErrEmptyField
	// ErrMalformedReply marks replies that are not a valid suggestion object.
	ErrMalformedReply = errors.New("suggest: malformed reply")
)

// Kind classifies requester failures.
type Kind int

const (
	// KindGenerationParse covers any failure of a full generation, from the
	// transport to the reply shape.
	KindGenerationParse Kind = iota + 1
	// KindFieldRegenerateParse covers any failure of a single field
	// regeneration.
	KindFieldRegenerateParse
)

func (k Kind) String() string {
	switch k {
	case KindGenerationParse:
		return "generation_parse"
	case KindFieldRegenerateParse:
		return "field_regenerate_parse"
	default:
		return "unknown"
	}
}

// Error is returned by the Requester when a request cannot produce a usable
// result.
type Error struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Field != "" {
		return fmt.Sprintf("suggest: %s %s: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("suggest: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var target *Error
	return errors.As(err, &target) && target.Kind == kind
}
