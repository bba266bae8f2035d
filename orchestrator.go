package autofill

import (
	"context"

	"github.com/goliatone/go-autofill/pkg/llm"
	"github.com/goliatone/go-autofill/pkg/model"
	"github.com/goliatone/go-autofill/pkg/orchestrator"
	"github.com/goliatone/go-autofill/pkg/render"
	"github.com/goliatone/go-autofill/pkg/session"
	"github.com/goliatone/go-autofill/pkg/themes"
)

// Suggestions is the ordered field → (text, confidence) mapping.
type Suggestions = model.Suggestions

// FieldSuggestion is one entry of Suggestions.
type FieldSuggestion = model.FieldSuggestion

// RenderOptions describes per-request overrides that renderers can use.
type RenderOptions = render.RenderOptions

// Session aliases session.Session for callers driving the form themselves.
type Session = session.Session

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate asks completer for suggestions for name and renders them using the
// named renderer ("html" or "tui"). It is the simplest entry point for
// callers that just want output. Requester failures are returned together
// with the rendered failure notice.
func Generate(ctx context.Context, completer llm.Completer, name, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	options = append([]orchestrator.Option{orchestrator.WithCompleter(completer)}, options...)
	gen := orchestrator.New(options...)
	result, err := gen.Generate(ctx, orchestrator.Request{
		Name:     name,
		Renderer: rendererName,
	})
	return result.Output, err
}

// WithThemeSelector passes a theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector *themes.Selector, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, defaultTheme, defaultVariant)
}
