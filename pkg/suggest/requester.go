package suggest

import (
	"context"
	"log/slog"
	"strings"

	"github.com/goliatone/go-autofill/pkg/catalog"
	"github.com/goliatone/go-autofill/pkg/llm"
	"github.com/goliatone/go-autofill/pkg/model"
	"github.com/goliatone/go-autofill/pkg/prompt"
)

const (
	DefaultModel       = "gpt-4"
	DefaultTemperature = 0.7
)

// Option configures a Requester.
type Option func(*Requester)

// WithModel overrides DefaultModel.
func WithModel(name string) Option {
	return func(r *Requester) {
		if strings.TrimSpace(name) != "" {
			r.model = strings.TrimSpace(name)
		}
	}
}

// WithTemperature overrides DefaultTemperature.
func WithTemperature(t float64) Option {
	return func(r *Requester) {
		r.temperature = t
	}
}

// WithCatalog sets the field catalog used to build the generation prompt.
func WithCatalog(c *catalog.Catalog) Option {
	return func(r *Requester) {
		if c != nil {
			r.catalog = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Requester) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Requester turns an assistant name into metadata suggestions.
type Requester struct {
	completer   llm.Completer
	catalog     *catalog.Catalog
	model       string
	temperature float64
	logger      *slog.Logger
}

// New builds a Requester around completer.
func New(completer llm.Completer, opts ...Option) *Requester {
	r := &Requester{
		completer:   completer,
		catalog:     catalog.Default(),
		model:       DefaultModel,
		temperature: DefaultTemperature,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Catalog returns the catalog the requester prompts with.
func (r *Requester) Catalog() *catalog.Catalog {
	return r.catalog
}

// Generate requests suggestions for every catalog field. On failure the
// returned mapping is empty and the error is an *Error of kind
// KindGenerationParse.
func (r *Requester) Generate(ctx context.Context, name string) (model.Suggestions, error) {
	instruction, err := prompt.Generate(name, r.catalog)
	if err != nil {
		return model.Suggestions{}, err
	}

	reply, err := r.completer.Complete(ctx, llm.UserRequest(r.model, r.temperature, instruction))
	if err != nil {
		r.logger.Error("generation request failed", "name", name, "error", err)
		return model.Suggestions{}, &Error{Kind: KindGenerationParse, Err: err}
	}
	r.logger.Debug("generation reply", "name", name, "reply", reply)

	suggestions, err := Decode(reply)
	if err != nil {
		r.logger.Error("generation reply rejected", "name", name, "error", err)
		return model.Suggestions{}, &Error{Kind: KindGenerationParse, Err: err}
	}

	r.logger.Info("suggestions generated", "name", name, "fields", suggestions.Len())
	return suggestions, nil
}

// Regenerate requests a fresh suggestion for a single field.
func (r *Requester) Regenerate(ctx context.Context, name, field string) (model.FieldSuggestion, error) {
	field = strings.TrimSpace(field)
	instruction, err := prompt.Regenerate(name, field)
	if err != nil {
		return model.FieldSuggestion{}, err
	}

	reply, err := r.completer.Complete(ctx, llm.UserRequest(r.model, r.temperature, instruction))
	if err != nil {
		r.logger.Error("regeneration request failed", "name", name, "field", field, "error", err)
		return model.FieldSuggestion{}, &Error{Kind: KindFieldRegenerateParse, Field: field, Err: err}
	}
	r.logger.Debug("regeneration reply", "name", name, "field", field, "reply", reply)

	entry, err := DecodeField(reply, field)
	if err != nil {
		r.logger.Error("regeneration reply rejected", "name", name, "field", field, "error", err)
		return model.FieldSuggestion{}, &Error{Kind: KindFieldRegenerateParse, Field: field, Err: err}
	}
	return entry, nil
}
