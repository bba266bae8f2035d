package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	theme "github.com/goliatone/go-theme"
	"github.com/google/uuid"

	"github.com/goliatone/go-autofill/pkg/catalog"
	"github.com/goliatone/go-autofill/pkg/llm"
	"github.com/goliatone/go-autofill/pkg/render"
	"github.com/goliatone/go-autofill/pkg/renderers/html"
	"github.com/goliatone/go-autofill/pkg/renderers/tui"
	"github.com/goliatone/go-autofill/pkg/session"
	"github.com/goliatone/go-autofill/pkg/suggest"
	"github.com/goliatone/go-autofill/pkg/themes"
)

const defaultRendererName = html.Name

// ErrNoRequester is returned when neither a requester nor a completer was
// configured.
var ErrNoRequester = errors.New("orchestrator: requester is required")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRequester injects the requester sessions use.
func WithRequester(requester session.Requester) Option {
	return func(o *Orchestrator) {
		o.requester = requester
	}
}

// WithCompleter builds a suggest.Requester on top of completer. The
// orchestrator's catalog and logger are applied before opts.
func WithCompleter(completer llm.Completer, opts ...suggest.Option) Option {
	return func(o *Orchestrator) {
		o.completer = completer
		o.requesterOpts = append(o.requesterOpts, opts...)
	}
}

// WithCatalog overrides the embedded field catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = c
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves theme/variant choices ahead of rendering.
func WithThemeSelector(selector *themes.Selector, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		o.themes = selector
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// WithLogger sets the logger handed to requesters and sessions.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the pipeline from assistant name to rendered
// output. It applies sensible defaults (embedded catalog, html and tui
// renderers) while remaining open to dependency injection.
type Orchestrator struct {
	requester       session.Requester
	completer       llm.Completer
	requesterOpts   []suggest.Option
	catalog         *catalog.Catalog
	registry        *render.Registry
	defaultRenderer string
	themes          *themes.Selector
	defaultTheme    string
	defaultVariant  string
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation.
type Request struct {
	// Name is the assistant function name.
	Name string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Theme and Variant pick a theme when a selector is configured.
	Theme   string
	Variant string

	// RenderOptions carries per-request instructions such as the base path or
	// extra notices.
	RenderOptions render.RenderOptions
}

// Result is the outcome of Generate. Output is set even when the requester
// failed, since the rendered page carries the failure notice.
type Result struct {
	View   session.View
	Output []byte
}

// Generate runs one generation in a fresh session and renders the result. A
// requester failure is returned together with the rendered failure page.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	sess, err := o.NewSession("")
	if err != nil {
		return Result{}, err
	}
	sess.SetName(req.Name)

	genErr := sess.Generate(ctx)
	var reqErr *suggest.Error
	if genErr != nil && !errors.As(genErr, &reqErr) {
		return Result{}, genErr
	}

	view := sess.Flush()
	output, err := o.Render(ctx, view, req)
	if err != nil {
		return Result{View: view}, err
	}
	return Result{View: view, Output: output}, genErr
}

// NewSession returns a session backed by the configured requester. An empty
// id gets a random one.
func (o *Orchestrator) NewSession(id string) (*session.Session, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if o.requester == nil {
		return nil, ErrNoRequester
	}
	if id == "" {
		id = uuid.NewString()
	}
	return session.New(id, o.requester, session.WithCatalog(o.catalog), session.WithLogger(o.logger)), nil
}

// NewStore returns a session store whose sessions share the configured
// requester.
func (o *Orchestrator) NewStore(opts ...session.StoreOption) (*session.Store, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if o.requester == nil {
		return nil, ErrNoRequester
	}
	return session.NewStore(func(id string) *session.Session {
		return session.New(id, o.requester, session.WithCatalog(o.catalog), session.WithLogger(o.logger))
	}, opts...), nil
}

// Render draws view with the renderer named in req.
func (o *Orchestrator) Render(ctx context.Context, view session.View, req Request) ([]byte, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil && o.themes != nil {
		cfg, err := o.themeConfig(req.Theme, req.Variant)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, view, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Catalog exposes the field catalog.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

func (o *Orchestrator) themeConfig(name, variant string) (*theme.RendererConfig, error) {
	if name == "" {
		name = o.defaultTheme
	}
	if variant == "" {
		variant = o.defaultVariant
	}
	selection, err := o.themes.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return themes.RendererConfig(selection), nil
}

// rendererFor resolves name, then the configured default, then the first
// registered renderer. Only an explicitly requested name can fail.
func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	if name != "" {
		renderer, err := o.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return renderer, nil
	}
	if o.defaultRenderer != "" {
		if renderer, err := o.registry.Get(o.defaultRenderer); err == nil {
			return renderer, nil
		}
	}
	renderer, err := o.registry.Default()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.catalog == nil {
		o.catalog = catalog.Default()
	}
	if o.requester == nil && o.completer != nil {
		opts := append([]suggest.Option{suggest.WithCatalog(o.catalog), suggest.WithLogger(o.logger)}, o.requesterOpts...)
		o.requester = suggest.New(o.completer, opts...)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		page, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(page)
		terminal, err := tui.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: terminal renderer: %w", err)
			return
		}
		o.registry.MustRegister(terminal)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
