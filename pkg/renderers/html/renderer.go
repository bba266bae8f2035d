// Package html renders a session view as a self-contained HTML page with one
// row per field: editable text box or locked display, lock toggle,
// confidence readout and regenerate trigger.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-autofill/pkg/render"
	rendertemplate "github.com/goliatone/go-autofill/pkg/render/template"
	"github.com/goliatone/go-autofill/pkg/render/template/pongo"
	"github.com/goliatone/go-autofill/pkg/session"
)

// Name is the registry key of the renderer.
const Name = "html"

const defaultTitle = "Auto-Fill Assistant Builder"

type Option func(*config)

type config struct {
	templateFS   fs.FS
	overrideDir  string
	executor     rendertemplate.Executor
	title        string
	inlineStyles bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir shadows bundled templates with files from a directory
// laid out like the bundle (templates/page.tmpl, ...).
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.overrideDir = path
	}
}

// WithExecutor replaces the pongo2 engine.
func WithExecutor(executor rendertemplate.Executor) Option {
	return func(cfg *config) {
		if executor != nil {
			cfg.executor = executor
		}
	}
}

// WithTitle overrides the page title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(title) != "" {
			cfg.title = strings.TrimSpace(title)
		}
	}
}

// WithoutStyles skips inlining the bundled stylesheet.
func WithoutStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = false
	}
}

type Renderer struct {
	templates rendertemplate.Executor
	title     string
	styles    string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the page renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), title: defaultTitle, inlineStyles: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	executor := cfg.executor
	if executor == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithOverrideDir(cfg.overrideDir),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure templates: %w", err)
		}
		executor = engine
	}

	out := &Renderer{templates: executor, title: cfg.title}
	if cfg.inlineStyles {
		out.styles = defaultStylesheet()
	}
	return out, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the page for view. Rows follow the view's order.
func (r *Renderer) Render(ctx context.Context, view session.View, opts render.RenderOptions) ([]byte, error) {
	out, err := r.templates.Execute(ctx, "templates/page", map[string]any{
		"page": buildPageView(view, opts, r.title, r.styles),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render page: %w", err)
	}
	return out, nil
}

// RenderPreview draws the markdown export of view as sanitized HTML.
func (r *Renderer) RenderPreview(ctx context.Context, view session.View, opts render.RenderOptions) ([]byte, error) {
	out, err := r.templates.Execute(ctx, "templates/preview", map[string]any{
		"page": buildPreviewView(view, opts, r.title, r.styles),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render preview: %w", err)
	}
	return out, nil
}
