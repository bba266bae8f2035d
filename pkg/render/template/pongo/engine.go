// Package pongo executes autofill page templates with pongo2.
//
// Template data is flattened through encoding/json before execution, so
// templates address view structs by their json tag names.
package pongo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-autofill/pkg/model"
	"github.com/goliatone/go-autofill/pkg/render/template"
)

// DefaultExtension is appended to template names without one.
const DefaultExtension = ".tmpl"

// ErrNoTemplates is returned by New when neither WithFS nor WithOverrideDir
// is given.
var ErrNoTemplates = errors.New("pongo: no template source configured")

type Option func(*config)

type config struct {
	overrideDir string
	files       fs.FS
	extension   string
	globals     pongo2.Context
}

// WithFS sets the bundled templates.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithOverrideDir adds a directory laid out like the bundle. Files found
// there shadow the bundled ones.
func WithOverrideDir(dir string) Option {
	return func(cfg *config) {
		cfg.overrideDir = strings.TrimSpace(dir)
	}
}

func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// WithGlobals exposes values to every template.
func WithGlobals(values map[string]any) Option {
	return func(cfg *config) {
		for key, value := range values {
			if key = strings.TrimSpace(key); key != "" {
				cfg.globals[key] = value
			}
		}
	}
}

// Engine is safe for concurrent use. Parsed templates are cached by the
// underlying pongo2 set.
type Engine struct {
	set       *pongo2.TemplateSet
	extension string
}

var _ template.Executor = (*Engine)(nil)

func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: DefaultExtension, globals: pongo2.Context{}}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.overrideDir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(cfg.overrideDir)
		if err != nil {
			return nil, fmt.Errorf("pongo: override dir %q: %w", cfg.overrideDir, err)
		}
		loaders = append(loaders, local)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}
	if len(loaders) == 0 {
		return nil, ErrNoTemplates
	}

	registerFilters()

	globals, err := flatten(map[string]any(cfg.globals))
	if err != nil {
		return nil, fmt.Errorf("pongo: globals: %w", err)
	}
	set := pongo2.NewSet("autofill", loaders...)
	if set.Globals == nil {
		set.Globals = pongo2.Context{}
	}
	set.Globals.Update(globals)

	return &Engine{set: set, extension: cfg.extension}, nil
}

// Execute renders the named template. A canceled ctx is reported before any
// work is done.
func (e *Engine) Execute(ctx context.Context, name string, data any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.extension != "" && !strings.HasSuffix(name, e.extension) {
		name += e.extension
	}

	tmpl, err := e.set.FromCache(name)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %q: %w", name, err)
	}
	values, err := flatten(data)
	if err != nil {
		return nil, fmt.Errorf("pongo: data for %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(values, &buf); err != nil {
		return nil, fmt.Errorf("pongo: execute %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

func flatten(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return pongo2.Context(values), nil
}

var filtersOnce sync.Once

// pongo2 filters are process wide.
func registerFilters() {
	filtersOnce.Do(func() {
		register("confidence", func(in *pongo2.Value) *pongo2.Value {
			if !in.IsNumber() {
				return pongo2.AsValue("")
			}
			return pongo2.AsValue(model.FormatConfidence(in.Float()))
		})
		register("fieldlabel", func(in *pongo2.Value) *pongo2.Value {
			return pongo2.AsValue(model.Label(in.String()))
		})
	})
}

func register(name string, fn func(*pongo2.Value) *pongo2.Value) {
	if pongo2.FilterExists(name) {
		return
	}
	_ = pongo2.RegisterFilter(name, func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return fn(in), nil
	})
}
