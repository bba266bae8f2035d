// Package themes provides the built-in page themes and resolves a theme and
// variant into the renderer configuration consumed by the HTML renderer.
package themes

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	DefaultTheme   = "default"
	DefaultVariant = "light"
)

var (
	ErrUnknownTheme   = errors.New("themes: unknown theme")
	ErrUnknownVariant = errors.New("themes: unknown variant")
)

// Builtin returns fresh copies of the bundled manifests.
func Builtin() []*theme.Manifest {
	return []*theme.Manifest{
		{
			Name:    DefaultTheme,
			Version: "1.0.0",
			Tokens: map[string]string{
				"bg":      "#f7f7f8",
				"surface": "#ffffff",
				"text":    "#1f2328",
				"muted":   "#656d76",
				"border":  "#d0d7de",
				"accent":  "#0969da",
				"danger":  "#cf222e",
				"success": "#1a7f37",
				"radius":  "6px",
				"font":    "system-ui, -apple-system, \"Segoe UI\", sans-serif",
			},
			Variants: map[string]theme.Variant{
				"light": {},
				"dark": {
					Tokens: map[string]string{
						"bg":      "#0d1117",
						"surface": "#161b22",
						"text":    "#e6edf3",
						"muted":   "#8d96a0",
						"border":  "#30363d",
						"accent":  "#4493f8",
						"danger":  "#f85149",
						"success": "#3fb950",
					},
				},
			},
		},
		{
			Name:    "paper",
			Version: "1.0.0",
			Tokens: map[string]string{
				"bg":      "#fbf8f1",
				"surface": "#fffdf8",
				"text":    "#2b2a27",
				"muted":   "#6f6a60",
				"border":  "#ddd5c4",
				"accent":  "#8a4b08",
				"danger":  "#a4262c",
				"success": "#3c6e2f",
				"radius":  "2px",
				"font":    "Georgia, \"Times New Roman\", serif",
			},
		},
	}
}

// Selector resolves theme/variant pairs against a fixed set of manifests.
type Selector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
	provider       theme.ThemeProvider
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests (Builtin when none are given) and returns a
// selector falling back to defaultTheme/defaultVariant on empty input.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = Builtin()
	}

	registry := theme.NewRegistry()
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
		provider:       registry,
	}
	if s.defaultTheme == "" {
		s.defaultTheme = DefaultTheme
	}

	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("themes: register %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
	}

	if _, ok := s.manifests[s.defaultTheme]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownTheme, s.defaultTheme)
	}
	return s, nil
}

// Provider exposes the go-theme registry backing the selector.
func (s *Selector) Provider() theme.ThemeProvider {
	return s.provider
}

// Names returns the registered theme names, sorted.
func (s *Selector) Names() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements theme.ThemeSelector. An empty variant picks the default
// variant when the theme defines it, and the base tokens otherwise.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)
	if name == "" {
		name = s.defaultTheme
	}

	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	if variant == "" {
		if _, ok := manifest.Variants[s.defaultVariant]; ok {
			variant = s.defaultVariant
		}
	} else if _, ok := manifest.Variants[variant]; !ok {
		return nil, fmt.Errorf("%w: %q for theme %q", ErrUnknownVariant, variant, name)
	}

	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// RendererConfig flattens a selection into tokens and CSS custom properties.
// Variant tokens override the base tokens.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		Tokens:  tokens,
		CSSVars: cssVars,
	}
}

// CSSVarsStyle renders CSS custom properties as a sorted declaration list.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		value := strings.NewReplacer(";", "", "{", "", "}", "", "<", "").Replace(vars[key])
		fmt.Fprintf(&b, "%s: %s; ", key, value)
	}
	return strings.TrimSpace(b.String())
}
