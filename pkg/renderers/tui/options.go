package tui

import (
	"io"

	"github.com/goliatone/go-autofill/pkg/export"
)

// OutputFormat controls how Render presents a view.
type OutputFormat string

const (
	// OutputFormatStyled renders markdown through glamour for a terminal.
	OutputFormatStyled OutputFormat = "styled"
	// OutputFormatMarkdown emits the raw markdown.
	OutputFormatMarkdown OutputFormat = "markdown"
)

// Theme captures message prefixes the renderer applies to notices. Keep
// minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	InfoPrefix    string
	SuccessPrefix string
	ErrorPrefix   string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	InfoPrefix:    "i",
	SuccessPrefix: "✓",
	ErrorPrefix:   "✗",
}

// Option configures the terminal renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by Fill.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the survey driver prints informational messages.
// It has no effect when a custom driver is supplied.
func WithOutput(out io.Writer) Option {
	return func(r *Renderer) {
		if out != nil {
			r.out = out
		}
	}
}

// WithOutputFormat selects styled or raw markdown output.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithMarkdownStyle selects a glamour standard style ("dark", "light",
// "notty", "ascii", ...).
func WithMarkdownStyle(style string) Option {
	return func(r *Renderer) {
		if style != "" {
			r.style = style
		}
	}
}

// WithWordWrap sets the styled output width.
func WithWordWrap(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.wordWrap = width
		}
	}
}

// WithExportFormat selects the document Fill prints once the user is done.
func WithExportFormat(format export.Format) Option {
	return func(r *Renderer) {
		if format != "" {
			r.exportFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
