package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/goliatone/go-autofill/pkg/export"
	"github.com/goliatone/go-autofill/pkg/render"
	"github.com/goliatone/go-autofill/pkg/session"
)

// Name is the registry key of the renderer.
const Name = "tui"

const (
	defaultStyle    = "dark"
	defaultWordWrap = 80
)

// Renderer implements render.Renderer for terminals and drives interactive
// fill sessions through a PromptDriver.
type Renderer struct {
	driver       PromptDriver
	out          io.Writer
	outputFormat OutputFormat
	exportFormat export.Format
	style        string
	wordWrap     int
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a terminal renderer with defaults (survey driver, styled
// output, markdown export).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		out:          os.Stdout,
		outputFormat: OutputFormatStyled,
		exportFormat: export.FormatMarkdown,
		style:        defaultStyle,
		wordWrap:     defaultWordWrap,
		theme:        DefaultTheme,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatMarkdown {
		return "text/markdown; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Render prints the view as one section per field followed by its
// notices.
func (r *Renderer) Render(ctx context.Context, view session.View, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.present(viewMarkdown(view, opts, r.theme))
}

func (r *Renderer) present(md string) ([]byte, error) {
	if r.outputFormat == OutputFormatMarkdown {
		return []byte(md), nil
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(r.wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: configure markdown renderer: %w", err)
	}
	out, err := term.Render(md)
	if err != nil {
		return nil, fmt.Errorf("tui: render markdown: %w", err)
	}
	return []byte(out), nil
}

func viewMarkdown(view session.View, opts render.RenderOptions, theme Theme) string {
	var b strings.Builder
	title := strings.TrimSpace(view.Name)
	if title == "" {
		title = "New assistant"
	}
	fmt.Fprintf(&b, "# %s\n", title)

	if view.Generating {
		b.WriteString("\n_Generating suggestions..._\n")
	}

	mapping := render.MapFieldErrors(view, opts.Errors)
	for i, row := range view.Rows {
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, row.Label)
		text := strings.TrimSpace(row.Text)
		switch {
		case text == "":
			b.WriteString("_(empty)_\n")
		case row.Locked:
			b.WriteString(quote(text))
		default:
			b.WriteString(text)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\n**%s** · %s\n", row.ConfidenceText, row.State)
		for _, message := range mapping.Fields[row.Field] {
			fmt.Fprintf(&b, "\n%s %s\n", theme.ErrorPrefix, message)
		}
	}

	extras := append([]session.Notice(nil), opts.Notices...)
	for _, message := range mapping.Form {
		extras = append(extras, session.Notice{Level: session.NoticeError, Message: message})
	}
	notices := render.MergeNotices(view.Notices, extras...)
	if view.Ready() {
		notices = append(notices, session.Notice{Level: session.NoticeSuccess, Message: session.ReadyMessage})
	}
	if len(notices) > 0 {
		b.WriteString("\n---\n\n")
		for _, notice := range notices {
			fmt.Fprintf(&b, "- %s %s\n", theme.prefix(notice.Level), notice.Message)
		}
	}
	return b.String()
}

// quote keeps locked text verbatim as a blockquote.
func quote(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("> ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (t Theme) prefix(level session.NoticeLevel) string {
	switch level {
	case session.NoticeError:
		return t.ErrorPrefix
	case session.NoticeSuccess:
		return t.SuccessPrefix
	default:
		return t.InfoPrefix
	}
}
