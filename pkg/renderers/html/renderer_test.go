package html_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-autofill/pkg/render"
	rendertemplate "github.com/goliatone/go-autofill/pkg/render/template"
	"github.com/goliatone/go-autofill/pkg/renderers/html"
	"github.com/goliatone/go-autofill/pkg/session"
	"github.com/goliatone/go-autofill/pkg/testsupport"
	"github.com/goliatone/go-autofill/pkg/themes"
)

func sampleView() session.View {
	return session.View{
		ID:   "abc",
		Name: "header fixer",
		Rows: []session.Row{
			{
				Field: "function_description", Label: "Function Description", Hint: "What it does",
				Text: "Fixes <b>headers</b>", Suggested: "Fixes <b>headers</b>",
				Confidence: 0.873, ConfidenceText: "87.3%", State: session.StateUnlocked,
			},
			{
				Field: "tags", Label: "Tags", Text: "original tags", Suggested: "original tags", Draft: "edited tags",
				Confidence: 1, ConfidenceText: "100.0%", State: session.StateLocked, Locked: true,
			},
		},
	}
}

func newRenderer(t *testing.T, opts ...html.Option) *html.Renderer {
	t.Helper()
	renderer, err := html.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestRenderer_RowsInOrder(t *testing.T) {
	output, err := newRenderer(t).Render(testsupport.Context(), sampleView(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(output)

	first := strings.Index(page, `data-field="function_description"`)
	second := strings.Index(page, `data-field="tags"`)
	if first < 0 || second < 0 || first > second {
		t.Fatalf("rows missing or out of order:\n%s", page)
	}

	for _, want := range []string{
		`<label class="autofill-label" for="af-function_description-text">Function Description</label>`,
		`name="text.function_description"`,
		`<strong>87.3%</strong>`,
		`<strong>100.0%</strong>`,
		`action=regenerate&amp;field=tags`,
		`value="header fixer"`,
		`<p class="autofill-notice autofill-notice--success" data-level="success">All fields editable and ready for assistant code generation!</p>`,
		`href="/export?format=yaml"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestRenderer_LockedRowShowsOriginal(t *testing.T) {
	output, err := newRenderer(t).Render(testsupport.Context(), sampleView(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(output)

	if !strings.Contains(page, `<pre class="autofill-locked"><code>original tags</code></pre>`) {
		t.Fatalf("locked row should show the original suggestion:\n%s", page)
	}
	if strings.Contains(page, "edited tags") {
		t.Fatal("locked row must not show the draft")
	}
	if strings.Contains(page, `name="text.tags"`) {
		t.Fatal("locked row must not render an editable box")
	}
	if !strings.Contains(page, `name="lock.tags" value="1" checked`) {
		t.Fatal("locked row should render a checked lock toggle")
	}
}

func TestRenderer_EscapesModelText(t *testing.T) {
	output, err := newRenderer(t).Render(testsupport.Context(), sampleView(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(output), "<b>headers</b>") {
		t.Fatal("model text must be escaped")
	}
}

func TestRenderer_EmptyViewAndNotices(t *testing.T) {
	view := session.View{
		Name:    "x",
		Notices: []session.Notice{{Level: session.NoticeError, Message: session.GenerationFailedMessage}},
	}
	output, err := newRenderer(t).Render(testsupport.Context(), view, render.RenderOptions{
		Errors: map[string][]string{"form": {"Request could not be applied"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(output)

	if strings.Contains(page, "Assistant Field Suggestions") || strings.Contains(page, session.ReadyMessage) {
		t.Fatal("empty view must not render rows or the ready notice")
	}
	if strings.Count(page, session.GenerationFailedMessage) != 1 {
		t.Fatalf("expected exactly one failure notice:\n%s", page)
	}
	if !strings.Contains(page, "Request could not be applied") {
		t.Fatal("form level errors should render as notices")
	}
}

func TestRenderer_FieldErrorsAndTheme(t *testing.T) {
	selector, err := themes.NewSelector(themes.DefaultTheme, themes.DefaultVariant)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	selection, err := selector.Select("", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	output, err := newRenderer(t, html.WithTitle("Builder")).Render(testsupport.Context(), sampleView(), render.RenderOptions{
		BasePath: "/autofill/",
		Theme:    themes.RendererConfig(selection),
		Errors:   map[string][]string{"text.tags": {"Field is locked"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(output)

	for _, want := range []string{
		`<title>Builder</title>`,
		`data-theme="default"`,
		`data-variant="dark"`,
		`--bg: #0d1117;`,
		`action="/autofill/"`,
		`href="/autofill/export?format=json"`,
		`<p class="autofill-field-error">Field is locked</p>`,
		`.autofill-row {`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestRenderer_WithoutStyles(t *testing.T) {
	output, err := newRenderer(t, html.WithoutStyles()).Render(testsupport.Context(), sampleView(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(output), "<style>") {
		t.Fatal("expected no inline styles")
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != html.Name || !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected metadata %s %s", renderer.Name(), renderer.ContentType())
	}
}

func TestRenderer_Preview(t *testing.T) {
	view := sampleView()
	view.Rows[0].Text = `Fixes headers <a href="javascript:alert(1)">now</a>`

	output, err := newRenderer(t).RenderPreview(testsupport.Context(), view, render.RenderOptions{BasePath: "/autofill"})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	page := string(output)

	for _, want := range []string{
		`<title>header fixer · Auto-Fill Assistant Builder</title>`,
		`header fixer</h1>`,
		`Function Description</h2>`,
		`Confidence: 87.3%`,
		`<a href="/autofill/">Back to the form</a>`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("expected preview to contain %q:\n%s", want, page)
		}
	}
	if strings.Contains(page, "javascript:") {
		t.Fatal("preview must be sanitized")
	}
}

func TestRenderer_TemplatesDirOverridesPage(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatal(err)
	}
	page := "<h1>{{ page.name }}</h1>{% for row in page.rows %}<i>{{ row.field }}</i>{% endfor %}"
	if err := os.WriteFile(filepath.Join(dir, "templates", "page.tmpl"), []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	renderer := newRenderer(t, html.WithTemplatesDir(dir))

	output, err := renderer.Render(testsupport.Context(), sampleView(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(output); !strings.HasPrefix(got, "<h1>header fixer</h1><i>function_description</i>") {
		t.Fatalf("expected override template, got %q", got)
	}

	// The preview template is not overridden.
	preview, err := renderer.RenderPreview(testsupport.Context(), sampleView(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(string(preview), "Back to the form") {
		t.Fatalf("expected bundled preview, got:\n%s", preview)
	}
}

func TestRenderer_CustomExecutor(t *testing.T) {
	boom := errors.New("boom")
	var names []string
	renderer := newRenderer(t, html.WithExecutor(rendertemplate.ExecutorFunc(
		func(_ context.Context, name string, _ any) ([]byte, error) {
			names = append(names, name)
			return nil, boom
		},
	)))

	if _, err := renderer.Render(testsupport.Context(), sampleView(), render.RenderOptions{}); !errors.Is(err, boom) {
		t.Fatalf("expected executor error, got %v", err)
	}
	if len(names) != 1 || names[0] != "templates/page" {
		t.Fatalf("unexpected template names %v", names)
	}
}
