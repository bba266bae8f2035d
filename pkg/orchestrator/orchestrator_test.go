package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-autofill/pkg/catalog"
	"github.com/goliatone/go-autofill/pkg/render"
	"github.com/goliatone/go-autofill/pkg/session"
	"github.com/goliatone/go-autofill/pkg/suggest"
	"github.com/goliatone/go-autofill/pkg/testsupport"
	"github.com/goliatone/go-autofill/pkg/themes"
)

func TestGenerate_DefaultRenderer(t *testing.T) {
	stub := testsupport.NewStubCompleter(testsupport.HeaderFixerReply())
	o := New(WithCompleter(stub, suggest.WithModel("gpt-4o")))

	result, err := o.Generate(context.Background(), Request{Name: "header fixer"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff(catalog.Default().Keys(), result.View.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(result.Output), "<!DOCTYPE html>") {
		t.Fatal("expected the html renderer by default")
	}
	if got := stub.Requests()[0].Model; got != "gpt-4o" {
		t.Fatalf("requester options not applied, model = %q", got)
	}
}

func TestGenerate_TerminalRenderer(t *testing.T) {
	stub := testsupport.NewStubCompleter(testsupport.HeaderFixerReply())
	o := New(WithCompleter(stub))

	result, err := o.Generate(context.Background(), Request{Name: "header fixer", Renderer: "tui"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(result.Output), "Function Description") {
		t.Fatalf("unexpected terminal output:\n%s", result.Output)
	}
}

func TestGenerate_RequesterFailureStillRenders(t *testing.T) {
	o := New(WithCompleter(testsupport.NewStubCompleter("not json")))

	result, err := o.Generate(context.Background(), Request{Name: "header fixer"})
	if !suggest.IsKind(err, suggest.KindGenerationParse) {
		t.Fatalf("expected generation error, got %v", err)
	}
	if result.View.Ready() {
		t.Fatal("expected an empty mapping")
	}
	if strings.Count(string(result.Output), session.GenerationFailedMessage) != 1 {
		t.Fatal("expected exactly one failure notice in the output")
	}
}

func TestGenerate_Errors(t *testing.T) {
	if _, err := New().Generate(context.Background(), Request{Name: "x"}); !errors.Is(err, ErrNoRequester) {
		t.Fatalf("expected ErrNoRequester, got %v", err)
	}

	o := New(WithCompleter(testsupport.NewStubCompleter()))
	if _, err := o.Generate(context.Background(), Request{}); !errors.Is(err, session.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	o = New(WithCompleter(testsupport.NewStubCompleter(testsupport.HeaderFixerReply())))
	if _, err := o.Generate(context.Background(), Request{Name: "x", Renderer: "pdf"}); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestRender_Theme(t *testing.T) {
	selector, err := themes.NewSelector(themes.DefaultTheme, themes.DefaultVariant)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	o := New(
		WithRequester(suggest.New(testsupport.NewStubCompleter())),
		WithThemeSelector(selector, themes.DefaultTheme, themes.DefaultVariant),
	)

	out, err := o.Render(context.Background(), session.View{Name: "x"}, Request{Variant: "dark"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `data-variant="dark"`) {
		t.Fatal("expected the requested variant")
	}

	if _, err := o.Render(context.Background(), session.View{}, Request{Theme: "neon"}); !errors.Is(err, themes.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}

type namedRenderer struct{ name string }

func (r namedRenderer) Name() string        { return r.name }
func (r namedRenderer) ContentType() string { return "text/plain" }
func (r namedRenderer) Render(_ context.Context, view session.View, _ render.RenderOptions) ([]byte, error) {
	return []byte(r.name + ":" + view.Name), nil
}

func TestRendererFallback(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(namedRenderer{name: "plain"})
	o := New(WithRegistry(registry), WithDefaultRenderer("missing"), WithCompleter(testsupport.NewStubCompleter()))

	out, err := o.Render(context.Background(), session.View{Name: "x"}, Request{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "plain:x" {
		t.Fatalf("expected fallback renderer, got %q", out)
	}
}

func TestNewStore(t *testing.T) {
	o := New(WithCompleter(testsupport.NewStubCompleter()))
	store, err := o.NewStore()
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	sess := store.Create()
	if sess.ID() == "" || store.Len() != 1 {
		t.Fatalf("unexpected store state")
	}
}
