package themes

import (
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
)

func TestSelector_Defaults(t *testing.T) {
	selector, err := NewSelector("", DefaultVariant)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if selection.Theme != DefaultTheme || selection.Variant != DefaultVariant {
		t.Fatalf("unexpected selection %s/%s", selection.Theme, selection.Variant)
	}
	if diff := cmp.Diff([]string{"default", "paper"}, selector.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if selector.Provider() == nil {
		t.Fatal("expected provider")
	}
}

func TestSelector_ThemeWithoutVariants(t *testing.T) {
	selector, err := NewSelector(DefaultTheme, DefaultVariant)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	selection, err := selector.Select("paper", "")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if selection.Variant != "" {
		t.Fatalf("paper has no variants, got %q", selection.Variant)
	}
}

func TestSelector_Errors(t *testing.T) {
	selector, err := NewSelector(DefaultTheme, DefaultVariant)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	if _, err := selector.Select("missing", ""); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := selector.Select(DefaultTheme, "sepia"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if _, err := NewSelector("missing", ""); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme for default, got %v", err)
	}
}

func TestRendererConfig_VariantOverridesBase(t *testing.T) {
	selector, err := NewSelector(DefaultTheme, DefaultVariant)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	selection, err := selector.Select(DefaultTheme, "dark")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	cfg := RendererConfig(selection)
	if cfg.Theme != DefaultTheme || cfg.Variant != "dark" {
		t.Fatalf("unexpected config %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens["bg"] != "#0d1117" {
		t.Fatalf("variant token not applied: %s", cfg.Tokens["bg"])
	}
	if cfg.Tokens["radius"] != "6px" {
		t.Fatalf("base token lost: %s", cfg.Tokens["radius"])
	}
	if cfg.CSSVars["--bg"] != "#0d1117" {
		t.Fatalf("css var not derived: %v", cfg.CSSVars)
	}
}

func TestRendererConfig_Nil(t *testing.T) {
	if RendererConfig(nil) != nil || RendererConfig(&theme.Selection{}) != nil {
		t.Fatal("expected nil config")
	}
}

func TestCSSVarsStyle(t *testing.T) {
	got := CSSVarsStyle(map[string]string{"--b": "2px", "--a": "red;}</style>"})
	want := "--a: red/style>; --b: 2px;"
	if got != want {
		t.Fatalf("CSSVarsStyle = %q, want %q", got, want)
	}
}
