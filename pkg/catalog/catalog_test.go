package catalog

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_FieldOrder(t *testing.T) {
	want := []string{
		"function_description",
		"primary_input_type",
		"expected_output",
		"output_format",
		"target_users",
		"trigger_conditions",
		"required_context",
		"input_validation",
		"error_handling",
		"edge_cases",
		"dependencies",
		"tone_and_style",
		"constraints",
		"success_criteria",
		"performance_expectations",
		"security_considerations",
		"follow_up_actions",
		"related_functions",
		"tags",
		"example_input_output_preview",
	}

	got := Default().Keys()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("default keys mismatch (-want +got):\n%s", diff)
	}
	for _, key := range got {
		if Default().Hint(key) == "" {
			t.Errorf("field %s has no hint", key)
		}
	}
}

func TestLoadFS_JSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json":    {Data: []byte(`{"fields":[{"key":"alpha","label":"First","hint":" the first "}]}`)},
		"b.yaml":    {Data: []byte("fields:\n  - key: beta\n  - key: gamma_ray\n")},
		"notes.txt": {Data: []byte("ignored")},
	}

	c, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}

	if diff := cmp.Diff([]string{"alpha", "beta", "gamma_ray"}, c.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if got := c.Label("alpha"); got != "First" {
		t.Errorf("Label(alpha) = %q, want First", got)
	}
	if got := c.Label("gamma_ray"); got != "Gamma Ray" {
		t.Errorf("Label(gamma_ray) = %q, want Gamma Ray", got)
	}
	if got := c.Hint("alpha"); got != "the first" {
		t.Errorf("Hint(alpha) = %q", got)
	}
	if c.Has("delta") {
		t.Error("unexpected field delta")
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"duplicate": {
			"a.yaml": {Data: []byte("fields:\n  - key: alpha\n")},
			"b.yaml": {Data: []byte("fields:\n  - key: alpha\n")},
		},
		"empty key": {
			"a.yaml": {Data: []byte("fields:\n  - key: \"  \"\n")},
		},
		"empty file": {
			"a.yaml": {Data: []byte("   \n")},
		},
		"garbage": {
			"a.json": {Data: []byte("fields: [")},
		},
	}

	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFS(fsys)
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected LoadError, got %v", err)
			}
		})
	}
}

func TestLabel_OutsideCatalog(t *testing.T) {
	c, err := New(Field{Key: "alpha"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Label("made_up_field"); got != "Made Up Field" {
		t.Fatalf("Label = %q", got)
	}
}

func TestReplySchema(t *testing.T) {
	schema := ReplySchema()

	valid := map[string]any{
		"function_description": []any{"Fixes headers", 0.9},
		"tags":                 []any{"http, headers", 1.0},
	}
	if err := schema.VisitJSON(valid); err != nil {
		t.Fatalf("valid reply rejected: %v", err)
	}

	invalid := map[string]any{
		"empty":      map[string]any{},
		"short pair": map[string]any{"tags": []any{"only text"}},
		"long pair":  map[string]any{"tags": []any{"a", 0.5, "b"}},
		"object":     map[string]any{"tags": map[string]any{"text": "a"}},
		"bool item":  map[string]any{"tags": []any{"a", true}},
	}
	for name, value := range invalid {
		t.Run(name, func(t *testing.T) {
			if err := schema.VisitJSON(value); err == nil {
				t.Fatalf("expected schema error for %v", value)
			}
		})
	}
}

func TestFieldReplySchema(t *testing.T) {
	schema := FieldReplySchema("tags")

	if err := schema.VisitJSON(map[string]any{
		"tags":  []any{"a, b", 0.5},
		"extra": "ignored",
	}); err != nil {
		t.Fatalf("valid reply rejected: %v", err)
	}

	if err := schema.VisitJSON(map[string]any{"other": []any{"a", 0.5}}); err == nil {
		t.Fatal("expected missing field to fail")
	}
}
