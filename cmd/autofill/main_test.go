package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-autofill/internal/config"
	"github.com/goliatone/go-autofill/pkg/catalog"
	"github.com/goliatone/go-autofill/pkg/llm"
	"github.com/goliatone/go-autofill/pkg/suggest"
	"github.com/goliatone/go-autofill/pkg/testsupport"
)

func execute(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()
	cmd := a.rootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(testsupport.Context())
	return stdout.String(), stderr.String(), err
}

func withStub(stub llm.Completer) *app {
	a := newApp()
	a.newCompleter = func(config.Config, *slog.Logger) (llm.Completer, error) {
		return stub, nil
	}
	return a
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, newApp(), "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "autofill "+Version+"\n") {
		t.Fatalf("unexpected version output:\n%s", out)
	}
}

func TestFields_Table(t *testing.T) {
	out, _, err := execute(t, newApp(), "fields")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := catalog.Default().Len() + 1
	if len(lines) != want {
		t.Fatalf("expected %d lines, got %d:\n%s", want, len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "KEY") {
		t.Fatalf("expected header row, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "function_description") {
		t.Fatalf("expected first field in catalog order, got %q", lines[1])
	}
}

func TestFields_JSON(t *testing.T) {
	out, _, err := execute(t, newApp(), "fields", "--json")
	if err != nil {
		t.Fatalf("fields --json: %v", err)
	}

	var fields []catalog.Field
	if err := json.Unmarshal([]byte(out), &fields); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if diff := cmp.Diff(catalog.Default().Fields(), fields); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestFields_CatalogDirectory(t *testing.T) {
	dir := t.TempDir()
	doc := "fields:\n  - key: purpose\n    hint: Why it exists.\n"
	if err := os.WriteFile(filepath.Join(dir, "fields.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, newApp(), "fields", "--catalog", dir)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if !strings.Contains(out, "purpose") || !strings.Contains(out, "Purpose") {
		t.Fatalf("expected custom catalog field, got:\n%s", out)
	}
}

func TestGenerate_JSONExport(t *testing.T) {
	stub := testsupport.NewStubCompleter(testsupport.HeaderFixerReply())
	out, _, err := execute(t, withStub(stub), "generate", "--name", "header fixer", "--format", "json")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var got map[string][]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode export: %v\n%s", err, out)
	}
	if len(got) != catalog.Default().Len() {
		t.Fatalf("expected %d fields, got %d", catalog.Default().Len(), len(got))
	}

	reqs := stub.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected one completion, got %d", len(reqs))
	}
	if reqs[0].Model != suggest.DefaultModel || reqs[0].Temperature != suggest.DefaultTemperature {
		t.Fatalf("unexpected request settings: %+v", reqs[0])
	}
}

func TestGenerate_ModelFlag(t *testing.T) {
	stub := testsupport.NewStubCompleter(testsupport.HeaderFixerReply())
	_, _, err := execute(t, withStub(stub), "generate", "--name", "header fixer", "--format", "json", "--model", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := stub.Requests()[0].Model; got != "gpt-4o-mini" {
		t.Fatalf("expected model flag to win, got %q", got)
	}
}

func TestGenerate_MalformedReply(t *testing.T) {
	stub := testsupport.NewStubCompleter("not json")
	out, _, err := execute(t, withStub(stub), "generate", "--name", "header fixer", "--renderer", "html")

	var reqErr *suggest.Error
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected suggest error, got %v", err)
	}
	if !strings.Contains(out, "Failed to parse model output. Check prompt or model response.") {
		t.Fatalf("expected failure notice in rendered page:\n%s", out)
	}
}

func TestGenerate_WritesFile(t *testing.T) {
	stub := testsupport.NewStubCompleter(testsupport.HeaderFixerReply())
	path := filepath.Join(t.TempDir(), "header_fixer.yaml")

	out, _, err := execute(t, withStub(stub), "generate", "--name", "header fixer", "--format", "yaml", "-o", path)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "" {
		t.Fatalf("expected nothing on stdout, got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "name: header fixer\n") {
		t.Fatalf("unexpected yaml export:\n%s", data)
	}
}

func TestGenerate_RequiresName(t *testing.T) {
	stub := testsupport.NewStubCompleter()
	if _, _, err := execute(t, withStub(stub), "generate", "--format", "json"); err == nil {
		t.Fatal("expected missing --name to fail")
	}
	if stub.Calls() != 0 {
		t.Fatalf("expected no completion calls, got %d", stub.Calls())
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	_, _, err := execute(t, withStub(testsupport.NewStubCompleter()), "generate", "--name", "x", "--log-format", "xml")
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected config.ErrInvalid, got %v", err)
	}
}

func TestServe_StopsWhenContextEnds(t *testing.T) {
	a := withStub(testsupport.NewStubCompleter())
	cmd := a.rootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0", "--base-path", "/tools"})

	ctx, cancel := context.WithCancel(testsupport.Context())
	cancel()
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("serve: %v", err)
	}
}
