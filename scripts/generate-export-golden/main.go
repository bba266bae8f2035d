package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-autofill/pkg/catalog"
	"github.com/goliatone/go-autofill/pkg/export"
	"github.com/goliatone/go-autofill/pkg/session"
	"github.com/goliatone/go-autofill/pkg/suggest"
	"github.com/goliatone/go-autofill/pkg/testsupport"
)

// Keep in sync with goldenSession in pkg/export/export_test.go.
func main() {
	outputDir := flag.String("output", "pkg/export/testdata", "directory for the golden exports")
	flag.Parse()

	stub := testsupport.NewStubCompleter(testsupport.HeaderFixerReply())
	sess := session.New("golden", suggest.New(stub), session.WithCatalog(catalog.Default()))
	sess.SetName("header fixer")
	if err := sess.Generate(context.Background()); err != nil {
		fail("generate", err)
	}
	if err := sess.Edit("function_description", "Normalises HTTP headers"); err != nil {
		fail("edit", err)
	}
	if err := sess.Edit("tags", "edited before locking"); err != nil {
		fail("edit", err)
	}
	if err := sess.SetLocked("tags", true); err != nil {
		fail("lock", err)
	}

	doc := export.Build(sess.Snapshot())
	for _, format := range []export.Format{export.FormatJSON, export.FormatYAML} {
		data, err := export.Encode(doc, format)
		if err != nil {
			fail("encode", err)
		}
		path := filepath.Join(*outputDir, "header_fixer"+format.Extension())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fail("write", err)
		}
		fmt.Printf("✓ %s (%d bytes)\n", path, len(data))
	}
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
