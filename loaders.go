package autofill

import (
	"io/fs"

	"github.com/goliatone/go-autofill/pkg/catalog"
	"github.com/goliatone/go-autofill/pkg/llm"
)

// LoadCatalog reads a field catalog from fsys (JSON or YAML documents).
func LoadCatalog(fsys fs.FS) (*catalog.Catalog, error) {
	return catalog.LoadFS(fsys)
}

// NewCompleter constructs the OpenAI-compatible completer while keeping the
// concrete type hidden from consumers.
func NewCompleter(options ...llm.OpenAIOption) llm.Completer {
	return llm.NewOpenAI(options...)
}
