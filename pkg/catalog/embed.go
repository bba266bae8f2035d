package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed fields/*
var embeddedFields embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// EmbeddedFS returns the bundled catalog documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedFields, "fields")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default returns the embedded catalog, parsed once.
func Default() *Catalog {
	defaultOnce.Do(func() {
		loaded, err := LoadFS(EmbeddedFS())
		if err != nil {
			panic(err)
		}
		defaultCatalog = loaded
	})
	return defaultCatalog
}
