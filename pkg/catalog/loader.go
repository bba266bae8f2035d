package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadError reports a malformed catalog document.
type LoadError struct {
	Source string
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog: %s: %s", e.Source, e.Reason)
}

type documentFile struct {
	Fields []Field `json:"fields" yaml:"fields"`
}

// LoadFS walks fsys in lexical order and merges every JSON or YAML catalog
// document it finds. Field order follows file order, then document order.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int)}
	if fsys == nil {
		return c, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		for _, field := range doc.Fields {
			if err := c.add(field, path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, &LoadError{Source: source, Reason: "file is empty"}
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, &LoadError{Source: source, Reason: "invalid JSON or YAML"}
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
