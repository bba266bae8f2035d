// Package catalog holds the fixed set of metadata fields the model is asked to
// fill in, their display order and prompt hints, plus the reply schemas used
// to validate decoded model output. The default catalog is embedded and can
// be replaced by any fs.FS holding JSON or YAML catalog documents.
package catalog
