// Package export turns a session view into downloadable metadata documents.
// Locked rows export the original suggestion, unlocked rows the user's draft.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-autofill/pkg/session"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned by Encode for unsupported formats.
var ErrUnknownFormat = errors.New("export: unknown format")

// ParseFormat normalises a user supplied format name. An empty value selects
// JSON.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// Extension returns the file extension for f.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatMarkdown:
		return ".md"
	default:
		return ".json"
	}
}

// Entry is one exported field.
type Entry struct {
	Field      string  `json:"field" yaml:"field"`
	Label      string  `json:"label" yaml:"label"`
	Text       string  `json:"text" yaml:"text"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Locked     bool    `json:"locked" yaml:"locked"`
}

// Document is the export of one session.
type Document struct {
	Name    string
	Entries []Entry
}

// Build collects the rows of view in display order.
func Build(view session.View) Document {
	doc := Document{Name: view.Name}
	for _, row := range view.Rows {
		doc.Entries = append(doc.Entries, Entry{
			Field:      row.Field,
			Label:      row.Label,
			Text:       row.Text,
			Confidence: row.Confidence,
			Locked:     row.Locked,
		})
	}
	return doc
}

// Encode renders doc in format f.
func Encode(doc Document, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return JSON(doc)
	case FormatYAML:
		return YAML(doc)
	case FormatMarkdown:
		return []byte(Markdown(doc)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// JSON renders the entries as an object of [text, confidence] pairs in
// display order, the same shape the model is asked to produce.
func JSON(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, entry := range doc.Entries {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(entry.Field)
		if err != nil {
			return nil, fmt.Errorf("export: encode key %q: %w", entry.Field, err)
		}
		value, err := json.Marshal([]any{entry.Text, entry.Confidence})
		if err != nil {
			return nil, fmt.Errorf("export: encode value %q: %w", entry.Field, err)
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	if len(doc.Entries) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// YAML renders the document with a name header and an ordered field mapping.
func YAML(doc Document) ([]byte, error) {
	fields := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range doc.Entries {
		value := &yaml.Node{}
		if err := value.Encode(struct {
			Label      string  `yaml:"label"`
			Text       string  `yaml:"text"`
			Confidence float64 `yaml:"confidence"`
			Locked     bool    `yaml:"locked,omitempty"`
		}{entry.Label, entry.Text, entry.Confidence, entry.Locked}); err != nil {
			return nil, fmt.Errorf("export: encode %q: %w", entry.Field, err)
		}
		fields.Content = append(fields.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Field},
			value,
		)
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "name"},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: doc.Name},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "fields"},
		fields,
	}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("export: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("export: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
