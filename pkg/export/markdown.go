package export

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-autofill/pkg/model"
)

var (
	previewPolicyOnce sync.Once
	previewPolicy     *bluemonday.Policy
)

// Markdown renders one section per field.
func Markdown(doc Document) string {
	var b strings.Builder
	title := strings.TrimSpace(doc.Name)
	if title == "" {
		title = "Assistant"
	}
	fmt.Fprintf(&b, "# %s\n", title)

	for _, entry := range doc.Entries {
		fmt.Fprintf(&b, "\n## %s\n\n", entry.Label)
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			text = "_(empty)_"
		}
		b.WriteString(text)
		b.WriteString("\n\n")
		status := ""
		if entry.Locked {
			status = ", locked"
		}
		fmt.Fprintf(&b, "_Confidence: %s%s_\n", model.FormatConfidence(entry.Confidence), status)
	}
	return b.String()
}

// PreviewHTML converts markdown to HTML and strips anything outside a user
// generated content policy. Suggestion text comes from the model and the
// user, so it is never trusted.
func PreviewHTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	raw := markdown.ToHTML([]byte(md), p, renderer)
	return strings.TrimSpace(sanitizer().Sanitize(string(raw)))
}

func sanitizer() *bluemonday.Policy {
	previewPolicyOnce.Do(func() {
		previewPolicy = bluemonday.UGCPolicy()
	})
	return previewPolicy
}
