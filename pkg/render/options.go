package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-autofill/pkg/session"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the session.
type RenderOptions struct {
	// BasePath prefixes form actions and links when the page is mounted
	// below the server root.
	BasePath string
	// Theme carries resolved tokens and CSS variables. Nil renders unstyled
	// defaults.
	Theme *theme.RendererConfig
	// Notices are appended after the view's own notices, e.g. request level
	// problems detected by the HTTP layer.
	Notices []session.Notice
	// Errors surfaces feedback keyed by field. Unknown keys should be mapped
	// to form level notices with MapFieldErrors before rendering.
	Errors map[string][]string
}
