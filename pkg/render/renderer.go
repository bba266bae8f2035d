package render

import (
	"context"

	"github.com/goliatone/go-autofill/pkg/session"
)

// Renderer converts a session view into a byte representation (HTML page,
// terminal text, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view session.View, options RenderOptions) ([]byte, error)
}
