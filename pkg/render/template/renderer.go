package template

import "context"

// Executor renders a named template with data. Names are relative to the
// template root and may omit the configured extension.
type Executor interface {
	Execute(ctx context.Context, name string, data any) ([]byte, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, name string, data any) ([]byte, error)

func (f ExecutorFunc) Execute(ctx context.Context, name string, data any) ([]byte, error) {
	return f(ctx, name, data)
}
