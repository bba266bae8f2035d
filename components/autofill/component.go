package autofill

import "net/http"

// Component bundles the options of one form deployment. Every handler it
// hands out shares the same session store, so a form mounted twice (say at
// "/" and under a prefix) sees the same sessions.
type Component struct {
	opts Options
	err  error
}

// New applies fns and prepares the shared session store. A missing requester
// is reported by the handlers as 503.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	store, err := newStore(opts)
	opts.Store = store
	return &Component{opts: opts, err: err}
}

// Options returns a copy of the resolved options, including the shared store.
func (c *Component) Options() Options {
	return c.opts
}

// Err reports why the component cannot serve, if anything.
func (c *Component) Err() error {
	return c.err
}

// Handler serves the form at the root of its own path space.
func (c *Component) Handler() http.Handler {
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes mounts the form under basePath on mux and returns the
// registered pattern.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
