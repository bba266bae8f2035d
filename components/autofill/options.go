package autofill

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-autofill/pkg/catalog"
	"github.com/goliatone/go-autofill/pkg/render"
	"github.com/goliatone/go-autofill/pkg/session"
	"github.com/goliatone/go-autofill/pkg/themes"
)

const (
	defaultRoutePath    = "/"
	defaultCookieName   = "autofill_session"
	defaultMaxFormBytes = 1 << 20
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string
	// BasePath prefixes links in rendered pages. RegisterRoutes fills it from
	// the mount path.
	BasePath     string
	CookieName   string
	SessionTTL   time.Duration
	MaxFormBytes int64
	Guard        GuardFunc

	// Requester backs sessions created by the default store. Ignored when
	// Store is set.
	Requester session.Requester
	Store     *session.Store
	Catalog   *catalog.Catalog
	Renderer  render.Renderer
	Themes    *themes.Selector
	Theme     string
	Variant   string
	Logger    *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		CookieName:   defaultCookieName,
		SessionTTL:   session.DefaultTTL,
		MaxFormBytes: defaultMaxFormBytes,
		Theme:        themes.DefaultTheme,
		Variant:      themes.DefaultVariant,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}
	if opts.MaxFormBytes <= 0 {
		opts.MaxFormBytes = defaultMaxFormBytes
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

func WithCookieName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CookieName = name
	}
}

// WithSessionTTL sets the idle lifetime of sessions created by the default
// store. Non-positive values keep sessions forever.
func WithSessionTTL(ttl time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SessionTTL = ttl
	}
}

func WithMaxFormBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxFormBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithRequester(requester session.Requester) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Requester = requester
	}
}

func WithStore(store *session.Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Store = store
	}
}

func WithCatalog(c *catalog.Catalog) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalog = c
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

// WithThemes enables theming with the given selector and default theme.
func WithThemes(selector *themes.Selector, name, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Themes = selector
		o.Theme = name
		o.Variant = variant
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
