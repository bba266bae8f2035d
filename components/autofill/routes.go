package autofill

import (
	"errors"
	"net/http"
	"path"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// ErrNoMux is returned when RegisterRoutes is given a nil mux.
var ErrNoMux = errors.New("autofill: mux is required")

// MountPath joins basePath and the route path into the subtree pattern the
// form is registered under. The result always starts and ends with "/".
func MountPath(basePath string, fns ...OptionFn) string {
	return mountPath(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes mounts the form under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions mounts the form using resolved options. The
// handler sees paths relative to the mount point and links back through
// Options.BasePath.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", ErrNoMux
	}
	pattern := mountPath(basePath, opts.RoutePath)
	opts.BasePath = strings.TrimSuffix(pattern, "/")

	var handler http.Handler = HandlerWithOptions(opts)
	if opts.BasePath != "" {
		handler = http.StripPrefix(opts.BasePath, handler)
	}
	mux.Handle(pattern, handler)
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	var segments []string
	for _, part := range []string{basePath, routePath} {
		if part = strings.Trim(strings.TrimSpace(part), "/"); part != "" {
			segments = append(segments, part)
		}
	}
	if len(segments) == 0 {
		return "/"
	}
	return "/" + path.Join(segments...) + "/"
}
