package autofill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-autofill/pkg/export"
	"github.com/goliatone/go-autofill/pkg/render"
	"github.com/goliatone/go-autofill/pkg/renderers/html"
	"github.com/goliatone/go-autofill/pkg/session"
	"github.com/goliatone/go-autofill/pkg/themes"
)

// Form actions accepted by POST /.
const (
	ActionGenerate   = "generate"
	ActionUpdate     = "update"
	ActionRegenerate = "regenerate"
	ActionLock       = "lock"
	ActionUnlock     = "unlock"
)

const (
	textPrefix = "text."
	lockPrefix = "lock."
)

// previewRenderer is implemented by renderers that can draw the export
// preview page.
type previewRenderer interface {
	RenderPreview(ctx context.Context, view session.View, opts render.RenderOptions) ([]byte, error)
}

type handler struct {
	opts     Options
	store    *session.Store
	renderer render.Renderer
	mux      *http.ServeMux
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options value.
// A misconfigured handler answers every request with 503 and logs why.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	h, err := newHandler(opts)
	if err != nil {
		opts.Logger.Error("autofill handler unavailable", "error", err)
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return h
}

// newStore builds the in-memory store used when Options.Store is unset.
func newStore(opts Options) (*session.Store, error) {
	if opts.Store != nil {
		return opts.Store, nil
	}
	if opts.Requester == nil {
		return nil, ErrNoRequester
	}
	return session.NewStore(func(id string) *session.Session {
		return session.New(id, opts.Requester,
			session.WithCatalog(opts.Catalog),
			session.WithLogger(opts.Logger),
		)
	}, session.WithTTL(opts.SessionTTL)), nil
}

func newHandler(opts Options) (*handler, error) {
	store, err := newStore(opts)
	if err != nil {
		return nil, err
	}

	renderer := opts.Renderer
	if renderer == nil {
		page, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("autofill: page renderer: %w", err)
		}
		renderer = page
	}

	h := &handler{opts: opts, store: store, renderer: renderer}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.page)
	mux.HandleFunc("POST /{$}", h.submit)
	mux.HandleFunc("GET /export", h.export)
	mux.HandleFunc("GET /preview", h.preview)
	mux.HandleFunc("GET /healthz", h.health)
	h.mux = mux
	return h, nil
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}
	h.mux.ServeHTTP(w, r)
}

func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	h.write(w, r, sess.Flush(), http.StatusOK, nil)
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxFormBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sess := h.session(w, r)
	form := formState(r.PostForm)
	if _, posted := r.PostForm["name"]; !posted {
		form.Name = sess.Name()
	}
	sess.Apply(form)

	action := strings.TrimSpace(r.FormValue("action"))
	field := strings.TrimSpace(r.FormValue("field"))
	err := h.apply(r.Context(), sess, action, field)

	status, notices := outcome(err)
	if err != nil {
		h.opts.Logger.Info("autofill action failed",
			"session", sess.ID(), "action", action, "field", field, "status", status, "error", err)
	} else {
		h.opts.Logger.Debug("autofill action", "session", sess.ID(), "action", action, "field", field)
	}
	h.write(w, r, sess.Flush(), status, notices)
}

func (h *handler) apply(ctx context.Context, sess *session.Session, action, field string) error {
	switch action {
	case ActionGenerate:
		return sess.Generate(ctx)
	case ActionRegenerate:
		return sess.Regenerate(ctx, field)
	case ActionLock:
		return sess.SetLocked(field, true)
	case ActionUnlock:
		return sess.SetLocked(field, false)
	case ActionUpdate, "":
		return nil
	default:
		return StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("%w: %q", ErrUnknownAction, action)}
	}
}

func (h *handler) export(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		raw = string(export.FormatJSON)
	}
	format, err := export.ParseFormat(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.exportable(r)
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := export.Encode(export.Build(view), format)
	if err != nil {
		h.opts.Logger.Error("autofill export failed", "format", format, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName(view.Name)+format.Extension()))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (h *handler) preview(w http.ResponseWriter, r *http.Request) {
	view, err := h.exportable(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body []byte
	if pr, ok := h.renderer.(previewRenderer); ok {
		body, err = pr.RenderPreview(r.Context(), view, h.renderOptions(r, nil))
		if err != nil {
			h.opts.Logger.Error("autofill preview failed", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte(export.PreviewHTML(export.Markdown(export.Build(view))))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", Sessions: h.store.Len()})
}

// exportable returns the snapshot of the caller's session, which must hold
// suggestions.
func (h *handler) exportable(r *http.Request) (session.View, error) {
	cookie, err := r.Cookie(h.opts.CookieName)
	if err != nil {
		return session.View{}, StatusError{Code: http.StatusNotFound, Err: ErrNothingToExport}
	}
	sess, ok := h.store.Get(cookie.Value)
	if !ok {
		return session.View{}, StatusError{Code: http.StatusNotFound, Err: ErrNothingToExport}
	}
	view := sess.Snapshot()
	if !view.Ready() {
		return session.View{}, StatusError{Code: http.StatusNotFound, Err: ErrNothingToExport}
	}
	return view, nil
}

// session returns the caller's session, starting one and setting the cookie
// when needed.
func (h *handler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if cookie, err := r.Cookie(h.opts.CookieName); err == nil {
		id = cookie.Value
	}
	sess, created := h.store.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     h.opts.CookieName,
			Value:    sess.ID(),
			Path:     h.basePath() + "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func (h *handler) write(w http.ResponseWriter, r *http.Request, view session.View, status int, notices []session.Notice) {
	body, err := h.renderer.Render(r.Context(), view, h.renderOptions(r, notices))
	if err != nil {
		h.opts.Logger.Error("autofill render failed", "renderer", h.renderer.Name(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (h *handler) renderOptions(r *http.Request, notices []session.Notice) render.RenderOptions {
	opts := render.RenderOptions{BasePath: h.basePath(), Notices: notices}
	if h.opts.Themes == nil {
		return opts
	}

	query := r.URL.Query()
	name := firstNonEmpty(query.Get("theme"), h.opts.Theme)
	variant := firstNonEmpty(query.Get("variant"), h.opts.Variant)
	selection, err := h.opts.Themes.Select(name, variant)
	if err != nil {
		h.opts.Logger.Debug("autofill theme fallback", "theme", name, "variant", variant, "error", err)
		if selection, err = h.opts.Themes.Select(h.opts.Theme, h.opts.Variant); err != nil {
			return opts
		}
	}
	opts.Theme = themes.RendererConfig(selection)
	return opts
}

func (h *handler) basePath() string {
	return strings.TrimRight(strings.TrimSpace(h.opts.BasePath), "/")
}

// formState collects the editable form controls: name, fields (rendered
// rows), text.<field> drafts and lock.<field> checkboxes.
func formState(values url.Values) session.FormState {
	form := session.FormState{
		Name:   values.Get("name"),
		Fields: values["fields"],
		Drafts: make(map[string]string),
		Locked: make(map[string]bool),
	}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		if field, ok := strings.CutPrefix(key, textPrefix); ok {
			form.Drafts[field] = vals[0]
			continue
		}
		if field, ok := strings.CutPrefix(key, lockPrefix); ok {
			form.Locked[field] = vals[0] != "" && vals[0] != "0" && vals[0] != "false"
		}
	}
	return form
}

func fileName(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(name))
	if slug == "" {
		return "assistant"
	}
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
