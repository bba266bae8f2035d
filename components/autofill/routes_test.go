package autofill

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-autofill/pkg/suggest"
	"github.com/goliatone/go-autofill/pkg/testsupport"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath(""); got != "/" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/tools"); got != "/tools/" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("tools/", WithRoutePath("autofill")); got != "/tools/autofill/" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	stub := testsupport.NewStubCompleter(testsupport.HeaderFixerReply())
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/tools", WithRequester(suggest.New(stub)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/tools/" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	form := url.Values{"name": {"header fixer"}, "action": {ActionGenerate}}
	req := httptest.NewRequest(http.MethodPost, "/tools/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`action="/tools/"`, `href="/tools/export?format=json"`, `formaction="/tools/?action=regenerate`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected links under the mount path, missing %q", want)
		}
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Path != "/tools/" {
		t.Fatalf("unexpected cookies %#v", cookies)
	}

	req = httptest.NewRequest(http.MethodGet, "/tools/healthz", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); !errors.Is(err, ErrNoMux) {
		t.Fatalf("expected ErrNoMux, got %v", err)
	}
}

func TestComponent_Handler(t *testing.T) {
	c := New(WithRequester(suggest.New(testsupport.NewStubCompleter())), WithCookieName("af"))
	if c.Options().CookieName != "af" {
		t.Fatalf("unexpected options %#v", c.Options())
	}
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if cookies := rec.Result().Cookies(); len(cookies) != 1 || cookies[0].Name != "af" {
		t.Fatalf("unexpected cookies %#v", cookies)
	}
}

func TestComponent_HandlersShareSessions(t *testing.T) {
	stub := testsupport.NewStubCompleter(testsupport.HeaderFixerReply())
	c := New(WithRequester(suggest.New(stub)))

	first := &client{t: t, handler: c.Handler()}
	if rec := first.generate("header fixer"); rec.Code != http.StatusOK {
		t.Fatalf("generate: status %d", rec.Code)
	}

	second := &client{t: t, handler: c.Handler(), cookies: first.cookies}
	rec := second.do(http.MethodGet, "/", nil)
	if !strings.Contains(rec.Body.String(), `value="header fixer"`) {
		t.Fatalf("expected the second handler to see the session:\n%s", rec.Body.String())
	}
	if got := c.Options().Store.Len(); got != 1 {
		t.Fatalf("expected one shared session, got %d", got)
	}
}

func TestComponent_WithoutRequester(t *testing.T) {
	c := New()
	if !errors.Is(c.Err(), ErrNoRequester) {
		t.Fatalf("expected ErrNoRequester, got %v", c.Err())
	}
	if _, err := c.RegisterRoutes(http.NewServeMux(), "/tools"); !errors.Is(err, ErrNoRequester) {
		t.Fatalf("expected ErrNoRequester from RegisterRoutes, got %v", err)
	}
}
