package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-autofill/pkg/render"
	"github.com/goliatone/go-autofill/pkg/session"
)

func TestMapFieldErrors(t *testing.T) {
	view := session.View{Rows: []session.Row{{Field: "tags"}, {Field: "function_description"}}}

	payload := map[string][]string{
		"text.tags":             {"Field is locked"},
		"/function_description": {" Too long ", "Too long"},
		"lock.unknown":          {"Field no longer exists"},
		"non_field_errors":      {"Form level error"},
		"":                      {"Unscoped"},
		"tags":                  {"  "},
	}

	mapped := render.MapFieldErrors(view, payload)

	wantFields := map[string][]string{
		"tags":                 {"Field is locked"},
		"function_description": {"Too long"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Field no longer exists", "Form level error", "Unscoped"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeNotices(t *testing.T) {
	merged := render.MergeNotices(
		[]session.Notice{{Level: session.NoticeError, Message: "Failed to regenerate field: tags"}},
		session.Notice{Level: session.NoticeError, Message: " Failed to regenerate field: tags "},
		session.Notice{Message: "saved"},
		session.Notice{Level: session.NoticeError},
	)
	want := []session.Notice{
		{Level: session.NoticeError, Message: "Failed to regenerate field: tags"},
		{Level: session.NoticeInfo, Message: "saved"},
	}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}
