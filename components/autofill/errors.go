package autofill

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-autofill/pkg/session"
	"github.com/goliatone/go-autofill/pkg/suggest"
)

var (
	// ErrUnknownAction is returned for POST actions the form does not define.
	ErrUnknownAction = errors.New("autofill: unknown action")
	// ErrNoRequester is returned when neither a store nor a requester is
	// configured.
	ErrNoRequester = errors.New("autofill: requester is required")
	// ErrNothingToExport is returned by /export and /preview before the first
	// successful generation.
	ErrNothingToExport = errors.New("autofill: no suggestions to export")
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// outcome maps an action error to a status code and the notice shown on the
// re-rendered page. Requester failures already queued their own notice.
func outcome(err error) (int, []session.Notice) {
	if err == nil {
		return http.StatusOK, nil
	}

	var reqErr *suggest.Error
	if errors.As(err, &reqErr) {
		return http.StatusOK, nil
	}

	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.StatusCode(), errorNotice(err.Error())
	case errors.Is(err, session.ErrEmptyName):
		return http.StatusBadRequest, errorNotice("Enter an assistant name to generate suggestions.")
	case errors.Is(err, session.ErrUnknownField):
		return http.StatusBadRequest, errorNotice(fmt.Sprintf("Unknown field: %s", fieldOf(err)))
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict, errorNotice("A request for this form is already running. Try again in a moment.")
	case errors.Is(err, session.ErrFieldLocked):
		return http.StatusConflict, errorNotice("Unlock the field before editing it.")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, errorNotice("The request was cancelled before it completed.")
	default:
		return http.StatusInternalServerError, errorNotice("The request could not be completed.")
	}
}

func errorNotice(message string) []session.Notice {
	return []session.Notice{{Level: session.NoticeError, Message: message}}
}

// fieldOf recovers the field name from "session: unknown field: <name>".
func fieldOf(err error) string {
	if field, ok := strings.CutPrefix(err.Error(), session.ErrUnknownField.Error()+": "); ok {
		return field
	}
	return err.Error()
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}
