package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type capturedRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newCompletionServer(t *testing.T, status int, body string, captured *capturedRequest, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if captured != nil {
			if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const okBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1,
  "model": "gpt-4",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"tags\": [\"a\", 0.5]}"}}
  ]
}`

func TestOpenAI_Complete(t *testing.T) {
	var captured capturedRequest
	var calls int32
	srv := newCompletionServer(t, http.StatusOK, okBody, &captured, &calls)

	client := NewOpenAI(WithAPIKey("test-key"), WithBaseURL(srv.URL+"/v1/"))
	got, err := client.Complete(context.Background(), UserRequest("gpt-4", 0.7, "hello"))
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != `{"tags": ["a", 0.5]}` {
		t.Fatalf("content = %q", got)
	}

	if captured.Model != "gpt-4" || captured.Temperature != 0.7 {
		t.Fatalf("unexpected params: %+v", captured)
	}
	wantMessages := []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{{Role: "user", Content: "hello"}}
	if diff := cmp.Diff(wantMessages, captured.Messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenAI_NoRetryOnServerError(t *testing.T) {
	var calls int32
	srv := newCompletionServer(t, http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`, nil, &calls)

	client := NewOpenAI(WithAPIKey("test-key"), WithBaseURL(srv.URL+"/v1/"))
	_, err := client.Complete(context.Background(), UserRequest("gpt-4", 0.7, "hello"))
	if err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected exactly one call, got %d", n)
	}
}

func TestOpenAI_NoChoices(t *testing.T) {
	var calls int32
	srv := newCompletionServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"gpt-4","choices":[]}`, nil, &calls)

	client := NewOpenAI(WithAPIKey("test-key"), WithBaseURL(srv.URL+"/v1/"))
	_, err := client.Complete(context.Background(), UserRequest("gpt-4", 0.7, "hello"))
	if !errors.Is(err, ErrNoChoices) {
		t.Fatalf("expected ErrNoChoices, got %v", err)
	}
}

func TestOpenAI_NoMessages(t *testing.T) {
	client := NewOpenAI(WithAPIKey("test-key"))
	if _, err := client.Complete(context.Background(), Request{Model: "gpt-4"}); !errors.Is(err, ErrNoMessages) {
		t.Fatalf("expected ErrNoMessages, got %v", err)
	}
}
