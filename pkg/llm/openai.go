package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultTimeout bounds a single completion call.
const DefaultTimeout = 60 * time.Second

type openaiOptions struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	headers    map[string]string
	logger     *slog.Logger
}

// OpenAIOption configures an OpenAI completer.
type OpenAIOption func(*openaiOptions)

// WithAPIKey sets the bearer key. When empty the SDK falls back to
// OPENAI_API_KEY.
func WithAPIKey(key string) OpenAIOption {
	return func(o *openaiOptions) {
		o.apiKey = key
	}
}

// WithBaseURL points the client at an OpenAI-compatible gateway.
func WithBaseURL(baseURL string) OpenAIOption {
	return func(o *openaiOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) OpenAIOption {
	return func(o *openaiOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(client *http.Client) OpenAIOption {
	return func(o *openaiOptions) {
		o.httpClient = client
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) OpenAIOption {
	return func(o *openaiOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) OpenAIOption {
	return func(o *openaiOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// OpenAI is a Completer backed by the chat completions endpoint.
type OpenAI struct {
	options openaiOptions
	client  openai.Client
}

var _ Completer = (*OpenAI)(nil)

// NewOpenAI constructs the completer. Retries are disabled: one interaction
// is one outbound call.
func NewOpenAI(opts ...OpenAIOption) *OpenAI {
	cfg := openaiOptions{
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	clientOptions := []option.RequestOption{
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.timeout),
	}
	if cfg.apiKey != "" {
		clientOptions = append(clientOptions, option.WithAPIKey(cfg.apiKey))
	}
	if cfg.baseURL != "" {
		clientOptions = append(clientOptions, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.httpClient != nil {
		clientOptions = append(clientOptions, option.WithHTTPClient(cfg.httpClient))
	}
	for key, value := range cfg.headers {
		clientOptions = append(clientOptions, option.WithHeader(key, value))
	}

	return &OpenAI{
		options: cfg,
		client:  openai.NewClient(clientOptions...),
	}
}

// Complete sends req and returns the content of the first choice.
func (o *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", ErrNoMessages
	}

	params := openai.ChatCompletionNewParams{
		Model:       req.Model,
		Messages:    convertMessages(req.Messages),
		Temperature: openai.Float(req.Temperature),
	}

	started := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			o.options.logger.Warn("completion request rejected",
				"model", req.Model,
				"status", apiErr.StatusCode,
			)
			return "", fmt.Errorf("llm: completion failed with status %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("llm: completion request: %w", err)
	}

	o.options.logger.Debug("completion received",
		"model", req.Model,
		"choices", len(resp.Choices),
		"elapsed", time.Since(started),
	)

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func convertMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
