// Package ai talks to an OpenAI-compatible chat completion endpoint.
package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	model "ai-notebook.com/ai-notebook/internal/models"
)

// Client completes a conversation with the named model.
type Client interface {
	Complete(ctx context.Context, modelName string, messages []model.ChatMessage) (string, error)
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	AppURL      string
	AppTitle    string
}

var placeholderKeys = []string{"xxxxxxxx", "your-key-here"}

// Configured reports whether the API key is set to something other than a
// template placeholder.
func (c Config) Configured() bool {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		return false
	}
	for _, p := range placeholderKeys {
		if strings.Contains(key, p) {
			return false
		}
	}
	return true
}

type OpenRouterClient struct {
	llm         *openai.LLM
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

func NewOpenRouterClient(cfg Config, logger *zap.Logger) (*OpenRouterClient, error) {
	if !cfg.Configured() {
		return nil, apperrors.ErrAINotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &headerTransport{
			next: http.DefaultTransport,
			headers: map[string]string{
				"HTTP-Referer": cfg.AppURL,
				"X-Title":      cfg.AppTitle,
			},
		},
	}

	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.APIKey),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI-compatible client: %w", err)
	}

	return &OpenRouterClient{
		llm:         llm,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}, nil
}

func (c *OpenRouterClient) Complete(ctx context.Context, modelName string, messages []model.ChatMessage) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		content = append(content, llms.MessageContent{
			Role:  messageType(m.Role),
			Parts: []llms.ContentPart{llms.TextContent{Text: m.Content}},
		})
	}

	start := time.Now()
	resp, err := c.llm.GenerateContent(ctx, content,
		llms.WithModel(modelName),
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		c.logger.Error("completion request failed",
			zap.String("model", modelName),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", apperrors.ErrAIUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", apperrors.ErrAIUpstream)
	}

	c.logger.Debug("completion received",
		zap.String("model", modelName),
		zap.Duration("duration", time.Since(start)),
	)
	return resp.Choices[0].Content, nil
}

func messageType(role string) schema.ChatMessageType {
	switch role {
	case model.RoleAssistant:
		return schema.ChatMessageTypeAI
	case model.RoleSystem:
		return schema.ChatMessageTypeSystem
	default:
		return schema.ChatMessageTypeHuman
	}
}

type headerTransport struct {
	next    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}
	return t.next.RoundTrip(req)
}
