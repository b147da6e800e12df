package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ai-notebook.com/ai-notebook/internal/ai"
	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	"ai-notebook.com/ai-notebook/internal/metrics"
	model "ai-notebook.com/ai-notebook/internal/models"
	repository "ai-notebook.com/ai-notebook/internal/repositories"
)

// AssistResult carries a string for polish and generate_title, and a tag
// list for generate_tags.
type AssistResult struct {
	Action ai.Action `json:"action"`
	Result any       `json:"result"`
}

type ConfigStatus struct {
	Configured bool   `json:"configured"`
	Model      string `json:"model"`
	BaseURL    string `json:"baseUrl"`
}

type AssistService struct {
	client ai.Client
	cfg    ai.Config
	chats  *repository.ChatRepository
	logger *zap.Logger
}

// NewAssistService accepts a nil client; every AI call then fails with
// ErrAINotConfigured while chat history stays readable.
func NewAssistService(client ai.Client, cfg ai.Config, chats *repository.ChatRepository, logger *zap.Logger) *AssistService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistService{client: client, cfg: cfg, chats: chats, logger: logger}
}

func (s *AssistService) Status() ConfigStatus {
	return ConfigStatus{
		Configured: s.client != nil && s.cfg.Configured(),
		Model:      s.cfg.Model,
		BaseURL:    s.cfg.BaseURL,
	}
}

func (s *AssistService) Process(ctx context.Context, action ai.Action, text string) (*AssistResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text must not be empty", apperrors.ErrValidation)
	}
	prompt, err := ai.Prompt(action, text)
	if err != nil {
		return nil, err
	}
	if !s.Status().Configured {
		return nil, apperrors.ErrAINotConfigured
	}

	reply, err := s.client.Complete(ctx, s.cfg.Model, []model.ChatMessage{
		{Role: model.RoleUser, Content: prompt},
	})
	reply = strings.TrimSpace(reply)
	if err == nil && reply == "" {
		err = fmt.Errorf("%w: empty completion", apperrors.ErrAIUpstream)
	}
	metrics.IncrementAICompletion(string(action), err)
	if err != nil {
		s.logger.Warn("assist action failed", zap.String("action", string(action)), zap.Error(err))
		return nil, err
	}

	result := &AssistResult{Action: action, Result: reply}
	if action == ai.ActionGenerateTags {
		result.Result = ai.ParseTags(reply)
	}
	return result, nil
}

// Send appends content to the model's history, asks for a reply over the
// whole conversation and stores both messages. Nothing is stored on failure.
func (s *AssistService) Send(ctx context.Context, modelName, content string) ([]model.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message must not be empty", apperrors.ErrValidation)
	}
	if modelName == "" {
		modelName = s.cfg.Model
	}
	if !s.Status().Configured {
		return nil, apperrors.ErrAINotConfigured
	}

	history, err := s.chats.History(ctx, modelName)
	if err != nil {
		return nil, err
	}

	userMessage := model.ChatMessage{Role: model.RoleUser, Content: content}
	reply, err := s.client.Complete(ctx, modelName, append(history, userMessage))
	if err == nil && strings.TrimSpace(reply) == "" {
		err = fmt.Errorf("%w: empty completion", apperrors.ErrAIUpstream)
	}
	metrics.IncrementAICompletion("chat", err)
	if err != nil {
		s.logger.Warn("chat completion failed", zap.String("model", modelName), zap.Error(err))
		return nil, err
	}

	return s.chats.Append(ctx, modelName, userMessage, model.ChatMessage{
		Role:    model.RoleAssistant,
		Content: reply,
		Model:   modelName,
	})
}

func (s *AssistService) History(ctx context.Context, modelName string) ([]model.ChatMessage, error) {
	if modelName == "" {
		modelName = s.cfg.Model
	}
	return s.chats.History(ctx, modelName)
}

func (s *AssistService) ClearHistory(ctx context.Context, modelName string) error {
	if modelName == "" {
		modelName = s.cfg.Model
	}
	return s.chats.Clear(ctx, modelName)
}
