package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	apperrors "ai-notebook.com/ai-notebook/internal/errors"
	"ai-notebook.com/ai-notebook/internal/kv"
	model "ai-notebook.com/ai-notebook/internal/models"
)

const chatHistoryKeyPrefix = "ai-chat-history-"

// ChatHistoryMetricName is the metrics label shared by every per-model history.
const ChatHistoryMetricName = "ai-chat-history"

// ChatRepository keeps one message history per model name. Its keys are
// stored as given, so callers pass a store without the notebook prefix.
type ChatRepository struct {
	base
	store kv.Store

	mu       sync.Mutex
	sessions map[string]*collection[model.ChatMessage]
}

func NewChatRepository(store kv.Store, logger *zap.Logger, opts ...Option) *ChatRepository {
	return &ChatRepository{
		base:     newBase(logger, opts),
		store:    store,
		sessions: make(map[string]*collection[model.ChatMessage]),
	}
}

func ChatHistoryKey(modelName string) string {
	return chatHistoryKeyPrefix + modelName
}

func (r *ChatRepository) History(ctx context.Context, modelName string) ([]model.ChatMessage, error) {
	c, err := r.session(modelName)
	if err != nil {
		return nil, err
	}
	return c.all(ctx)
}

// Append stamps missing ids and timestamps and adds messages to the model's history.
func (r *ChatRepository) Append(ctx context.Context, modelName string, messages ...model.ChatMessage) ([]model.ChatMessage, error) {
	c, err := r.session(modelName)
	if err != nil {
		return nil, err
	}

	var history []model.ChatMessage
	err = c.mutate(ctx, func(items []model.ChatMessage) ([]model.ChatMessage, error) {
		for _, m := range messages {
			if m.ID == "" {
				m.ID = r.newID("msg")
			}
			if m.Timestamp.IsZero() {
				m.Timestamp = r.timestamp()
			}
			items = append(items, m)
		}
		history = items
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (r *ChatRepository) Clear(ctx context.Context, modelName string) error {
	c, err := r.session(modelName)
	if err != nil {
		return err
	}
	return c.drop(ctx)
}

func (r *ChatRepository) session(modelName string) (*collection[model.ChatMessage], error) {
	modelName = strings.TrimSpace(modelName)
	if modelName == "" {
		return nil, fmt.Errorf("%w: model is required", apperrors.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.sessions[modelName]
	if !ok {
		c = newCollection[model.ChatMessage](r.store, ChatHistoryKey(modelName), r.logger)
		c.name = ChatHistoryMetricName
		r.sessions[modelName] = c
	}
	return c, nil
}
