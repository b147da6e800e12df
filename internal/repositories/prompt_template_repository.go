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

// PromptTemplatesKey is stored without the notebook prefix.
const PromptTemplatesKey = "promptTemplates"

const DefaultTemplateCategory = "Custom"

// TemplateGroup holds the templates of one category.
type TemplateGroup struct {
	Category  string                 `json:"category"`
	Templates []model.PromptTemplate `json:"templates"`
}

// PromptTemplateRepository keeps the prompt library. The built-in templates
// are written the first time the key is found missing; deleting them later
// does not bring them back.
type PromptTemplateRepository struct {
	base
	items *collection[model.PromptTemplate]

	seedMu sync.Mutex
	seeded bool
}

func NewPromptTemplateRepository(store kv.Store, logger *zap.Logger, opts ...Option) *PromptTemplateRepository {
	b := newBase(logger, opts)
	return &PromptTemplateRepository{
		base:  b,
		items: newCollection[model.PromptTemplate](store, PromptTemplatesKey, b.logger),
	}
}

func DefaultPromptTemplates() []model.PromptTemplate {
	return []model.PromptTemplate{
		{
			ID:       "1",
			Name:     "Code explanation",
			Content:  "Explain in detail how the following code works, covering:\n1. Code structure\n2. Key logic\n3. Potential issues\n4. Suggested improvements\n\nCode:",
			Category: "Programming",
			Tags:     []string{"code", "explanation", "technical"},
		},
		{
			ID:       "2",
			Name:     "Writing assistant",
			Content:  "Write an article on the following topic:\n\nTopic:\n\nRequirements:\n- Clear structure and tight reasoning\n- Concise, forceful language\n- 500 to 800 words\n- An engaging opening and a strong ending",
			Category: "Writing",
			Tags:     []string{"writing", "article", "creation"},
		},
		{
			ID:       "3",
			Name:     "Study summary",
			Content:  "Summarize the key points of the following material and give a clear study outline:\n\nMaterial:\n\nInclude:\n1. Key concepts\n2. Practical applications\n3. Suggestions for further study",
			Category: "Learning",
			Tags:     []string{"learning", "summary", "knowledge"},
		},
		{
			ID:       "4",
			Name:     "Brainstorm",
			Content:  "Brainstorm as many creative ideas as you can for the following topic:\n\nTopic:\n\nRequirements:\n- At least 10 distinct ideas\n- Include unconventional angles\n- Consider feasibility\n- Order by priority",
			Category: "Creativity",
			Tags:     []string{"creativity", "brainstorm", "innovation"},
		},
		{
			ID:       "5",
			Name:     "Problem analysis",
			Content:  "Analyze the following problem and propose solutions:\n\nProblem:\n\nInclude:\n1. Root cause\n2. Possible solutions (at least 3)\n3. Pros and cons of each\n4. Recommended solution and why",
			Category: "Analysis",
			Tags:     []string{"analysis", "problem", "solution"},
		},
	}
}

func (r *PromptTemplateRepository) List(ctx context.Context) ([]model.PromptTemplate, error) {
	if err := r.ensureDefaults(ctx); err != nil {
		return nil, err
	}
	return r.items.all(ctx)
}

func (r *PromptTemplateRepository) Get(ctx context.Context, id string) (*model.PromptTemplate, error) {
	templates, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrTemplateNotFound, id)
}

// Create appends a template. Name and content are required; category
// defaults to DefaultTemplateCategory.
func (r *PromptTemplateRepository) Create(ctx context.Context, patch model.PromptTemplatePatch) (*model.PromptTemplate, error) {
	if patch.Name == nil || strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: template name is required", apperrors.ErrValidation)
	}
	if patch.Content == nil || strings.TrimSpace(*patch.Content) == "" {
		return nil, fmt.Errorf("%w: template content is required", apperrors.ErrValidation)
	}
	if err := r.ensureDefaults(ctx); err != nil {
		return nil, err
	}

	template := model.PromptTemplate{
		ID:       r.newID("template"),
		Category: DefaultTemplateCategory,
		Tags:     []string{},
	}
	if err := applyTemplatePatch(&template, patch); err != nil {
		return nil, err
	}

	err := r.items.mutate(ctx, func(templates []model.PromptTemplate) ([]model.PromptTemplate, error) {
		return append(templates, template), nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("prompt template created", zap.String("template_id", template.ID))
	return &template, nil
}

func (r *PromptTemplateRepository) Update(ctx context.Context, id string, patch model.PromptTemplatePatch) (*model.PromptTemplate, error) {
	if err := r.ensureDefaults(ctx); err != nil {
		return nil, err
	}

	var updated model.PromptTemplate
	err := r.items.mutate(ctx, func(templates []model.PromptTemplate) ([]model.PromptTemplate, error) {
		for i := range templates {
			if templates[i].ID != id {
				continue
			}
			if err := applyTemplatePatch(&templates[i], patch); err != nil {
				return nil, err
			}
			updated = templates[i]
			return templates, nil
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTemplateNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *PromptTemplateRepository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDefaults(ctx); err != nil {
		return err
	}

	return r.items.mutate(ctx, func(templates []model.PromptTemplate) ([]model.PromptTemplate, error) {
		kept := make([]model.PromptTemplate, 0, len(templates))
		for _, t := range templates {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(templates) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTemplateNotFound, id)
		}
		return kept, nil
	})
}

func (r *PromptTemplateRepository) ensureDefaults(ctx context.Context) error {
	r.seedMu.Lock()
	defer r.seedMu.Unlock()

	if r.seeded {
		return nil
	}
	wrote, err := r.items.initialize(ctx, DefaultPromptTemplates())
	if err != nil {
		return err
	}
	if wrote {
		r.logger.Info("default prompt templates written", zap.String("key", PromptTemplatesKey))
	}
	r.seeded = true
	return nil
}

// GroupByCategory groups templates by category, with categories in order of
// first appearance and templates in input order.
func GroupByCategory(templates []model.PromptTemplate) []TemplateGroup {
	groups := make([]TemplateGroup, 0)
	index := make(map[string]int)
	for _, t := range templates {
		i, ok := index[t.Category]
		if !ok {
			i = len(groups)
			index[t.Category] = i
			groups = append(groups, TemplateGroup{Category: t.Category})
		}
		groups[i].Templates = append(groups[i].Templates, t)
	}
	return groups
}

func applyTemplatePatch(t *model.PromptTemplate, patch model.PromptTemplatePatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return fmt.Errorf("%w: template name must not be empty", apperrors.ErrValidation)
		}
		t.Name = name
	}
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return fmt.Errorf("%w: template content must not be empty", apperrors.ErrValidation)
		}
		t.Content = *patch.Content
	}
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			category = DefaultTemplateCategory
		}
		t.Category = category
	}
	if patch.Tags != nil {
		t.Tags = append([]string{}, *patch.Tags...)
	}
	return nil
}
