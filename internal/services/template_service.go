package services

import (
	"context"

	model "ai-notebook.com/ai-notebook/internal/models"
	repository "ai-notebook.com/ai-notebook/internal/repositories"
)

type TemplateListing struct {
	Count      int                        `json:"count"`
	Templates  []model.PromptTemplate     `json:"templates"`
	Categories []repository.TemplateGroup `json:"categories"`
}

type TemplateService struct {
	templates *repository.PromptTemplateRepository
}

func NewTemplateService(templates *repository.PromptTemplateRepository) *TemplateService {
	return &TemplateService{templates: templates}
}

func (s *TemplateService) List(ctx context.Context) (*TemplateListing, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	return &TemplateListing{
		Count:      len(templates),
		Templates:  templates,
		Categories: repository.GroupByCategory(templates),
	}, nil
}

func (s *TemplateService) Get(ctx context.Context, id string) (*model.PromptTemplate, error) {
	return s.templates.Get(ctx, id)
}

func (s *TemplateService) Create(ctx context.Context, patch model.PromptTemplatePatch) (*model.PromptTemplate, error) {
	return s.templates.Create(ctx, patch)
}

func (s *TemplateService) Update(ctx context.Context, id string, patch model.PromptTemplatePatch) (*model.PromptTemplate, error) {
	return s.templates.Update(ctx, id, patch)
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	return s.templates.Delete(ctx, id)
}
