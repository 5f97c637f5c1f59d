package services

import (
	"context"

	"github.com/templateworks/backend/internal/models"
	"github.com/templateworks/backend/internal/repository"
	"github.com/templateworks/backend/pkg/utils"
)

type ChatTemplateService interface {
	Create(ctx context.Context, viewer *models.Viewer, req *models.ChatTemplateCreateRequest) (*models.ChatTemplate, error)
	List(ctx context.Context, viewer *models.Viewer) ([]models.ChatTemplate, error)
	Get(ctx context.Context, viewer *models.Viewer, id string) (*models.ChatTemplate, error)
	Update(ctx context.Context, viewer *models.Viewer, id string, req *models.ChatTemplateUpdateRequest) (*models.ChatTemplate, error)
	Delete(ctx context.Context, viewer *models.Viewer, id string) error
	Render(ctx context.Context, viewer *models.Viewer, id string, req *models.RenderRequest) (*models.RenderedChatTemplate, error)
}

type chatTemplateService struct {
	repo repository.ChatTemplateRepository
}

func NewChatTemplateService(repo repository.ChatTemplateRepository) ChatTemplateService {
	return &chatTemplateService{repo: repo}
}

func (s *chatTemplateService) Create(ctx context.Context, viewer *models.Viewer, req *models.ChatTemplateCreateRequest) (*models.ChatTemplate, error) {
	return s.repo.Create(ctx, viewer, req)
}

func (s *chatTemplateService) List(ctx context.Context, viewer *models.Viewer) ([]models.ChatTemplate, error) {
	return s.repo.List(ctx, viewer)
}

func (s *chatTemplateService) Get(ctx context.Context, viewer *models.Viewer, id string) (*models.ChatTemplate, error) {
	return s.repo.FindByID(ctx, viewer, id)
}

func (s *chatTemplateService) Update(ctx context.Context, viewer *models.Viewer, id string, req *models.ChatTemplateUpdateRequest) (*models.ChatTemplate, error) {
	if err := s.repo.Update(ctx, viewer, id, req); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, viewer, id)
}

func (s *chatTemplateService) Delete(ctx context.Context, viewer *models.Viewer, id string) error {
	return s.repo.Delete(ctx, viewer, id)
}

// Render substitutes placeholder tokens into both gendered variants.
// The stored template is never modified.
func (s *chatTemplateService) Render(ctx context.Context, viewer *models.Viewer, id string, req *models.RenderRequest) (*models.RenderedChatTemplate, error) {
	template, err := s.repo.FindByID(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	return &models.RenderedChatTemplate{
		Name:          template.Name,
		ContentMale:   utils.Substitute(template.ContentMale, req.Values),
		ContentFemale: utils.Substitute(template.ContentFemale, req.Values),
	}, nil
}
