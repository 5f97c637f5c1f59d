package services

import (
	"context"

	"github.com/templateworks/backend/internal/models"
	"github.com/templateworks/backend/internal/repository"
	"github.com/templateworks/backend/pkg/utils"
)

type EmailTemplateService interface {
	Create(ctx context.Context, viewer *models.Viewer, req *models.EmailTemplateCreateRequest) (*models.EmailTemplate, error)
	List(ctx context.Context, viewer *models.Viewer) ([]models.EmailTemplate, error)
	Get(ctx context.Context, viewer *models.Viewer, id string) (*models.EmailTemplate, error)
	Update(ctx context.Context, viewer *models.Viewer, id string, req *models.EmailTemplateUpdateRequest) (*models.EmailTemplate, error)
	Delete(ctx context.Context, viewer *models.Viewer, id string) error
	Render(ctx context.Context, viewer *models.Viewer, id string, req *models.RenderRequest) (*models.RenderedEmailTemplate, error)
}

type emailTemplateService struct {
	repo repository.EmailTemplateRepository
}

func NewEmailTemplateService(repo repository.EmailTemplateRepository) EmailTemplateService {
	return &emailTemplateService{repo: repo}
}

func (s *emailTemplateService) Create(ctx context.Context, viewer *models.Viewer, req *models.EmailTemplateCreateRequest) (*models.EmailTemplate, error) {
	return s.repo.Create(ctx, viewer, req)
}

func (s *emailTemplateService) List(ctx context.Context, viewer *models.Viewer) ([]models.EmailTemplate, error) {
	return s.repo.List(ctx, viewer)
}

func (s *emailTemplateService) Get(ctx context.Context, viewer *models.Viewer, id string) (*models.EmailTemplate, error) {
	return s.repo.FindByID(ctx, viewer, id)
}

func (s *emailTemplateService) Update(ctx context.Context, viewer *models.Viewer, id string, req *models.EmailTemplateUpdateRequest) (*models.EmailTemplate, error) {
	if err := s.repo.Update(ctx, viewer, id, req); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, viewer, id)
}

func (s *emailTemplateService) Delete(ctx context.Context, viewer *models.Viewer, id string) error {
	return s.repo.Delete(ctx, viewer, id)
}

// Render substitutes placeholder tokens into the subject and both
// gendered bodies. The stored template is never modified.
func (s *emailTemplateService) Render(ctx context.Context, viewer *models.Viewer, id string, req *models.RenderRequest) (*models.RenderedEmailTemplate, error) {
	template, err := s.repo.FindByID(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	return &models.RenderedEmailTemplate{
		Name:          template.Name,
		Subject:       utils.Substitute(template.Subject, req.Values),
		ContentMale:   utils.Substitute(template.ContentMale, req.Values),
		ContentFemale: utils.Substitute(template.ContentFemale, req.Values),
		TextAlign:     template.TextAlign,
	}, nil
}
