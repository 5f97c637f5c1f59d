package services

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/templateworks/backend/internal/config"
	"github.com/templateworks/backend/internal/models"
	"github.com/templateworks/backend/internal/repository"
	"github.com/templateworks/backend/internal/storage"
	"github.com/templateworks/backend/pkg/utils"
)

type CaseResolutionService interface {
	Create(ctx context.Context, viewer *models.Viewer, req *models.CaseResolutionCreateRequest) (*models.CaseResolution, error)
	List(ctx context.Context, viewer *models.Viewer) ([]models.CaseResolution, error)
	Get(ctx context.Context, viewer *models.Viewer, id string) (*models.CaseResolution, error)
	Update(ctx context.Context, viewer *models.Viewer, id string, req *models.CaseResolutionUpdateRequest) (*models.CaseResolution, error)
	Delete(ctx context.Context, viewer *models.Viewer, id string) error

	CreateReply(ctx context.Context, viewer *models.Viewer, resolutionID string, req *models.CaseReplyCreateRequest) (*models.CaseReply, error)
	ListReplies(ctx context.Context, viewer *models.Viewer, resolutionID string) ([]models.CaseReply, error)
	UpdateReply(ctx context.Context, viewer *models.Viewer, replyID string, req *models.CaseReplyUpdateRequest) (*models.CaseReply, error)
	DeleteReply(ctx context.Context, viewer *models.Viewer, replyID string) error

	UploadImage(ctx context.Context, viewer *models.Viewer, file multipart.File, header *multipart.FileHeader) (string, error)
}

type caseResolutionService struct {
	resolutions repository.CaseResolutionRepository
	replies     repository.CaseReplyRepository
	storage     *storage.MinIOStorage
	config      *config.Config
}

func NewCaseResolutionService(
	resolutions repository.CaseResolutionRepository,
	replies repository.CaseReplyRepository,
	storage *storage.MinIOStorage,
	cfg *config.Config,
) CaseResolutionService {
	return &caseResolutionService{
		resolutions: resolutions,
		replies:     replies,
		storage:     storage,
		config:      cfg,
	}
}

func (s *caseResolutionService) Create(ctx context.Context, viewer *models.Viewer, req *models.CaseResolutionCreateRequest) (*models.CaseResolution, error) {
	req.Steps = normalizeSteps(req.Steps, nil)
	return s.resolutions.Create(ctx, viewer, req)
}

func (s *caseResolutionService) List(ctx context.Context, viewer *models.Viewer) ([]models.CaseResolution, error) {
	return s.resolutions.List(ctx, viewer)
}

func (s *caseResolutionService) Get(ctx context.Context, viewer *models.Viewer, id string) (*models.CaseResolution, error) {
	return s.resolutions.FindByID(ctx, viewer, id)
}

func (s *caseResolutionService) Update(ctx context.Context, viewer *models.Viewer, id string, req *models.CaseResolutionUpdateRequest) (*models.CaseResolution, error) {
	if req.Steps != nil {
		current, err := s.resolutions.FindByID(ctx, viewer, id)
		if err != nil {
			return nil, err
		}
		req.Steps = normalizeSteps(req.Steps, current.Steps)
	}
	if err := s.resolutions.Update(ctx, viewer, id, req); err != nil {
		return nil, err
	}
	return s.resolutions.FindByID(ctx, viewer, id)
}

func (s *caseResolutionService) Delete(ctx context.Context, viewer *models.Viewer, id string) error {
	return s.resolutions.Delete(ctx, viewer, id)
}

func (s *caseResolutionService) CreateReply(ctx context.Context, viewer *models.Viewer, resolutionID string, req *models.CaseReplyCreateRequest) (*models.CaseReply, error) {
	// The parent resolution must be visible to the viewer before any
	// reply is attached to it.
	if _, err := s.resolutions.FindByID(ctx, viewer, resolutionID); err != nil {
		return nil, err
	}
	return s.replies.Create(ctx, viewer, resolutionID, req)
}

func (s *caseResolutionService) ListReplies(ctx context.Context, viewer *models.Viewer, resolutionID string) ([]models.CaseReply, error) {
	if _, err := s.resolutions.FindByID(ctx, viewer, resolutionID); err != nil {
		return nil, err
	}
	return s.replies.ListByResolution(ctx, resolutionID)
}

func (s *caseResolutionService) UpdateReply(ctx context.Context, viewer *models.Viewer, replyID string, req *models.CaseReplyUpdateRequest) (*models.CaseReply, error) {
	if err := s.replies.Update(ctx, viewer, replyID, req); err != nil {
		return nil, err
	}
	return s.replies.FindByID(ctx, replyID)
}

func (s *caseResolutionService) DeleteReply(ctx context.Context, viewer *models.Viewer, replyID string) error {
	return s.replies.Delete(ctx, viewer, replyID)
}

func (s *caseResolutionService) UploadImage(ctx context.Context, viewer *models.Viewer, file multipart.File, header *multipart.FileHeader) (string, error) {
	if viewer == nil {
		return "", repository.ErrUnauthenticated
	}
	objectName, err := s.storage.UploadFile(ctx, file, header, "images")
	if err != nil {
		return "", err
	}
	return s.storage.GetPublicURL(objectName, s.config.MinIO.PublicEndpoint), nil
}

// normalizeSteps assigns an id to new steps and re-derives each step's
// link list from its content. Descriptions and images attached to a
// link survive edits as long as the URL is still present, looking first
// at the incoming payload and then at the step's previous state.
func normalizeSteps(payloads []models.ResolutionStepPayload, previous []models.ResolutionStep) []models.ResolutionStepPayload {
	prevByID := make(map[string]models.ResolutionStep, len(previous))
	for _, step := range previous {
		prevByID[step.ID] = step
	}

	out := make([]models.ResolutionStepPayload, len(payloads))
	for i, p := range payloads {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}

		carried := p.Links
		if prev, ok := prevByID[p.ID]; ok {
			carried = append(carried, prev.Links...)
		}
		p.Links = utils.MergeLinks(p.Content, carried)

		out[i] = p
	}
	return out
}
