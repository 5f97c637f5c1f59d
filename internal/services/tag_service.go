package services

import (
	"context"
	"errors"

	"github.com/templateworks/backend/internal/models"
	"github.com/templateworks/backend/internal/repository"
)

var ErrUnknownTagKind = errors.New("unknown tag kind")

type TagService interface {
	ListByKind(ctx context.Context, kind string) ([]models.TagDefinition, error)
}

type tagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) ListByKind(ctx context.Context, kind string) ([]models.TagDefinition, error) {
	tagKind := models.TagKind(kind)
	switch tagKind {
	case models.TagKindChat, models.TagKindEmail, models.TagKindResolution:
	default:
		return nil, ErrUnknownTagKind
	}
	return s.repo.ListByKind(ctx, tagKind)
}
