package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/templateworks/backend/internal/models"
)

type TagRepository interface {
	ListByKind(ctx context.Context, kind models.TagKind) ([]models.TagDefinition, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) ListByKind(ctx context.Context, kind models.TagKind) ([]models.TagDefinition, error) {
	var tags []models.TagDefinition
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("sort_order ASC, name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
