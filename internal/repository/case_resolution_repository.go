package repository

import (
	"context"
	"time"

	"github.com/templateworks/backend/internal/docstore"
	"github.com/templateworks/backend/internal/models"
)

const caseResolutionsCollection = "case_resolutions"

type CaseResolutionRepository interface {
	Create(ctx context.Context, viewer *models.Viewer, req *models.CaseResolutionCreateRequest) (*models.CaseResolution, error)
	List(ctx context.Context, viewer *models.Viewer) ([]models.CaseResolution, error)
	FindByID(ctx context.Context, viewer *models.Viewer, id string) (*models.CaseResolution, error)
	Update(ctx context.Context, viewer *models.Viewer, id string, req *models.CaseResolutionUpdateRequest) error
	Delete(ctx context.Context, viewer *models.Viewer, id string) error
}

type caseResolutionRepository struct {
	store docstore.Store
}

func NewCaseResolutionRepository(store docstore.Store) CaseResolutionRepository {
	return &caseResolutionRepository{store: store}
}

func (r *caseResolutionRepository) Create(ctx context.Context, viewer *models.Viewer, req *models.CaseResolutionCreateRequest) (*models.CaseResolution, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}

	now := time.Now().UTC()

	// Resolutions are shared knowledge by default, unlike templates.
	isPrivate := false
	if req.IsPrivate != nil {
		isPrivate = *req.IsPrivate
	}
	language := req.Language
	if language == "" {
		language = models.LanguageEnglish
	}
	tags := dedupeTags(stringsOrEmpty(req.Tags))
	steps := stepsFromPayloads(req.Steps)

	doc := docstore.Document{
		"owner_id":           viewer.ID,
		"title":              req.Title,
		"description":        req.Description,
		"description_images": stringsToValues(stringsOrEmpty(req.DescriptionImages)),
		"steps":              stepsToValues(steps),
		"tags":               tags,
		"language":           string(language),
		"is_private":         isPrivate,
		"reason":             req.Reason,
		"created_at":         now,
		"updated_at":         now,
	}

	id, err := r.store.Insert(ctx, caseResolutionsCollection, doc)
	if err != nil {
		return nil, writeError("case resolution", "create", err)
	}

	return &models.CaseResolution{
		ID:                id,
		OwnerID:           viewer.ID,
		Title:             req.Title,
		Description:       req.Description,
		DescriptionImages: stringsOrEmpty(req.DescriptionImages),
		Steps:             steps,
		Tags:              tags,
		Language:          language,
		IsPrivate:         isPrivate,
		Reason:            req.Reason,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// List is the one read that tolerates an anonymous viewer: without a
// session it degrades to the public slice of the knowledge base.
func (r *caseResolutionRepository) List(ctx context.Context, viewer *models.Viewer) ([]models.CaseResolution, error) {
	entries, err := listVisible(ctx, r.store, caseResolutionsCollection, viewer)
	if err != nil {
		return nil, readError("case resolutions", "list", err)
	}

	resolutions := make([]models.CaseResolution, len(entries))
	for i, e := range entries {
		resolutions[i] = caseResolutionFromDocument(e.ID, e.Data)
	}
	return resolutions, nil
}

func (r *caseResolutionRepository) FindByID(ctx context.Context, viewer *models.Viewer, id string) (*models.CaseResolution, error) {
	doc, err := r.store.Get(ctx, caseResolutionsCollection, id)
	if err != nil {
		return nil, readError("case resolution", "get", err)
	}
	if isPlaceholder(docstore.Entry{ID: id, Data: doc}) {
		return nil, ErrNotFound
	}

	resolution := caseResolutionFromDocument(id, doc)
	if resolution.IsPrivate && (viewer == nil || resolution.OwnerID != viewer.ID) {
		return nil, ErrNotFound
	}
	return &resolution, nil
}

func (r *caseResolutionRepository) Update(ctx context.Context, viewer *models.Viewer, id string, req *models.CaseResolutionUpdateRequest) error {
	if viewer == nil {
		return ErrUnauthenticated
	}

	doc, err := r.store.Get(ctx, caseResolutionsCollection, id)
	if err != nil {
		return readError("case resolution", "update", err)
	}
	if isPlaceholder(docstore.Entry{ID: id, Data: doc}) {
		return ErrNotFound
	}
	if docString(doc, "owner_id") != viewer.ID {
		return ErrPermissionDenied
	}

	partial := docstore.Document{}
	if req.Title != nil {
		partial["title"] = *req.Title
	}
	if req.Description != nil {
		partial["description"] = *req.Description
	}
	if req.DescriptionImages != nil {
		partial["description_images"] = stringsToValues(req.DescriptionImages)
	}
	if req.Steps != nil {
		partial["steps"] = stepsToValues(stepsFromPayloads(req.Steps))
	}
	if req.Tags != nil {
		partial["tags"] = dedupeTags(req.Tags)
	}
	if req.Language != nil {
		partial["language"] = string(*req.Language)
	}
	if req.IsPrivate != nil {
		partial["is_private"] = *req.IsPrivate
	}
	if req.Reason != nil {
		partial["reason"] = *req.Reason
	}
	partial["updated_at"] = time.Now().UTC()

	if err := r.store.Update(ctx, caseResolutionsCollection, id, partial); err != nil {
		return writeError("case resolution", "update", err)
	}
	return nil
}

func (r *caseResolutionRepository) Delete(ctx context.Context, viewer *models.Viewer, id string) error {
	if viewer == nil {
		return ErrUnauthenticated
	}

	doc, err := r.store.Get(ctx, caseResolutionsCollection, id)
	if err != nil {
		return readError("case resolution", "delete", err)
	}
	if isPlaceholder(docstore.Entry{ID: id, Data: doc}) {
		return ErrNotFound
	}
	if docString(doc, "owner_id") != viewer.ID {
		return ErrPermissionDenied
	}

	if err := r.store.Delete(ctx, caseResolutionsCollection, id); err != nil {
		return writeError("case resolution", "delete", err)
	}
	return nil
}

func caseResolutionFromDocument(id string, doc docstore.Document) models.CaseResolution {
	return models.CaseResolution{
		ID:                id,
		OwnerID:           docString(doc, "owner_id"),
		Title:             docString(doc, "title"),
		Description:       docString(doc, "description"),
		DescriptionImages: docStringSlice(doc, "description_images"),
		Steps:             stepsFromValue(doc["steps"]),
		Tags:              docStringSlice(doc, "tags"),
		Language:          models.Language(docString(doc, "language")),
		IsPrivate:         docBool(doc, "is_private"),
		Reason:            docString(doc, "reason"),
		CreatedAt:         docTime(doc, "created_at"),
		UpdatedAt:         docTime(doc, "updated_at"),
	}
}

func stepsFromPayloads(payloads []models.ResolutionStepPayload) []models.ResolutionStep {
	steps := make([]models.ResolutionStep, len(payloads))
	for i, p := range payloads {
		steps[i] = models.ResolutionStep{
			ID:      p.ID,
			Content: p.Content,
			Images:  stringsOrEmpty(p.Images),
			Links:   p.Links,
		}
	}
	return steps
}

func stepsToValues(steps []models.ResolutionStep) []interface{} {
	values := make([]interface{}, len(steps))
	for i, s := range steps {
		values[i] = map[string]interface{}{
			"id":      s.ID,
			"content": s.Content,
			"images":  stringsToValues(s.Images),
			"links":   linksToValues(s.Links),
		}
	}
	return values
}

func stepsFromValue(v interface{}) []models.ResolutionStep {
	raw, ok := v.([]interface{})
	if !ok {
		return []models.ResolutionStep{}
	}
	steps := make([]models.ResolutionStep, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		doc := docstore.Document(m)
		steps = append(steps, models.ResolutionStep{
			ID:      docString(doc, "id"),
			Content: docString(doc, "content"),
			Images:  docStringSlice(doc, "images"),
			Links:   docLinks(m["links"]),
		})
	}
	return steps
}

func stringsToValues(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
