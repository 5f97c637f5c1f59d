package repository

import (
	"context"
	"time"

	"github.com/templateworks/backend/internal/docstore"
	"github.com/templateworks/backend/internal/models"
)

const chatTemplatesCollection = "chat_templates"

type ChatTemplateRepository interface {
	Create(ctx context.Context, viewer *models.Viewer, req *models.ChatTemplateCreateRequest) (*models.ChatTemplate, error)
	List(ctx context.Context, viewer *models.Viewer) ([]models.ChatTemplate, error)
	FindByID(ctx context.Context, viewer *models.Viewer, id string) (*models.ChatTemplate, error)
	Update(ctx context.Context, viewer *models.Viewer, id string, req *models.ChatTemplateUpdateRequest) error
	Delete(ctx context.Context, viewer *models.Viewer, id string) error
}

type chatTemplateRepository struct {
	store docstore.Store
}

func NewChatTemplateRepository(store docstore.Store) ChatTemplateRepository {
	return &chatTemplateRepository{store: store}
}

func (r *chatTemplateRepository) Create(ctx context.Context, viewer *models.Viewer, req *models.ChatTemplateCreateRequest) (*models.ChatTemplate, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}

	now := time.Now().UTC()

	// Chat templates are private by default. All fields persist with a
	// concrete value: an absent field would not match equality filters.
	isPrivate := true
	if req.IsPrivate != nil {
		isPrivate = *req.IsPrivate
	}
	language := req.Language
	if language == "" {
		language = models.LanguageEnglish
	}
	tags := dedupeTags(stringsOrEmpty(req.Tags))

	doc := docstore.Document{
		"owner_id":       viewer.ID,
		"name":           req.Name,
		"content_male":   req.ContentMale,
		"content_female": req.ContentFemale,
		"tags":           tags,
		"language":       string(language),
		"is_private":     isPrivate,
		"created_at":     now,
		"updated_at":     now,
	}

	id, err := r.store.Insert(ctx, chatTemplatesCollection, doc)
	if err != nil {
		return nil, writeError("chat template", "create", err)
	}

	return &models.ChatTemplate{
		ID:            id,
		OwnerID:       viewer.ID,
		Name:          req.Name,
		ContentMale:   req.ContentMale,
		ContentFemale: req.ContentFemale,
		Tags:          tags,
		Language:      language,
		IsPrivate:     isPrivate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (r *chatTemplateRepository) List(ctx context.Context, viewer *models.Viewer) ([]models.ChatTemplate, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}

	entries, err := listVisible(ctx, r.store, chatTemplatesCollection, viewer)
	if err != nil {
		return nil, readError("chat templates", "list", err)
	}

	templates := make([]models.ChatTemplate, len(entries))
	for i, e := range entries {
		templates[i] = chatTemplateFromDocument(e.ID, e.Data)
	}
	return templates, nil
}

func (r *chatTemplateRepository) FindByID(ctx context.Context, viewer *models.Viewer, id string) (*models.ChatTemplate, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}

	doc, err := r.store.Get(ctx, chatTemplatesCollection, id)
	if err != nil {
		return nil, readError("chat template", "get", err)
	}
	if isPlaceholder(docstore.Entry{ID: id, Data: doc}) {
		return nil, ErrNotFound
	}

	template := chatTemplateFromDocument(id, doc)
	if template.IsPrivate && template.OwnerID != viewer.ID {
		// Private entities owned by someone else are indistinguishable
		// from missing ones.
		return nil, ErrNotFound
	}
	return &template, nil
}

func (r *chatTemplateRepository) Update(ctx context.Context, viewer *models.Viewer, id string, req *models.ChatTemplateUpdateRequest) error {
	if viewer == nil {
		return ErrUnauthenticated
	}

	doc, err := r.store.Get(ctx, chatTemplatesCollection, id)
	if err != nil {
		return readError("chat template", "update", err)
	}
	if isPlaceholder(docstore.Entry{ID: id, Data: doc}) {
		return ErrNotFound
	}
	if docString(doc, "owner_id") != viewer.ID {
		return ErrPermissionDenied
	}

	// id, owner_id and created_at are never writable: the partial
	// document is built field by field from the request.
	partial := docstore.Document{}
	if req.Name != nil {
		partial["name"] = *req.Name
	}
	if req.ContentMale != nil {
		partial["content_male"] = *req.ContentMale
	}
	if req.ContentFemale != nil {
		partial["content_female"] = *req.ContentFemale
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
	partial["updated_at"] = time.Now().UTC()

	if err := r.store.Update(ctx, chatTemplatesCollection, id, partial); err != nil {
		return writeError("chat template", "update", err)
	}
	return nil
}

func (r *chatTemplateRepository) Delete(ctx context.Context, viewer *models.Viewer, id string) error {
	if viewer == nil {
		return ErrUnauthenticated
	}

	doc, err := r.store.Get(ctx, chatTemplatesCollection, id)
	if err != nil {
		return readError("chat template", "delete", err)
	}
	if isPlaceholder(docstore.Entry{ID: id, Data: doc}) {
		return ErrNotFound
	}
	if docString(doc, "owner_id") != viewer.ID {
		return ErrPermissionDenied
	}

	if err := r.store.Delete(ctx, chatTemplatesCollection, id); err != nil {
		return writeError("chat template", "delete", err)
	}
	return nil
}

func chatTemplateFromDocument(id string, doc docstore.Document) models.ChatTemplate {
	return models.ChatTemplate{
		ID:            id,
		OwnerID:       docString(doc, "owner_id"),
		Name:          docString(doc, "name"),
		ContentMale:   docString(doc, "content_male"),
		ContentFemale: docString(doc, "content_female"),
		Tags:          docStringSlice(doc, "tags"),
		Language:      models.Language(docString(doc, "language")),
		IsPrivate:     docBool(doc, "is_private"),
		CreatedAt:     docTime(doc, "created_at"),
		UpdatedAt:     docTime(doc, "updated_at"),
	}
}
