package repository

import (
	"context"
	"time"

	"github.com/templateworks/backend/internal/docstore"
	"github.com/templateworks/backend/internal/models"
)

const emailTemplatesCollection = "email_templates"

type EmailTemplateRepository interface {
	Create(ctx context.Context, viewer *models.Viewer, req *models.EmailTemplateCreateRequest) (*models.EmailTemplate, error)
	List(ctx context.Context, viewer *models.Viewer) ([]models.EmailTemplate, error)
	FindByID(ctx context.Context, viewer *models.Viewer, id string) (*models.EmailTemplate, error)
	Update(ctx context.Context, viewer *models.Viewer, id string, req *models.EmailTemplateUpdateRequest) error
	Delete(ctx context.Context, viewer *models.Viewer, id string) error
}

type emailTemplateRepository struct {
	store docstore.Store
}

func NewEmailTemplateRepository(store docstore.Store) EmailTemplateRepository {
	return &emailTemplateRepository{store: store}
}

func (r *emailTemplateRepository) Create(ctx context.Context, viewer *models.Viewer, req *models.EmailTemplateCreateRequest) (*models.EmailTemplate, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}

	now := time.Now().UTC()

	isPrivate := true
	if req.IsPrivate != nil {
		isPrivate = *req.IsPrivate
	}
	language := req.Language
	if language == "" {
		language = models.LanguageEnglish
	}
	textAlign := req.TextAlign
	if textAlign == "" {
		textAlign = models.TextAlignLeft
	}
	tags := dedupeTags(stringsOrEmpty(req.Tags))

	doc := docstore.Document{
		"owner_id":       viewer.ID,
		"name":           req.Name,
		"subject":        req.Subject,
		"content_male":   req.ContentMale,
		"content_female": req.ContentFemale,
		"text_align":     string(textAlign),
		"tags":           tags,
		"language":       string(language),
		"is_private":     isPrivate,
		"created_at":     now,
		"updated_at":     now,
	}

	id, err := r.store.Insert(ctx, emailTemplatesCollection, doc)
	if err != nil {
		return nil, writeError("email template", "create", err)
	}

	return &models.EmailTemplate{
		ID:            id,
		OwnerID:       viewer.ID,
		Name:          req.Name,
		Subject:       req.Subject,
		ContentMale:   req.ContentMale,
		ContentFemale: req.ContentFemale,
		TextAlign:     textAlign,
		Tags:          tags,
		Language:      language,
		IsPrivate:     isPrivate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (r *emailTemplateRepository) List(ctx context.Context, viewer *models.Viewer) ([]models.EmailTemplate, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}

	entries, err := listVisible(ctx, r.store, emailTemplatesCollection, viewer)
	if err != nil {
		return nil, readError("email templates", "list", err)
	}

	templates := make([]models.EmailTemplate, len(entries))
	for i, e := range entries {
		templates[i] = emailTemplateFromDocument(e.ID, e.Data)
	}
	return templates, nil
}

func (r *emailTemplateRepository) FindByID(ctx context.Context, viewer *models.Viewer, id string) (*models.EmailTemplate, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}

	doc, err := r.store.Get(ctx, emailTemplatesCollection, id)
	if err != nil {
		return nil, readError("email template", "get", err)
	}
	if isPlaceholder(docstore.Entry{ID: id, Data: doc}) {
		return nil, ErrNotFound
	}

	template := emailTemplateFromDocument(id, doc)
	if template.IsPrivate && template.OwnerID != viewer.ID {
		return nil, ErrNotFound
	}
	return &template, nil
}

func (r *emailTemplateRepository) Update(ctx context.Context, viewer *models.Viewer, id string, req *models.EmailTemplateUpdateRequest) error {
	if viewer == nil {
		return ErrUnauthenticated
	}

	doc, err := r.store.Get(ctx, emailTemplatesCollection, id)
	if err != nil {
		return readError("email template", "update", err)
	}
	if isPlaceholder(docstore.Entry{ID: id, Data: doc}) {
		return ErrNotFound
	}
	if docString(doc, "owner_id") != viewer.ID {
		return ErrPermissionDenied
	}

	partial := docstore.Document{}
	if req.Name != nil {
		partial["name"] = *req.Name
	}
	if req.Subject != nil {
		partial["subject"] = *req.Subject
	}
	if req.ContentMale != nil {
		partial["content_male"] = *req.ContentMale
	}
	if req.ContentFemale != nil {
		partial["content_female"] = *req.ContentFemale
	}
	if req.TextAlign != nil {
		partial["text_align"] = string(*req.TextAlign)
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

	if err := r.store.Update(ctx, emailTemplatesCollection, id, partial); err != nil {
		return writeError("email template", "update", err)
	}
	return nil
}

func (r *emailTemplateRepository) Delete(ctx context.Context, viewer *models.Viewer, id string) error {
	if viewer == nil {
		return ErrUnauthenticated
	}

	doc, err := r.store.Get(ctx, emailTemplatesCollection, id)
	if err != nil {
		return readError("email template", "delete", err)
	}
	if isPlaceholder(docstore.Entry{ID: id, Data: doc}) {
		return ErrNotFound
	}
	if docString(doc, "owner_id") != viewer.ID {
		return ErrPermissionDenied
	}

	if err := r.store.Delete(ctx, emailTemplatesCollection, id); err != nil {
		return writeError("email template", "delete", err)
	}
	return nil
}

func emailTemplateFromDocument(id string, doc docstore.Document) models.EmailTemplate {
	return models.EmailTemplate{
		ID:            id,
		OwnerID:       docString(doc, "owner_id"),
		Name:          docString(doc, "name"),
		Subject:       docString(doc, "subject"),
		ContentMale:   docString(doc, "content_male"),
		ContentFemale: docString(doc, "content_female"),
		TextAlign:     models.TextAlign(docString(doc, "text_align")),
		Tags:          docStringSlice(doc, "tags"),
		Language:      models.Language(docString(doc, "language")),
		IsPrivate:     docBool(doc, "is_private"),
		CreatedAt:     docTime(doc, "created_at"),
		UpdatedAt:     docTime(doc, "updated_at"),
	}
}
