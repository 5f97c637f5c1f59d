package repository

import (
	"context"
	"time"

	"github.com/templateworks/backend/internal/docstore"
	"github.com/templateworks/backend/internal/models"
)

const caseRepliesCollection = "case_replies"

// replyOrder keeps reply threads in conversation order, oldest first.
var replyOrder = []docstore.Order{
	docstore.OrderBy("created_at", docstore.Ascending),
	docstore.OrderBy(docstore.FieldID, docstore.Ascending),
}

type CaseReplyRepository interface {
	Create(ctx context.Context, viewer *models.Viewer, resolutionID string, req *models.CaseReplyCreateRequest) (*models.CaseReply, error)
	ListByResolution(ctx context.Context, resolutionID string) ([]models.CaseReply, error)
	FindByID(ctx context.Context, id string) (*models.CaseReply, error)
	Update(ctx context.Context, viewer *models.Viewer, id string, req *models.CaseReplyUpdateRequest) error
	Delete(ctx context.Context, viewer *models.Viewer, id string) error
}

type caseReplyRepository struct {
	store docstore.Store
}

func NewCaseReplyRepository(store docstore.Store) CaseReplyRepository {
	return &caseReplyRepository{store: store}
}

func (r *caseReplyRepository) Create(ctx context.Context, viewer *models.Viewer, resolutionID string, req *models.CaseReplyCreateRequest) (*models.CaseReply, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}

	now := time.Now().UTC()
	images := stringsOrEmpty(req.Images)

	doc := docstore.Document{
		"resolution_id": resolutionID,
		"owner_id":      viewer.ID,
		"content":       req.Content,
		"images":        stringsToValues(images),
		"created_at":    now,
		"updated_at":    now,
	}

	id, err := r.store.Insert(ctx, caseRepliesCollection, doc)
	if err != nil {
		return nil, writeError("case reply", "create", err)
	}

	return &models.CaseReply{
		ID:           id,
		ResolutionID: resolutionID,
		OwnerID:      viewer.ID,
		Content:      req.Content,
		Images:       images,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ListByResolution assumes the caller already resolved visibility of the
// parent resolution; replies inherit it rather than carrying their own.
func (r *caseReplyRepository) ListByResolution(ctx context.Context, resolutionID string) ([]models.CaseReply, error) {
	preds := []docstore.Predicate{
		docstore.Where("resolution_id", docstore.OpEqual, resolutionID),
	}
	entries, err := r.store.Query(ctx, caseRepliesCollection, preds, replyOrder)
	if err != nil {
		return nil, readError("case replies", "list", err)
	}

	replies := make([]models.CaseReply, 0, len(entries))
	for _, e := range entries {
		if isPlaceholder(e) {
			continue
		}
		replies = append(replies, caseReplyFromDocument(e.ID, e.Data))
	}
	return replies, nil
}

func (r *caseReplyRepository) FindByID(ctx context.Context, id string) (*models.CaseReply, error) {
	doc, err := r.store.Get(ctx, caseRepliesCollection, id)
	if err != nil {
		return nil, readError("case reply", "get", err)
	}
	if isPlaceholder(docstore.Entry{ID: id, Data: doc}) {
		return nil, ErrNotFound
	}
	reply := caseReplyFromDocument(id, doc)
	return &reply, nil
}

func (r *caseReplyRepository) Update(ctx context.Context, viewer *models.Viewer, id string, req *models.CaseReplyUpdateRequest) error {
	if viewer == nil {
		return ErrUnauthenticated
	}

	doc, err := r.store.Get(ctx, caseRepliesCollection, id)
	if err != nil {
		return readError("case reply", "update", err)
	}
	if isPlaceholder(docstore.Entry{ID: id, Data: doc}) {
		return ErrNotFound
	}
	if docString(doc, "owner_id") != viewer.ID {
		return ErrPermissionDenied
	}

	partial := docstore.Document{}
	if req.Content != nil {
		partial["content"] = *req.Content
	}
	if req.Images != nil {
		partial["images"] = stringsToValues(req.Images)
	}
	partial["updated_at"] = time.Now().UTC()

	if err := r.store.Update(ctx, caseRepliesCollection, id, partial); err != nil {
		return writeError("case reply", "update", err)
	}
	return nil
}

func (r *caseReplyRepository) Delete(ctx context.Context, viewer *models.Viewer, id string) error {
	if viewer == nil {
		return ErrUnauthenticated
	}

	doc, err := r.store.Get(ctx, caseRepliesCollection, id)
	if err != nil {
		return readError("case reply", "delete", err)
	}
	if isPlaceholder(docstore.Entry{ID: id, Data: doc}) {
		return ErrNotFound
	}
	if docString(doc, "owner_id") != viewer.ID {
		return ErrPermissionDenied
	}

	if err := r.store.Delete(ctx, caseRepliesCollection, id); err != nil {
		return writeError("case reply", "delete", err)
	}
	return nil
}

func caseReplyFromDocument(id string, doc docstore.Document) models.CaseReply {
	return models.CaseReply{
		ID:           id,
		ResolutionID: docString(doc, "resolution_id"),
		OwnerID:      docString(doc, "owner_id"),
		Content:      docString(doc, "content"),
		Images:       docStringSlice(doc, "images"),
		CreatedAt:    docTime(doc, "created_at"),
		UpdatedAt:    docTime(doc, "updated_at"),
	}
}
