package repository

import (
	"context"
	"time"

	"github.com/templateworks/backend/internal/docstore"
	"github.com/templateworks/backend/internal/models"
)

// Bootstrap prepares the document store for a fresh deployment or a
// fresh user: collection placeholders and starter content.
type Bootstrap struct {
	store  docstore.Store
	chats  ChatTemplateRepository
	emails EmailTemplateRepository
}

func NewBootstrap(store docstore.Store, chats ChatTemplateRepository, emails EmailTemplateRepository) *Bootstrap {
	return &Bootstrap{store: store, chats: chats, emails: emails}
}

// EnsureCollections writes a placeholder sentinel into every collection
// so each one exists before the first real document arrives. The
// sentinel uses the reserved id and is filtered out of every read path,
// so re-running this on startup is harmless.
func (b *Bootstrap) EnsureCollections(ctx context.Context) error {
	collections := []string{
		chatTemplatesCollection,
		emailTemplatesCollection,
		caseResolutionsCollection,
		caseRepliesCollection,
	}

	now := time.Now().UTC()
	for _, collection := range collections {
		doc := docstore.Document{
			"type":       "placeholder",
			"is_private": false,
			"created_at": now,
		}
		if err := b.store.Set(ctx, collection, placeholderID, doc); err != nil {
			return writeError(collection, "ensure collection", err)
		}
	}
	return nil
}

// SeedStarterTemplates gives a newly registered user one chat and one
// email template so their workspace is not empty on first login.
func (b *Bootstrap) SeedStarterTemplates(ctx context.Context, viewer *models.Viewer) error {
	if viewer == nil {
		return ErrUnauthenticated
	}

	private := true
	chat := &models.ChatTemplateCreateRequest{
		Name:          "Welcome Message",
		ContentMale:   "Hello {customer_name}, welcome! My name is {agent_name} and I will be assisting you today.",
		ContentFemale: "Hello {customer_name}, welcome! My name is {agent_name} and I will be assisting you today.",
		Tags:          []string{"greeting"},
		IsPrivate:     &private,
	}
	if _, err := b.chats.Create(ctx, viewer, chat); err != nil {
		return err
	}

	email := &models.EmailTemplateCreateRequest{
		Name:          "Issue Follow-up",
		Subject:       "Following up on your request {ticket_id}",
		ContentMale:   "Dear {customer_name},\n\nI am writing to follow up on your recent request. Please let me know if the issue is resolved.\n\nBest regards,\n{agent_name}",
		ContentFemale: "Dear {customer_name},\n\nI am writing to follow up on your recent request. Please let me know if the issue is resolved.\n\nBest regards,\n{agent_name}",
		Tags:          []string{"follow-up"},
		IsPrivate:     &private,
	}
	if _, err := b.emails.Create(ctx, viewer, email); err != nil {
		return err
	}

	return nil
}
