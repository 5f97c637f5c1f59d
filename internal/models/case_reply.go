package models

import (
	"time"
)

// CaseReply is a follow-up note on a case resolution. Replies carry no
// privacy flag of their own; they are readable by any authenticated user
// who can see the resolution.
type CaseReply struct {
	ID           string    `json:"id"`
	ResolutionID string    `json:"resolution_id"`
	OwnerID      string    `json:"owner_id"`
	Content      string    `json:"content"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CaseReplyCreateRequest struct {
	Content string   `json:"content" validate:"required"`
	Images  []string `json:"images"`
}

type CaseReplyUpdateRequest struct {
	Content *string  `json:"content"`
	Images  []string `json:"images"`
}
