package models

import (
	"time"
)

// ChatTemplate is a reusable chat reply with gendered variants. Content
// may carry {name}-style placeholder tokens that are substituted at copy
// time, never in storage.
type ChatTemplate struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Name          string    `json:"name"`
	ContentMale   string    `json:"content_male"`
	ContentFemale string    `json:"content_female"`
	Tags          []string  `json:"tags"`
	Language      Language  `json:"language"`
	IsPrivate     bool      `json:"is_private"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ChatTemplateCreateRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	ContentMale   string   `json:"content_male"`
	ContentFemale string   `json:"content_female"`
	Tags          []string `json:"tags"`
	Language      Language `json:"language" validate:"omitempty,oneof=en he"`
	IsPrivate     *bool    `json:"is_private"`
}

type ChatTemplateUpdateRequest struct {
	Name          *string   `json:"name" validate:"omitempty,max=200"`
	ContentMale   *string   `json:"content_male"`
	ContentFemale *string   `json:"content_female"`
	Tags          []string  `json:"tags"`
	Language      *Language `json:"language" validate:"omitempty,oneof=en he"`
	IsPrivate     *bool     `json:"is_private"`
}

type RenderRequest struct {
	Values map[string]string `json:"values"`
}

type RenderedChatTemplate struct {
	Name          string `json:"name"`
	ContentMale   string `json:"content_male"`
	ContentFemale string `json:"content_female"`
}
