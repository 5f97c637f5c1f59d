package models

import (
	"time"
)

type TextAlign string

const (
	TextAlignLeft  TextAlign = "left"
	TextAlignRight TextAlign = "right"
)

type EmailTemplate struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Name          string    `json:"name"`
	Subject       string    `json:"subject"`
	ContentMale   string    `json:"content_male"`
	ContentFemale string    `json:"content_female"`
	TextAlign     TextAlign `json:"text_align"`
	Tags          []string  `json:"tags"`
	Language      Language  `json:"language"`
	IsPrivate     bool      `json:"is_private"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type EmailTemplateCreateRequest struct {
	Name          string    `json:"name" validate:"required,max=200"`
	Subject       string    `json:"subject" validate:"max=500"`
	ContentMale   string    `json:"content_male"`
	ContentFemale string    `json:"content_female"`
	TextAlign     TextAlign `json:"text_align" validate:"omitempty,oneof=left right"`
	Tags          []string  `json:"tags"`
	Language      Language  `json:"language" validate:"omitempty,oneof=en he"`
	IsPrivate     *bool     `json:"is_private"`
}

type EmailTemplateUpdateRequest struct {
	Name          *string    `json:"name" validate:"omitempty,max=200"`
	Subject       *string    `json:"subject" validate:"omitempty,max=500"`
	ContentMale   *string    `json:"content_male"`
	ContentFemale *string    `json:"content_female"`
	TextAlign     *TextAlign `json:"text_align" validate:"omitempty,oneof=left right"`
	Tags          []string   `json:"tags"`
	Language      *Language  `json:"language" validate:"omitempty,oneof=en he"`
	IsPrivate     *bool      `json:"is_private"`
}

type RenderedEmailTemplate struct {
	Name          string    `json:"name"`
	Subject       string    `json:"subject"`
	ContentMale   string    `json:"content_male"`
	ContentFemale string    `json:"content_female"`
	TextAlign     TextAlign `json:"text_align"`
}
