package models

import (
	"time"

	"github.com/templateworks/backend/pkg/utils"
)

// MaxStepImages caps the attachments on a single resolution step.
const MaxStepImages = 5

// ResolutionStep is one ordered step of a playbook. Links are derived
// from Content on every edit; only their descriptions and images are
// hand-authored.
type ResolutionStep struct {
	ID      string       `json:"id"`
	Content string       `json:"content"`
	Images  []string     `json:"images"`
	Links   []utils.Link `json:"links"`
}

type CaseResolution struct {
	ID                string           `json:"id"`
	OwnerID           string           `json:"owner_id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	DescriptionImages []string         `json:"description_images"`
	Steps             []ResolutionStep `json:"steps"`
	Tags              []string         `json:"tags"`
	Language          Language         `json:"language"`
	IsPrivate         bool             `json:"is_private"`
	Reason            string           `json:"reason"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type ResolutionStepPayload struct {
	ID      string       `json:"id"`
	Content string       `json:"content"`
	Images  []string     `json:"images" validate:"max=5"`
	Links   []utils.Link `json:"links"`
}

type CaseResolutionCreateRequest struct {
	Title             string                  `json:"title" validate:"required,max=300"`
	Description       string                  `json:"description"`
	DescriptionImages []string                `json:"description_images"`
	Steps             []ResolutionStepPayload `json:"steps" validate:"dive"`
	Tags              []string                `json:"tags"`
	Language          Language                `json:"language" validate:"omitempty,oneof=en he"`
	IsPrivate         *bool                   `json:"is_private"`
	Reason            string                  `json:"reason"`
}

type CaseResolutionUpdateRequest struct {
	Title             *string                 `json:"title" validate:"omitempty,max=300"`
	Description       *string                 `json:"description"`
	DescriptionImages []string                `json:"description_images"`
	Steps             []ResolutionStepPayload `json:"steps" validate:"omitempty,dive"`
	Tags              []string                `json:"tags"`
	Language          *Language               `json:"language" validate:"omitempty,oneof=en he"`
	IsPrivate         *bool                   `json:"is_private"`
	Reason            *string                 `json:"reason"`
}
