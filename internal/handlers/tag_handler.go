package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/templateworks/backend/internal/services"
	"github.com/templateworks/backend/pkg/utils"
)

type TagHandler struct {
	service services.TagService
}

func NewTagHandler(service services.TagService) *TagHandler {
	return &TagHandler{service: service}
}

func (h *TagHandler) ListByKind(c *fiber.Ctx) error {
	tags, err := h.service.ListByKind(c.Context(), c.Params("kind"))
	if err != nil {
		if errors.Is(err, services.ErrUnknownTagKind) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown tag kind")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list tags")
	}

	return utils.ListSuccessResponse(c, tags, len(tags))
}
