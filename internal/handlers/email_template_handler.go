package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/templateworks/backend/internal/middleware"
	"github.com/templateworks/backend/internal/models"
	"github.com/templateworks/backend/internal/services"
	"github.com/templateworks/backend/pkg/utils"
)

type EmailTemplateHandler struct {
	service   services.EmailTemplateService
	validator *validator.Validate
}

func NewEmailTemplateHandler(service services.EmailTemplateService) *EmailTemplateHandler {
	return &EmailTemplateHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *EmailTemplateHandler) Create(c *fiber.Ctx) error {
	var req models.EmailTemplateCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	template, err := h.service.Create(c.Context(), middleware.ViewerFromContext(c), &req)
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Email template created successfully", template)
}

func (h *EmailTemplateHandler) List(c *fiber.Ctx) error {
	templates, err := h.service.List(c.Context(), middleware.ViewerFromContext(c))
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.ListSuccessResponse(c, templates, len(templates))
}

func (h *EmailTemplateHandler) Get(c *fiber.Ctx) error {
	template, err := h.service.Get(c.Context(), middleware.ViewerFromContext(c), c.Params("id"))
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Email template retrieved successfully", template)
}

func (h *EmailTemplateHandler) Update(c *fiber.Ctx) error {
	var req models.EmailTemplateUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	template, err := h.service.Update(c.Context(), middleware.ViewerFromContext(c), c.Params("id"), &req)
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Email template updated successfully", template)
}

func (h *EmailTemplateHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), middleware.ViewerFromContext(c), c.Params("id")); err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Email template deleted successfully", nil)
}

func (h *EmailTemplateHandler) Render(c *fiber.Ctx) error {
	var req models.RenderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	rendered, err := h.service.Render(c.Context(), middleware.ViewerFromContext(c), c.Params("id"), &req)
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Email template rendered successfully", rendered)
}
