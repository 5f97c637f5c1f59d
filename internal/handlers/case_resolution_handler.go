package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/templateworks/backend/internal/middleware"
	"github.com/templateworks/backend/internal/models"
	"github.com/templateworks/backend/internal/services"
	"github.com/templateworks/backend/pkg/utils"
)

type CaseResolutionHandler struct {
	service   services.CaseResolutionService
	validator *validator.Validate
}

func NewCaseResolutionHandler(service services.CaseResolutionService) *CaseResolutionHandler {
	return &CaseResolutionHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *CaseResolutionHandler) Create(c *fiber.Ctx) error {
	var req models.CaseResolutionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	resolution, err := h.service.Create(c.Context(), middleware.ViewerFromContext(c), &req)
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Case resolution created successfully", resolution)
}

func (h *CaseResolutionHandler) List(c *fiber.Ctx) error {
	resolutions, err := h.service.List(c.Context(), middleware.ViewerFromContext(c))
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.ListSuccessResponse(c, resolutions, len(resolutions))
}

func (h *CaseResolutionHandler) Get(c *fiber.Ctx) error {
	resolution, err := h.service.Get(c.Context(), middleware.ViewerFromContext(c), c.Params("id"))
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Case resolution retrieved successfully", resolution)
}

func (h *CaseResolutionHandler) Update(c *fiber.Ctx) error {
	var req models.CaseResolutionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	resolution, err := h.service.Update(c.Context(), middleware.ViewerFromContext(c), c.Params("id"), &req)
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Case resolution updated successfully", resolution)
}

func (h *CaseResolutionHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), middleware.ViewerFromContext(c), c.Params("id")); err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Case resolution deleted successfully", nil)
}

func (h *CaseResolutionHandler) CreateReply(c *fiber.Ctx) error {
	var req models.CaseReplyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	reply, err := h.service.CreateReply(c.Context(), middleware.ViewerFromContext(c), c.Params("id"), &req)
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Reply created successfully", reply)
}

func (h *CaseResolutionHandler) ListReplies(c *fiber.Ctx) error {
	replies, err := h.service.ListReplies(c.Context(), middleware.ViewerFromContext(c), c.Params("id"))
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.ListSuccessResponse(c, replies, len(replies))
}

func (h *CaseResolutionHandler) UpdateReply(c *fiber.Ctx) error {
	var req models.CaseReplyUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	reply, err := h.service.UpdateReply(c.Context(), middleware.ViewerFromContext(c), c.Params("replyId"), &req)
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Reply updated successfully", reply)
}

func (h *CaseResolutionHandler) DeleteReply(c *fiber.Ctx) error {
	if err := h.service.DeleteReply(c.Context(), middleware.ViewerFromContext(c), c.Params("replyId")); err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Reply deleted successfully", nil)
}

func (h *CaseResolutionHandler) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to open uploaded file")
	}
	defer file.Close()

	url, err := h.service.UploadImage(c.Context(), middleware.ViewerFromContext(c), file, fileHeader)
	if err != nil {
		return repositoryError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Image uploaded successfully", fiber.Map{"url": url})
}
