package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/templateworks/backend/internal/repository"
	"github.com/templateworks/backend/pkg/utils"
)

// repositoryError translates the repository error taxonomy into an HTTP
// response. IndexRequired maps to 503 with an operator-facing message;
// other store failures surface as 502 so clients can tell a backend
// outage from a bad request.
func repositoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrUnauthenticated):
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
	case errors.Is(err, repository.ErrPermissionDenied):
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Only the owner may modify this entity")
	case errors.Is(err, repository.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, repository.ErrIndexRequired):
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "A required store index is missing; provision it and retry")
	case errors.Is(err, repository.ErrStoreRead), errors.Is(err, repository.ErrStoreWrite):
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Document store unavailable")
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
}
