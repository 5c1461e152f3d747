package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/medicine-service/internal/api/dto"
	"github.com/spec-kit/medicine-service/internal/api/response"
	"github.com/spec-kit/medicine-service/internal/auth"
	"github.com/spec-kit/medicine-service/internal/service"
	apperrors "github.com/spec-kit/medicine-service/pkg/util"
)

// UsersHandler exposes account management endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Update handles PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	updated, err := h.auth.UpdateUser(c.Context(), principal.User, c.Params("id"), service.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return response.Success(c, "user updated", fiber.Map{"user": dto.NewUserResponse(updated)})
}
