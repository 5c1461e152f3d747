package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/medicine-service/internal/api/dto"
	"github.com/spec-kit/medicine-service/internal/api/response"
	"github.com/spec-kit/medicine-service/internal/auth"
	"github.com/spec-kit/medicine-service/internal/repository"
	"github.com/spec-kit/medicine-service/internal/service"
	apperrors "github.com/spec-kit/medicine-service/pkg/util"
)

// MedicinesHandler exposes inventory CRUD endpoints.
type MedicinesHandler struct {
	medicines *service.MedicineService
}

// NewMedicinesHandler constructs handler.
func NewMedicinesHandler(medicineService *service.MedicineService) *MedicinesHandler {
	return &MedicinesHandler{medicines: medicineService}
}

// Create handles POST /api/medicines.
func (h *MedicinesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.MedicineCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	med, err := h.medicines.Create(c.Context(), principal.User, service.MedicineInput{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Manufacturer: req.Manufacturer,
		Price:        req.Price,
		Stock:        req.Stock,
		ExpiryDate:   req.ExpiryDate,
	})
	if err != nil {
		return err
	}
	return response.Created(c, "medicine created", dto.NewMedicineResponse(med))
}

// List handles GET /api/medicines.
func (h *MedicinesHandler) List(c *fiber.Ctx) error {
	filter := repository.MedicineFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "page_size", 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	meds, err := h.medicines.List(c.Context(), filter)
	if err != nil {
		return err
	}

	resp := make([]dto.MedicineResponse, 0, len(meds))
	for i := range meds {
		resp = append(resp, dto.NewMedicineResponse(&meds[i]))
	}
	return response.Success(c, "", resp)
}

// Get handles GET /api/medicines/:id.
func (h *MedicinesHandler) Get(c *fiber.Ctx) error {
	med, err := h.medicines.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, "", dto.NewMedicineResponse(med))
}

// Update handles PUT /api/medicines/:id.
func (h *MedicinesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.MedicineUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	med, err := h.medicines.Update(c.Context(), principal.User, c.Params("id"), service.MedicineUpdateInput{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Manufacturer: req.Manufacturer,
		Price:        req.Price,
		Stock:        req.Stock,
		ExpiryDate:   req.ExpiryDate,
	})
	if err != nil {
		return err
	}
	return response.Success(c, "medicine updated", dto.NewMedicineResponse(med))
}

// Delete handles DELETE /api/medicines/:id.
func (h *MedicinesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.medicines.Delete(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return response.Success(c, "medicine deleted", nil)
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}
