package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/medicine-service/internal/api/response"
	"github.com/spec-kit/medicine-service/internal/service"
)

// ActivityHandler exposes the recent-activity feed.
type ActivityHandler struct {
	activity *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activityService}
}

// Feed handles GET /api/activity.
func (h *ActivityHandler) Feed(c *fiber.Ctx) error {
	entries, err := h.activity.Feed(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, "", entries)
}
