package handler

import (
	"github.com/gofiber/fiber/v2"

	"parkgate/internal/model"
	"parkgate/internal/service"
)

type supportRequest struct {
	Content string `json:"content"`
}

type supportResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type supportListResponse struct {
	Success bool                   `json:"success"`
	Items   []model.SupportRequest `json:"items"`
}

// SubmitSupport stores a resident support request.
//
// @Summary Submit support request
// @Tags resident
// @Accept json
// @Produce json
// @Param body body supportRequest true "Request content"
// @Success 200 {object} supportResponse
// @Failure 400 {object} errorPayload
// @Router /api/resident/support [post]
func SubmitSupport(svc service.SupportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req supportRequest
		if err := parseJSON(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		saved, err := svc.Submit(c.UserContext(), req.Content)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(supportResponse{Success: true, ID: saved.ID})
	}
}

// ListSupport lists the most recent support requests.
//
// @Summary List support requests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items" default(50)
// @Success 200 {object} supportListResponse
// @Failure 401 {object} errorPayload
// @Router /api/admin/support [get]
func ListSupport(svc service.SupportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		items, err := svc.ListRecent(c.UserContext(), limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		if items == nil {
			items = []model.SupportRequest{}
		}
		return c.JSON(supportListResponse{Success: true, Items: items})
	}
}
