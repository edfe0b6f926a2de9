package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"parkgate/internal/model"
	"parkgate/internal/service"
)

type notificationListResponse struct {
	Success bool                 `json:"success"`
	Items   []model.Notification `json:"items"`
}

type openSessionItem struct {
	TicketCode  string    `json:"ticket_code"`
	Plate       string    `json:"plate,omitempty"`
	CheckinTime time.Time `json:"checkin_time"`
	Hours       int64     `json:"hours"`
	FeeDue      int64     `json:"fee_due"`
}

type openSessionListResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Items   []openSessionItem `json:"items"`
}

// ListNotifications lists the newest operator alerts.
//
// @Summary List notifications
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items" default(10)
// @Success 200 {object} notificationListResponse
// @Failure 401 {object} errorPayload
// @Router /api/admin/notifications [get]
func ListNotifications(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListRecent(c.UserContext(), c.QueryInt("limit", 10))
		if err != nil {
			return writeServiceError(c, err)
		}
		if items == nil {
			items = []model.Notification{}
		}
		return c.JSON(notificationListResponse{Success: true, Items: items})
	}
}

// ListOpenSessions lists guests still inside with the fee owed so far.
//
// @Summary List open guest sessions
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} openSessionListResponse
// @Failure 401 {object} errorPayload
// @Router /api/admin/sessions/open [get]
func ListOpenSessions(svc service.GateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessions, err := svc.OpenSessions(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		items := make([]openSessionItem, 0, len(sessions))
		for _, s := range sessions {
			items = append(items, openSessionItem{
				TicketCode:  s.TicketCode,
				Plate:       s.Plate,
				CheckinTime: s.CheckinTime,
				Hours:       s.Hours,
				FeeDue:      s.FeeDue,
			})
		}
		return c.JSON(openSessionListResponse{Success: true, Count: len(items), Items: items})
	}
}
