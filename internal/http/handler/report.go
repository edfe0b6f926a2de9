package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"parkgate/internal/model"
	"parkgate/internal/service"
)

type dailyReportResponse struct {
	Success bool `json:"success"`
	*model.DailyReport
}

// DailyReport summarises one day of gate traffic.
//
// @Summary Daily report
// @Tags admin
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Param detail query string false "1 to include sessions"
// @Success 200 {object} dailyReportResponse
// @Failure 400 {object} errorPayload
// @Router /api/admin/report/daily [get]
func DailyReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail := c.Query("detail") == "1" || c.QueryBool("detail", false)
		rep, err := svc.Daily(c.UserContext(), utils.CopyString(c.Query("date")), detail)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(dailyReportResponse{Success: true, DailyReport: rep})
	}
}
