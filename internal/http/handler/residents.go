package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"parkgate/internal/model"
	"parkgate/internal/service"
)

type residentResponse struct {
	Success  bool            `json:"success"`
	Resident *model.Resident `json:"resident"`
}

type residentListResponse struct {
	Success bool `json:"success"`
	*service.ResidentListResult
}

type backupCodeRequest struct {
	BackupCode string `json:"backup_code"`
}

type backupCodeResponse struct {
	Success    bool              `json:"success"`
	BackupCode *model.BackupCode `json:"backup_code"`
}

func residentID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("INVALID_ID", "invalid id format")
	}
	return id, nil
}

// ListResidents pages through residents.
//
// @Summary List residents
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} residentListResponse
// @Router /api/admin/residents [get]
func ListResidents(svc service.ResidentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		if res.Items == nil {
			res.Items = []model.Resident{}
		}
		return c.JSON(residentListResponse{Success: true, ResidentListResult: res})
	}
}

// CreateResident registers a resident.
//
// @Summary Create resident
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.Resident true "Resident"
// @Success 201 {object} residentResponse
// @Failure 400 {object} errorPayload
// @Router /api/admin/residents [post]
func CreateResident(svc service.ResidentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Resident
		if err := parseJSON(c, &in); err != nil {
			return writeServiceError(c, err)
		}
		in.ID = 0
		r, err := svc.Create(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(residentResponse{Success: true, Resident: r})
	}
}

// UpdateResident applies a partial update.
//
// @Summary Update resident
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident ID"
// @Param body body model.ResidentPatch true "Fields to change"
// @Success 200 {object} residentResponse
// @Failure 404 {object} errorPayload
// @Router /api/admin/residents/{id} [patch]
func UpdateResident(svc service.ResidentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := residentID(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		var patch model.ResidentPatch
		if err := parseJSON(c, &patch); err != nil {
			return writeServiceError(c, err)
		}
		r, err := svc.Update(c.UserContext(), id, patch)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(residentResponse{Success: true, Resident: r})
	}
}

// DeactivateResident disables gate access without deleting the resident.
//
// @Summary Deactivate resident
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident ID"
// @Success 200 {object} residentResponse
// @Failure 404 {object} errorPayload
// @Router /api/admin/residents/{id}/deactivate [post]
func DeactivateResident(svc service.ResidentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := residentID(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		r, err := svc.Deactivate(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(residentResponse{Success: true, Resident: r})
	}
}

// IssueBackupCode replaces the resident's backup code.
//
// @Summary Issue backup code
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident ID"
// @Param body body backupCodeRequest false "Explicit code, generated when empty"
// @Success 201 {object} backupCodeResponse
// @Failure 403 {object} errorPayload
// @Router /api/admin/residents/{id}/backup-code [post]
func IssueBackupCode(svc service.ResidentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := residentID(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		var req backupCodeRequest
		if err := parseJSON(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		bc, err := svc.IssueBackupCode(c.UserContext(), id, req.BackupCode)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(backupCodeResponse{Success: true, BackupCode: bc})
	}
}
