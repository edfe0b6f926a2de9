package handler

import (
	"github.com/gofiber/fiber/v2"

	"parkgate/internal/http/middleware"
	"parkgate/internal/model"
	"parkgate/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type adminResponse struct {
	Success bool             `json:"success"`
	Admin   *model.AdminUser `json:"admin"`
}

type loginResponse struct {
	Success bool             `json:"success"`
	Token   string           `json:"token"`
	Admin   *model.AdminUser `json:"admin"`
}

// RegisterAdmin creates an operator account. Without a bearer token it only
// succeeds on a fresh install with no operators; afterwards an admin token is
// required.
//
// @Summary Register admin
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "Credentials"
// @Success 201 {object} adminResponse
// @Failure 401 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Security BearerAuth
// @Router /api/admin/auth/register [post]
func RegisterAdmin(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := parseJSON(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		register := svc.Bootstrap
		if _, ok := middleware.AdminFrom(c); ok {
			register = svc.Register
		}
		u, err := register(c.UserContext(), req.Username, req.Password, req.FullName)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(adminResponse{Success: true, Admin: u})
	}
}

// LoginAdmin exchanges credentials for a bearer token.
//
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {object} errorPayload
// @Router /api/admin/auth/login [post]
func LoginAdmin(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := parseJSON(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		token, u, err := svc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(loginResponse{Success: true, Token: token, Admin: u})
	}
}

// verifier adapts AuthService to the admin middleware.
func verifier(svc service.AuthService) func(string) (string, error) {
	return func(token string) (string, error) {
		claims, err := svc.Verify(token)
		if err != nil {
			return "", err
		}
		return claims.Username, nil
	}
}
