package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"parkgate/internal/http/middleware"
	"parkgate/internal/service"
)

// errorPayload defines the standardized error response body. success and message
// sit at the top level so gate clients can read them like any other response.
type errorPayload struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "TICKET_NOT_FOUND", "VALIDATION_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		Success:   false,
		Message:   message,
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

type errorMapping struct {
	target error
	status int
	code   string
}

var serviceErrors = []errorMapping{
	{service.ErrValidation, fiber.StatusBadRequest, "VALIDATION_ERROR"},
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{service.ErrInvalidBackupCode, fiber.StatusUnauthorized, "INVALID_BACKUP_CODE"},
	{service.ErrFaceNotRecognized, fiber.StatusUnauthorized, "FACE_NOT_RECOGNIZED"},
	{service.ErrResidentInactive, fiber.StatusForbidden, "RESIDENT_INACTIVE"},
	{service.ErrTicketNotFound, fiber.StatusNotFound, "TICKET_NOT_FOUND"},
	{service.ErrTicketExhausted, fiber.StatusServiceUnavailable, "TICKET_EXHAUSTED"},
	{service.ErrRecognizerUnavailable, fiber.StatusServiceUnavailable, "RECOGNIZER_UNAVAILABLE"},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{service.ErrUsernameTaken, fiber.StatusConflict, "USERNAME_TAKEN"},
	{service.ErrInvalidToken, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{service.ErrBootstrapClosed, fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// requestError is a client mistake caught by a handler before any service call.
type requestError struct {
	status  int
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &requestError{status: fiber.StatusBadRequest, code: code, message: message}
}

func tooLarge(message string) error {
	return &requestError{status: fiber.StatusRequestEntityTooLarge, code: "PAYLOAD_TOO_LARGE", message: message}
}

// writeServiceError maps request errors and service sentinel errors to responses.
// Anything else is a 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return writeError(c, re.status, re.code, re.message)
	}
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			msg := m.target.Error()
			if m.target == service.ErrValidation {
				// Validation errors carry the offending field after the sentinel.
				msg = err.Error()
			}
			return writeError(c, m.status, m.code, msg)
		}
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func unauthorized(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token")
}

func tooManyRequests(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "too many attempts, slow down")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
