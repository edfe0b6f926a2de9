package service

import "errors"

var (
	ErrValidation            = errors.New("validation failed")
	ErrNotFound              = errors.New("not found")
	ErrInvalidBackupCode     = errors.New("invalid or inactive backup code")
	ErrTicketNotFound        = errors.New("ticket not found or already closed")
	ErrTicketExhausted       = errors.New("no free ticket code available")
	ErrResidentInactive      = errors.New("resident not found or inactive")
	ErrFaceNotRecognized     = errors.New("face not recognized")
	ErrRecognizerUnavailable = errors.New("face recognition unavailable")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUsernameTaken         = errors.New("username already exists")
	ErrInvalidToken          = errors.New("invalid token")
	ErrBootstrapClosed       = errors.New("admin token required")
)
