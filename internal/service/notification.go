package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"parkgate/internal/model"
	"parkgate/internal/repository"
)

const maxNotificationTitle = 255

// Notifier raises an operator alert.
type Notifier interface {
	Notify(ctx context.Context, level, title, message string) (*model.Notification, error)
}

// NotificationService stores and lists operator alerts.
type NotificationService interface {
	Notifier
	ListRecent(ctx context.Context, limit int) ([]model.Notification, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) Notify(ctx context.Context, level, title, message string) (*model.Notification, error) {
	switch level {
	case "":
		level = model.LevelInfo
	case model.LevelInfo, model.LevelSuccess, model.LevelWarning, model.LevelDanger:
	default:
		return nil, fmt.Errorf("%w: unknown level %q", ErrValidation, level)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if utf8.RuneCountInString(title) > maxNotificationTitle {
		return nil, fmt.Errorf("%w: title exceeds %d characters", ErrValidation, maxNotificationTitle)
	}
	n, err := s.repo.Create(ctx, &model.Notification{Level: level, Title: title, Message: strings.TrimSpace(message)})
	if err != nil {
		return nil, fmt.Errorf("save notification: %w", err)
	}
	return n, nil
}

func (s *notificationService) ListRecent(ctx context.Context, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.ListRecent(ctx, limit)
}
