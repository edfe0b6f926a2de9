package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"parkgate/internal/model"
	"parkgate/internal/repository"
)

const maxSupportContent = 2000

// SupportService stores resident support requests.
type SupportService interface {
	Submit(ctx context.Context, content string) (*model.SupportRequest, error)
	ListRecent(ctx context.Context, limit int) ([]model.SupportRequest, error)
}

type supportService struct {
	repo repository.SupportRepository
}

func NewSupportService(repo repository.SupportRepository) SupportService {
	return &supportService{repo: repo}
}

func (s *supportService) Submit(ctx context.Context, content string) (*model.SupportRequest, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if utf8.RuneCountInString(content) > maxSupportContent {
		return nil, fmt.Errorf("%w: content exceeds %d characters", ErrValidation, maxSupportContent)
	}
	req, err := s.repo.Create(ctx, &model.SupportRequest{
		Content: content,
		Status:  "new",
	})
	if err != nil {
		return nil, fmt.Errorf("save support request: %w", err)
	}
	return req, nil
}

func (s *supportService) ListRecent(ctx context.Context, limit int) ([]model.SupportRequest, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, limit)
}
