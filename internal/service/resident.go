package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"parkgate/internal/model"
	"parkgate/internal/repository"
)

// ResidentListResult is a page of residents.
type ResidentListResult struct {
	Items  []model.Resident `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// ResidentService manages residents and their backup codes.
type ResidentService interface {
	Create(ctx context.Context, r *model.Resident) (*model.Resident, error)
	List(ctx context.Context, limit, offset int) (*ResidentListResult, error)
	Update(ctx context.Context, id int64, patch model.ResidentPatch) (*model.Resident, error)
	Deactivate(ctx context.Context, id int64) (*model.Resident, error)

	// IssueBackupCode makes code the resident's only active backup code. An empty code is generated.
	IssueBackupCode(ctx context.Context, id int64, code string) (*model.BackupCode, error)
}

type residentService struct {
	repo repository.ResidentRepository
}

func NewResidentService(repo repository.ResidentRepository) ResidentService {
	return &residentService{repo: repo}
}

func (s *residentService) Create(ctx context.Context, r *model.Resident) (*model.Resident, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: resident is required", ErrValidation)
	}
	if r.Status == "" {
		r.Status = model.ResidentActive
	}
	if err := validateResident(r); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, r)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: national_id or email already registered", ErrValidation)
		}
		return nil, err
	}
	return created, nil
}

func (s *residentService) List(ctx context.Context, limit, offset int) (*ResidentListResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ResidentListResult{Items: res.Items, Total: res.Total, Limit: limit, Offset: offset}, nil
}

func (s *residentService) Update(ctx context.Context, id int64, patch model.ResidentPatch) (*model.Resident, error) {
	r, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(r)
	if err := validateResident(r); err != nil {
		return nil, err
	}
	if err := s.save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *residentService) Deactivate(ctx context.Context, id int64) (*model.Resident, error) {
	r, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == model.ResidentInactive {
		return r, nil
	}
	r.Status = model.ResidentInactive
	if err := s.save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *residentService) IssueBackupCode(ctx context.Context, id int64, code string) (*model.BackupCode, error) {
	r, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsActive() {
		return nil, ErrResidentInactive
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		if code, err = NewBackupCode(); err != nil {
			return nil, err
		}
	} else if len(code) < 6 || len(code) > 32 {
		return nil, fmt.Errorf("%w: backup_code must be 6 to 32 characters", ErrValidation)
	}
	bc, err := s.repo.ReplaceBackupCode(ctx, id, code)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: backup_code already in use", ErrValidation)
		}
		return nil, err
	}
	return bc, nil
}

func (s *residentService) find(ctx context.Context, id int64) (*model.Resident, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *residentService) save(ctx context.Context, r *model.Resident) error {
	if err := s.repo.Update(ctx, r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("%w: national_id or email already registered", ErrValidation)
		}
		return err
	}
	return nil
}

func validateResident(r *model.Resident) error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Room = strings.TrimSpace(r.Room)
	r.Email = strings.TrimSpace(r.Email)
	switch {
	case r.FullName == "":
		return fmt.Errorf("%w: full_name is required", ErrValidation)
	case r.Room == "":
		return fmt.Errorf("%w: room is required", ErrValidation)
	case r.Floor < 0:
		return fmt.Errorf("%w: floor must not be negative", ErrValidation)
	case r.Status != model.ResidentActive && r.Status != model.ResidentInactive:
		return fmt.Errorf("%w: status must be active or inactive", ErrValidation)
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return fmt.Errorf("%w: email is malformed", ErrValidation)
		}
	}
	return nil
}
