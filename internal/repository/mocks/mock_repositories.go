package mocks

import (
	"context"
	"time"

	"parkgate/internal/model"
	"parkgate/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockResidentRepository struct {
	mock.Mock
}

func (m *MockResidentRepository) Create(ctx context.Context, r *model.Resident) (*model.Resident, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindByID(ctx context.Context, id int64) (*model.Resident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resident), args.Error(1)
}

func (m *MockResidentRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Resident], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Resident]), args.Error(1)
}

func (m *MockResidentRepository) Update(ctx context.Context, r *model.Resident) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockResidentRepository) FindByBackupCode(ctx context.Context, code string) (*model.Resident, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resident), args.Error(1)
}

func (m *MockResidentRepository) ReplaceBackupCode(ctx context.Context, residentID int64, code string) (*model.BackupCode, error) {
	args := m.Called(ctx, residentID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BackupCode), args.Error(1)
}

type MockGuestSessionRepository struct {
	mock.Mock
}

func (m *MockGuestSessionRepository) Create(ctx context.Context, s *model.GuestSession) (*model.GuestSession, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GuestSession), args.Error(1)
}

func (m *MockGuestSessionRepository) FindOpenByTicket(ctx context.Context, ticketCode string) (*model.GuestSession, error) {
	args := m.Called(ctx, ticketCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GuestSession), args.Error(1)
}

func (m *MockGuestSessionRepository) Close(ctx context.Context, id int64, checkoutTime time.Time, fee int64, exitImageKey string) error {
	args := m.Called(ctx, id, checkoutTime, fee, exitImageKey)
	return args.Error(0)
}

func (m *MockGuestSessionRepository) Stats(ctx context.Context, from, to time.Time) (repository.GuestStats, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(repository.GuestStats), args.Error(1)
}

func (m *MockGuestSessionRepository) ListCheckedIn(ctx context.Context, from, to time.Time) ([]model.GuestSession, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GuestSession), args.Error(1)
}

func (m *MockGuestSessionRepository) ListOpen(ctx context.Context) ([]model.GuestSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GuestSession), args.Error(1)
}

type MockParkingLogRepository struct {
	mock.Mock
}

func (m *MockParkingLogRepository) Create(ctx context.Context, l *model.ParkingLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockParkingLogRepository) Count(ctx context.Context, eventType string, from, to time.Time) (int, error) {
	args := m.Called(ctx, eventType, from, to)
	return args.Int(0), args.Error(1)
}

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminUser), args.Error(1)
}

func (m *MockAdminRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminUser), args.Error(1)
}

func (m *MockAdminRepository) CreateFirst(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminUser), args.Error(1)
}

type MockSupportRepository struct {
	mock.Mock
}

func (m *MockSupportRepository) Create(ctx context.Context, s *model.SupportRequest) (*model.SupportRequest, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SupportRequest), args.Error(1)
}

func (m *MockSupportRepository) ListRecent(ctx context.Context, limit int) ([]model.SupportRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SupportRequest), args.Error(1)
}

type MockTicketAttemptRepository struct {
	mock.Mock
}

func (m *MockTicketAttemptRepository) RecordMiss(ctx context.Context, source, ticketCode string, at time.Time) (int, error) {
	args := m.Called(ctx, source, ticketCode, at)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketAttemptRepository) Clear(ctx context.Context, source string) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListRecent(ctx context.Context, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}
